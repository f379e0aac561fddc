package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"netlister/internal/client"
	"netlister/internal/netlist"
	"netlister/internal/termui"
	"netlister/internal/upload"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Fetch a stored netlist and render its preview",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := client.New(opts.client.APIURL, opts.client.Timeout, opts.logger)
			if err != nil {
				return err
			}
			defer api.CloseIdleConnections()
			rec, err := api.Get(cmd.Context(), upload.Resource, args[0])
			if err != nil {
				return fmt.Errorf("fetch netlist %s: %w", args[0], err)
			}

			raw := string(rec.Body)
			doc, err := netlist.Decode(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", netlist.Message(err), err)
			}
			valid, err := netlist.ValidateStructure(doc)
			if err != nil {
				return fmt.Errorf("%s: %w", netlist.Message(err), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", doc.String("name"), rec.ID)
			if desc := doc.String("description"); desc != "" {
				fmt.Fprintln(out, desc)
			}
			_, err = fmt.Fprintln(out, termui.RenderPreview(netlist.BuildPreview(valid, raw)))
			return err
		},
	}
}
