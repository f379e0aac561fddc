package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"netlister/internal/client"
	"netlister/internal/netlist"
	"netlister/internal/termui"
	"netlister/internal/upload"
)

func newUploadCmd(opts *options) *cobra.Command {
	var (
		name        string
		description string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Validate, preview and upload a netlist JSON file (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			api, err := client.New(opts.client.APIURL, opts.client.Timeout, opts.logger)
			if err != nil {
				return err
			}
			defer api.CloseIdleConnections()
			session := upload.NewSession(api, printNavigator{w: out}, opts.logger)

			f, err := openNetlist(cmd.InOrStdin(), args[0])
			if err != nil {
				return fmt.Errorf("open netlist: %w", err)
			}
			<-session.SelectFile(cmd.Context(), f)
			session.SetField("name", name)
			session.SetField("description", description)

			state := session.State()
			if err := termui.Fprint(out, state); err != nil {
				return err
			}
			// A file that failed to load keeps the submit control disabled.
			if state.Error != "" {
				return errors.New(state.Error)
			}
			if dryRun {
				return nil
			}

			id, err := session.Submit(cmd.Context())
			if err != nil {
				if msg := session.State().Error; msg != "" {
					return fmt.Errorf("%s: %w", msg, err)
				}
				return err
			}
			fmt.Fprintf(out, "Created netlist %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "netlist name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "netlist description")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only validate and preview, do not upload")
	return cmd
}

// stdinName is the file name reported for a netlist read from standard input.
const stdinName = "stdin.json"

func openNetlist(stdin io.Reader, path string) (netlist.File, error) {
	if path != "-" {
		return netlist.OpenLocal(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, err
	}
	return netlist.NewMemFile(stdinName, netlist.JSONMediaType, data), nil
}
