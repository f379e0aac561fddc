package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netlister/internal/client"
	"netlister/internal/form"
)

func newRegisterCmd(opts *options) *cobra.Command {
	var values form.Values

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account on the auth service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			session, err := client.NewAuthSession(opts.client.AuthURL, opts.client.Timeout)
			if err != nil {
				return err
			}
			page := form.NewRegisterPage(session, printNavigator{w: out})
			for _, f := range form.AllFields {
				page.Change(f, values.Get(f))
			}

			err = page.Submit(cmd.Context())
			state := page.Form()
			switch {
			case errors.Is(err, form.ErrInvalidForm):
				for _, f := range form.AllFields {
					if msg := state.Errors.Get(f); msg != "" {
						fmt.Fprintf(out, "%s: %s\n", f, msg)
					}
				}
				return err
			case err != nil:
				if state.Banner != "" {
					return fmt.Errorf("%s: %w", state.Banner, err)
				}
				return err
			}

			opts.logger.Debug("registered", zap.String("email", values.Email))
			fmt.Fprintf(out, "Registered %s\n", values.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Name, "name", "", "display name")
	cmd.Flags().StringVar(&values.Email, "email", "", "email address")
	cmd.Flags().StringVar(&values.Password, "password", "", "password")
	cmd.Flags().StringVar(&values.Password2, "confirm-password", "", "password again")
	return cmd
}
