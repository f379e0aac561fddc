// Command netlist uploads netlist files to the record store and manages the
// account used to do so.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"netlister/internal/config"
	"netlister/internal/logging"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	apiURL     string
	authURL    string
	verbose    bool

	logger *zap.Logger
	client config.ClientConfig
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

// newRootCmdWith builds the command tree around opts. A logger already set on
// opts is kept.
func newRootCmdWith(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:          "netlist",
		Short:        "Upload and inspect circuit netlists",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML client profile (api_url, auth_url, timeout)")
	pf.StringVar(&opts.apiURL, "api-url", "", "record store base URL (overrides profile and NETLIST_API_URL)")
	pf.StringVar(&opts.authURL, "auth-url", "", "auth service base URL (overrides profile and NETLIST_AUTH_URL)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newUploadCmd(opts),
		newShowCmd(opts),
		newRegisterCmd(opts),
	)
	return root
}

// init resolves the client configuration: environment, then the YAML
// profile, then explicit flags.
func (o *options) init() error {
	cfg := config.Load()

	logCfg := config.LogConfig{Level: cfg.Log.Level, Format: "console"}
	if o.verbose {
		logCfg.Level = "debug"
	}
	if o.logger == nil {
		logger, err := logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		o.logger = logger
	}

	o.client = cfg.Client
	if o.configPath != "" {
		c, err := config.LoadClientFile(o.configPath, o.client)
		if err != nil {
			return err
		}
		o.client = c
	}
	if o.apiURL != "" {
		o.client.APIURL = o.apiURL
	}
	if o.authURL != "" {
		o.client.AuthURL = o.authURL
	}
	return nil
}

// printNavigator reports page changes on the command output.
type printNavigator struct {
	w io.Writer
}

func (n printNavigator) NavigateTo(path string) {
	fmt.Fprintf(n.w, "Navigating to %s\n", path)
}
