// Package cli implements the postsctl command tree.
package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"postboard/internal/client"
	"postboard/internal/config"
	"postboard/internal/middleware"
)

func Execute() {
	cmd := newRootCmd(&options{})
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	debug bool

	// api overrides the HTTP client built from config. Tests only.
	api client.PostsAPI
	cfg *config.ClientConfig
}

func (o *options) config() (*config.ClientConfig, error) {
	if o.cfg != nil {
		return o.cfg, nil
	}
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, err
	}
	o.cfg = cfg
	return cfg, nil
}

func (o *options) postsAPI() (client.PostsAPI, error) {
	if o.api != nil {
		return o.api, nil
	}
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}
	return client.NewFromConfig(cfg), nil
}

func (o *options) store() (*client.Store, error) {
	api, err := o.postsAPI()
	if err != nil {
		return nil, err
	}
	return client.NewStore(api), nil
}

func (o *options) setupLogging(w io.Writer) {
	level := slog.LevelWarn
	if o.debug {
		level = slog.LevelDebug
	}
	middleware.SetLogger(middleware.NewLogger(w, "development", level))
}

func newRootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "postsctl",
		Short:         "Command line client for the Postboard API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.setupLogging(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable verbose logging to stderr")

	cmd.AddCommand(
		listCmd(opts),
		getCmd(opts),
		createCmd(opts),
		deleteCmd(opts),
		watchCmd(opts),
		tuiCmd(opts),
	)
	return cmd
}

// storeError turns the store's error flag into a command error.
func storeError(s *client.Store, err error) error {
	if msg := s.State().Error; msg != "" {
		return errors.New(msg)
	}
	return err
}
