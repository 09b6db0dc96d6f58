package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"postboard/internal/middleware"
	"postboard/internal/notifications"
	"postboard/internal/ui/tui"
)

func tuiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive post browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, opts)
		},
	}
}

func runTUI(cmd *cobra.Command, opts *options) error {
	store, err := opts.store()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	deps := tui.Deps{Store: store, Logger: middleware.Logger}
	if events := opts.liveEvents(ctx); events != nil {
		deps.Events = events
	}
	return tui.Run(deps)
}

// liveEvents subscribes to post events when Redis is configured. Failures
// only disable live updates.
func (o *options) liveEvents(ctx context.Context) <-chan notifications.PostEvent {
	cfg, err := o.config()
	if err != nil || cfg.RedisURL == "" {
		return nil
	}
	rdb := notifications.Connect(cfg.RedisURL)
	if rdb == nil {
		return nil
	}
	go func() {
		<-ctx.Done()
		_ = rdb.Close()
	}()

	ch := make(chan notifications.PostEvent, 16)
	err = notifications.NewNotifier(rdb).SubscribePostEvents(ctx, func(ev notifications.PostEvent) {
		select {
		case ch <- ev:
		default:
			middleware.Logger.Debug("dropping post event, TUI is behind", slog.String("type", ev.Type))
		}
	})
	if err != nil {
		middleware.Logger.Warn("live updates disabled", slog.String("error", err.Error()))
		return nil
	}
	return ch
}
