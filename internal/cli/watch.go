package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"postboard/internal/notifications"
)

func watchCmd(opts *options) *cobra.Command {
	var (
		redisURL string
		count    int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream post events published by the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output != formatTable && output != formatJSON {
				return fmt.Errorf("unknown output format %q (want table or json)", output)
			}
			rdb, err := opts.redisClient(redisURL)
			if err != nil {
				return err
			}
			defer func() { _ = rdb.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return watchEvents(ctx, rdb, cmd.OutOrStdout(), output, count)
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL or host:port (defaults to REDIS_URL)")
	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many events (0 = run until interrupted)")
	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table or json")
	return cmd
}

func (o *options) redisClient(override string) (*redis.Client, error) {
	addr := override
	if addr == "" {
		cfg, err := o.config()
		if err != nil {
			return nil, err
		}
		addr = cfg.RedisURL
	}
	if addr == "" {
		return nil, errors.New("no Redis configured: set REDIS_URL or pass --redis")
	}
	rdb := notifications.Connect(addr)
	if rdb == nil {
		return nil, fmt.Errorf("redis at %s is not reachable", addr)
	}
	return rdb, nil
}

func watchEvents(ctx context.Context, rdb *redis.Client, w io.Writer, format string, count int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan notifications.PostEvent, 16)
	err := notifications.NewNotifier(rdb).SubscribePostEvents(ctx, func(ev notifications.PostEvent) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	})
	if err != nil {
		return err
	}

	seen := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := writeEvent(w, format, ev); err != nil {
				return err
			}
			seen++
			if count > 0 && seen >= count {
				return nil
			}
		}
	}
}

func writeEvent(w io.Writer, format string, ev notifications.PostEvent) error {
	if format == formatJSON {
		return json.NewEncoder(w).Encode(ev)
	}
	_, err := fmt.Fprintf(w, "%-13s %s  %s\n", ev.Type, ev.Payload.ID, ev.Payload.Name)
	return err
}
