// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/joels-spie/photonics-trends-app/internal/engine"
)

var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Pre-warm the response cache for the whole topic catalog",
	Long: `Warm runs the fetch pipeline once per catalog topic with a forced refresh,
so the next interactive analysis is served from cache. With --schedule it
keeps running and re-warms on the given cron expression; --once warms a
single time and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := emergingRequestFromFlags(cmd)
		if err != nil {
			return err
		}
		req.RefreshCache = true

		schedule, _ := cmd.Flags().GetString("schedule")
		once, _ := cmd.Flags().GetBool("once")

		eng, store, err := buildEngine()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		if once || schedule == "" {
			return warmOnce(ctx, eng, req)
		}

		// Warm immediately, then on schedule until interrupted.
		if err := warmOnce(ctx, eng, req); err != nil {
			fmt.Fprintf(os.Stderr, "Initial warm failed: %v\n", err)
		}

		c := cron.New()
		_, err = c.AddFunc(schedule, func() {
			if err := warmOnce(ctx, eng, req); err != nil {
				fmt.Fprintf(os.Stderr, "Scheduled warm failed: %v\n", err)
			}
		})
		if err != nil {
			return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
		}
		c.Start()
		fmt.Fprintf(os.Stderr, "Warming on schedule: %s\n", schedule)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "Received signal %v, shutting down...\n", sig)

		cancel()
		c.Stop()
		return nil
	},
}

// warmOnce refreshes every catalog topic and reports fetch accounting.
func warmOnce(ctx context.Context, eng *engine.Engine, req engine.EmergingRequest) error {
	res, err := eng.EmergingTopics(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Cache warmed: %d live responses, %d warnings\n",
		res.Meta.LiveResponses, len(res.Meta.Warnings))
	for _, w := range res.Meta.Warnings {
		fmt.Fprintf(os.Stderr, "  warning: %s\n", w)
	}
	return nil
}

func init() {
	addEmergingFlags(warmCmd)
	warmCmd.Flags().String("schedule", "", `cron expression for recurring warms (e.g. "0 6 * * *")`)
	warmCmd.Flags().Bool("once", false, "warm a single time and exit")
	rootCmd.AddCommand(warmCmd)
}
