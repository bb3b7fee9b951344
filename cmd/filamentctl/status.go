package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/filamentgenius/backend/internal/health"
	"github.com/filamentgenius/backend/internal/store"
)

func init() {
	var watch time.Duration

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Probe the store and advisor backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}

			// The store goes through the cached checker so the fallback probe
			// covers drivers without a specialized ping.
			hc := store.NewHealthChecker(a.store, a.log, 2*time.Second)
			hc.Probe(cmd.Context())
			if hc.IsHealthy() {
				_, _ = fmt.Fprintf(os.Stdout, "%s: ok\n", hc.Name())
			} else {
				_, _ = fmt.Fprintf(os.Stdout, "%s: unavailable\n", hc.Name())
			}

			components := []health.Component{}
			if a.cfg.GeminiAPIKey != "" {
				gw, err := a.newGemini()
				if err != nil {
					return err
				}
				components = append(components, health.Component{Name: "gemini", Pinger: gw})
			}
			statuses := health.Check(cmd.Context(), a.log, components...)
			for _, s := range statuses {
				if s.Healthy() {
					_, _ = fmt.Fprintf(os.Stdout, "%s: ok\n", s.Name)
				} else {
					_, _ = fmt.Fprintf(os.Stdout, "%s: %v\n", s.Name, s.Err)
				}
			}

			if watch > 0 {
				// Keep probing until interrupted; transitions show up in the
				// checker's log output.
				hc.Start(cmd.Context(), watch)
				return nil
			}
			if !hc.IsHealthy() || !health.AllHealthy(statuses) {
				os.Exit(1)
			}
			return nil
		},
	}

	statusCmd.Flags().DurationVarP(&watch, "watch", "w", 0, "Keep probing at this interval instead of exiting")
	rootCmd.AddCommand(statusCmd)
}
