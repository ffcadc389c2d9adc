package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	service "github.com/okian/ufcradar/internal/app"
	"github.com/okian/ufcradar/internal/report"
)

func (c *cli) radarCmd() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "radar NAME...",
		Short: "Print the radar of a fighter's most recent fights",
		Long:  "Words of NAME are joined with single spaces, so quoting is optional.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			q := service.Query{Fighter: strings.Join(args, " ")}
			if cmd.Flags().Changed("last") {
				q.Last = &last
			}
			r, err := svc.Radar(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("radar: %w", err)
			}

			out := cmd.OutOrStdout()
			report.PrintRadarSummary(out, r)
			report.PrintRadarTable(out, r)
			return nil
		},
	}
	cmd.Flags().IntVarP(&last, "last", "n", 0, "number of most recent fights (default from config)")
	return cmd
}
