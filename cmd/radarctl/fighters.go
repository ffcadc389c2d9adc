package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/ufcradar/internal/report"
)

// ErrUnknownFighters is returned by "fighters check" when a name is not registered.
var ErrUnknownFighters = errors.New("unknown fighters")

func (c *cli) fightersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fighters",
		Short: "Fighter registry commands",
	}

	check := &cobra.Command{
		Use:   "check NAME...",
		Short: "Check that every NAME is in the fighter details export",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.newService(cmd)
			if err != nil {
				return err
			}
			defer svc.Stop()

			unknown, err := svc.UnknownFighters(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("fighters check: %w", err)
			}
			report.PrintFighterCheck(cmd.OutOrStdout(), args, unknown)
			if len(unknown) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrUnknownFighters, len(unknown), len(args))
			}
			return nil
		},
	}

	cmd.AddCommand(check)
	return cmd
}
