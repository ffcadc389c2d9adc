package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/ufcradar/internal/adapters/repository"
	"github.com/okian/ufcradar/internal/probe"
	"github.com/okian/ufcradar/internal/report"
	"github.com/okian/ufcradar/pkg/logger"
)

func (c *cli) probeCmd() *cobra.Command {
	var (
		baseURL  string
		workers  int
		repeat   int
		last     int
		fromData int
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "probe [NAME...]",
		Short: "Query a running server concurrently and check repeated answers match",
		Long: "Each NAME is one fighter. With --from-data N the first N fighters of the\n" +
			"stats export (sorted by name) are added to the list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			fighters := append([]string(nil), args...)
			if fromData > 0 {
				names, err := c.dataFighters(cmd, fromData)
				if err != nil {
					return err
				}
				fighters = append(fighters, names...)
			}
			if len(fighters) == 0 {
				return errors.New("probe: give fighter names or --from-data")
			}
			if baseURL == "" {
				baseURL = localURL(c.cfg.Addr)
			}

			p := probe.New(baseURL,
				probe.WithWorkers(workers),
				probe.WithRepeat(repeat),
				probe.WithTimeout(timeout),
				probe.WithLogger(logger.Named("probe")),
			)
			if err := p.CheckHealth(cmd.Context()); err != nil {
				return err
			}

			sum, err := p.Run(cmd.Context(), fighters, last)
			report.PrintProbeSummary(cmd.OutOrStdout(), sum)
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "", "server base URL (default http://localhost plus the configured addr port)")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent workers")
	cmd.Flags().IntVar(&repeat, "repeat", 2, "queries per fighter")
	cmd.Flags().IntVarP(&last, "last", "n", -1, "window to request (-1 = server default)")
	cmd.Flags().IntVar(&fromData, "from-data", 0, "also probe the first N fighters found in the stats export")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")
	return cmd
}

func (c *cli) dataFighters(cmd *cobra.Command, n int) ([]string, error) {
	cache := repository.NewCache(c.sources(), repository.WithLogger(logger.Named("repository")))
	ds, err := cache.Dataset(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}
	names := ds.Fighters()
	if len(names) > n {
		names = names[:n]
	}
	return names, nil
}

// localURL turns a listen address such as ":9080" into a loopback URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
