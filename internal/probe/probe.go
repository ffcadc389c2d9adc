package probe

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/okian/ufcradar/pkg/logger"
)

// Default probe configuration.
const (
	defaultWorkers = 4
	defaultRepeat  = 2
	defaultTimeout = 10 * time.Second

	// workerChannelMultiplier sizes the job buffer relative to the worker count.
	workerChannelMultiplier = 2
)

// Prober issues radar queries against baseURL.
type Prober struct {
	baseURL string
	client  *http.Client
	workers int
	repeat  int
	logger  logger.Logger
}

// Summary aggregates a probe run.
type Summary struct {
	Fighters    int
	Requests    int
	OK          int
	NotFound    int
	Failed      int
	StatusCodes map[int]int
	// Inconsistent lists fighters whose repeated answers differed.
	Inconsistent []string
	P50          time.Duration
	P95          time.Duration
	Max          time.Duration
	Took         time.Duration
}

type result struct {
	fighter string
	status  int
	body    []byte
	latency time.Duration
	err     error
}

// New creates a Prober for the server at baseURL.
func New(baseURL string, opts ...Option) *Prober {
	p := &Prober{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: defaultTimeout},
		workers: defaultWorkers,
		repeat:  defaultRepeat,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CheckHealth verifies the service answers /healthz with 200.
func (p *Prober) CheckHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// Run queries every fighter repeat times across the worker pool. last < 0
// omits the window so the server default applies. The returned error wraps
// ErrInconsistent when any fighter got differing answers; the Summary is
// complete either way.
func (p *Prober) Run(ctx context.Context, fighters []string, last int) (Summary, error) {
	if len(fighters) == 0 {
		return Summary{}, ErrNoFighters
	}
	start := time.Now()

	jobs := make(chan string, p.workers*workerChannelMultiplier)
	results := make(chan result, p.workers*workerChannelMultiplier)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				results <- p.query(ctx, f, last)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := 0; i < p.repeat; i++ {
			for _, f := range fighters {
				select {
				case <-ctx.Done():
					return
				case jobs <- f:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	sum := Summary{Fighters: len(fighters), StatusCodes: make(map[int]int)}
	first := make(map[string]result, len(fighters))
	inconsistent := make(map[string]struct{})
	var latencies []time.Duration

	for r := range results {
		sum.Requests++
		latencies = append(latencies, r.latency)
		switch {
		case r.err != nil:
			sum.Failed++
			p.logger.Warn(ctx, "radar probe request failed", logger.String("fighter", r.fighter), logger.Error(r.err))
			continue
		case r.status == http.StatusOK:
			sum.OK++
		case r.status == http.StatusNotFound:
			sum.NotFound++
		default:
			sum.Failed++
		}
		sum.StatusCodes[r.status]++

		prev, seen := first[r.fighter]
		if !seen {
			first[r.fighter] = r
			continue
		}
		if prev.status != r.status || !bytes.Equal(prev.body, r.body) {
			inconsistent[r.fighter] = struct{}{}
		}
	}

	for f := range inconsistent {
		sum.Inconsistent = append(sum.Inconsistent, f)
	}
	sort.Strings(sum.Inconsistent)
	sum.P50, sum.P95, sum.Max = percentiles(latencies)
	sum.Took = time.Since(start)

	p.logger.Info(ctx, "radar probe finished",
		logger.Int("requests", sum.Requests),
		logger.Int("ok", sum.OK),
		logger.Int("notFound", sum.NotFound),
		logger.Int("failed", sum.Failed),
		logger.Duration("took", sum.Took),
	)

	if err := ctx.Err(); err != nil {
		return sum, err
	}
	if len(sum.Inconsistent) > 0 {
		return sum, fmt.Errorf("%w: %s", ErrInconsistent, strings.Join(sum.Inconsistent, ", "))
	}
	return sum, nil
}

func (p *Prober) query(ctx context.Context, fighter string, last int) result {
	q := url.Values{"fighter": {fighter}}
	if last >= 0 {
		q.Set("last", strconv.Itoa(last))
	}

	r := result{fighter: fighter}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/ufc/radar/?"+q.Encode(), http.NoBody)
	if err != nil {
		r.err = err
		return r
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		r.latency = time.Since(start)
		r.err = err
		return r
	}
	defer resp.Body.Close()

	r.body, r.err = io.ReadAll(resp.Body)
	r.latency = time.Since(start)
	r.status = resp.StatusCode
	return r
}

// percentiles returns the nearest-rank p50, p95 and max of ds.
func percentiles(ds []time.Duration) (p50, p95, maxD time.Duration) {
	if len(ds) == 0 {
		return 0, 0, 0
	}
	sorted := make([]time.Duration, len(ds))
	copy(sorted, ds)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	rank := func(p int) time.Duration {
		i := (p*len(sorted)+99)/100 - 1
		if i < 0 {
			i = 0
		}
		return sorted[i]
	}
	return rank(50), rank(95), sorted[len(sorted)-1]
}
