// Command swing-sim streams simulated motion data at a running service and
// reports what it detected. Useful for smoke-testing a deployment without a
// physical sensor.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/simulate"
)

// Default configuration constants.
const (
	defaultSwings     = 3
	defaultQuietGap   = 2 * time.Second
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 2 * time.Minute
	settleDelay       = 500 * time.Millisecond
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		swings   = flag.Int("swings", defaultSwings, "Number of simulated swings to stream")
		quietGap = flag.Duration("gap", defaultQuietGap, "Quiet time simulated between swings")
		jitter   = flag.Float64("jitter", 0, "Sensor noise amplitude added to every sample")
		seed     = flag.Int64("seed", 0, "Random seed for jitter (0 = time-based)")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	client := &http.Client{Timeout: *timeout}

	opts := []simulate.Option{simulate.WithStartTime(1000)}
	if *jitter > 0 {
		opts = append(opts, simulate.WithJitter(*jitter))
	}
	if *seed != 0 {
		opts = append(opts, simulate.WithSeed(*seed))
	}
	gen := simulate.NewGenerator(opts...)

	for i := 0; i < *swings; i++ {
		if err := postSamples(ctx, client, *baseURL, gen.CleanSwing()); err != nil {
			fail("streaming swing %d: %v", i+1, err)
		}
		if err := postSamples(ctx, client, *baseURL, gen.Quiet(*quietGap)); err != nil {
			fail("streaming quiet gap: %v", err)
		}
		fmt.Printf("streamed swing %d/%d\n", i+1, *swings)
	}

	// Give the async pipeline a moment to drain before reading back.
	time.Sleep(settleDelay)

	recent, err := fetchRecent(ctx, client, *baseURL, *swings)
	if err != nil {
		fail("fetching detections: %v", err)
	}

	fmt.Printf("detected %d swing(s)\n", len(recent))
	for _, r := range recent {
		fmt.Printf("  %s  confidence=%.1f  tempo=%.2f  clubhead=%.1f mph\n",
			r.ID, r.Confidence, metricsTempo(r), metricsSpeed(r))
	}
}

func postSamples(ctx context.Context, client *http.Client, baseURL string, samples []model.MotionSample) error {
	body, err := json.Marshal(map[string][]model.MotionSample{"samples": samples})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/samples", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return nil
}

func fetchRecent(ctx context.Context, client *http.Client, baseURL string, limit int) ([]model.SwingDetectionResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/swings?limit=%d", baseURL, limit), nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var results []model.SwingDetectionResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	return results, nil
}

func metricsTempo(r model.SwingDetectionResult) float64 {
	if r.Metrics == nil {
		return 0
	}
	return r.Metrics.SwingTempo
}

func metricsSpeed(r model.SwingDetectionResult) float64 {
	if r.Metrics == nil {
		return 0
	}
	return r.Metrics.EstimatedClubheadSpeedMph
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
