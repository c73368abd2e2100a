// Command seed generates synthetic view traffic against a running explore
// service. It discovers car IDs from the ranked feed, then posts car_view
// events concurrently so trending and popularity behavior can be exercised
// locally.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	defaultNumEvents = 1000
	defaultTimeout   = 10 * time.Second
	runTimeout       = 5 * time.Minute
)

type feedPage struct {
	Cars []struct {
		Car struct {
			ID string `json:"id"`
		} `json:"car"`
	} `json:"cars"`
}

type viewEvent struct {
	EventID string `json:"event_id"`
	Type    string `json:"type"`
	CarID   string `json:"car_id"`
	Ts      string `json:"ts"`
}

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numEvents = flag.Int("events", defaultNumEvents, "Number of view events to submit")
		workers   = flag.Int("workers", runtime.NumCPU()*2, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		skew      = flag.Float64("skew", 2.0, "View distribution skew; higher concentrates views on fewer cars")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	client := &http.Client{Timeout: *timeout}

	carIDs, err := discoverCars(ctx, client, *baseURL)
	if err != nil {
		os.Stderr.WriteString("failed to discover cars: " + err.Error() + "\n")
		os.Exit(1)
	}
	if len(carIDs) == 0 {
		os.Stderr.WriteString("no cars in the feed; start the service with EXPLORE_DEMO_DATA=true or seed your own\n")
		os.Exit(1)
	}

	fmt.Printf("posting %d view events across %d cars with %d workers\n", *numEvents, len(carIDs), *workers)

	var sent, dup, failed atomic.Int64
	jobs := make(chan string, *workers)

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for carID := range jobs {
				switch postView(ctx, client, *baseURL, carID) {
				case http.StatusAccepted:
					sent.Add(1)
				case http.StatusOK:
					dup.Add(1)
				default:
					failed.Add(1)
				}
			}
		}()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < *numEvents; i++ {
		// Power-law pick so a handful of cars dominate the view counts.
		idx := int(float64(len(carIDs)) * powSkew(rng.Float64(), *skew))
		if idx >= len(carIDs) {
			idx = len(carIDs) - 1
		}
		jobs <- carIDs[idx]
	}
	close(jobs)
	wg.Wait()

	fmt.Printf("done: %d accepted, %d duplicates, %d failed\n", sent.Load(), dup.Load(), failed.Load())
}

func powSkew(u, skew float64) float64 {
	v := u
	for i := 1.0; i < skew; i++ {
		v *= u
	}
	return v
}

func discoverCars(ctx context.Context, client *http.Client, baseURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/explore?limit=100", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from /explore", resp.StatusCode)
	}

	var page feedPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(page.Cars))
	for _, c := range page.Cars {
		ids = append(ids, c.Car.ID)
	}
	return ids, nil
}

func postView(ctx context.Context, client *http.Client, baseURL, carID string) int {
	body, err := json.Marshal(viewEvent{
		EventID: uuid.NewString(),
		Type:    "car_view",
		CarID:   carID,
		Ts:      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return 0
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return 0
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0
	}
	defer resp.Body.Close()
	return resp.StatusCode
}
