package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the app server")
	paths := flag.String("paths", "/,/status/404,/status/500", "Comma separated paths to cycle through")
	concurrency := flag.Int("c", 10, "Number of concurrent workers")
	duration := flag.Duration("d", 30*time.Second, "Duration of the load test")
	rps := flag.Int("rps", 1000, "Requests per second limit")
	flag.Parse()

	targets := strings.Split(*paths, ",")

	log.Printf("Starting load test on %s", *baseURL)
	log.Printf("Concurrency: %d, Duration: %s, RPS: %d, Paths: %v", *concurrency, *duration, *rps, targets)

	var wg sync.WaitGroup
	var okCount, clientErrCount, serverErrCount, transportErrCount atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	limiter := rate.NewLimiter(rate.Limit(*rps), 100) // Allow bursts up to 100

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			client := &http.Client{
				Timeout: 5 * time.Second,
			}

			for n := workerID; ; n++ {
				if err := limiter.Wait(ctx); err != nil {
					return
				}

				req, err := http.NewRequestWithContext(ctx, http.MethodGet, *baseURL+targets[n%len(targets)], nil)
				if err != nil {
					continue // Should not happen
				}
				req.Header.Set("X-Request-ID", uuid.NewString())

				resp, err := client.Do(req)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					transportErrCount.Add(1)
					continue
				}
				resp.Body.Close()

				switch {
				case resp.StatusCode >= 500:
					serverErrCount.Add(1)
				case resp.StatusCode >= 400:
					clientErrCount.Add(1)
				default:
					okCount.Add(1)
				}
			}
		}(i)
	}

	wg.Wait()

	totalRequests := okCount.Load() + clientErrCount.Load() + serverErrCount.Load() + transportErrCount.Load()
	actualRPS := float64(totalRequests) / duration.Seconds()

	log.Println("Load test finished.")
	log.Printf("Total Requests: %d", totalRequests)
	log.Printf("Expect access log records: info=%d warn=%d error=%d", okCount.Load(), clientErrCount.Load(), serverErrCount.Load())
	log.Printf("Transport errors: %d", transportErrCount.Load())
	log.Printf("Actual RPS: %.2f", actualRPS)
}
