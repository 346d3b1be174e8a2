// Command batchextract runs the extraction engine over a file of property
// IDs or URLs with a pool of workers, writing one JSON result per line and
// optionally mirroring the details into CSV or Postgres.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"

	"github.com/crawlerclub/hotelextractor"
	"github.com/crawlerclub/hotelextractor/config"
	"github.com/crawlerclub/hotelextractor/logging"
	"github.com/crawlerclub/hotelextractor/storage"
)

var (
	urlFile    = flag.String("urls", "", "File with one hotel ID or property URL per line")
	workers    = flag.Int("workers", 0, "Number of concurrent workers (0 = from config)")
	outputFile = flag.String("output", "output.json", "Path to JSON-lines output file")
	mode       = flag.String("mode", "browser", "Page acquisition mode: browser or static")
	country    = flag.String("country", "fr", "Country code used when a line is a bare hotel ID")
	checkin    = flag.String("checkin", "", "Check-in date YYYY-MM-DD")
	checkout   = flag.String("checkout", "", "Check-out date YYYY-MM-DD")
	toCSV      = flag.Bool("csv", false, "Also write details to the configured CSV file")
	toDB       = flag.Bool("db", false, "Also write details to the configured Postgres database")
)

type jobResult struct {
	URL   string                 `json:"url"`
	Error string                 `json:"error,omitempty"`
	Data  *hotelextractor.Result `json:"data,omitempty"`
}

func main() {
	flag.Parse()
	logger := logging.SetDefault()
	cfg := config.Load()

	if *urlFile == "" {
		logger.Error("a URL file is required, see -urls")
		os.Exit(1)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}

	lines, err := loadLines(*urlFile)
	if err != nil {
		logger.Error("loading URL file", "error", err)
		os.Exit(1)
	}

	writers, err := openWriters(cfg, logger)
	if err != nil {
		logger.Error("opening storage writers", "error", err)
		os.Exit(1)
	}

	bar := pb.Full.Start(len(lines))
	defer bar.Finish()

	jobs := make(chan string, cfg.Workers)
	results := make(chan jobResult)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go worker(cfg, logger, jobs, results, &wg)
	}

	done := make(chan bool)
	go collectResults(results, done, bar, writers, logger)

	for _, line := range lines {
		jobs <- line
	}
	close(jobs)

	wg.Wait()
	close(results)
	<-done

	for _, w := range writers {
		if err := w.Close(); err != nil {
			logger.Error("closing storage writer", "error", err)
		}
	}
	logger.Info("batch completed", "urls", len(lines), "output", *outputFile)
}

func loadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening URL file: %w", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return lines, nil
}

func openWriters(cfg *config.Config, logger *slog.Logger) ([]storage.Writer, error) {
	var writers []storage.Writer
	if *toCSV {
		writers = append(writers, storage.NewCSVWriter(cfg.CSVFilePath, logger))
	}
	if *toDB {
		w, err := storage.NewPostgresWriter(cfg.DatabaseURL, logger)
		if err != nil {
			return nil, fmt.Errorf("postgres writer: %w", err)
		}
		if err := w.CreateTable(); err != nil {
			return nil, fmt.Errorf("preparing hotels table: %w", err)
		}
		writers = append(writers, w)
	}
	return writers, nil
}

func worker(cfg *config.Config, logger *slog.Logger, jobs <-chan string, results chan<- jobResult, wg *sync.WaitGroup) {
	defer wg.Done()

	var fetcher hotelextractor.Fetcher
	switch *mode {
	case "static":
		fetcher = hotelextractor.NewStaticFetcher(cfg.UserAgent, cfg.NavTimeout)
	default:
		bf := hotelextractor.NewBrowserFetcher(cfg.UserAgent, cfg.NavTimeout, cfg.Headless)
		defer bf.Close()
		fetcher = bf
	}

	extractor := hotelextractor.NewExtractor(cfg.BaseURL)

	for line := range jobs {
		req := hotelextractor.DetailRequest{
			HotelID:     line,
			CountryCode: *country,
			Checkin:     *checkin,
			Checkout:    *checkout,
		}
		url := hotelextractor.BuildDetailURL(cfg.BaseURL, req)

		snap, err := fetchWithRetry(fetcher, url, cfg.MaxRetries)
		if err != nil {
			logger.Warn("fetch failed", "url", url, "error", err)
			results <- jobResult{URL: url, Error: err.Error()}
			continue
		}

		result, err := extractor.Extract(snap, req)
		if err != nil {
			logger.Warn("extraction failed", "url", url, "error", err)
			results <- jobResult{URL: url, Error: err.Error()}
			continue
		}

		results <- jobResult{URL: url, Data: result}
	}
}

func fetchWithRetry(fetcher hotelextractor.Fetcher, url string, retries int) (*hotelextractor.Snapshot, error) {
	if retries < 1 {
		retries = 1
	}
	var err error
	for attempt := 0; attempt < retries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 2 * time.Second)
		}
		var snap *hotelextractor.Snapshot
		if snap, err = fetcher.Fetch(url); err == nil {
			return snap, nil
		}
	}
	return nil, err
}

func collectResults(results <-chan jobResult, done chan<- bool, bar *pb.ProgressBar, writers []storage.Writer, logger *slog.Logger) {
	file, err := os.OpenFile(*outputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		logger.Error("opening output file", "error", err)
		os.Exit(1)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetEscapeHTML(false)

	var details []*hotelextractor.HotelDetails
	for result := range results {
		if err := encoder.Encode(result); err != nil {
			logger.Error("saving result", "url", result.URL, "error", err)
		}
		if result.Data != nil && result.Data.Details != nil {
			details = append(details, result.Data.Details)
		}
		bar.Increment()
	}

	for _, w := range writers {
		if err := w.Save(details); err != nil {
			logger.Error("saving to storage", "error", err)
		}
	}
	done <- true
}
