// Package main provides the unified service that runs all components together:
// - Ingestion (scheduled sweeps, optional WebSocket feed)
// - Benchmark pipeline (scheduled, snapshots persisted)
// - Reporting (scheduled Markdown + CSV output)
// - HTTP API for on-demand benchmarks
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"salary-benchmark-lab/internal/benchmark"
	"salary-benchmark-lab/internal/domain"
	"salary-benchmark-lab/internal/importer"
	"salary-benchmark-lab/internal/ingestion"
	"salary-benchmark-lab/internal/ingestion/stub"
	"salary-benchmark-lab/internal/observability"
	"salary-benchmark-lab/internal/reporting"
	"salary-benchmark-lab/internal/storage"
	chstore "salary-benchmark-lab/internal/storage/clickhouse"
	"salary-benchmark-lab/internal/storage/memory"
	"salary-benchmark-lab/internal/storage/migrations"
	pgstore "salary-benchmark-lab/internal/storage/postgres"
)

// Server holds all components of the unified service.
type Server struct {
	// Configuration
	feedEndpoint      string
	outputDir         string
	locations         []string
	sweepInterval     time.Duration
	benchmarkInterval time.Duration
	reportInterval    time.Duration

	// Stores
	stores *allStores

	// Components
	runner     *ingestion.Runner
	aggregator *benchmark.Aggregator
	generator  *reporting.Generator
	logger     *log.Logger

	// State
	mu               sync.Mutex
	started          time.Time
	lastSweep        time.Time
	lastBenchmarkRun time.Time
	lastReportRun    time.Time
	sweepRuns        int
	benchmarkRuns    int
	reportRuns       int
}

// allStores holds all storage implementations.
type allStores struct {
	positionStore storage.PositionStore
	postingStore  storage.PostingStore
	snapshotStore storage.SnapshotStore
}

func main() {
	loadEnvFile()

	// Parse flags (env vars as defaults)
	feedEndpoint := flag.String("feed-endpoint", os.Getenv("FEED_ENDPOINT"), "WebSocket posting feed endpoint (optional)")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	positionsFile := flag.String("positions-file", os.Getenv("POSITIONS_FILE"), "CSV file with target positions to load at startup")
	locations := flag.String("locations", "", "Comma-separated location filter for scheduled benchmark runs")
	outputDir := flag.String("output-dir", "output", "Output directory for reports")
	sweepInterval := flag.Duration("sweep-interval", 1*time.Hour, "Ingestion sweep interval")
	benchmarkInterval := flag.Duration("benchmark-interval", 1*time.Hour, "Benchmark snapshot interval")
	reportInterval := flag.Duration("report-interval", 6*time.Hour, "Report generation interval")
	stubPostings := flag.Int("stub-postings", 25, "Postings per position from the stub provider")
	stubSeed := flag.Int64("stub-seed", 42, "Stub provider seed")
	httpAddr := flag.String("http-addr", ":9090", "HTTP address for health/metrics/status/benchmarks")

	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	if *positionsFile != "" {
		if err := loadPositions(ctx, *positionsFile, stores.positionStore, logger); err != nil {
			logger.Fatalf("Failed to load positions: %v", err)
		}
	}

	runner := ingestion.NewRunner(ingestion.RunnerOptions{
		Provider:      stub.NewProvider(*stubPostings, *stubSeed),
		PositionStore: stores.positionStore,
		PostingStore:  stores.postingStore,
		Logger:        log.New(os.Stdout, "[ingestion] ", log.LstdFlags|log.Lshortfile),
	})

	aggregator := benchmark.NewAggregator(stores.positionStore, stores.postingStore)

	server := &Server{
		feedEndpoint:      *feedEndpoint,
		outputDir:         *outputDir,
		locations:         splitCSV(*locations),
		sweepInterval:     *sweepInterval,
		benchmarkInterval: *benchmarkInterval,
		reportInterval:    *reportInterval,
		stores:            stores,
		runner:            runner,
		aggregator:        aggregator,
		generator:         reporting.NewGenerator(aggregator),
		logger:            logger,
		started:           time.Now(),
	}

	done := make(chan error, 1)

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()

		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case <-done:
			// Normal shutdown completed
		}
	}()

	go server.startHTTPServer(*httpAddr)

	err = server.Run(ctx)
	done <- err
	cancel()

	if err != nil && err != context.Canceled {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			positionStore: memory.NewPositionStore(),
			postingStore:  memory.NewPostingStore(),
			snapshotStore: memory.NewSnapshotStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
	}

	stores := &allStores{
		positionStore: pgstore.NewPositionStore(pool),
		postingStore:  pgstore.NewPostingStore(pool),
		snapshotStore: chstore.NewSnapshotStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// loadPositions imports target positions from a CSV file, skipping ones
// already present.
func loadPositions(ctx context.Context, path string, store storage.PositionStore, logger *log.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open positions file: %w", err)
	}
	defer f.Close()

	result, err := importer.ReadPositions(f)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	inserted := 0
	for _, p := range result.Positions {
		if err := store.Insert(ctx, p); err != nil {
			if errors.Is(err, storage.ErrDuplicateKey) {
				continue
			}
			return fmt.Errorf("insert position %s: %w", p.PositionID, err)
		}
		inserted++
	}

	logger.Printf("Loaded positions: %d inserted, %d already present, %d rows rejected",
		inserted, len(result.Positions)-inserted, result.RowsRejected)
	return nil
}

// Run starts the unified server with all components.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Println("Starting unified server...")

	errCh := make(chan error, 4)

	go func() {
		if err := s.runSweepScheduler(ctx); err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("sweep scheduler: %w", err)
		}
	}()

	if s.feedEndpoint != "" {
		feed := ingestion.NewWSFeedSource(s.feedEndpoint, s.runner, s.stores.positionStore, nil,
			log.New(os.Stdout, "[feed] ", log.LstdFlags|log.Lshortfile))
		go func() {
			if err := feed.Run(ctx); err != nil && err != context.Canceled {
				errCh <- fmt.Errorf("posting feed: %w", err)
			}
		}()
	}

	go func() {
		if err := s.runBenchmarkScheduler(ctx); err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("benchmark scheduler: %w", err)
		}
	}()

	go func() {
		if err := s.runReportScheduler(ctx); err != nil && err != context.Canceled {
			errCh <- fmt.Errorf("report scheduler: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// runSweepScheduler runs ingestion sweeps on schedule.
func (s *Server) runSweepScheduler(ctx context.Context) error {
	s.logger.Printf("Starting sweep scheduler (interval: %v)...", s.sweepInterval)

	s.runSweep(ctx)

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Server) runSweep(ctx context.Context) {
	result, err := s.runner.Sweep(ctx)
	if err != nil {
		s.logger.Printf("Sweep error: %v", err)
		return
	}

	s.mu.Lock()
	s.lastSweep = time.Now()
	s.sweepRuns++
	s.mu.Unlock()

	observability.DefaultMetrics.LastSuccessfulSweep.SetToCurrentTime()
	s.logger.Printf("Sweep completed: %d positions, %d stored, %d rejected, %d duplicates, %d provider errors",
		result.PositionsSwept, result.PostingsStored, result.RecordsRejected,
		result.DuplicatesSeen, result.ProviderErrors)
}

// runBenchmarkScheduler computes and persists benchmark snapshots on schedule.
func (s *Server) runBenchmarkScheduler(ctx context.Context) error {
	s.logger.Printf("Starting benchmark scheduler (interval: %v)...", s.benchmarkInterval)

	// Let the first sweep land before the first snapshot.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(1 * time.Minute):
	}

	s.runBenchmark(ctx)

	ticker := time.NewTicker(s.benchmarkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runBenchmark(ctx)
		}
	}
}

func (s *Server) runBenchmark(ctx context.Context) {
	start := time.Now()

	results, _, err := s.aggregator.Run(ctx, benchmark.Request{LocationFilter: s.locations})
	if err != nil {
		s.logger.Printf("Benchmark error: %v", err)
		observability.RecordBenchmarkRun("error", time.Since(start).Seconds())
		return
	}

	snapshots := make([]*domain.BenchmarkSnapshot, len(results))
	computedAt := time.Now().UnixMilli()
	for i, r := range results {
		snapshots[i] = &domain.BenchmarkSnapshot{
			PositionID:     r.Position.PositionID,
			PositionName:   r.Position.Name,
			ComputedAt:     computedAt,
			LocationFilter: strings.Join(s.locations, ","),
			FilterMode:     domain.FilterAll.String(),
			Monthly:        r.Monthly,
			Yearly:         r.Yearly,
			SampleSize:     r.SampleSize,
		}
	}

	if err := s.stores.snapshotStore.InsertBulk(ctx, snapshots); err != nil {
		s.logger.Printf("Snapshot write error: %v", err)
		observability.RecordBenchmarkRun("error", time.Since(start).Seconds())
		return
	}

	s.mu.Lock()
	s.lastBenchmarkRun = time.Now()
	s.benchmarkRuns++
	s.mu.Unlock()

	observability.RecordBenchmarkRun("success", time.Since(start).Seconds())
	observability.RecordSnapshotsWritten(len(snapshots))
	observability.DefaultMetrics.LastSuccessfulBenchmark.SetToCurrentTime()
	s.logger.Printf("Benchmark completed in %v: %d snapshots", time.Since(start), len(snapshots))
}

// runReportScheduler writes report files on schedule.
func (s *Server) runReportScheduler(ctx context.Context) error {
	s.logger.Printf("Starting report scheduler (interval: %v)...", s.reportInterval)

	// Wait for the first benchmark before the first report.
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(2 * time.Minute):
	}

	s.runReport(ctx)

	ticker := time.NewTicker(s.reportInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.runReport(ctx)
		}
	}
}

func (s *Server) runReport(ctx context.Context) {
	s.logger.Println("Generating reports...")
	start := time.Now()

	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		s.logger.Printf("Failed to create output directory: %v", err)
		return
	}

	report, err := s.generator.Generate(ctx, benchmark.Request{LocationFilter: s.locations})
	if err != nil {
		s.logger.Printf("Report generation error: %v", err)
		return
	}

	mdPath := filepath.Join(s.outputDir, "BENCHMARK_REPORT.md")
	if err := os.WriteFile(mdPath, []byte(reporting.RenderMarkdown(report)), 0644); err != nil {
		s.logger.Printf("Failed to write %s: %v", mdPath, err)
		return
	}

	csvPath := filepath.Join(s.outputDir, "benchmarks.csv")
	if err := os.WriteFile(csvPath, []byte(reporting.RenderCSV(report.PositionRows)), 0644); err != nil {
		s.logger.Printf("Failed to write %s: %v", csvPath, err)
		return
	}

	s.mu.Lock()
	s.lastReportRun = time.Now()
	s.reportRuns++
	s.mu.Unlock()

	observability.RecordReportGenerated()
	s.logger.Printf("Reports generated in %v to %s/", time.Since(start), s.outputDir)
}

// startHTTPServer starts the HTTP server for health/metrics/status/benchmarks.
func (s *Server) startHTTPServer(addr string) {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/benchmarks", s.handleBenchmarks)

	s.logger.Printf("Starting HTTP server on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		s.logger.Printf("HTTP server error: %v", err)
	}
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status           string    `json:"status"`
	Uptime           string    `json:"uptime"`
	LastSweep        time.Time `json:"last_sweep,omitempty"`
	LastBenchmarkRun time.Time `json:"last_benchmark_run,omitempty"`
	LastReportRun    time.Time `json:"last_report_run,omitempty"`
	SweepRuns        int       `json:"sweep_runs"`
	BenchmarkRuns    int       `json:"benchmark_runs"`
	ReportRuns       int       `json:"report_runs"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := StatusResponse{
		Status:           "running",
		Uptime:           time.Since(s.started).String(),
		LastSweep:        s.lastSweep,
		LastBenchmarkRun: s.lastBenchmarkRun,
		LastReportRun:    s.lastReportRun,
		SweepRuns:        s.sweepRuns,
		BenchmarkRuns:    s.benchmarkRuns,
		ReportRuns:       s.reportRuns,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// BenchmarkResponse is the JSON response for /benchmarks endpoint.
type BenchmarkResponse struct {
	Results []BenchmarkResultJSON `json:"results"`
	Summary SummaryJSON           `json:"summary"`
}

// BenchmarkResultJSON is one position's benchmark in the HTTP response.
type BenchmarkResultJSON struct {
	PositionID         string          `json:"position_id"`
	PositionName       string          `json:"position_name"`
	Category           string          `json:"category,omitempty"`
	Monthly            SalaryStatsJSON `json:"monthly"`
	Yearly             SalaryStatsJSON `json:"yearly"`
	SampleSize         int             `json:"sample_size"`
	AvailableCompanies []string        `json:"available_companies"`
}

// SalaryStatsJSON mirrors domain.SalaryStats for the HTTP surface.
type SalaryStatsJSON struct {
	Min float64 `json:"min"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	Max float64 `json:"max"`
}

// SummaryJSON mirrors domain.BenchmarkSummary.
type SummaryJSON struct {
	ValidSamples  int `json:"valid_samples"`
	TotalPostings int `json:"total_postings"`
}

// handleBenchmarks runs the pipeline on demand.
// Query parameters: location (comma-separated), q (name search),
// mode (ALL | ONLY_COMPETITORS | CUSTOM), companies (comma-separated,
// CUSTOM only). mode applies to every position.
func (s *Server) handleBenchmarks(w http.ResponseWriter, r *http.Request) {
	req := benchmark.Request{
		LocationFilter: splitCSV(r.URL.Query().Get("location")),
		NameSearch:     r.URL.Query().Get("q"),
	}

	if modeParam := r.URL.Query().Get("mode"); modeParam != "" {
		mode := domain.FilterMode(strings.ToUpper(modeParam))
		if !mode.IsValid() {
			http.Error(w, fmt.Sprintf("invalid mode %q", modeParam), http.StatusBadRequest)
			return
		}
		filter := domain.PositionFilter{
			Mode:              mode,
			SelectedCompanies: splitCSV(r.URL.Query().Get("companies")),
		}

		positions, err := s.stores.positionStore.GetAll(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		req.Filters = make(map[string]domain.PositionFilter, len(positions))
		for _, p := range positions {
			req.Filters[p.PositionID] = filter
		}
	}

	results, summary, err := s.aggregator.Run(r.Context(), req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := BenchmarkResponse{
		Results: make([]BenchmarkResultJSON, len(results)),
		Summary: SummaryJSON{ValidSamples: summary.ValidSamples, TotalPostings: summary.TotalPostings},
	}
	for i, res := range results {
		resp.Results[i] = BenchmarkResultJSON{
			PositionID:         res.Position.PositionID,
			PositionName:       res.Position.Name,
			Category:           res.Position.Category,
			Monthly:            toStatsJSON(res.Monthly),
			Yearly:             toStatsJSON(res.Yearly),
			SampleSize:         res.SampleSize,
			AvailableCompanies: res.AvailableCompanies,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func toStatsJSON(s domain.SalaryStats) SalaryStatsJSON {
	return SalaryStatsJSON{Min: s.Min, P25: s.P25, P50: s.P50, P75: s.P75, Max: s.Max}
}

// splitCSV splits a comma-separated flag value into trimmed non-empty entries.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
