package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"auroracast/internal/config"
	"auroracast/internal/fetchers"
	"auroracast/internal/llm"
	"auroracast/internal/logger"
	"auroracast/internal/models"
	"auroracast/internal/poller"
	"auroracast/internal/reports"
	"auroracast/internal/storage"
)

// Server is the main application server. It owns the poller that keeps the
// latest snapshot fresh and the pipeline that produces stored forecast
// bundles on demand.
type Server struct {
	Config    *config.Config
	Fetcher   *fetchers.DataFetcher
	LLMClient *llm.ForecastClient
	BundleGen *reports.BundleGenerator
	Storage   storage.Client
	Store     *poller.SnapshotStore
	Scheduler *poller.Scheduler

	generateMutex sync.Mutex
	log           *logger.Logger
}

// NewServer creates a new server instance with all components wired
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	mode := storage.ModeFor(cfg)
	storageClient, err := storage.NewClient(ctx, mode, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	fetcher := fetchers.NewDataFetcher(cfg)
	store := poller.NewSnapshotStore()

	srv := &Server{
		Config:    cfg,
		Fetcher:   fetcher,
		LLMClient: llm.NewForecastClient(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		BundleGen: reports.NewBundleGenerator(),
		Storage:   storageClient,
		Store:     store,
		log:       logger.Global().WithComponent("server"),
	}

	srv.Scheduler = poller.NewScheduler(cfg.PollInterval, func(ctx context.Context) (*models.Snapshot, error) {
		snap, _, err := fetcher.FetchSnapshot(ctx)
		return snap, err
	}, store)

	srv.log.Infof("Server initialized in %s mode", mode)
	return srv, nil
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/generate", s.HandleGenerate)
	mux.HandleFunc("/reports", s.HandleListBundles)
	mux.HandleFunc("/files/", s.HandleFileProxy)
	mux.HandleFunc("/api/conditions", s.HandleConditions)
	mux.HandleFunc("/api/summary", s.HandleSummary)
	mux.HandleFunc("/api/cmes", s.HandleCMEs)
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}

// PurgeStaleBundles removes stored bundles older than the configured
// retention window. Failures are logged, not fatal; stale bundles are
// retried on the next generation.
func (s *Server) PurgeStaleBundles(ctx context.Context) {
	if err := s.Storage.PurgeOlderThan(ctx, s.Config.BundleRetention); err != nil {
		s.log.Warn("Stale bundle cleanup failed", map[string]interface{}{"error": err.Error()})
	}
}

// Close cleans up server resources
func (s *Server) Close() error {
	if s.Scheduler != nil {
		s.Scheduler.Stop()
	}
	if s.Storage != nil {
		return s.Storage.Close()
	}
	return nil
}
