package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"auroracast/internal/reports"
	"auroracast/internal/storage"
)

// HandleRoot redirects to the latest stored bundle, or serves a waiting page
// when none exist yet
func (s *Server) HandleRoot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	latestURL, err := s.findLatestBundleURL(r.Context())
	if err != nil {
		s.serveInitialPage(w)
		return
	}

	w.Header().Set("Location", latestURL)
	w.WriteHeader(http.StatusFound)
}

func (s *Server) serveInitialPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<html><body><h1>Aurora Forecast</h1><p>No forecast bundles yet. POST /generate to create one.</p></body></html>`)
}

// HandleHealth provides the health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snapStatus := "stale"
	if snap := s.Store.Latest(); snap != nil {
		snapStatus = snap.Timestamp.UTC().Format(time.RFC3339)
	}

	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": map[string]string{
			"storage":  "ok",
			"snapshot": snapStatus,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}

// HandleGenerate creates and stores a new forecast bundle
func (s *Server) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.generateMutex.TryLock() {
		s.log.Warn("Bundle generation already in progress, rejecting request")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "Bundle generation already in progress",
			"status": "conflict",
		})
		return
	}
	defer s.generateMutex.Unlock()

	ctx := r.Context()
	s.log.Info("Starting bundle generation")

	snap, sourceData, err := s.Fetcher.FetchSnapshot(ctx)
	if err != nil {
		s.log.Error("Snapshot fetch failed", err)
		http.Error(w, "Snapshot fetch failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	discussion, err := s.LLMClient.GenerateDiscussion(ctx, snap)
	if err != nil {
		s.log.Warn("Falling back to deterministic discussion", map[string]interface{}{"error": err.Error()})
		discussion = reports.BuildFallbackDiscussion(snap)
	}

	files, tempDir, err := s.BundleGen.GenerateAllFiles(ctx, snap, sourceData, discussion)
	if err != nil {
		s.log.Error("Bundle generation failed", err)
		http.Error(w, "Bundle generation failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	folderPath, err := reports.StoreBundle(ctx, s.Storage, files, tempDir, snap.Timestamp)
	if err != nil {
		s.log.Error("Bundle storage failed", err)
		http.Error(w, "Bundle storage failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.log.Infof("Bundle stored at %s", folderPath)

	// Clean up bundles past the retention window
	go func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.PurgeStaleBundles(cleanupCtx)
	}()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"bundle":    folderPath,
		"url":       "/files/" + folderPath + "/index.html",
		"timestamp": snap.Timestamp.UTC().Format(time.RFC3339),
	})
}

// HandleConditions returns the classified current conditions from the
// latest poll
func (s *Server) HandleConditions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.Store.Latest()
	if snap == nil {
		http.Error(w, "No snapshot available yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp":  snap.Timestamp.UTC().Format(time.RFC3339),
		"conditions": snap.Conditions,
	})
}

// HandleSummary returns the 24-hour activity summary from the latest poll
func (s *Server) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.Store.Latest()
	if snap == nil {
		http.Error(w, "No snapshot available yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp": snap.Timestamp.UTC().Format(time.RFC3339),
		"summary":   snap.Summary,
	})
}

// HandleCMEs returns tracked CMEs with Earth-direction and arrival estimates
func (s *Server) HandleCMEs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	snap := s.Store.Latest()
	if snap == nil {
		http.Error(w, "No snapshot available yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"timestamp": snap.Timestamp.UTC().Format(time.RFC3339),
		"cmes":      snap.CMEs,
	})
}

// HandleFileProxy serves bundle files from the storage backend
func (s *Server) HandleFileProxy(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filePath := strings.TrimPrefix(r.URL.Path, "/files/")
	if filePath == "" {
		http.Error(w, "File path required", http.StatusBadRequest)
		return
	}

	// prevent directory traversal
	if strings.Contains(filePath, "..") {
		http.Error(w, "Invalid file path", http.StatusBadRequest)
		return
	}

	fileData, err := s.Storage.GetFile(r.Context(), filePath)
	if err != nil {
		s.log.Debugf("File not found in storage: %v", err)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", storage.ContentType(filePath))
	w.Write(fileData)
}

// HandleListBundles lists recent forecast bundles
func (s *Server) HandleListBundles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
		if limit > 100 {
			limit = 100
		}
	}

	bundles, err := s.Storage.ListBundles(r.Context(), limit)
	if err != nil {
		s.log.Error("Failed to list bundles", err)
		http.Error(w, "Failed to list bundles: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"bundles":   bundles,
		"count":     len(bundles),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// findLatestBundleURL finds the proxy URL of the newest stored bundle
func (s *Server) findLatestBundleURL(ctx context.Context) (string, error) {
	bundles, err := s.Storage.ListBundles(ctx, 1)
	if err != nil || len(bundles) == 0 {
		return "", fmt.Errorf("no bundles available")
	}
	return "/files/" + bundles[0], nil
}
