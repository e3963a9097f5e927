package config

import (
	"context"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8971" {
		t.Errorf("default Port = %q, want 8971", cfg.Port)
	}
	if cfg.PollInterval != 5*time.Minute {
		t.Errorf("default PollInterval = %v, want 5m", cfg.PollInterval)
	}
	if cfg.BundleRetention != 720*time.Hour {
		t.Errorf("default BundleRetention = %v, want 720h", cfg.BundleRetention)
	}
	if cfg.EarthWindowDeg != 30 {
		t.Errorf("default EarthWindowDeg = %v, want 30", cfg.EarthWindowDeg)
	}
	if cfg.CMESpeedFloor != 100 {
		t.Errorf("default CMESpeedFloor = %v, want 100", cfg.CMESpeedFloor)
	}
	if cfg.FlareAlertClass != "M5.0" {
		t.Errorf("default FlareAlertClass = %q, want M5.0", cfg.FlareAlertClass)
	}
	if cfg.NASAAPIKey != "DEMO_KEY" {
		t.Errorf("default NASAAPIKey = %q, want DEMO_KEY", cfg.NASAAPIKey)
	}
	if cfg.LocalBundlesDir != "./bundles" {
		t.Errorf("default LocalBundlesDir = %q, want ./bundles", cfg.LocalBundlesDir)
	}
	if cfg.Environment != "development" {
		t.Errorf("default Environment = %q, want development", cfg.Environment)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("default log settings = %q/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.SWPCPlasmaURL == "" || cfg.DONKIFlareURL == "" || cfg.SIDCBulletinURL == "" {
		t.Error("default source URLs should not be empty")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("POLL_INTERVAL", "30s")
	t.Setenv("EARTH_WINDOW_DEG", "45")
	t.Setenv("CME_SPEED_FLOOR", "250")
	t.Setenv("FLARE_ALERT_CLASS", "X1.0")
	t.Setenv("GCS_BUCKET", "aurora-bundles")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval)
	}
	if cfg.EarthWindowDeg != 45 {
		t.Errorf("EarthWindowDeg = %v, want 45", cfg.EarthWindowDeg)
	}
	if cfg.CMESpeedFloor != 250 {
		t.Errorf("CMESpeedFloor = %v, want 250", cfg.CMESpeedFloor)
	}
	if cfg.FlareAlertClass != "X1.0" {
		t.Errorf("FlareAlertClass = %q, want X1.0", cfg.FlareAlertClass)
	}
	if cfg.GCSBucket != "aurora-bundles" {
		t.Errorf("GCSBucket = %q, want aurora-bundles", cfg.GCSBucket)
	}
	if cfg.Environment != "production" {
		t.Errorf("Environment = %q, want production", cfg.Environment)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
}

func TestLoadInvalidInterval(t *testing.T) {
	t.Setenv("POLL_INTERVAL", "not-a-duration")

	if _, err := Load(context.Background()); err == nil {
		t.Fatal("Load succeeded with invalid POLL_INTERVAL")
	}
}
