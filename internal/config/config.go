package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the aurora conditions service
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8971"`

	// Data source URLs
	SWPCPlasmaURL   string `env:"SWPC_PLASMA_URL,default=https://services.swpc.noaa.gov/products/solar-wind/plasma-1-day.json"`
	SWPCMagURL      string `env:"SWPC_MAG_URL,default=https://services.swpc.noaa.gov/products/solar-wind/mag-1-day.json"`
	SWPCXrayURL     string `env:"SWPC_XRAY_URL,default=https://services.swpc.noaa.gov/json/goes/primary/xrays-1-day.json"`
	SWPCProtonURL   string `env:"SWPC_PROTON_URL,default=https://services.swpc.noaa.gov/json/goes/primary/integral-protons-1-day.json"`
	DONKIFlareURL   string `env:"DONKI_FLARE_URL,default=https://api.nasa.gov/DONKI/FLR"`
	DONKICMEURL     string `env:"DONKI_CME_URL,default=https://api.nasa.gov/DONKI/CME"`
	NASAAPIKey      string `env:"NASA_API_KEY,default=DEMO_KEY"`
	SIDCBulletinURL string `env:"SIDC_BULLETIN_URL,default=https://www.sidc.be/products/meu"`

	// Poll loop
	PollInterval time.Duration `env:"POLL_INTERVAL,default=5m"`

	// Stored bundles older than this are purged after each generation
	BundleRetention time.Duration `env:"BUNDLE_RETENTION,default=720h"`

	// Forecast heuristics. The Earth-directed window and the CME speed floor
	// are tunable approximations, not physical constants.
	EarthWindowDeg  float64 `env:"EARTH_WINDOW_DEG,default=30"`
	CMESpeedFloor   float64 `env:"CME_SPEED_FLOOR,default=100"`
	FlareAlertClass string  `env:"FLARE_ALERT_CLASS,default=M5.0"`

	// OpenAI configuration (optional; without a key the forecast discussion
	// falls back to a deterministic template)
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4.1"`

	// GCP configuration (optional for local deployments)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Local deployment configuration
	LocalBundlesDir string `env:"LOCAL_BUNDLES_DIR,default=./bundles"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=text"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
