package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/domain"
)

const (
	configPathEnv  = "TOPICMODEL_CONFIG"
	databaseDSNEnv = "DATABASE_DSN"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig       `yaml:"logging"`
	Data     DataConfig          `yaml:"data"`
	Images   ImagesConfig        `yaml:"images"`
	Database DatabaseConfig      `yaml:"database"`
	Model    ModelConfig         `yaml:"model"`
	Jobs     []JobConfig         `yaml:"jobs"`
	Captions map[string][]string `yaml:"captions"`
}

// LoggingConfig controls slog verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DataConfig locates the per-subcorpus review tables.
type DataConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // parquet or csv
}

// ImagesConfig describes the word-cloud output surface.
type ImagesConfig struct {
	Dir      string `yaml:"dir"`
	FontFile string `yaml:"fontFile"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	MaxWords int    `yaml:"maxWords"`
}

// DatabaseConfig describes the optional summary sink; empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ModelConfig carries the vectorizer and factorization knobs shared by jobs.
type ModelConfig struct {
	MaxFeatures         int      `yaml:"maxFeatures"`
	MaxDF               float64  `yaml:"maxDf"`
	MinDF               int      `yaml:"minDf"`
	Alpha               float64  `yaml:"alpha"`
	L1Ratio             float64  `yaml:"l1Ratio"`
	Seed                *int64   `yaml:"seed"`
	MembershipThreshold float64  `yaml:"membershipThreshold"`
	TopWords            int      `yaml:"topWords"`
	ExtraStopWords      []string `yaml:"extraStopWords"`
}

// JobConfig names one subcorpus run with its fixed topic count.
type JobConfig struct {
	Subcorpus string `yaml:"subcorpus"`
	Topics    int    `yaml:"topics"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	if len(cfg.Jobs) == 0 {
		cfg.Jobs = defaultConfig().Jobs
	}

	return cfg
}

// Validate rejects configurations the model stages would only reject later,
// so a bad run fails before any data is loaded.
func (c Config) Validate() error {
	for _, job := range c.Jobs {
		if err := domain.Subcorpus(job.Subcorpus).Validate(); err != nil {
			return fmt.Errorf("job: %w", err)
		}
		if job.Topics <= 0 {
			return fmt.Errorf("job %s: topic count %d must be positive", job.Subcorpus, job.Topics)
		}
	}
	if c.Model.MaxDF <= 0 || c.Model.MaxDF > 1 {
		return fmt.Errorf("model: max_df %.2f outside (0,1]", c.Model.MaxDF)
	}
	if c.Model.MinDF < 1 {
		return fmt.Errorf("model: min_df %d must be at least 1", c.Model.MinDF)
	}
	if c.Model.MembershipThreshold < 0 || c.Model.MembershipThreshold > 1 {
		return fmt.Errorf("model: membership threshold %.2f outside [0,1]", c.Model.MembershipThreshold)
	}
	switch c.Data.Format {
	case "parquet", "csv":
	default:
		return fmt.Errorf("data: unknown format %q", c.Data.Format)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Data.Dir != "" {
		base.Data.Dir = override.Data.Dir
	}
	if override.Data.Format != "" {
		base.Data.Format = override.Data.Format
	}

	if override.Images.Dir != "" {
		base.Images.Dir = override.Images.Dir
	}
	if override.Images.FontFile != "" {
		base.Images.FontFile = override.Images.FontFile
	}
	if override.Images.Width > 0 {
		base.Images.Width = override.Images.Width
	}
	if override.Images.Height > 0 {
		base.Images.Height = override.Images.Height
	}
	if override.Images.MaxWords > 0 {
		base.Images.MaxWords = override.Images.MaxWords
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Model.MaxFeatures > 0 {
		base.Model.MaxFeatures = override.Model.MaxFeatures
	}
	if override.Model.MaxDF > 0 {
		base.Model.MaxDF = override.Model.MaxDF
	}
	if override.Model.MinDF > 0 {
		base.Model.MinDF = override.Model.MinDF
	}
	if override.Model.Alpha > 0 {
		base.Model.Alpha = override.Model.Alpha
	}
	if override.Model.L1Ratio > 0 {
		base.Model.L1Ratio = override.Model.L1Ratio
	}
	if override.Model.Seed != nil {
		base.Model.Seed = override.Model.Seed
	}
	if override.Model.MembershipThreshold > 0 {
		base.Model.MembershipThreshold = override.Model.MembershipThreshold
	}
	if override.Model.TopWords > 0 {
		base.Model.TopWords = override.Model.TopWords
	}
	if len(override.Model.ExtraStopWords) > 0 {
		base.Model.ExtraStopWords = override.Model.ExtraStopWords
	}

	if len(override.Jobs) > 0 {
		base.Jobs = override.Jobs
	}
	if len(override.Captions) > 0 {
		base.Captions = override.Captions
	}

	return base
}

func defaultConfig() Config {
	seed := int64(42)
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Data:    DataConfig{Dir: "data", Format: "parquet"},
		Images: ImagesConfig{
			Dir:      "images",
			FontFile: "assets/DejaVuSans.ttf",
			Width:    2000,
			Height:   1000,
			MaxWords: 150,
		},
		Database: DatabaseConfig{DSN: ""},
		Model: ModelConfig{
			MaxFeatures:         10000,
			MaxDF:               0.95,
			MinDF:               1000,
			Alpha:               0.1,
			L1Ratio:             0.25,
			Seed:                &seed,
			MembershipThreshold: 0.20,
			TopWords:            20,
		},
		Jobs: []JobConfig{
			{Subcorpus: string(domain.SubcorpusFavorable), Topics: 21},
			{Subcorpus: string(domain.SubcorpusUnfavorable), Topics: 10},
		},
	}
}
