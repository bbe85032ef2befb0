// Package config holds service configuration loaded from YAML and
// environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all settings for the translation service.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Dict   DictConfig   `yaml:"dictionary"`
	Script ScriptConfig `yaml:"script"`
	Cache  CacheConfig  `yaml:"cache"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string `yaml:"addr"             env:"OTTOLAI_ADDR"             env-default:":8080"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" env:"OTTOLAI_MAX_UPLOAD_BYTES" env-default:"10485760"`
	ReadTimeout    int    `yaml:"read_timeout"     env:"OTTOLAI_READ_TIMEOUT"     env-default:"75"`
	WriteTimeout   int    `yaml:"write_timeout"    env:"OTTOLAI_WRITE_TIMEOUT"    env-default:"90"`
}

// DictConfig holds dictionary file settings. Empty paths fall back to the
// embedded dictionaries.
type DictConfig struct {
	PhrasesPath string `yaml:"phrases_path" env:"OTTOLAI_PHRASES_PATH"`
	GlyphsPath  string `yaml:"glyphs_path"  env:"OTTOLAI_GLYPHS_PATH"`
	// Duplicates is "overwrite" or "reject".
	Duplicates string `yaml:"duplicates" env:"OTTOLAI_DICT_DUPLICATES" env-default:"overwrite"`
}

// ScriptConfig holds subprocess adapter settings.
type ScriptConfig struct {
	ModelScript  string `yaml:"model_script"  env:"OTTOLAI_MODEL_SCRIPT"`
	OCRScript    string `yaml:"ocr_script"    env:"OTTOLAI_OCR_SCRIPT"`
	Python       string `yaml:"python"        env:"OTTOLAI_PYTHON"        env-default:"python3"`
	ModelTimeout int    `yaml:"model_timeout" env:"OTTOLAI_MODEL_TIMEOUT" env-default:"30"`
	OCRTimeout   int    `yaml:"ocr_timeout"   env:"OTTOLAI_OCR_TIMEOUT"   env-default:"60"`
	TempDir      string `yaml:"temp_dir"      env:"OTTOLAI_TEMP_DIR"`
}

// CacheConfig holds resolution cache settings. An empty RedisURL selects the
// in-memory cache.
type CacheConfig struct {
	TTL      int    `yaml:"ttl"       env:"OTTOLAI_CACHE_TTL" env-default:"3600"`
	RedisURL string `yaml:"redis_url" env:"OTTOLAI_REDIS_URL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"OTTOLAI_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"OTTOLAI_LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// The YAML file path is determined by OTTOLAI_CONFIG env (fallback
// "./config.yaml"). If the file does not exist and OTTOLAI_CONFIG was not
// set explicitly, configuration is loaded from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("OTTOLAI_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		// No file, load from ENV + defaults only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that tag defaults cannot express.
func (c *Config) Validate() error {
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Script.ModelTimeout <= 0 {
		return fmt.Errorf("script.model_timeout must be positive, got %d", c.Script.ModelTimeout)
	}
	if c.Script.OCRTimeout <= 0 {
		return fmt.Errorf("script.ocr_timeout must be positive, got %d", c.Script.OCRTimeout)
	}
	switch c.Dict.Duplicates {
	case "overwrite", "reject":
	default:
		return fmt.Errorf("dictionary.duplicates must be overwrite or reject, got %q", c.Dict.Duplicates)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
