package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Browser BrowserConfig `yaml:"browser" mapstructure:"browser"`
	Verify  VerifyConfig  `yaml:"verify" mapstructure:"verify"`
	OCR     OCRConfig     `yaml:"ocr" mapstructure:"ocr"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// BrowserConfig configures the headless Chrome session.
type BrowserConfig struct {
	Headless  bool   `yaml:"headless" mapstructure:"headless"`
	UserAgent string `yaml:"user_agent" mapstructure:"user_agent"`
}

// VerifyConfig holds the evidence-check tunables. The reference values
// (2 load attempts, 3s/1s settle delays, 1500x3000 image cap, 20s translate
// timeout) live in Load's defaults rather than in the check logic.
type VerifyConfig struct {
	LoadAttempts         int    `yaml:"load_attempts" mapstructure:"load_attempts"`
	PageLoadTimeoutSecs  int    `yaml:"page_load_timeout_secs" mapstructure:"page_load_timeout_secs"`
	NameSettleMillis     int    `yaml:"name_settle_ms" mapstructure:"name_settle_ms"`
	TitleSettleMillis    int    `yaml:"title_settle_ms" mapstructure:"title_settle_ms"`
	TranslateTimeoutSecs int    `yaml:"translate_timeout_secs" mapstructure:"translate_timeout_secs"`
	TranslateTarget      string `yaml:"translate_target" mapstructure:"translate_target"`
	MaxImageWidth        int    `yaml:"max_image_width" mapstructure:"max_image_width"`
	MaxImageHeight       int    `yaml:"max_image_height" mapstructure:"max_image_height"`
}

// OCRConfig configures screenshot text recognition.
type OCRConfig struct {
	Provider      string `yaml:"provider" mapstructure:"provider"`
	TesseractPath string `yaml:"tesseract_path" mapstructure:"tesseract_path"`
	Languages     string `yaml:"languages" mapstructure:"languages"`
	APIKey        string `yaml:"api_key" mapstructure:"api_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONTACT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "contacts.db")
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("verify.load_attempts", 2)
	v.SetDefault("verify.page_load_timeout_secs", 60)
	v.SetDefault("verify.name_settle_ms", 3000)
	v.SetDefault("verify.title_settle_ms", 1000)
	v.SetDefault("verify.translate_timeout_secs", 20)
	v.SetDefault("verify.translate_target", "en")
	v.SetDefault("verify.max_image_width", 1500)
	v.SetDefault("verify.max_image_height", 3000)
	v.SetDefault("ocr.provider", "tesseract")
	v.SetDefault("ocr.tesseract_path", "tesseract")
	v.SetDefault("ocr.languages", "eng")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
