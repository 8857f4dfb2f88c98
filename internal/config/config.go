package config

import (
	"flag"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultListenAddr  = "localhost:8081"
	defaultImageMaxMB  = 10
	defaultHTTPTimeout = 10 * time.Second
	defaultLogLevel    = "info"
)

type Config struct {
	// Storage
	DataDir     string `env:"WARDROBE_DATA_DIR"`
	DBPath      string `env:"WARDROBE_DB_PATH"`
	SettingsDir string `env:"WARDROBE_SETTINGS_DIR"`
	BackupDir   string `env:"-"`

	// Local API
	ListenAddr string `env:"LISTEN_ADDR"`
	ImageMaxMB int    `env:"IMAGE_MAX_MB"`

	// Weather
	WeatherURL  string        `env:"WEATHER_URL"`
	GeocodeURL  string        `env:"GEOCODE_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT"`

	LogLevel string `env:"LOG_LEVEL"`
	Version  bool   `env:"-"` // show version and exit (flag only)
}

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// флаги по умолчанию берут значения из env
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "каталог данных гардероба")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "путь к файлу SQLite")
	flag.StringVar(&cfg.SettingsDir, "settings-dir", cfg.SettingsDir, "каталог badger с настройками")
	flag.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "адрес локального API (host:port)")
	flag.IntVar(&cfg.ImageMaxMB, "image-max-mb", cfg.ImageMaxMB, "максимальный размер загружаемого фото, МБ")
	flag.StringVar(&cfg.WeatherURL, "weather-url", cfg.WeatherURL, "forecast API endpoint")
	flag.StringVar(&cfg.GeocodeURL, "geocode-url", cfg.GeocodeURL, "reverse geocoding API endpoint")
	flag.DurationVar(&cfg.HTTPTimeout, "http-timeout", cfg.HTTPTimeout, "timeout for outbound HTTP calls")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug|info|warn|error")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show version and exit")

	flag.Parse()

	cfg.applyDefaults()
	return cfg
}

// applyDefaults заполняет пустые значения и проверяет адрес.
func (cfg *Config) applyDefaults() {
	if cfg.DataDir == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			cfg.DataDir = filepath.Join(dir, "Wardrobe")
		} else {
			home, _ := os.UserHomeDir()
			cfg.DataDir = filepath.Join(home, ".wardrobe")
		}
	}
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "wardrobe.db")
	}
	if cfg.SettingsDir == "" {
		cfg.SettingsDir = filepath.Join(cfg.DataDir, "settings")
	}
	cfg.BackupDir = filepath.Join(cfg.DataDir, "backups")

	// ListenAddr: только "address:port" (без схемы и пути), иначе значение по умолчанию
	if !hostPortRe.MatchString(cfg.ListenAddr) {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.ImageMaxMB <= 0 {
		cfg.ImageMaxMB = defaultImageMaxMB
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultLogLevel
	}
}

// ImageMaxBytes: лимит размера загружаемого фото в байтах.
func (cfg *Config) ImageMaxBytes() int64 {
	return int64(cfg.ImageMaxMB) << 20
}
