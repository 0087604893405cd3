package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Progress ProgressConfig `mapstructure:"progress"`
	UI       UIConfig       `mapstructure:"ui"`
	Download DownloadConfig `mapstructure:"download"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig locates the guide generation backend.
type ServerConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	UploadPath    string        `mapstructure:"upload_path"`
	ExportPath    string        `mapstructure:"export_path"`
	ExportTXTPath string        `mapstructure:"export_txt_path"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// ProgressConfig drives the cosmetic progress bar.
type ProgressConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Step     int           `mapstructure:"step"`
	Cap      int           `mapstructure:"cap"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// DownloadConfig controls where exports land.
type DownloadConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig holds the diagnostics log settings.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"`
}

// EnvConfigPath names the env var that points at an explicit config file.
const EnvConfigPath = "GUIDEGEN_CONFIG"

func setDefaults(v *viper.Viper) {
	home := os.Getenv("HOME")
	v.SetDefault("server.base_url", "http://127.0.0.1:8002")
	v.SetDefault("server.upload_path", "/upload/")
	v.SetDefault("server.export_path", "/export/")
	v.SetDefault("server.export_txt_path", "/export-txt/")
	v.SetDefault("server.timeout", "10m")
	v.SetDefault("progress.interval", "800ms")
	v.SetDefault("progress.step", 10)
	v.SetDefault("progress.cap", 90)
	v.SetDefault("ui.toast_duration", "3s")
	v.SetDefault("download.dir", ".")
	v.SetDefault("log.path", filepath.Join(home, ".local", "state", "guidegen", "guidegen.log"))
	v.SetDefault("log.level", "info")
}

// DefaultPath is the config file used when neither a path nor GUIDEGEN_CONFIG is given.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "guidegen", "config.toml")
}

// ResolvePath picks the config file: path, else GUIDEGEN_CONFIG, else DefaultPath.
func ResolvePath(path string) string {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		path = DefaultPath()
	}
	return path
}

func newViper() (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	// a .env in the working directory may carry GUIDEGEN_ overrides; real env wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	v.SetEnvPrefix("GUIDEGEN")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v, nil
}

func decode(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads configuration from file and env. Env var overrides use prefix GUIDEGEN_.
// path takes precedence over GUIDEGEN_CONFIG when set. An explicit file must
// exist; a missing default file means defaults.
func Load(path string) (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	return decode(v)
}

// Defaults is the built-in configuration with env overrides applied and no file read.
func Defaults() (Config, error) {
	v, err := newViper()
	if err != nil {
		return Config{}, err
	}
	return decode(v)
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("server.base_url %q: must be an absolute URL", c.Server.BaseURL)
	}
	if c.Progress.Interval <= 0 {
		return fmt.Errorf("progress.interval must be positive, got %s", c.Progress.Interval)
	}
	if c.Progress.Step <= 0 {
		return fmt.Errorf("progress.step must be positive, got %d", c.Progress.Step)
	}
	if c.Progress.Cap < 0 || c.Progress.Cap >= 100 {
		return fmt.Errorf("progress.cap must be in [0,100), got %d", c.Progress.Cap)
	}
	if c.UI.ToastDuration <= 0 {
		return fmt.Errorf("ui.toast_duration must be positive, got %s", c.UI.ToastDuration)
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must not be negative, got %s", c.Server.Timeout)
	}
	return nil
}

// Save writes cfg as TOML to ResolvePath(path), creating the directory if needed.
func Save(path string, cfg Config) error {
	path = ResolvePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("server.base_url", cfg.Server.BaseURL)
	v.Set("server.upload_path", cfg.Server.UploadPath)
	v.Set("server.export_path", cfg.Server.ExportPath)
	v.Set("server.export_txt_path", cfg.Server.ExportTXTPath)
	v.Set("server.timeout", cfg.Server.Timeout.String())
	v.Set("progress.interval", cfg.Progress.Interval.String())
	v.Set("progress.step", cfg.Progress.Step)
	v.Set("progress.cap", cfg.Progress.Cap)
	v.Set("ui.toast_duration", cfg.UI.ToastDuration.String())
	v.Set("download.dir", cfg.Download.Dir)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
