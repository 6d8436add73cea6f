package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"icctv-admin/internal/auth"
	"icctv-admin/internal/client"
	"icctv-admin/internal/logging"
)

const (
	KeyBaseURL      = "base_url"
	KeyTimeout      = "timeout"
	KeyToken        = "icctv_token"
	KeyMetricsPort  = "metrics.port"
	KeyExporterUser = "exporter.username"
	KeyExporterPass = "exporter.password"

	fileName = ".icctv-admin"
)

func setDefaults() {
	viper.SetDefault(KeyBaseURL, client.DefaultBaseURL)
	viper.SetDefault(KeyTimeout, client.DefaultTimeout)
	viper.SetDefault(KeyMetricsPort, "9108")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.console", true)
}

// InitConfig reads in config file and ENV variables if set. A missing
// config file is not an error; the first SaveToken creates it.
func InitConfig(cfgFile string) error {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("find home directory: %w", err)
		}

		// Search config in home directory with name ".icctv-admin" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(fileName)
	}

	// The file holds the access token.
	viper.SetConfigPermissions(0o600)

	// ICCTV_BASE_URL, ICCTV_TIMEOUT, ICCTV_METRICS_PORT, ...
	viper.SetEnvPrefix("ICCTV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv(KeyToken, "ICCTV_TOKEN")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func BaseURL() string { return viper.GetString(KeyBaseURL) }

// Timeout falls back to the client default on unparsable or non-positive values.
func Timeout() time.Duration {
	if d := viper.GetDuration(KeyTimeout); d > 0 {
		return d
	}
	return client.DefaultTimeout
}

func Token() string { return viper.GetString(KeyToken) }

// Tokens reads the persisted token on every call, so the client picks up a
// login or logout made after it was built.
func Tokens() auth.TokenSource { return auth.TokenFunc(Token) }

func MetricsPort() string { return viper.GetString(KeyMetricsPort) }

// ExporterCredentials are used by the exporter to log in again when the
// backend rejects its token.
func ExporterCredentials() (username, password string) {
	return viper.GetString(KeyExporterUser), viper.GetString(KeyExporterPass)
}

func Logging() (logging.Config, error) {
	var cfg logging.Config
	if err := viper.UnmarshalKey("log", &cfg); err != nil {
		return cfg, fmt.Errorf("decode log config: %w", err)
	}
	return cfg, nil
}

// Path is the file SaveToken writes to.
func Path() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return fileName + ".yaml"
	}
	return filepath.Join(home, fileName+".yaml")
}

// SaveToken persists the access token under KeyToken.
func SaveToken(token string) error {
	viper.Set(KeyToken, token)
	return write()
}

// ClearToken removes the persisted access token.
func ClearToken() error {
	viper.Set(KeyToken, "")
	return write()
}

// SaveBaseURL persists the backend address used by later commands.
func SaveBaseURL(baseURL string) error {
	viper.Set(KeyBaseURL, strings.TrimRight(baseURL, "/"))
	return write()
}

func write() error {
	err := viper.WriteConfig()
	if err == nil {
		return nil
	}

	// No file yet: create it at the default location.
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		if err := viper.WriteConfigAs(Path()); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		return nil
	}
	return fmt.Errorf("write config: %w", err)
}
