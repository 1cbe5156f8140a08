package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yosuke-furukawa/json5/encoding/json5"
)

const (
	DirName         = "sapojobs"
	ConfigFileName  = "config.json"
	ProxiesFileName = "proxies.txt"

	EnvPrefix = "SAPOJOBS_"
)

var ErrMissingToken = errors.New("missing API token")

// Config holds run settings. Values come from defaults, then config.json,
// then SAPOJOBS_* environment variables.
type Config struct {
	Partner           string `json:"partner"`
	APIBaseURL        string `json:"api_base_url"`
	FeedURL           string `json:"feed_url"`
	ListingIndexURL   string `json:"listing_index_url"`
	ListingPathPrefix string `json:"listing_path_prefix"`
	ListingSuffix     string `json:"listing_suffix"`
	TokenFile         string `json:"token_file"`
	FeedTokenFile     string `json:"feed_token_file"`
	LookupCache       string `json:"lookup_cache"`
	ApplyEmail        string `json:"apply_email"`
	UTMSource         string `json:"utm_source"`
	Limit             int    `json:"limit"`

	MaxAttempts         int `json:"max_attempts"`
	RetryBaseDelayMS    int `json:"retry_base_delay_ms"`
	RetryMaxDelayMS     int `json:"retry_max_delay_ms"`
	CooldownSeconds     int `json:"cooldown_seconds"`
	SubmitIntervalMS    int `json:"submit_interval_ms"`
	FetchTimeoutSeconds int `json:"fetch_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		Partner:             "sapo",
		APIBaseURL:          "https://qa.services.telecom.pt/SAPOEmprego",
		ListingIndexURL:     "https://www.recruityard.com/find-jobs-all",
		ListingPathPrefix:   "/find-jobs-all/",
		ListingSuffix:       "-pt",
		TokenFile:           "API_ACCESS_KEY",
		FeedTokenFile:       "FEED_ACCESS_KEY",
		LookupCache:         "mapping.json",
		ApplyEmail:          "info@recruityard.com",
		UTMSource:           "SAPO_Emprego",
		MaxAttempts:         3,
		RetryBaseDelayMS:    2000,
		RetryMaxDelayMS:     30000,
		CooldownSeconds:     60,
		SubmitIntervalMS:    1000,
		FetchTimeoutSeconds: 30,
	}
}

func (c Config) RetryBaseDelay() time.Duration {
	return time.Duration(c.RetryBaseDelayMS) * time.Millisecond
}

func (c Config) RetryMaxDelay() time.Duration {
	return time.Duration(c.RetryMaxDelayMS) * time.Millisecond
}

func (c Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownSeconds) * time.Second
}

func (c Config) SubmitInterval() time.Duration {
	return time.Duration(c.SubmitIntervalMS) * time.Millisecond
}

func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func ConfigDir() (string, error) {
	if dir := envString("CONFIG_DIR", ""); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

func ProxiesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ProxiesFileName), nil
}

func Load() (Config, error) {
	cfg := DefaultConfig()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, err
	case len(strings.TrimSpace(string(data))) > 0:
		if err := json5.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Partner = envString("PARTNER", cfg.Partner)
	cfg.APIBaseURL = envString("API_BASE_URL", cfg.APIBaseURL)
	cfg.FeedURL = envString("FEED_URL", cfg.FeedURL)
	cfg.ListingIndexURL = envString("LISTING_INDEX_URL", cfg.ListingIndexURL)
	cfg.TokenFile = envString("TOKEN_FILE", cfg.TokenFile)
	cfg.FeedTokenFile = envString("FEED_TOKEN_FILE", cfg.FeedTokenFile)
	cfg.LookupCache = envString("LOOKUP_CACHE", cfg.LookupCache)
	cfg.ApplyEmail = envString("APPLY_EMAIL", cfg.ApplyEmail)
	cfg.UTMSource = envString("UTM_SOURCE", cfg.UTMSource)
	cfg.Limit = envInt("LIMIT", cfg.Limit)
	cfg.MaxAttempts = envInt("MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.CooldownSeconds = envInt("COOLDOWN_SECONDS", cfg.CooldownSeconds)
	cfg.SubmitIntervalMS = envInt("SUBMIT_INTERVAL_MS", cfg.SubmitIntervalMS)
}

// LoadToken returns the credential for partner: SAPOJOBS_TOKEN (or
// SAPOJOBS_FEED_TOKEN) when set, otherwise the trimmed content of the
// partner's token file.
func LoadToken(cfg Config, partner string) (string, error) {
	envKey, path := "TOKEN", cfg.TokenFile
	if partner == "feed" {
		envKey, path = "FEED_TOKEN", cfg.FeedTokenFile
	}

	if token := envString(envKey, ""); token != "" {
		return token, nil
	}
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: set %s%s", ErrMissingToken, EnvPrefix, envKey)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s not found", ErrMissingToken, path)
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrMissingToken, path)
	}
	return token, nil
}

// Init writes default config.json and proxies.txt if they don't already exist.
func Init() ([]string, error) {
	var created []string

	dir, err := ConfigDir()
	if err != nil {
		return created, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return created, err
	}

	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := writeConfig(configPath, DefaultConfig()); err != nil {
			return created, err
		}
		created = append(created, configPath)
	}

	proxiesPath := filepath.Join(dir, ProxiesFileName)
	if _, err := os.Stat(proxiesPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(proxiesPath, []byte(""), 0o644); err != nil {
			return created, err
		}
		created = append(created, proxiesPath)
	}

	return created, nil
}

func writeConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func LoadProxies(flagValue string) ([]string, error) {
	if strings.TrimSpace(flagValue) != "" {
		return splitCSV(flagValue), nil
	}

	if env := envString("PROXIES", ""); env != "" {
		return splitCSV(env), nil
	}

	path, err := ProxiesPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var proxies []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		proxies = append(proxies, line)
	}
	return proxies, nil
}

func envString(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(EnvPrefix + key)); val != "" {
		return val
	}
	return fallback
}

func envInt(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(EnvPrefix + key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
