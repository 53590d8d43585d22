package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config/config.toml"

type LLMConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
	// Completions is the number of independent answers requested per call.
	Completions int `toml:"completions"`
}

type SearchConfig struct {
	Provider      string   `toml:"provider"`
	APIKey        string   `toml:"api_key"`
	URL           string   `toml:"url"`
	MaxResults    int      `toml:"max_results"`
	PreviewLength int      `toml:"preview_length"`
	Timeout       Duration `toml:"timeout"`
}

type CodesConfig struct {
	RemapPath        string `toml:"remap_path"`
	DescriptionsPath string `toml:"descriptions_path"`
}

type ServerConfig struct {
	Port string `toml:"port"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	LLM    LLMConfig    `toml:"llm"`
	Search SearchConfig `toml:"search"`
	Codes  CodesConfig  `toml:"codes"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default mirrors the settings the detector was tuned with.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o",
			MaxTokens:   300,
			Temperature: 0.001,
			Completions: 3,
		},
		Search: SearchConfig{
			Provider:      "serper",
			URL:           "https://google.serper.dev/search",
			MaxResults:    3,
			PreviewLength: 200,
			Timeout:       Duration{30 * time.Second},
		},
		Codes: CodesConfig{
			RemapPath:        "data/naics_17to22.json",
			DescriptionsPath: "data/naics_22.json",
		},
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// Load reads a TOML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// FromEnvironment loads path (or CONFIG_PATH, or DefaultPath), tolerating a
// missing file, then applies environment overrides and validates.
func FromEnvironment(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg, err := Load(path)
	if err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with non-empty environment variables.
// Later names in each list win.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, names ...string) {
		for _, n := range names {
			if v := getenv(n); v != "" {
				*dst = v
			}
		}
	}

	set(&c.LLM.Provider, "LLM_PROVIDER")
	set(&c.LLM.Model, "LLM_MODEL")
	// OPENAI_* only configure the OpenAI-compatible providers.
	if usesOpenAIEnv(c.LLM.Provider) {
		set(&c.LLM.APIKey, "OPENAI_API_KEY")
		set(&c.LLM.BaseURL, "OPENAI_API_URL")
	}
	set(&c.LLM.APIKey, "LLM_API_KEY")
	set(&c.LLM.BaseURL, "LLM_BASE_URL")
	set(&c.Search.Provider, "SEARCH_PROVIDER")
	set(&c.Search.APIKey, "SERPER_API_KEY")
	set(&c.Search.URL, "SERPER_API_URL")
	set(&c.Codes.RemapPath, "NAICS_REMAP_PATH")
	set(&c.Codes.DescriptionsPath, "NAICS_DESCRIPTIONS_PATH")
	set(&c.Server.Port, "PORT")
	set(&c.Log.Level, "LOG_LEVEL")

	if v := getenv("LLM_COMPLETIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.LLM.Completions = n
		}
	}

	// The chat completions URL of the old deployment included the route.
	c.LLM.BaseURL = strings.TrimSuffix(c.LLM.BaseURL, "/chat/completions")
}

func usesOpenAIEnv(provider string) bool {
	switch strings.ToLower(provider) {
	case "openai", "ollama":
		return true
	}
	return false
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "gemini", "claude", "ollama":
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	switch strings.ToLower(c.Search.Provider) {
	case "serper", "duckduckgo", "none":
	default:
		return fmt.Errorf("unsupported search provider: %q", c.Search.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm model is required")
	}
	if c.LLM.Completions < 1 {
		return fmt.Errorf("llm completions must be positive, got %d", c.LLM.Completions)
	}
	if c.LLM.MaxTokens < 1 {
		return fmt.Errorf("llm max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	if c.Search.MaxResults < 1 {
		return fmt.Errorf("search max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Codes.RemapPath == "" || c.Codes.DescriptionsPath == "" {
		return errors.New("codes remap_path and descriptions_path are required")
	}
	return nil
}
