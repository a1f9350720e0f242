package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Server struct {
		Host       string `json:"host"`
		Port       int    `json:"port"`
		JWTSecret  string `json:"jwtSecret"`
		APIKeyHash string `json:"apiKeyHash"`
	} `json:"server"`
	Database struct {
		Driver string `json:"driver"`
		DSN    string `json:"dsn"`
	} `json:"database"`
	Redis struct {
		Addr     string `json:"addr"`
		Password string `json:"password"`
		DB       int    `json:"db"`
	} `json:"redis"`
	LLM struct {
		Provider         string `json:"provider"`
		OpenAIModel      string `json:"openai_model"`
		OpenAIBaseURL    string `json:"openai_base_url"`
		AnthropicModel   string `json:"anthropic_model"`
		AnthropicBaseURL string `json:"anthropic_base_url"`
	} `json:"llm"`
	SMTP struct {
		Host     string `json:"host"`
		Port     int    `json:"port"`
		Username string `json:"username"`
		Password string `json:"password"`
		From     string `json:"from"`
	} `json:"smtp"`
	Research struct {
		TimeoutSeconds int   `json:"timeout_seconds"`
		MaxBodyBytes   int64 `json:"max_body_bytes"`
		CacheTTLHours  int   `json:"cache_ttl_hours"`
	} `json:"research"`
}

var (
	once   sync.Once
	cfg    *Config
	cfgErr error
)

// LoadConfig loads .env, the optional JSON config file and env overrides (singleton).
// An empty path falls back to $COLDREACH_CONFIG, then config.json; only an
// explicitly named file is required to exist.
func LoadConfig(path string) (*Config, error) {
	once.Do(func() {
		_ = godotenv.Load()

		c := defaults()

		explicit := path != ""
		if !explicit {
			path = os.Getenv("COLDREACH_CONFIG")
			explicit = path != ""
		}
		if path == "" {
			path = "config.json"
		}

		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, c); err != nil {
				cfgErr = fmt.Errorf("invalid config format: %w", err)
				return
			}
		case explicit || !os.IsNotExist(err):
			cfgErr = fmt.Errorf("failed to read config file: %w", err)
			return
		}

		applyEnv(c)
		cfg = c
	})
	return cfg, cfgErr
}

// GetConfig returns the loaded config (must call LoadConfig first)
func GetConfig() *Config {
	return cfg
}

// ValidateServer checks the fields serve mode cannot run without.
func (c *Config) ValidateServer() error {
	if c.Server.JWTSecret == "" {
		return errors.New("jwtSecret must be set in config")
	}
	if c.Server.APIKeyHash == "" {
		return errors.New("apiKeyHash must be set in config")
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func defaults() *Config {
	c := &Config{}
	c.Server.Host = "0.0.0.0"
	c.Server.Port = 8080
	c.Database.Driver = "sqlite"
	c.Database.DSN = "coldreach.db"
	c.LLM.Provider = "auto"
	c.LLM.OpenAIModel = "gpt-4o-mini"
	c.LLM.OpenAIBaseURL = "https://api.openai.com/v1"
	c.LLM.AnthropicModel = "claude-3-haiku-20240307"
	c.LLM.AnthropicBaseURL = "https://api.anthropic.com"
	c.SMTP.Port = 587
	c.Research.TimeoutSeconds = 10
	c.Research.MaxBodyBytes = 1 << 20
	c.Research.CacheTTLHours = 24
	return c
}

// applyEnv layers environment overrides on top of file values. Provider API
// keys (OPENAI_API_KEY, ANTHROPIC_API_KEY) stay env-only and are read where
// the clients are built.
func applyEnv(c *Config) {
	c.Server.Host = getEnvString("COLDREACH_HOST", c.Server.Host)
	c.Server.Port = getEnvInt("COLDREACH_PORT", c.Server.Port)
	c.Server.JWTSecret = getEnvString("COLDREACH_JWT_SECRET", c.Server.JWTSecret)
	c.Server.APIKeyHash = getEnvString("COLDREACH_API_KEY_HASH", c.Server.APIKeyHash)
	c.Database.Driver = getEnvString("COLDREACH_DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnvString("COLDREACH_DB_DSN", c.Database.DSN)
	c.Redis.Addr = getEnvString("COLDREACH_REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnvString("COLDREACH_REDIS_PASSWORD", c.Redis.Password)
	c.LLM.Provider = getEnvString("COLDREACH_PROVIDER", c.LLM.Provider)
	c.LLM.OpenAIModel = getEnvString("OPENAI_MODEL", c.LLM.OpenAIModel)
	c.LLM.OpenAIBaseURL = getEnvString("OPENAI_BASE_URL", c.LLM.OpenAIBaseURL)
	c.LLM.AnthropicModel = getEnvString("ANTHROPIC_MODEL", c.LLM.AnthropicModel)
	c.LLM.AnthropicBaseURL = getEnvString("ANTHROPIC_BASE_URL", c.LLM.AnthropicBaseURL)
	c.SMTP.Host = getEnvString("COLDREACH_SMTP_HOST", c.SMTP.Host)
	c.SMTP.Port = getEnvInt("COLDREACH_SMTP_PORT", c.SMTP.Port)
	c.SMTP.Username = getEnvString("COLDREACH_SMTP_USERNAME", c.SMTP.Username)
	c.SMTP.Password = getEnvString("COLDREACH_SMTP_PASSWORD", c.SMTP.Password)
	c.SMTP.From = getEnvString("COLDREACH_SMTP_FROM", c.SMTP.From)
}

func getEnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[Config] ⚠️ invalid value for %s: %q, using %d", key, v, def)
		return def
	}
	return n
}

// ResetConfigForTest resets the singleton state (for testing only)
func ResetConfigForTest() {
	once = sync.Once{}
	cfg = nil
	cfgErr = nil
}
