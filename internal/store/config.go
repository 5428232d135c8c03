package store

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the process-level configuration, built once at startup and
// passed by reference into the runner and scheduler. Credentials are never
// stored here in yaml; they come from the environment (see Creds).
type Config struct {
	Symbol        string `yaml:"symbol"`
	Timezone      string `yaml:"timezone"`
	AlertTimes    string `yaml:"alert_times"` // comma-separated HH:MM list
	RunOnSchedule bool   `yaml:"run_on_schedule"`

	Price struct {
		Provider string `yaml:"provider"` // YAHOO or TWELVEDATA
	} `yaml:"price"`

	News struct {
		Provider     string `yaml:"provider"` // NEWSAPI, RSS or SCRAPE
		MaxHeadlines int    `yaml:"max_headlines"`
	} `yaml:"news"`

	LLM struct {
		Provider    string  `yaml:"provider"` // OPENAI, CLAUDE or NOOP
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float32 `yaml:"temperature"`
		System      string  `yaml:"system"`
	} `yaml:"llm"`

	Notify struct {
		Provider string `yaml:"provider"` // EMAIL or STDOUT
		SMTPHost string `yaml:"smtp_host"`
		SMTPPort int    `yaml:"smtp_port"`
	} `yaml:"notify"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
}

// Creds holds collaborator credentials, read from the environment so they
// never land in a checked-in file.
type Creds struct {
	NewsAPIKey    string
	OpenAIAPIKey  string
	ClaudeAPIKey  string
	TwelveAPIKey  string
	EmailFrom     string
	EmailTo       string
	EmailPassword string
}

// LoadCreds reads collaborator credentials from the environment.
func LoadCreds() Creds {
	return Creds{
		NewsAPIKey:    os.Getenv("NEWS_API_KEY"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		ClaudeAPIKey:  os.Getenv("CLAUDE_API_KEY"),
		TwelveAPIKey:  os.Getenv("TWELVE_API_KEY"),
		EmailFrom:     os.Getenv("EMAIL_FROM"),
		EmailTo:       os.Getenv("EMAIL_TO"),
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
	}
}

func (c *Config) Validate() error {
	switch c.Price.Provider {
	case "YAHOO", "TWELVEDATA":
	default:
		return fmt.Errorf("invalid price.provider '%s': must be 'YAHOO' or 'TWELVEDATA'", c.Price.Provider)
	}
	switch c.News.Provider {
	case "NEWSAPI", "RSS", "SCRAPE":
	default:
		return fmt.Errorf("invalid news.provider '%s': must be 'NEWSAPI', 'RSS' or 'SCRAPE'", c.News.Provider)
	}
	switch c.LLM.Provider {
	case "OPENAI", "CLAUDE", "NOOP":
	default:
		return fmt.Errorf("invalid llm.provider '%s': must be 'OPENAI', 'CLAUDE' or 'NOOP'", c.LLM.Provider)
	}
	switch c.Notify.Provider {
	case "EMAIL", "STDOUT":
	default:
		return fmt.Errorf("invalid notify.provider '%s': must be 'EMAIL' or 'STDOUT'", c.Notify.Provider)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
	}
	return nil
}

// Location resolves the configured timezone. Validate must have passed.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LoadConfig reads and validates the yaml configuration file, applying
// defaults for everything a minimal file leaves out.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	applyDefaults(&c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}

// DefaultConfig returns a configuration with every default applied, used
// when no config file is present.
func DefaultConfig() *Config {
	var c Config
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Symbol == "" {
		c.Symbol = "^GSPC"
	}
	if c.Timezone == "" {
		c.Timezone = "America/New_York"
	}
	if c.Price.Provider == "" {
		c.Price.Provider = "YAHOO"
	}
	if c.News.Provider == "" {
		c.News.Provider = "NEWSAPI"
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "NOOP"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gpt-3.5-turbo"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 400
	}
	if c.Notify.Provider == "" {
		c.Notify.Provider = "STDOUT"
	}
	if c.Notify.SMTPHost == "" {
		c.Notify.SMTPHost = "smtp.gmail.com"
	}
	if c.Notify.SMTPPort == 0 {
		c.Notify.SMTPPort = 465
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
