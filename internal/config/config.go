package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Classifier struct {
		Provider       string  `yaml:"provider"` // "openai" or "gemini"
		APIKey         string  `yaml:"api_key"`
		Model          string  `yaml:"model"`
		BaseURL        string  `yaml:"base_url"`
		Temperature    float64 `yaml:"temperature"`
		TimeoutSeconds int64   `yaml:"timeout_seconds"`
	} `yaml:"classifier"`
	Chatbot struct {
		Enabled        bool    `yaml:"enabled"`
		Provider       string  `yaml:"provider"`
		APIKey         string  `yaml:"api_key"`
		Model          string  `yaml:"model"`
		BaseURL        string  `yaml:"base_url"`
		Temperature    float64 `yaml:"temperature"`
		MaxTokens      int     `yaml:"max_tokens"`
		TimeoutSeconds int64   `yaml:"timeout_seconds"`
	} `yaml:"chatbot"`
	Telegram struct {
		Enabled  bool   `yaml:"enabled"`
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = "openai"
	}
	if c.Classifier.Model == "" {
		c.Classifier.Model = "gpt-4o-mini"
	}
	if c.Classifier.TimeoutSeconds == 0 {
		c.Classifier.TimeoutSeconds = 15
	}
	if c.Chatbot.Provider == "" {
		c.Chatbot.Provider = c.Classifier.Provider
	}
	if c.Chatbot.Model == "" {
		c.Chatbot.Model = c.Classifier.Model
	}
	if c.Chatbot.MaxTokens == 0 {
		c.Chatbot.MaxTokens = 150
	}
	if c.Chatbot.TimeoutSeconds == 0 {
		c.Chatbot.TimeoutSeconds = 30
	}
	if c.Server.Port == "" {
		c.Server.Port = ":8080"
	}
}
