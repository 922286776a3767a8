package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Parser     ParserConfig     `yaml:"parser"`
	LLM        LLMConfig        `yaml:"llm"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`

	// RateLimitPerMinute caps lookups per client IP; 0 disables limiting.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"60"`
}

// DictionaryConfig holds dictionary API settings.
type DictionaryConfig struct {
	BaseURL string `yaml:"base_url" env:"DICTIONARY_BASE_URL" env-required:"true"`
}

// ParserConfig holds dependency-parser service settings. An empty base URL
// disables the parser path; every language then takes the model path.
type ParserConfig struct {
	BaseURL string `yaml:"base_url" env:"PARSER_BASE_URL"`
	Preload bool   `yaml:"preload"  env:"PARSER_PRELOAD" env-default:"true"`
}

// LLMConfig holds language-model provider settings.
type LLMConfig struct {
	Provider string `yaml:"provider" env:"LLM_PROVIDER" env-default:"openai"`
	Model    string `yaml:"model"    env:"LLM_MODEL"    env-default:"gpt-4o-mini"`
	APIKey   string `yaml:"api_key"  env:"LLM_API_KEY"  env-required:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
