// Package config loads the service configuration from an optional YAML file
// and CARDGEN_* environment variables.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Render RenderConfig `mapstructure:"render"`
	Genai  GenaiConfig  `mapstructure:"genai"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	BaseURL      string        `mapstructure:"base_url"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb"`
}

type RenderConfig struct {
	Title string `mapstructure:"title"`
}

type GenaiConfig struct {
	Provider   string        `mapstructure:"provider"` // gemini or local
	APIKey     string        `mapstructure:"api_key"`
	Endpoint   string        `mapstructure:"endpoint"`
	ImageModel string        `mapstructure:"image_model"`
	TextModel  string        `mapstructure:"text_model"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RedisConfig selects the card store. An empty Addr keeps cards in memory.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

const envPrefix = "CARDGEN"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("render.title", "¡FELIZ CUMPLEAÑOS!")

	v.SetDefault("genai.provider", "local")
	v.SetDefault("genai.api_key", "")
	v.SetDefault("genai.endpoint", "https://generativelanguage.googleapis.com/")
	v.SetDefault("genai.image_model", "imagen-4.0-generate-001")
	v.SetDefault("genai.text_model", "gemini-2.5-flash")
	v.SetDefault("genai.timeout", 90*time.Second)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("log.level", "info")
}

// LoadConfig reads config.yaml from the given directories, if present, on
// top of the defaults. Environment variables override both, e.g.
// CARDGEN_GENAI_API_KEY for genai.api_key.
func LoadConfig(paths ...string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(paths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Genai.Provider != "gemini" && c.Genai.Provider != "local" {
		return nil, errors.New("genai.provider must be gemini or local")
	}
	if c.Server.MaxUploadMB <= 0 {
		return nil, errors.New("server.max_upload_mb must be positive")
	}
	return &c, nil
}
