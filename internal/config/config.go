// Package config provides types for handling configuration parameters.
package config

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config handles server-related constants and parameters.
type Config struct {
	ServerAddress   string   `env:"SERVER_ADDRESS" env-default:":8080"`
	GRPCAddress     string   `env:"GRPC_ADDRESS" env-default:":3200"`
	BaseURL         string   `env:"BASE_URL" env-default:"http://localhost:8080"`
	FileStoragePath string   `env:"FILE_STORAGE_PATH"`
	DatabaseDSN     string   `env:"DATABASE_DSN"`
	UserKey         string   `env:"USER_KEY" env-default:"jds__63h3_7ds"`
	AuthKey         string   `env:"AUTH_KEY" env-default:"user"`
	TrustedSubnet   string   `env:"TRUSTED_SUBNET"`
	TrustProxy      bool     `env:"TRUST_PROXY_HEADERS" env-default:"false"`
	OpenAIKey       string   `env:"OPENAI_API_KEY"`
	OpenAIModel     string   `env:"OPENAI_MODEL" env-default:"gpt-4"`
	OpenAIBaseURL   string   `env:"OPENAI_BASE_URL"`
	GeminiKey       string   `env:"GEMINI_API_KEY"`
	GeminiModel     string   `env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
	UseGeminiAlways bool     `env:"USE_GEMINI_ALWAYS" env-default:"false"`
	Temperature     float64  `env:"LLM_TEMPERATURE" env-default:"0.7"`
	Attempts        uint     `env:"LLM_ATTEMPTS" env-default:"2"`
	RateLimit       float64  `env:"LLM_RATE" env-default:"5"`
	ReviewCacheSize int      `env:"REVIEW_CACHE_SIZE" env-default:"128"`
	OCRLanguages    []string `env:"OCR_LANGUAGES" env-separator:"," env-default:"eng,kor"`
	MaxUploadBytes  int64    `env:"MAX_UPLOAD_BYTES" env-default:"33554432"`
	LogLevel        string   `env:"LOG_LEVEL" env-default:"info"`
	EnvFile         string   `env:"ENV_FILE" env-default:".env"`
}

// NewDefaultConfiguration sets up a total configuration.
func NewDefaultConfiguration() *Config {
	return &Config{}
}

// Parse reads the optional .env file, the environment and command line arguments, in that order.
func (c *Config) Parse() error {
	return c.parse(os.Args[1:])
}

func (c *Config) parse(args []string) error {
	// a dedicated flag set avoids "flag redefined" panics on repeated parsing in tests
	flags := flag.NewFlagSet("studyhelper", flag.ContinueOnError)
	a := flags.String("a", "", "Server address")
	g := flags.String("g", "", "GRPC server address")
	b := flags.String("b", "", "Base url")
	f := flags.String("f", "", "File storage path")
	d := flags.String("d", "", "Database DSN")
	t := flags.String("t", "", "Trusted subnet in CIDR notation")
	e := flags.String("e", "", "Path to .env file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	envFile := *e
	if envFile == "" {
		envFile = os.Getenv("ENV_FILE")
	}
	if err := c.assignValues(envFile); err != nil {
		return err
	}
	flags.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "a":
			c.ServerAddress = *a
		case "g":
			c.GRPCAddress = *g
		case "b":
			c.BaseURL = *b
		case "f":
			c.FileStoragePath = *f
		case "d":
			c.DatabaseDSN = *d
		case "t":
			c.TrustedSubnet = *t
		case "e":
			c.EnvFile = *e
		}
	})
	return nil
}

// assignValues fills the configuration from the environment, using the .env file only for
// variables the environment does not set.
func (c *Config) assignValues(envFile string) error {
	if envFile == "" {
		envFile = ".env"
	}
	_, err := os.Stat(envFile)
	switch {
	case err == nil:
		if err := godotenv.Load(envFile); err != nil {
			return err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	return cleanenv.ReadEnv(c)
}
