package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Server struct {
		HTTPPort     string        `mapstructure:"HTTPPort"`
		Timeout      time.Duration `mapstructure:"HTTPTimeout"`
		ReadTimeout  time.Duration `mapstructure:"readTimeout"`
		WriteTimeout time.Duration `mapstructure:"writeTimeout"`
		IdleTimeout  time.Duration `mapstructure:"idleTimeout"`

		// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP.
		// Enable only behind a proxy that overwrites those headers.
		TrustProxyHeaders bool `mapstructure:"trustProxyHeaders"`
	} `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Itinerary ItineraryConfig `mapstructure:"itinerary"`
	CORS      struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	Swagger struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"swagger"`
}

// LLMConfig selects and configures the completion backend.
type LLMConfig struct {
	Provider        string `mapstructure:"provider"` // gemini | openai
	Model           string `mapstructure:"model"`
	APIKey          string `mapstructure:"apiKey"`
	BaseURL         string `mapstructure:"baseURL"`
	MaxOutputTokens int    `mapstructure:"maxOutputTokens"`
}

type ItineraryConfig struct {
	CacheTTL             time.Duration `mapstructure:"cacheTTL"`
	CacheCleanupInterval time.Duration `mapstructure:"cacheCleanupInterval"`
	RateLimit            struct {
		Requests int           `mapstructure:"requests"`
		Window   time.Duration `mapstructure:"window"`
	} `mapstructure:"rateLimit"`
	Pricing PricingConfig `mapstructure:"pricing"`
}

// PricingConfig is the tunable price heuristics table rendered into the prompt.
type PricingConfig struct {
	Currency            string         `mapstructure:"currency"`
	TargetSpendRatio    float64        `mapstructure:"targetSpendRatio"`
	MinActivitiesPerDay int            `mapstructure:"minActivitiesPerDay"`
	PriceCeilings       []PriceCeiling `mapstructure:"priceCeilings"`
	SurplusPriorities   []string       `mapstructure:"surplusPriorities"`
}

type PriceCeiling struct {
	Category string  `mapstructure:"category"`
	MaxPrice float64 `mapstructure:"maxPrice"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/usr/local/bin")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	// Secrets and deployment knobs come from the environment
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("mode", "APP_ENV")
	_ = v.BindEnv("llm.apiKey", "LLM_API_KEY", "OPENAI_API_KEY", "GOOGLE_GEMINI_API_KEY")
	_ = v.BindEnv("llm.provider", "LLM_PROVIDER")
	_ = v.BindEnv("llm.model", "LLM_MODEL")
	_ = v.BindEnv("llm.baseURL", "LLM_BASE_URL")
	_ = v.BindEnv("server.HTTPPort", "PORT")
	_ = v.BindEnv("server.trustProxyHeaders", "TRUST_PROXY_HEADERS")

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Mode == "" || strings.EqualFold(c.Mode, "development")
}
