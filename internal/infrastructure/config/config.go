package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. FAKENEWS_SERVER_PORT
const EnvPrefix = "FAKENEWS"

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Log         LogConfig         `mapstructure:"log"`
	Classifier  ClassifierConfig  `mapstructure:"classifier"`
	Explainer   ExplainerConfig   `mapstructure:"explainer"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Persistence PersistenceConfig `mapstructure:"persistence"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// DatabaseConfig holds PostgreSQL settings. URL takes precedence over the discrete fields.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis settings
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Classifier backends
const (
	ClassifierHuggingFace = "huggingface"
	ClassifierLLM         = "llm"
)

// ClassifierConfig selects and configures the classification upstream
type ClassifierConfig struct {
	Backend string        `mapstructure:"backend"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Explainer providers
const (
	ExplainerGroq   = "groq"
	ExplainerGemini = "gemini"
)

// ExplainerConfig selects and configures the explanation upstream
type ExplainerConfig struct {
	Provider    string        `mapstructure:"provider"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	APIKey      string        `mapstructure:"api_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Temperature float32       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
}

// Auth modes
const (
	AuthModeJWT    = "jwt"
	AuthModeGoTrue = "gotrue"
)

// AuthConfig configures bearer token resolution
type AuthConfig struct {
	Mode            string        `mapstructure:"mode"`
	JWTSecret       string        `mapstructure:"jwt_secret"`
	SupabaseURL     string        `mapstructure:"supabase_url"`
	SupabaseAnonKey string        `mapstructure:"supabase_anon_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
}

// PersistenceConfig bounds database writes
type PersistenceConfig struct {
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Load reads configuration from defaults, an optional config file and the environment
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path searches the
// default locations and tolerates a missing file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindWellKnownEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/fakenews")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.normalize(v)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks option values that have a closed set. Missing API keys are not
// an error here; they surface per request as configuration errors.
func (c *Config) Validate() error {
	switch c.Classifier.Backend {
	case ClassifierHuggingFace, ClassifierLLM:
	default:
		return fmt.Errorf("invalid classifier.backend %q", c.Classifier.Backend)
	}
	switch c.Explainer.Provider {
	case ExplainerGroq, ExplainerGemini:
	default:
		return fmt.Errorf("invalid explainer.provider %q", c.Explainer.Provider)
	}
	switch c.Auth.Mode {
	case AuthModeJWT, AuthModeGoTrue:
	default:
		return fmt.Errorf("invalid auth.mode %q", c.Auth.Mode)
	}
	return nil
}

// DSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "fakenews")
	v.SetDefault("database.password", "fakenews")
	v.SetDefault("database.dbname", "fakenews")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("classifier.backend", ClassifierHuggingFace)
	v.SetDefault("classifier.base_url", "")
	v.SetDefault("classifier.model", "")
	v.SetDefault("classifier.api_key", "")
	v.SetDefault("classifier.timeout", 30*time.Second)

	v.SetDefault("explainer.provider", ExplainerGroq)
	v.SetDefault("explainer.base_url", "")
	v.SetDefault("explainer.model", "")
	v.SetDefault("explainer.api_key", "")
	v.SetDefault("explainer.timeout", 30*time.Second)
	v.SetDefault("explainer.temperature", 0.7)
	v.SetDefault("explainer.max_tokens", 200)

	v.SetDefault("auth.mode", AuthModeJWT)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.supabase_url", "")
	v.SetDefault("auth.supabase_anon_key", "")
	v.SetDefault("auth.timeout", 10*time.Second)
	v.SetDefault("auth.cache_ttl", time.Minute)

	v.SetDefault("persistence.write_timeout", 10*time.Second)
}

// upstream holds what an unset base_url, model or api_key falls back to for one
// classifier backend or explainer provider.
type upstream struct {
	baseURL string
	model   string
	keyName string
}

// Upstream endpoints and models used when the config leaves them empty
const (
	HuggingFaceBaseURL = "https://api-inference.huggingface.co"
	HuggingFaceModel   = "hamzab/roberta-fake-news-classification"
	GroqBaseURL        = "https://api.groq.com/openai/v1"
	GroqModel          = "llama-3.3-70b-versatile"
	GeminiModel        = "gemini-2.0-flash"
)

var (
	classifierUpstreams = map[string]upstream{
		ClassifierHuggingFace: {baseURL: HuggingFaceBaseURL, model: HuggingFaceModel, keyName: "HUGGING_FACE_API_KEY"},
		ClassifierLLM:         {baseURL: GroqBaseURL, model: GroqModel, keyName: "GROQ_API_KEY"},
	}
	explainerUpstreams = map[string]upstream{
		ExplainerGroq:   {baseURL: GroqBaseURL, model: GroqModel, keyName: "GROQ_API_KEY"},
		ExplainerGemini: {model: GeminiModel, keyName: "GEMINI_API_KEY"},
	}
)

// vendorKeys maps each well-known vendor variable to the viper key it is bound to.
var vendorKeys = map[string]string{
	"HUGGING_FACE_API_KEY": "vendor_keys.hugging_face",
	"GROQ_API_KEY":         "vendor_keys.groq",
	"GEMINI_API_KEY":       "vendor_keys.gemini",
}

// normalize fills base_url, model and api_key from the selected backend and
// provider. Values set explicitly in the file or prefixed env are kept.
func (c *Config) normalize(v *viper.Viper) {
	if u, ok := classifierUpstreams[c.Classifier.Backend]; ok {
		u.apply(v, &c.Classifier.BaseURL, &c.Classifier.Model, &c.Classifier.APIKey)
	}
	if u, ok := explainerUpstreams[c.Explainer.Provider]; ok {
		u.apply(v, &c.Explainer.BaseURL, &c.Explainer.Model, &c.Explainer.APIKey)
	}
}

func (u upstream) apply(v *viper.Viper, baseURL, model, apiKey *string) {
	if *baseURL == "" {
		*baseURL = u.baseURL
	}
	if *model == "" {
		*model = u.model
	}
	if *apiKey == "" {
		*apiKey = v.GetString(vendorKeys[u.keyName])
	}
}

// APIKeyName is the well-known variable the classifier key falls back to
func (c *ClassifierConfig) APIKeyName() string {
	return classifierUpstreams[c.Backend].keyName
}

// APIKeyName is the well-known variable the explainer key falls back to
func (c *ExplainerConfig) APIKeyName() string {
	return explainerUpstreams[c.Provider].keyName
}

// bindWellKnownEnv lets deployments keep the variable names their secrets are
// already stored under. Prefixed variables still win because viper checks the
// bound names in order. Vendor API keys are bound on their own and picked per
// backend in normalize, so a Groq key never reaches Gemini.
func bindWellKnownEnv(v *viper.Viper) error {
	for env, key := range vendorKeys {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	bindings := map[string][]string{
		"auth.supabase_url":      {EnvPrefix + "_AUTH_SUPABASE_URL", "SUPABASE_URL"},
		"auth.supabase_anon_key": {EnvPrefix + "_AUTH_SUPABASE_ANON_KEY", "SUPABASE_ANON_KEY"},
		"auth.jwt_secret":        {EnvPrefix + "_AUTH_JWT_SECRET", "SUPABASE_JWT_SECRET"},
		"database.url":           {EnvPrefix + "_DATABASE_URL", "DATABASE_URL"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}
