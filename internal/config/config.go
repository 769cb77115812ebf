package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	ErrMissingJWTSigningKey = errors.New("api.jwt_signing_key is required (set JWT_SIGNING_KEY)")
	ErrMissingAvatarBaseURL = errors.New("api.avatar_base_url is required")
	ErrInvalidJWTTTL        = errors.New("api.jwt_ttl must be positive")
	ErrMissingCORSDomains   = errors.New("api.allowed_cors_domains must list at least one origin")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Log      *LogConfig      `mapstructure:"log"`
	Seed     *SeedConfig     `mapstructure:"seed"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	AvatarBaseURL      string        `mapstructure:"avatar_base_url"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
	// URL, when set (DATABASE_URL), takes precedence over the individual fields.
	URL string `mapstructure:"url"`
}

func (c *PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type SeedConfig struct {
	AdminUsername string `mapstructure:"admin_username"`
	AdminPassword string `mapstructure:"admin_password"`
	Roadmap       bool   `mapstructure:"roadmap"`
}

// Load reads the YAML file at path and overlays the environment. Secrets are only read from the
// environment.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range map[string]string{
		"api.jwt_signing_key": "JWT_SIGNING_KEY",
		"api.avatar_base_url": "AVATAR_BASE_URL",
		"api.port":            "PORT",
		"postgres.password":   "POSTGRES_PASSWORD",
		"postgres.url":        "DATABASE_URL",
		"seed.admin_password": "SEED_ADMIN_PASSWORD",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("v.BindEnv(%s) -> %w", key, err)
		}
	}

	conf := &AppConfig{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.jwt_ttl", 7*24*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("log.level", "info")
	v.SetDefault("seed.admin_username", "admin")
}

func (c *AppConfig) Validate() error {
	if c.API == nil || c.API.JWTSigningKey == "" {
		return ErrMissingJWTSigningKey
	}
	if c.API.AvatarBaseURL == "" {
		return ErrMissingAvatarBaseURL
	}
	if c.API.JWTTTL <= 0 {
		return ErrInvalidJWTTTL
	}
	if len(c.API.AllowedCORSDomains) == 0 {
		return ErrMissingCORSDomains
	}

	return nil
}

// OnLogLevelChange watches the config file and calls fn with the new log.level whenever the file
// changes.
func (c *AppConfig) OnLogLevelChange(fn func(level string)) {
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		fn(c.v.GetString("log.level"))
	})
	c.v.WatchConfig()
}
