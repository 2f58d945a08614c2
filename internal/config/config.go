package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Google GoogleConfig
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings. ConnectTimeout bounds each
// connection attempt; PingInterval drives the readiness probe loop.
type DBConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Name           string        `mapstructure:"name"`
	SSLMode        string        `mapstructure:"sslmode"`
	MaxOpen        int           `mapstructure:"max_open"`
	MaxIdle        int           `mapstructure:"max_idle"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	PingInterval   time.Duration `mapstructure:"ping_interval"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	TokenExpiry time.Duration `mapstructure:"token_expiry"`
	Issuer      string        `mapstructure:"issuer"`
}

// GoogleConfig holds Google federated sign-in settings. An empty ClientID
// means social login is not configured and the endpoint reports 503.
type GoogleConfig struct {
	ClientID string `mapstructure:"client_id"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the GSTBILL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("GSTBILL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "gstbill")
	v.SetDefault("db.password", "gstbill_secret")
	v.SetDefault("db.name", "gstbill_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.connect_timeout", "10s")
	v.SetDefault("db.ping_interval", "5s")

	// JWT defaults, tokens live for 7 days
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.token_expiry", "168h")
	v.SetDefault("jwt.issuer", "gstbill")

	// Google sign-in (disabled unless a client ID is provided)
	v.SetDefault("google.client_id", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "GSTBILL_SERVER_PORT",
		"server.read_timeout":  "GSTBILL_SERVER_READ_TIMEOUT",
		"server.write_timeout": "GSTBILL_SERVER_WRITE_TIMEOUT",
		"server.environment":   "GSTBILL_SERVER_ENVIRONMENT",
		"db.host":              "GSTBILL_DB_HOST",
		"db.port":              "GSTBILL_DB_PORT",
		"db.user":              "GSTBILL_DB_USER",
		"db.password":          "GSTBILL_DB_PASSWORD",
		"db.name":              "GSTBILL_DB_NAME",
		"db.sslmode":           "GSTBILL_DB_SSLMODE",
		"db.max_open":          "GSTBILL_DB_MAX_OPEN",
		"db.max_idle":          "GSTBILL_DB_MAX_IDLE",
		"db.connect_timeout":   "GSTBILL_DB_CONNECT_TIMEOUT",
		"db.ping_interval":     "GSTBILL_DB_PING_INTERVAL",
		"jwt.secret":           "GSTBILL_JWT_SECRET",
		"jwt.token_expiry":     "GSTBILL_JWT_TOKEN_EXPIRY",
		"jwt.issuer":           "GSTBILL_JWT_ISSUER",
		"google.client_id":     "GSTBILL_GOOGLE_CLIENT_ID",
		"cors.allowed_origins": "GSTBILL_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if GSTBILL_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("GSTBILL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:           v.GetString("db.host"),
		Port:           v.GetInt("db.port"),
		User:           v.GetString("db.user"),
		Password:       v.GetString("db.password"),
		Name:           v.GetString("db.name"),
		SSLMode:        v.GetString("db.sslmode"),
		MaxOpen:        v.GetInt("db.max_open"),
		MaxIdle:        v.GetInt("db.max_idle"),
		ConnectTimeout: v.GetDuration("db.connect_timeout"),
		PingInterval:   v.GetDuration("db.ping_interval"),
	}
	cfg.JWT = JWTConfig{
		Secret:      v.GetString("jwt.secret"),
		TokenExpiry: v.GetDuration("jwt.token_expiry"),
		Issuer:      v.GetString("jwt.issuer"),
	}
	cfg.Google = GoogleConfig{
		ClientID: v.GetString("google.client_id"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
