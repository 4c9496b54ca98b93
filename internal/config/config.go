package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownBackend              = errors.New("unknown storage backend")
)

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`           // current application environment (local, dev, production etc)
	TelegramAPIToken string   `mapstructure:"-"`             // Telegram API token loaded from environment
	SyllabusPath     string   `mapstructure:"syllabus_path"` // optional YAML file with subjects and topics
	Storage          Storage  `mapstructure:"storage"`
	DB               DB       `mapstructure:"database"` // postgres configuration section
	SQLite           SQLite   `mapstructure:"sqlite"`
	DynamoDB         DynamoDB `mapstructure:"dynamodb"`
	HTTP             HTTP     `mapstructure:"http"`
	Selector         Selector `mapstructure:"selector"`
	Backup           Backup   `mapstructure:"backup"`
}

// Storage selects where questions are kept.
type Storage struct {
	Backend  string `mapstructure:"backend"`   // memory, json, postgres, sqlite or dynamodb
	JSONPath string `mapstructure:"json_path"` // file used by the json backend
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

type SQLite struct {
	DSN string `mapstructure:"dsn"`
}

type DynamoDB struct {
	Table    string `mapstructure:"table"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // set for DynamoDB Local
}

// HTTP configures the REST server.
type HTTP struct {
	Addr         string        `mapstructure:"addr"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type Selector struct {
	Seed         int64 `mapstructure:"seed"` // 0 seeds from the clock
	DefaultCount int   `mapstructure:"default_count"`
}

// Backup configures periodic JSON snapshots. An empty schedule disables them.
type Backup struct {
	Schedule string `mapstructure:"schedule"`
	Dir      string `mapstructure:"dir"`
}

// Option adjusts what Load requires.
type Option func(*options)

type options struct {
	requireTelegram bool
}

// WithTelegram makes TELEGRAM_API_TOKEN mandatory.
func WithTelegram() Option {
	return func(o *options) { o.requireTelegram = true }
}

// Load reads configuration from config files and environment variables.
func Load(opts ...Option) (*Config, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// A missing .env file is fine; the environment may already be populated.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("storage.backend", "STORAGE_BACKEND")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.Validate(o.requireTelegram); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that the selected backend is known and that the secrets it
// needs are present.
func (c *Config) Validate(requireTelegram bool) error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))

	switch c.Storage.Backend {
	case BackendMemory, BackendJSON, BackendSQLite:
	case BackendPostgres:
		if c.DB.URL == "" {
			return fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	case BackendDynamoDB:
		if c.DynamoDB.Table == "" {
			return fmt.Errorf("%w: DYNAMODB_TABLE", ErrMissingEnvironmentVariables)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.Storage.Backend)
	}

	if requireTelegram && c.TelegramAPIToken == "" {
		return fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	if c.Selector.DefaultCount <= 0 {
		c.Selector.DefaultCount = 10
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("syllabus_path", "")
	v.SetDefault("storage.backend", BackendJSON)
	v.SetDefault("storage.json_path", "data/mcqs.json")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("sqlite.dsn", "")
	v.SetDefault("dynamodb.table", "mcqs")
	v.SetDefault("dynamodb.region", "")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.read_timeout", "10s")
	v.SetDefault("http.write_timeout", "30s")
	v.SetDefault("selector.seed", 0)
	v.SetDefault("selector.default_count", 10)
	v.SetDefault("backup.schedule", "")
	v.SetDefault("backup.dir", "backups")
}
