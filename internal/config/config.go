package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageConfig struct {
	// Driver selects the persistence backend: "file" or "postgres".
	Driver       string
	DataDir      string
	SnapshotDir  string
	SnapshotSpec string
}

type PostgresConfig struct {
	DSN             string
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

// URL returns the connection string, assembling one from the discrete
// fields when no DSN is set.
func (c PostgresConfig) URL() string {
	if c.DSN != "" {
		return c.DSN
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/" + c.Database,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	// TokenSecret must be set explicitly; a per-process random secret would
	// silently invalidate every outstanding token on restart.
	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration
}

type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Storage          StorageConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Security         SecurityConfig
	Bootstrap        BootstrapConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("BARANGAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	if c.Security.TokenSecret == "" {
		return errors.New("security.tokensecret is required")
	}
	switch c.Storage.Driver {
	case "file", "postgres":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.datadir", "./data")
	v.SetDefault("storage.snapshotdir", "./data/backups")
	v.SetDefault("storage.snapshotspec", "0 0 3 * * *") // daily, 03:00

	// Empty defaults register optional keys so AutomaticEnv can see them.
	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.host", "127.0.0.1")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.database", "")
	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.tokensecret", "")
	v.SetDefault("security.tokenissuer", "barangayhub")
	v.SetDefault("security.tokenttl", "12h")

	v.SetDefault("bootstrap.adminusername", "admin")
	v.SetDefault("bootstrap.adminpassword", "admin123")

	v.SetDefault("allowcorsorigins", "")
}
