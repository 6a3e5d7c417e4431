package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/dagmal/deal-service/internal/domain"
	"github.com/dagmal/deal-service/pkg/db"
)

type Config struct {
	Server struct {
		Addr         string        `mapstructure:"addr"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
		Timezone     string        `mapstructure:"timezone"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
		SSLMode  string `mapstructure:"sslmode"`
	} `mapstructure:"database"`
	Ranking struct {
		DiscountWeight    float64 `mapstructure:"discount_weight"`
		ClaimWeight       float64 `mapstructure:"claim_weight"`
		AvailabilityBonus float64 `mapstructure:"availability_bonus"`
		PopularCount      int     `mapstructure:"popular_count"`
	} `mapstructure:"ranking"`
	Jobs struct {
		PopularRefresh string `mapstructure:"popular_refresh"`
	} `mapstructure:"jobs"`
	Cache struct {
		PopularTTL time.Duration `mapstructure:"popular_ttl"`
	} `mapstructure:"cache"`
}

var keys = []string{
	"server.addr",
	"server.read_timeout",
	"server.write_timeout",
	"server.timezone",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.name",
	"database.sslmode",
	"ranking.discount_weight",
	"ranking.claim_weight",
	"ranking.availability_bonus",
	"ranking.popular_count",
	"jobs.popular_refresh",
	"cache.popular_ttl",
}

// Load reads config.yaml (if any) and DAGMAL_* environment variables.
// A .env file in the working directory is loaded first when present.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	v := viper.New()
	v.SetEnvPrefix("DAGMAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.timezone", "Europe/Oslo")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "dagmal")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("ranking.discount_weight", domain.DiscountWeight)
	v.SetDefault("ranking.claim_weight", domain.ClaimWeight)
	v.SetDefault("ranking.availability_bonus", domain.AvailabilityBonus)
	v.SetDefault("ranking.popular_count", domain.DefaultPopularCount)
	v.SetDefault("jobs.popular_refresh", "@every 1m")
	v.SetDefault("cache.popular_ttl", 2*time.Minute)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("config.yaml not found, using environment only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves server.timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("server.timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}

// Weights returns the popularity weights from the ranking section.
func (c *Config) Weights() domain.Weights {
	return domain.Weights{
		Discount:          c.Ranking.DiscountWeight,
		Claims:            c.Ranking.ClaimWeight,
		AvailabilityBonus: c.Ranking.AvailabilityBonus,
	}
}

func (c *Config) Postgres() db.PostgresConfig {
	return db.PostgresConfig{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		DBName:   c.Database.Name,
		SSLMode:  c.Database.SSLMode,
	}
}
