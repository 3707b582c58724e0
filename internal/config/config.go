package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Cluster  ClusterConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CacheConfig - настройки кеша кластеров.
// Backend "memory" (по умолчанию) или "redis".
type CacheConfig struct {
	Backend       string
	ClusterTTL    time.Duration
	SweepInterval time.Duration
}

// ClusterConfig - настройки движка кластеризации
type ClusterConfig struct {
	Workers           int
	MaxMembers        int
	ParallelThreshold int
	DefaultTimeout    time.Duration
	MaxTimeout        time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			Backend:       viper.GetString("CACHE_BACKEND"),
			ClusterTTL:    time.Duration(viper.GetInt("CLUSTER_CACHE_TTL")) * time.Second,
			SweepInterval: time.Duration(viper.GetInt("CLUSTER_CACHE_SWEEP_INTERVAL")) * time.Second,
		},
		Cluster: ClusterConfig{
			Workers:           viper.GetInt("CLUSTER_WORKERS"),
			MaxMembers:        viper.GetInt("CLUSTER_MAX_MEMBERS"),
			ParallelThreshold: viper.GetInt("CLUSTER_PARALLEL_THRESHOLD"),
			DefaultTimeout:    time.Duration(viper.GetInt("CLUSTER_DEFAULT_TIMEOUT_MS")) * time.Millisecond,
			MaxTimeout:        time.Duration(viper.GetInt("CLUSTER_MAX_TIMEOUT_MS")) * time.Millisecond,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.ClusterTTL == 0 {
		cfg.Cache.ClusterTTL = 5 * time.Minute
	}
	if cfg.Cache.SweepInterval == 0 {
		cfg.Cache.SweepInterval = time.Minute
	}
	if cfg.Cluster.DefaultTimeout == 0 {
		cfg.Cluster.DefaultTimeout = 3 * time.Second
	}
	if cfg.Cluster.MaxTimeout == 0 {
		cfg.Cluster.MaxTimeout = 10 * time.Second
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
