package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig
	Postgres    DBConfig
	Redis       RedisConfig
	Logger      Logger
	FFmpeg      FFmpegConfig
	Cleanup     CleanupConfig
	Transcriber TranscriberConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	AppVersion string
	Port       string
	Mode       string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	PgDriver string
}

type RedisConfig struct {
	RedisAddr     string
	RedisPassword string
	DB            int
	MinIdleConns  int
	PoolSize      int
	PoolTimeout   int
	JobCacheTTL   int
}

type Logger struct {
	Development       bool
	DisableCaller     bool
	DisableStacktrace bool
	Encoding          string
	Level             string
}

type FFmpegConfig struct {
	Path           string
	UploadsDir     string
	FontsDir       string
	ExtractTimeout time.Duration
	BurnTimeout    time.Duration
}

type CleanupConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
}

type TranscriberConfig struct {
	URL     string
	Timeout time.Duration
}

type WorkerConfig struct {
	MaxCPUUsage float64
}

func LoadConfig(filename string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(filename)
	v.AddConfigPath(".")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFound) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}
	return v, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
