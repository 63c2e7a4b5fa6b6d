package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"lensoracle/internal/lens"
	"lensoracle/internal/oracle"
)

// EnvPrefix marks environment overrides. Nested keys are separated by a
// double underscore: ORACLE_LENS__USER_AGENT sets lens.user_agent.
const EnvPrefix = "ORACLE_"

type Config struct {
	Log    LogConfig     `koanf:"log"`
	Lens   lens.Config   `koanf:"lens"`
	Oracle oracle.Config `koanf:"oracle"`
	Server ServerConfig  `koanf:"server"`
	Queue  QueueConfig   `koanf:"queue"`
	Redis  RedisConfig   `koanf:"redis"`
}

type LogConfig struct {
	Level       string `koanf:"level"`
	Development bool   `koanf:"development"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type QueueConfig struct {
	Backend     string   `koanf:"backend"`
	Brokers     []string `koanf:"brokers"`
	Topic       string   `koanf:"topic"`
	ResultTopic string   `koanf:"result_topic"`
	GroupID     string   `koanf:"group_id"`
}

type RedisConfig struct {
	Addr        string `koanf:"addr"`
	RequestList string `koanf:"request_list"`
	ResultList  string `koanf:"result_list"`
}

func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info"},
		Lens:   lens.DefaultConfig(),
		Oracle: oracle.DefaultConfig(),
		Server: ServerConfig{Port: ":8080"},
		Queue: QueueConfig{
			Backend:     "kafka",
			Brokers:     []string{"localhost:9092"},
			Topic:       "oracle-requests",
			ResultTopic: "oracle-responses",
			GroupID:     "lens-oracle",
		},
		Redis: RedisConfig{
			Addr:        "localhost:6379",
			RequestList: "oracle:requests",
			ResultList:  "oracle:responses",
		},
	}
}

// Load reads path (skipped when empty), then a .env file if present, then
// ORACLE_* environment variables, on top of Default().
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
