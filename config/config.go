package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Workshop  WorkshopConfig  `yaml:"workshop"`
	Web       WebConfig       `yaml:"web"`
	Redis     RedisConfig     `yaml:"redis"`
	Sync      SyncConfig      `yaml:"sync"`
	Database  DatabaseConfig  `yaml:"database"`
	Messaging MessagingConfig `yaml:"messaging"`
	Auth      AuthConfig      `yaml:"auth"`
}

type WorkshopConfig struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	// SeedOnEmpty writes the default catalog through the sync gateway
	// when no remote document exists yet.
	SeedOnEmpty bool `yaml:"seed_on_empty"`
}

type WebConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SyncConfig struct {
	// Backend selects the sync gateway: "redis" or "memory".
	Backend string `yaml:"backend"`
	// Key is the redis key holding the whole workshop document.
	Key string `yaml:"key"`
	// Channel carries change notifications between clients.
	Channel string `yaml:"channel"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite" or "postgres"
	// SnapshotInterval is how often the full document is archived.
	SnapshotInterval Duration       `yaml:"snapshot_interval"`
	SQLite           SQLiteConfig   `yaml:"sqlite"`
	Postgres         PostgresConfig `yaml:"postgres"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type MessagingConfig struct {
	// Backend selects the broadcast transport: "mqtt", "kafka" or "none".
	Backend string      `yaml:"backend"`
	Topic   string      `yaml:"topic"`
	Timeout Duration    `yaml:"timeout"`
	MQTT    MQTTConfig  `yaml:"mqtt"`
	Kafka   KafkaConfig `yaml:"kafka"`
}

// Duration parses "5s" style values from YAML.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type MQTTConfig struct {
	BrokerURL string `yaml:"broker_url"`
	ClientID  string `yaml:"client_id"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type AuthConfig struct {
	// SessionSecret signs the session cookies. Required.
	SessionSecret string     `yaml:"session_secret"`
	Operators     []Operator `yaml:"operators"`
}

type Operator struct {
	Username     string `yaml:"username"`
	DisplayName  string `yaml:"display_name"`
	PasswordHash string `yaml:"password_hash"` // bcrypt, see cmd/cribpass
	Admin        bool   `yaml:"admin"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Workshop: WorkshopConfig{ID: "crib-1", Name: "Tool Crib", SeedOnEmpty: true},
		Web:      WebConfig{Host: "0.0.0.0", Port: 8080},
		Redis:    RedisConfig{Address: "localhost:6379"},
		Sync:     SyncConfig{Backend: "redis", Key: "toolcrib:document", Channel: "toolcrib:changes"},
		Database: DatabaseConfig{
			Driver:           "sqlite",
			SnapshotInterval: Duration(15 * time.Minute),
			SQLite:           SQLiteConfig{Path: "toolcrib.db"},
			Postgres: PostgresConfig{
				Host: "localhost", Port: 5432, Database: "toolcrib",
				User: "toolcrib", SSLMode: "disable",
			},
		},
		Messaging: MessagingConfig{
			Backend: "none",
			Topic:   "toolcrib/events",
			Timeout: Duration(5 * time.Second),
			MQTT:    MQTTConfig{BrokerURL: "tcp://localhost:1883", ClientID: "toolcrib"},
			Kafka:   KafkaConfig{Brokers: []string{"localhost:9092"}},
		},
	}
}

func (c *Config) validate() error {
	switch c.Sync.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("unsupported sync backend: %s", c.Sync.Backend)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	switch c.Messaging.Backend {
	case "mqtt", "kafka", "none":
	default:
		return fmt.Errorf("unsupported messaging backend: %s", c.Messaging.Backend)
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("auth.session_secret is required")
	}
	return nil
}
