package config

import "strconv"

type HTTPConfig struct {
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port int    `env:"PORT" envDefault:"8080"`
}

type PostgresConfig struct {
	// Either DSN directly, or components to build it if DSN is empty.
	DSN      string `env:"DSN"`
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     int    `env:"PORT" envDefault:"5432"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	DBName   string `env:"DBNAME"`
	SSLMode  string `env:"SSLMODE" envDefault:"disable"`

	MaxOpenConns int `env:"MAX_OPEN_CONNS" envDefault:"5"`
}

func (c PostgresConfig) EffectiveDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "postgres://" + c.User + ":" + c.Password +
		"@" + c.Host + ":" + strconv.Itoa(c.Port) +
		"/" + c.DBName + "?sslmode=" + c.SSLMode
}

type KafkaConfig struct {
	Enabled     bool     `env:"ENABLED" envDefault:"false"`
	Brokers     []string `env:"BROKERS" envDefault:"localhost:9092"`
	ClientID    string   `env:"CLIENT_ID" envDefault:"usersvc"`
	GroupID     string   `env:"GROUP_ID" envDefault:"usersvc"`
	TopicPrefix string   `env:"TOPIC_PREFIX" envDefault:"usersvc."`
}

type ObservabilityConfig struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"usersvc"`
	ServiceEnv  string `env:"SERVICE_ENV" envDefault:"Development"`
	// e.g. "otel-collector:4317"; empty disables the exporters.
	OtelEndpoint string `env:"ENDPOINT"`
}

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"Development"`

	HTTP          HTTPConfig          `envPrefix:"HTTP_"`
	Postgres      PostgresConfig      `envPrefix:"PG_"`
	Kafka         KafkaConfig         `envPrefix:"KAFKA_"`
	Observability ObservabilityConfig `envPrefix:"OTEL_"`
}
