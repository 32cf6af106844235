package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Addr string `mapstructure:"addr"`

	// AuthSecret gates gateway-wrapped requests. Its digest is computed
	// once at startup; the raw value is never logged.
	AuthSecret string `mapstructure:"auth_secret"`

	// Provider selects the marshaller: sendgrid or socketlabs.
	Provider string `mapstructure:"provider"`

	Queue QueueConfig `mapstructure:"queue"`
}

type QueueConfig struct {
	// Backend selects the queue transport: sqs or redis.
	Backend string `mapstructure:"backend"`

	// Suffix is appended to every queue name, separating environments
	// sharing one queue service.
	Suffix string `mapstructure:"suffix"`

	SQS   SQSConfig   `mapstructure:"sqs"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQSConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func LoadFromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix("MAILRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("queue.backend", "sqs")
	v.SetDefault("queue.redis.addr", "")
	v.SetDefault("queue.redis.db", 0)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/mailrelay/")

	_ = v.ReadInConfig() // ignore if not found

	// Explicit bindings for nested keys so env vars map reliably.
	_ = v.BindEnv("auth_secret", "MAILRELAY_AUTH_SECRET")
	_ = v.BindEnv("provider", "MAILRELAY_PROVIDER")
	_ = v.BindEnv("queue.backend", "MAILRELAY_QUEUE_BACKEND")
	_ = v.BindEnv("queue.suffix", "MAILRELAY_QUEUE_SUFFIX")
	_ = v.BindEnv("queue.sqs.access_key", "MAILRELAY_QUEUE_SQS_ACCESS_KEY")
	_ = v.BindEnv("queue.sqs.secret_key", "MAILRELAY_QUEUE_SQS_SECRET_KEY")
	_ = v.BindEnv("queue.sqs.region", "MAILRELAY_QUEUE_SQS_REGION")
	_ = v.BindEnv("queue.sqs.endpoint", "MAILRELAY_QUEUE_SQS_ENDPOINT")
	_ = v.BindEnv("queue.redis.addr", "MAILRELAY_QUEUE_REDIS_ADDR")
	_ = v.BindEnv("queue.redis.password", "MAILRELAY_QUEUE_REDIS_PASSWORD")
	_ = v.BindEnv("queue.redis.db", "MAILRELAY_QUEUE_REDIS_DB")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}
	}
	return cfg
}

// Validate collects every configuration problem into one error. The process
// must refuse to start on any of them rather than fail requests later.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "MAILRELAY_ADDR must not be empty")
	}
	if strings.TrimSpace(c.AuthSecret) == "" {
		problems = append(problems, "MAILRELAY_AUTH_SECRET is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "sendgrid", "socketlabs":
	default:
		problems = append(problems, "MAILRELAY_PROVIDER must be one of: sendgrid, socketlabs")
	}
	if strings.TrimSpace(c.Queue.Suffix) == "" {
		problems = append(problems, "MAILRELAY_QUEUE_SUFFIX is required")
	}
	switch strings.ToLower(strings.TrimSpace(c.Queue.Backend)) {
	case "sqs":
		if strings.TrimSpace(c.Queue.SQS.AccessKey) == "" ||
			strings.TrimSpace(c.Queue.SQS.SecretKey) == "" ||
			strings.TrimSpace(c.Queue.SQS.Region) == "" {
			problems = append(problems, "MAILRELAY_QUEUE_SQS_ACCESS_KEY, MAILRELAY_QUEUE_SQS_SECRET_KEY and MAILRELAY_QUEUE_SQS_REGION are required when MAILRELAY_QUEUE_BACKEND=sqs")
		}
	case "redis":
		if strings.TrimSpace(c.Queue.Redis.Addr) == "" {
			problems = append(problems, "MAILRELAY_QUEUE_REDIS_ADDR is required when MAILRELAY_QUEUE_BACKEND=redis")
		}
	default:
		problems = append(problems, "MAILRELAY_QUEUE_BACKEND must be one of: sqs, redis")
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}

type StartupSummary struct {
	Provider     string
	QueueBackend string
	QueueSuffix  string
}

func (c Config) Summary() StartupSummary {
	return StartupSummary{
		Provider:     strings.ToLower(strings.TrimSpace(c.Provider)),
		QueueBackend: strings.ToLower(strings.TrimSpace(c.Queue.Backend)),
		QueueSuffix:  c.Queue.Suffix,
	}
}
