package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/whatssound/tipservice/internal/tipping"
	"github.com/whatssound/tipservice/pkg/gormdb"
	"github.com/whatssound/tipservice/pkg/mq"
	"github.com/whatssound/tipservice/pkg/paymentprocessor"
)

type Config struct {
	App         App                     `mapstructure:"app"`
	API         API                     `mapstructure:"api"`
	Database    Database                `mapstructure:"database"`
	RabbitMQ    mq.Config               `mapstructure:"rabbitmq"`
	Redis       Redis                   `mapstructure:"redis"`
	Tips        tipping.Config          `mapstructure:"tips"`
	Persistence Persistence             `mapstructure:"persistence"`
	Processor   paymentprocessor.Config `mapstructure:"processor"`
	Worker      Worker                  `mapstructure:"worker"`
}

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type API struct {
	Port string `mapstructure:"port"`
}

type Database struct {
	Driver      string              `mapstructure:"driver"`
	AutoMigrate bool                `mapstructure:"auto_migrate"`
	MySQL       gormdb.MySQLConfig  `mapstructure:"mysql"`
	SQLite      gormdb.SQLiteConfig `mapstructure:"sqlite"`
}

type Redis struct {
	Enabled        bool          `mapstructure:"enabled"`
	Addr           string        `mapstructure:"addr"`
	Password       string        `mapstructure:"password"`
	DB             int           `mapstructure:"db"`
	PoolSize       int           `mapstructure:"pool_size"`
	LeaderboardTTL time.Duration `mapstructure:"leaderboard_ttl"`
}

type Persistence struct {
	MaxRetries int           `mapstructure:"max_retries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
}

type Worker struct {
	PublishInterval time.Duration `mapstructure:"publish_interval"`
	BatchSize       int           `mapstructure:"batch_size"`
	Prefetch        int           `mapstructure:"prefetch"`
}

func Load() (cfg *Config, err error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("TIPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Tips.Validate(); err != nil {
		return fmt.Errorf("tips: %w", err)
	}

	if c.Persistence.MaxRetries < 1 {
		return fmt.Errorf("persistence.max_retries must be at least 1")
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	fees := tipping.DefaultFeeConfig()

	v.SetDefault("app.name", "tipservice")
	v.SetDefault("app.env", "development")
	v.SetDefault("api.port", ":8080")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("tips.mode", string(tipping.PaymentModeTest))
	v.SetDefault("tips.fees.schedule", string(fees.Schedule))
	v.SetDefault("tips.fees.platform_rate", fees.PlatformRate)
	v.SetDefault("tips.fees.min_amount", fees.MinAmount)
	v.SetDefault("tips.fees.max_amount", fees.MaxAmount)
	v.SetDefault("tips.fees.currency", fees.Currency)
	v.SetDefault("persistence.max_retries", 3)
	v.SetDefault("persistence.retry_delay", 100*time.Millisecond)
	v.SetDefault("processor.max_retries", 3)
	v.SetDefault("processor.timeout", 10*time.Second)
	v.SetDefault("redis.leaderboard_ttl", 30*time.Second)
	v.SetDefault("worker.publish_interval", 10*time.Second)
	v.SetDefault("worker.batch_size", 100)
	v.SetDefault("worker.prefetch", 1)
}
