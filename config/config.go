package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "SWIMSTORE_CONFIG_FILE"

type consumers struct {
	SubscriptionStatusGroup string `mapstructure:"subscription_status_group"`
}

type topics struct {
	CartEvents         string `mapstructure:"cart_events"`
	SubscriptionEvents string `mapstructure:"subscription_events"`
}

type broker struct {
	SeedBrokers        []string  `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string  `mapstructure:"schema_registry_urls"`
	Topics             topics    `mapstructure:"topics"`
	Consumers          consumers `mapstructure:"consumers"`
}

type discount struct {
	Strategy         string    `mapstructure:"strategy"`
	Tiers            []int     `mapstructure:"tiers"`
	SelectionWeights []float64 `mapstructure:"selection_weights"`
}

type cache struct {
	RedisAddr       string        `mapstructure:"redis_addr"`
	SubscriptionTTL time.Duration `mapstructure:"subscription_ttl"`
}

type Config struct {
	LogLevel       slog.Level `mapstructure:"log_level"`
	HTTPServerAddr string     `mapstructure:"http_server_addr"`
	SQLDB          string     `mapstructure:"sql_db"`
	Broker         broker     `mapstructure:"broker"`
	Discount       discount   `mapstructure:"discount"`
	Cache          cache      `mapstructure:"cache"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.UnmarshalExact(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "/config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	HTTPServerAddr=%q
	SQLDB=%q

	BrokerConfig:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topics:
		CartEvents=%q
		SubscriptionEvents=%q
	Consumers:
		SubscriptionStatusGroup=%q

	Discount:
	Strategy=%q
	Tiers=%v
	SelectionWeights=%v

	Cache:
	RedisAddr=%q
	SubscriptionTTL=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.SQLDB,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.Topics.CartEvents,
		c.Broker.Topics.SubscriptionEvents,
		c.Broker.Consumers.SubscriptionStatusGroup,
		c.Discount.Strategy,
		c.Discount.Tiers,
		c.Discount.SelectionWeights,
		c.Cache.RedisAddr,
		c.Cache.SubscriptionTTL,
	)
}
