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

const configFileEnvName = "STOREFRONT_CONFIG_FILE"

type checkout struct {
	DeliveryFee float64 `mapstructure:"delivery_fee"`
	TaxRate     float64 `mapstructure:"tax_rate"`
}

type broker struct {
	Enabled            bool     `mapstructure:"enabled"`
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	ClientEventsTopic  string   `mapstructure:"client_events_topic"`
	TLSCA              string   `mapstructure:"tls_ca"`
	TLSCert            string   `mapstructure:"tls_cert"`
	TLSKey             string   `mapstructure:"tls_key"`
}

type Config struct {
	LogLevel        slog.Level    `mapstructure:"log_level"`
	HTTPServerAddr  string        `mapstructure:"http_server_addr"`
	UpstreamBaseURL string        `mapstructure:"upstream_base_url"`
	SessionFile     string        `mapstructure:"session_file"`
	StatsInterval   time.Duration `mapstructure:"stats_interval"`
	Checkout        checkout      `mapstructure:"checkout"`
	Broker          broker        `mapstructure:"broker"`
}

func Load() Config {
	viper.SetDefault("http_server_addr", ":8080")
	viper.SetDefault("upstream_base_url", "http://localhost:8000")
	viper.SetDefault("session_file", "session.json")
	viper.SetDefault("stats_interval", 30*time.Second)
	viper.SetDefault("checkout.delivery_fee", 25.0)
	viper.SetDefault("checkout.tax_rate", 0.05)
	viper.SetDefault("broker.client_events_topic", "storefront-client-events")

	viper.SetConfigFile(getConfigFilepath())

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
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
	UpstreamBaseURL=%q
	SessionFile=%q
	StatsInterval=%q

	Checkout:
	DeliveryFee=%.2f
	TaxRate=%.2f

	BrokerConfig:
	Enabled=%t
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	ClientEventsTopic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.HTTPServerAddr,
		c.UpstreamBaseURL,
		c.SessionFile,
		c.StatsInterval,
		c.Checkout.DeliveryFee,
		c.Checkout.TaxRate,
		c.Broker.Enabled,
		c.Broker.SeedBrokers,
		c.Broker.SchemaRegistryURLs,
		c.Broker.ClientEventsTopic,
	)
}
