package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFileEnvName = "STOREFRONT_CONFIG_FILE"
	envPrefix         = "STOREFRONT"
)

type telemetry struct {
	SeedBrokers        []string `mapstructure:"seed_brokers"`
	SchemaRegistryURLs []string `mapstructure:"schema_registry_urls"`
	Topic              string   `mapstructure:"topic"`
}

type Config struct {
	LogLevel       slog.Level    `mapstructure:"log_level"`
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	SessionFile    string        `mapstructure:"session_file"`
	ClientID       string        `mapstructure:"client_id"`
	Telemetry      telemetry     `mapstructure:"telemetry"`
}

// TelemetryEnabled reports whether the optional browse-events
// producer should be wired.
func (c Config) TelemetryEnabled() bool {
	return len(c.Telemetry.SeedBrokers) > 0 && c.Telemetry.Topic != ""
}

func Load() Config {
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

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

func setDefaults() {
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("api_base_url", "http://localhost:8000")
	viper.SetDefault("request_timeout", "10s")

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("session_file", home+"/.techcart/session")
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	arg := cmdLine.String("config", "config.yaml", "config file")
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
	APIBaseURL=%q
	RequestTimeout=%q
	SessionFile=%q
	ClientID=%q

	Telemetry:
	SeedBrokers=%q
	SchemaRegistryURLs=%q
	Topic=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.APIBaseURL,
		c.RequestTimeout,
		c.SessionFile,
		c.ClientID,
		c.Telemetry.SeedBrokers,
		c.Telemetry.SchemaRegistryURLs,
		c.Telemetry.Topic,
	)
}
