package core

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config contains all of the configuration options available to the
// steamlink client and its tools.
type Config struct {
	// Websocket URL of the already-negotiated connection manager endpoint.
	ServerURL string `mapstructure:"server_url"`

	Logging struct {
		// Full path to file to which logs will be written. Blank will write to stdout.
		LogFilePath string `mapstructure:"log_file_path"`
		// Minimum level of a log required to be written. Options: debug, info, warn, error
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"logging"`

	Client struct {
		// How long a single bounded receive on the socket may block before the
		// loop goes back to draining deferred import jobs (milliseconds).
		ReceiveTimeoutMs int `mapstructure:"receive_timeout_ms"`
		// Language preferred for rich presence localization requests.
		Language string `mapstructure:"language"`
	} `mapstructure:"client"`

	Library struct {
		// Persist imported licenses/apps/achievements to a local database.
		Enabled bool `mapstructure:"enabled"`
		// Path of the sqlite database file.
		Filename string `mapstructure:"filename"`
	} `mapstructure:"library"`

	Debugging struct {
		// Log a dump of every frame sent and received.
		PacketLoggingEnabled bool `mapstructure:"packet_logging_enabled"`
		// Port on which prometheus metrics are exposed; 0 disables the listener.
		MetricsPort int `mapstructure:"metrics_port"`
	} `mapstructure:"debugging"`
}

const envVarPrefix = "STEAMLINK"

// LoadConfig initializes Viper with the contents of the config file under configPath.
func LoadConfig(configPath string) *Config {
	viper.AddConfigPath(configPath)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix(envVarPrefix)
	viper.AutomaticEnv()

	viper.SetDefault("client.receive_timeout_ms", 100)
	viper.SetDefault("client.language", "english")
	viper.SetDefault("logging.log_level", "info")
	viper.SetDefault("library.filename", "steamlink.db")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			fmt.Printf("error reading config file: no config file in path %s", configPath)
		} else {
			fmt.Printf("error reading config file: %v", err)
		}
		os.Exit(1)
	}

	// This allows us to set nested yaml config options through environment
	// variables. For example, client.language can be set using: <envVarPrefix>_CLIENT_LANGUAGE
	for _, k := range viper.AllKeys() {
		envVar := strings.ReplaceAll(strings.ToUpper(k), ".", "_")
		if err := viper.BindEnv(k, envVarPrefix+"_"+envVar); err != nil {
			fmt.Printf("error binding %s to %s", k, envVarPrefix+"_"+envVar)
			os.Exit(1)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		fmt.Printf("error unmarshaling config object: %v", err)
		os.Exit(1)
	}
	return config
}
