package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/josephgoksu/charm/internal/config"
	"github.com/josephgoksu/charm/types"
)

const (
	configName = ".charm"
	envPrefix  = "CHARM"
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single instance of Translate, it caches struct info
var validate = validator.New()

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(cfg *types.AppConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func setConfigDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("service.baseURL", config.DefaultServiceURL)
	viper.SetDefault("service.timeoutSeconds", config.DefaultTimeoutSeconds)
	viper.SetDefault("output.format", config.DefaultFormat)
	viper.SetDefault("output.width", 0)
	viper.SetDefault("telemetry.disabled", false)
	viper.SetDefault("telemetry.apiKey", "")
	viper.SetDefault("telemetry.endpoint", "")
}

// loadConfig resolves every configuration source into an AppConfig.
// Sources, highest first: flags, CHARM_* environment, .env, config file, defaults.
func loadConfig() (types.AppConfig, error) {
	// A missing .env is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)                          // e.g., CHARM_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // service.baseURL -> CHARM_SERVICE_BASEURL
	viper.AutomaticEnv()
	setConfigDefaults()

	if f := viper.GetString("config"); f != "" {
		viper.SetConfigFile(f)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
			// Defaults and environment only.
		case viper.GetString("config") != "":
			return types.AppConfig{}, fmt.Errorf("read config file %s: %w", viper.GetString("config"), err)
		default:
			return types.AppConfig{}, fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
		}
	}

	var cfg types.AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Output.Format = strings.ToLower(cfg.Output.Format)

	if err := validateAppConfig(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	cfg, err := loadConfig()
	if err != nil {
		HandleFatalError("Configuration error. Run with --verbose for details.", err)
	}
	GlobalAppConfig = cfg
}

// GetConfig returns a pointer to the global types.AppConfig instance.
func GetConfig() *types.AppConfig {
	return &GlobalAppConfig
}
