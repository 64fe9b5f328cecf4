package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var loadConfigOnce sync.Once
var configInstance AppConfig

func LoadConfig() AppConfig {
	loadConfigOnce.Do(func() {
		viper.SetEnvPrefix("lostmode_dispatcher")
		viper.AutomaticEnv()
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.SetConfigName("dispatcher")
		viper.AddConfigPath("config")
		viper.AddConfigPath("/config")
		viper.SetDefault("general.log_level", "info")
		viper.SetDefault("jamf.command_path", "/JSSResource/mobiledevicecommands/command")
		viper.SetDefault("jamf.timeout", 30*time.Second)
		if err := viper.ReadInConfig(); err != nil {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
		configInstance = AppConfig{
			General: GeneralConfig{
				LogLevel: viper.GetString("general.log_level"),
			},
			Jamf: JamfConfig{
				BaseURL:     viper.GetString("jamf.base_url"),
				CommandPath: viper.GetString("jamf.command_path"),
				Timeout:     viper.GetDuration("jamf.timeout"),
			},
		}
	})

	return configInstance
}

type AppConfig struct {
	General GeneralConfig
	Jamf    JamfConfig
}

type GeneralConfig struct {
	LogLevel string
}

// JamfConfig locates the Jamf Pro deployment. BaseURL is the per-deployment
// server URL with no trailing slash, e.g. "https://myorg.jamfcloud.com" or
// "https://jamf.myorg.com:8443" for on-prem installs on the extended port.
type JamfConfig struct {
	BaseURL     string
	CommandPath string
	Timeout     time.Duration
}
