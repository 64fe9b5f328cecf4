package wire

import (
	"lostmode-dispatcher/cmd/config"
	"lostmode-dispatcher/internal/infra/jamf"
)

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideJamfClient(cfg config.AppConfig, credentials jamf.Credentials) *jamf.Client {
	return jamf.NewClient(jamf.ClientOpts{
		BaseURL:     cfg.Jamf.BaseURL,
		CommandPath: cfg.Jamf.CommandPath,
		Timeout:     cfg.Jamf.Timeout,
		Credentials: credentials,
	})
}
