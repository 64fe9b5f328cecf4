//go:build wireinject
// +build wireinject

package wire

import (
	"lostmode-dispatcher/internal/control_plane/usecases"
	"lostmode-dispatcher/internal/infra/jamf"

	"github.com/google/wire"
)

func InitializeBatchDispatcher(credentials jamf.Credentials) *usecases.BatchDispatcher {
	wire.Build(
		provideAppConfig,
		provideJamfClient,
		wire.Bind(new(usecases.CommandSender), new(*jamf.Client)),
		usecases.NewBatchDispatcher,
	)
	return nil
}
