package usecases

import "context"

//go:generate mockgen -source=sender_port.go -destination=../../../test/unit/doubles/control_plane/usecases/command_sender_mock.go -package=usecases -mock_names=CommandSender=MockCommandSender

// CommandSender posts one built command document to the device-management API
// and returns the HTTP status code it observed.
type CommandSender interface {
	SendCommand(ctx context.Context, payload []byte) (int, error)
}
