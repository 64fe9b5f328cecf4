package usecases

import (
	"fmt"

	"lostmode-dispatcher/internal/infra/csvio"
	"lostmode-dispatcher/internal/shared_kernel/domain"
)

const (
	ColumnSerialNumber = "serial_number"
	ColumnMessage      = "message"
	ColumnPhoneNumber  = "phone_number"
	ColumnPlaySound    = "play_sound"
)

// ValidationError reports a row that cannot become a command request. It is
// row-scoped: the dispatcher records it and moves on.
type ValidationError struct {
	Column string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("column %q is required and must not be empty", e.Column)
}

// ValidateRow turns one tabular record into a DeviceCommandRequest for the
// given operation. Enable requires serial_number, message and phone_number;
// disable requires serial_number only. It is a pure transformation.
func ValidateRow(record csvio.Record, op domain.Operation) (domain.DeviceCommandRequest, error) {
	serialNumber := record[ColumnSerialNumber]
	if serialNumber == "" {
		return domain.DeviceCommandRequest{}, &ValidationError{Column: ColumnSerialNumber}
	}

	builder := domain.NewDeviceCommandRequestBuilder().
		WithOperation(op).
		WithSerialNumber(serialNumber)

	if op == domain.OperationEnable {
		message := record[ColumnMessage]
		if message == "" {
			return domain.DeviceCommandRequest{}, &ValidationError{Column: ColumnMessage}
		}
		phoneNumber := record[ColumnPhoneNumber]
		if phoneNumber == "" {
			return domain.DeviceCommandRequest{}, &ValidationError{Column: ColumnPhoneNumber}
		}
		builder.
			WithMessage(message).
			WithPhoneNumber(phoneNumber).
			WithPlaySound(soundEnabled(record))
	}

	return builder.Build()
}

// soundEnabled keeps the upstream coercion exactly: only the two literal
// spellings "false" and "FALSE" disable the sound. Anything else in a present
// column, including "False", "no" or "0", keeps it on, and an absent column
// defaults to on. Files in circulation rely on this, so no general boolean
// parsing here.
func soundEnabled(record csvio.Record) bool {
	value, ok := record.Lookup(ColumnPlaySound)
	if !ok {
		return true
	}
	return value != "false" && value != "FALSE"
}
