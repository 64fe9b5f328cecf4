package domain

import "fmt"

type Operation string

const (
	OperationEnable  Operation = "enable"
	OperationDisable Operation = "disable"
)

// ParseOperation maps the user-facing mode string onto an Operation.
func ParseOperation(value string) (Operation, error) {
	switch Operation(value) {
	case OperationEnable:
		return OperationEnable, nil
	case OperationDisable:
		return OperationDisable, nil
	default:
		return "", fmt.Errorf("invalid operation %q", value)
	}
}

// DeviceCommandRequest is one validated row, ready for payload construction.
// Message, PhoneNumber and PlaySound only carry meaning for OperationEnable.
type DeviceCommandRequest struct {
	Operation    Operation
	SerialNumber string
	Message      string
	PhoneNumber  string
	PlaySound    bool
}

// DispatchOutcome records the result of one row. StatusCode is zero when no
// HTTP response was obtained; Error is empty on success.
type DispatchOutcome struct {
	SerialNumber string
	Success      bool
	StatusCode   int
	Error        string
}

// BatchResult holds one outcome per input row, in input order.
type BatchResult struct {
	Outcomes []DispatchOutcome
}

func NewDeviceCommandRequestBuilder() *deviceCommandRequestBuilder {
	return &deviceCommandRequestBuilder{}
}

type deviceCommandRequestBuilder struct {
	actions []deviceCommandRequestHandler
}

type deviceCommandRequestHandler func(r *DeviceCommandRequest) error

func (b *deviceCommandRequestBuilder) WithOperation(value Operation) *deviceCommandRequestBuilder {
	b.actions = append(b.actions, func(r *DeviceCommandRequest) error {
		r.Operation = value
		return nil
	})
	return b
}

func (b *deviceCommandRequestBuilder) WithSerialNumber(value string) *deviceCommandRequestBuilder {
	b.actions = append(b.actions, func(r *DeviceCommandRequest) error {
		r.SerialNumber = value
		return nil
	})
	return b
}

func (b *deviceCommandRequestBuilder) WithMessage(value string) *deviceCommandRequestBuilder {
	b.actions = append(b.actions, func(r *DeviceCommandRequest) error {
		r.Message = value
		return nil
	})
	return b
}

func (b *deviceCommandRequestBuilder) WithPhoneNumber(value string) *deviceCommandRequestBuilder {
	b.actions = append(b.actions, func(r *DeviceCommandRequest) error {
		r.PhoneNumber = value
		return nil
	})
	return b
}

func (b *deviceCommandRequestBuilder) WithPlaySound(value bool) *deviceCommandRequestBuilder {
	b.actions = append(b.actions, func(r *DeviceCommandRequest) error {
		r.PlaySound = value
		return nil
	})
	return b
}

func (b *deviceCommandRequestBuilder) Build() (DeviceCommandRequest, error) {
	// The sound plays unless the row explicitly opts out.
	result := DeviceCommandRequest{
		PlaySound: true,
	}
	for _, a := range b.actions {
		if err := a(&result); err != nil {
			return DeviceCommandRequest{}, err
		}
	}
	return result, nil
}
