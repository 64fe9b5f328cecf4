package dto

import (
	"encoding/xml"
	"fmt"

	"lostmode-dispatcher/internal/shared_kernel/domain"
)

const (
	_commandEnableLostMode  = "EnableLostMode"
	_commandDisableLostMode = "DisableLostMode"
	_flagTrue               = "true"
)

// MobileDeviceCommand is the document the Jamf Pro classic API expects on
// POST /JSSResource/mobiledevicecommands/command.
type MobileDeviceCommand struct {
	XMLName       xml.Name      `xml:"mobile_device_command"`
	General       General       `xml:"general"`
	MobileDevices MobileDevices `xml:"mobile_devices"`
}

type General struct {
	Command string `xml:"command"`
	// Lost mode fields are only present on EnableLostMode. The API reads
	// absence of lost_mode_with_sound as "no sound"; it is never set to
	// "false".
	LostModeMessage       string `xml:"lost_mode_message,omitempty"`
	LostModePhone         string `xml:"lost_mode_phone,omitempty"`
	AlwaysEnforceLostMode string `xml:"always_enforce_lost_mode,omitempty"`
	LostModeWithSound     string `xml:"lost_mode_with_sound,omitempty"`
}

type MobileDevices struct {
	MobileDevice MobileDevice `xml:"mobile_device"`
}

type MobileDevice struct {
	SerialNumber string `xml:"serial_number"`
}

// FromDomain builds the wire document for one request. It does not validate:
// the request is trusted to have passed row validation, and a malformed one
// is still serialized for the remote service to reject.
func FromDomain(req domain.DeviceCommandRequest) MobileDeviceCommand {
	command := MobileDeviceCommand{
		MobileDevices: MobileDevices{
			MobileDevice: MobileDevice{SerialNumber: req.SerialNumber},
		},
	}

	switch req.Operation {
	case domain.OperationEnable:
		command.General = General{
			Command:               _commandEnableLostMode,
			LostModeMessage:       req.Message,
			LostModePhone:         req.PhoneNumber,
			AlwaysEnforceLostMode: _flagTrue,
		}
		if req.PlaySound {
			command.General.LostModeWithSound = _flagTrue
		}
	case domain.OperationDisable:
		command.General = General{
			Command: _commandDisableLostMode,
		}
	}

	return command
}

func (c MobileDeviceCommand) ToXML() ([]byte, error) {
	data, err := xml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("xml marshaling: %w", err)
	}
	return data, nil
}
