// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// DefaultDeviceID selects the system default input device.
const DefaultDeviceID = -1

// paDevicesFunc is swappable so the enumeration error path is testable
// without a broken audio host.
var paDevicesFunc = portaudio.Devices

// Initialize sets up the PortAudio subsystem. Must be called before any
// capture operation and paired with Terminate.
func Initialize() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	return nil
}

// Terminate shuts down the PortAudio subsystem.
func Terminate() error {
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// Device is a host audio device summary for listing and selection.
type Device struct {
	ID                int
	Name              string
	MaxInputChannels  int
	MaxOutputChannels int
	DefaultSampleRate float64
}

// HostDevices enumerates every audio device PortAudio can see, in host
// index order.
func HostDevices() ([]Device, error) {
	infos, err := paDevicesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate audio devices: %w", err)
	}

	devices := make([]Device, len(infos))
	for i, info := range infos {
		devices[i] = Device{
			ID:                i,
			Name:              info.Name,
			MaxInputChannels:  info.MaxInputChannels,
			MaxOutputChannels: info.MaxOutputChannels,
			DefaultSampleRate: info.DefaultSampleRate,
		}
	}
	return devices, nil
}

// InputDevice resolves deviceID to a capture-capable device. DefaultDeviceID
// returns the system default input device.
func InputDevice(deviceID int) (*portaudio.DeviceInfo, error) {
	if deviceID == DefaultDeviceID {
		device, err := portaudio.DefaultInputDevice()
		if err != nil {
			return nil, fmt.Errorf("failed to get default input device: %w", err)
		}
		return device, nil
	}

	infos, err := paDevicesFunc()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate audio devices: %w", err)
	}
	if deviceID < 0 || deviceID >= len(infos) {
		return nil, fmt.Errorf("invalid device ID: %d", deviceID)
	}
	if infos[deviceID].MaxInputChannels == 0 {
		return nil, fmt.Errorf("device %d (%s) does not support input", deviceID, infos[deviceID].Name)
	}
	return infos[deviceID], nil
}

// ListDevices prints every host device with its capabilities, for the
// "list" command.
func ListDevices() error {
	devices, err := HostDevices()
	if err != nil {
		return err
	}

	fmt.Printf("\nAvailable Audio Devices\n\n")
	for _, d := range devices {
		deviceType := ""
		switch {
		case d.MaxInputChannels > 0 && d.MaxOutputChannels > 0:
			deviceType = "Input/Output"
		case d.MaxInputChannels > 0:
			deviceType = "Input"
		case d.MaxOutputChannels > 0:
			deviceType = "Output"
		}

		fmt.Printf("[%d] %s (%s)\n", d.ID, d.Name, deviceType)
		fmt.Printf("    Input channels: %d, Output channels: %d\n", d.MaxInputChannels, d.MaxOutputChannels)
		fmt.Printf("    Default sample rate: %.0f Hz\n", d.DefaultSampleRate)
		fmt.Println()
	}
	return nil
}
