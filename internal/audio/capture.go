// SPDX-License-Identifier: MIT

/*
Package audio owns the microphone: device selection, the PortAudio input
stream, and optional raw-input WAV recording. The stream callback is the
program's hot path; it converts the capture buffer into a pre-allocated
float64 frame and hands it to the tuner engine, allocating nothing.
*/
package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gordonklaus/portaudio"

	"tuner/internal/config"
	applog "tuner/internal/log"
	"tuner/internal/tuner"
)

// Capture runs a mono float32 input stream and drives the tuner engine
// once per buffer.
type Capture struct {
	cfg    *config.Config
	engine *tuner.Engine

	inputDevice  *portaudio.DeviceInfo
	inputLatency time.Duration
	inputStream  *portaudio.Stream

	// Pre-allocated frame handed to the engine each callback.
	frame []float64

	// Recording state, toggled off the hot path.
	isRecording atomic.Bool
	recorder    *wav.Encoder
	recordFile  closer
	sampleBuf   *audio.IntBuffer
}

type closer interface {
	Close() error
}

// NewCapture resolves the configured input device and pre-allocates the
// engine frame. PortAudio must already be initialized.
func NewCapture(cfg *config.Config, engine *tuner.Engine) (*Capture, error) {
	inputDevice, err := InputDevice(cfg.Audio.InputDevice)
	if err != nil {
		return nil, err
	}

	c := &Capture{
		cfg:         cfg,
		engine:      engine,
		inputDevice: inputDevice,
		frame:       make([]float64, cfg.Audio.FramesPerBuffer),
	}

	if cfg.Audio.LowLatency {
		c.inputLatency = inputDevice.DefaultLowInputLatency
	} else {
		c.inputLatency = inputDevice.DefaultHighInputLatency
	}
	return c, nil
}

// Start opens and starts the input stream. Each delivered buffer runs one
// detection cycle.
func (c *Capture) Start() error {
	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Channels: 1,
			Device:   c.inputDevice,
			Latency:  c.inputLatency,
		},
		FramesPerBuffer: c.cfg.Audio.FramesPerBuffer,
		SampleRate:      c.cfg.Audio.SampleRate,
	}

	stream, err := portaudio.OpenStream(params, c.processInput)
	if err != nil {
		return fmt.Errorf("failed to open input stream: %w", err)
	}
	c.inputStream = stream

	if err := c.inputStream.Start(); err != nil {
		c.inputStream.Close()
		c.inputStream = nil
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	applog.Infof("Audio: capturing from %q at %.0f Hz, %d frames per buffer",
		c.inputDevice.Name, c.cfg.Audio.SampleRate, c.cfg.Audio.FramesPerBuffer)
	return nil
}

// Stop stops and closes the input stream. Safe to call when not started.
func (c *Capture) Stop() error {
	if c.inputStream == nil {
		return nil
	}
	if err := c.inputStream.Stop(); err != nil {
		return err
	}
	if err := c.inputStream.Close(); err != nil {
		return err
	}
	c.inputStream = nil
	return nil
}

// Close stops recording and the stream.
func (c *Capture) Close() error {
	if err := c.StopRecording(); err != nil {
		return err
	}
	return c.Stop()
}

// processInput is the PortAudio callback. Performance critical:
// pre-allocated buffers only, no blocking calls. A buffer arriving while
// the engine is mid-cycle is dropped by the engine, not queued here.
func (c *Capture) processInput(in []float32) {
	n := len(in)
	if n > len(c.frame) {
		n = len(c.frame)
	}
	for i := 0; i < n; i++ {
		c.frame[i] = float64(in[i])
	}
	for i := n; i < len(c.frame); i++ {
		c.frame[i] = 0
	}

	c.engine.Process(c.frame)

	if c.isRecording.Load() && c.recorder != nil {
		c.writeRecording(in)
	}
}
