// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	applog "tuner/internal/log"
	"tuner/internal/notes"
	"tuner/internal/pitch"
	"tuner/pkg/bitint"
)

// Load reads configuration from a YAML file. An empty path searches the
// default location ("config.yaml"); when no file exists, built-in
// defaults apply. Environment overrides run after the file, validation
// last. Validation failures are fatal to engine setup and never recur
// per cycle.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks every setting the pipeline constructors would reject,
// so misconfiguration surfaces once at startup with a readable message.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate %.0f Hz outside [%.0f, %.0f]",
			c.Audio.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Audio.FramesPerBuffer <= 0 {
		return fmt.Errorf("audio.frames_per_buffer must be positive, got %d", c.Audio.FramesPerBuffer)
	}
	if !bitint.IsPowerOfTwo(c.Pitch.FFTSize) || c.Pitch.FFTSize > MaxFFTSize {
		return fmt.Errorf("pitch.fft_size must be a power of 2 up to %d, got %d", MaxFFTSize, c.Pitch.FFTSize)
	}
	if c.Pitch.MinFreq <= 0 || c.Pitch.MaxFreq <= c.Pitch.MinFreq {
		return fmt.Errorf("pitch search band [%v, %v] Hz is invalid", c.Pitch.MinFreq, c.Pitch.MaxFreq)
	}
	if _, err := pitch.ParseWindowFunc(c.Pitch.Window); err != nil {
		return err
	}
	if _, err := notes.ParseStrategy(c.Pitch.Strategy); err != nil {
		return err
	}
	if _, ok := applog.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("unknown log_level: %q", c.LogLevel)
	}
	if c.Transport.UDPEnabled && c.Transport.UDPTargetAddress == "" {
		return fmt.Errorf("transport.udp_target_address must be set when UDP is enabled")
	}
	return nil
}

// applyEnvOverrides lets deployment environments adjust settings without
// editing the file. Variables use the TUNER_ prefix.
func (cfg *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("TUNER_DEBUG"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Debug = b
		}
	}
	if val, ok := os.LookupEnv("TUNER_LOG_LEVEL"); ok {
		cfg.LogLevel = val
	}
	if val, ok := os.LookupEnv("TUNER_WS_ENABLED"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.WebSocketEnabled = b
		}
	}
	if val, ok := os.LookupEnv("TUNER_WS_ADDR"); ok {
		cfg.Transport.WebSocketAddr = val
	}
	if val, ok := os.LookupEnv("TUNER_UDP_ENABLED"); ok {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Transport.UDPEnabled = b
		}
	}
	if val, ok := os.LookupEnv("TUNER_UDP_TARGET_ADDRESS"); ok {
		cfg.Transport.UDPTargetAddress = val
	}
	if val, ok := os.LookupEnv("TUNER_UDP_SEND_INTERVAL"); ok {
		if dur, err := time.ParseDuration(val); err == nil {
			cfg.Transport.UDPSendInterval = dur
		}
	}
}
