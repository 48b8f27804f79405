// SPDX-License-Identifier: MIT

// Package config defines the tuner's configuration surface: YAML file,
// environment overrides, CLI flag overrides, validation. Everything here
// is fixed before the engine is constructed; there are no runtime
// configuration changes.
package config

import "time"

// Defaults and limits for the configuration surface.
const (
	DefaultInputDevice     = -1      // -1 selects the system default device
	DefaultSampleRate      = 44100.0 // Hz
	DefaultFramesPerBuffer = 8192    // one FFT frame per capture buffer
	DefaultLowLatency      = false

	DefaultFFTSize     = 8192
	DefaultThresholdDB = -60.0  // loudness floor
	DefaultMinFreq     = 65.0   // Hz, just below C2
	DefaultMaxFreq     = 1000.0 // Hz, above the guitar's high E fundamentals
	DefaultWindow      = "hann"
	DefaultStrategy    = "semitone"

	DefaultRecordingDir    = "./recordings"
	DefaultRecordingFormat = "wav"
	DefaultBitDepth        = 32

	DefaultWebSocketAddr    = ":8080"
	DefaultUDPTargetAddress = "127.0.0.1:9090"
	DefaultUDPSendInterval  = 33 * time.Millisecond // ~30 Hz

	MinSampleRate = 8000.0   // Hz
	MaxSampleRate = 192000.0 // Hz
	MaxFFTSize    = 1 << 16
)

// Config is the root configuration, loaded from YAML and overridden by
// environment variables and CLI flags.
type Config struct {
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`

	Audio     AudioConfig     `yaml:"audio"`
	Pitch     PitchConfig     `yaml:"pitch"`
	Recording RecordingConfig `yaml:"recording"`
	Transport TransportConfig `yaml:"transport"`

	// CLI-only state, never read from the file.
	Command string `yaml:"-"` // one-off command, e.g. "list"
	TUIMode bool   `yaml:"-"` // run the interactive display
}

// AudioConfig holds capture collaborator settings.
type AudioConfig struct {
	InputDevice     int     `yaml:"input_device"`      // PortAudio device index, -1 for default
	SampleRate      float64 `yaml:"sample_rate"`       // Hz
	FramesPerBuffer int     `yaml:"frames_per_buffer"` // samples per capture cycle
	LowLatency      bool    `yaml:"low_latency"`
}

// PitchConfig holds the detection pipeline settings.
type PitchConfig struct {
	FFTSize     int     `yaml:"fft_size"`     // power of two
	ThresholdDB float64 `yaml:"threshold_db"` // loudness floor in dB
	MinFreq     float64 `yaml:"min_freq"`     // search band lower bound, Hz
	MaxFreq     float64 `yaml:"max_freq"`     // search band upper bound, Hz
	Window      string  `yaml:"window"`       // taper name, e.g. "hann"
	Strategy    string  `yaml:"strategy"`     // note matching: "semitone" or "nearest"
}

// RecordingConfig holds raw-input recording settings.
type RecordingConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
	Format    string `yaml:"format"`
	BitDepth  int    `yaml:"bit_depth"`
}

// TransportConfig holds reading-fanout settings.
type TransportConfig struct {
	WebSocketEnabled bool          `yaml:"websocket_enabled"`
	WebSocketAddr    string        `yaml:"websocket_addr"`
	UDPEnabled       bool          `yaml:"udp_enabled"`
	UDPTargetAddress string        `yaml:"udp_target_address"`
	UDPSendInterval  time.Duration `yaml:"udp_send_interval"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Audio: AudioConfig{
			InputDevice:     DefaultInputDevice,
			SampleRate:      DefaultSampleRate,
			FramesPerBuffer: DefaultFramesPerBuffer,
			LowLatency:      DefaultLowLatency,
		},
		Pitch: PitchConfig{
			FFTSize:     DefaultFFTSize,
			ThresholdDB: DefaultThresholdDB,
			MinFreq:     DefaultMinFreq,
			MaxFreq:     DefaultMaxFreq,
			Window:      DefaultWindow,
			Strategy:    DefaultStrategy,
		},
		Recording: RecordingConfig{
			OutputDir: DefaultRecordingDir,
			Format:    DefaultRecordingFormat,
			BitDepth:  DefaultBitDepth,
		},
		Transport: TransportConfig{
			WebSocketAddr:    DefaultWebSocketAddr,
			UDPTargetAddress: DefaultUDPTargetAddress,
			UDPSendInterval:  DefaultUDPSendInterval,
		},
	}
}
