// SPDX-License-Identifier: MIT

// Package cmd parses the command line into a validated configuration.
// Precedence, lowest to highest: built-in defaults, YAML file,
// TUNER_* environment variables, explicit flags.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"tuner/internal/build"
	"tuner/internal/config"
)

func ParseArgs() (*config.Config, error) {
	info := build.Get()

	var (
		configPath string
		flags      = config.NewConfig()
	)

	rootCmd := &cobra.Command{
		Use:           info.Name,
		Short:         "Real-time instrument tuner",
		Version:       info.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd:   true,
			DisableDescriptions: true,
			DisableNoDescFlag:   true,
			HiddenDefaultCmd:    true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.TUIMode = true
			return nil
		},
	}
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available audio devices",
		Run: func(cmd *cobra.Command, args []string) {
			flags.Command = "list"
			flags.TUIMode = false
		},
	}
	rootCmd.AddCommand(listCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to the YAML configuration file")

	// Capture.
	rootCmd.PersistentFlags().IntVarP(&flags.Audio.InputDevice, "device", "d", config.DefaultInputDevice,
		"Input device ID. Use the 'list' command to see available devices.")
	rootCmd.PersistentFlags().Float64VarP(&flags.Audio.SampleRate, "sample-rate", "s", config.DefaultSampleRate,
		"Sample rate in Hertz (Hz)")
	rootCmd.PersistentFlags().IntVarP(&flags.Audio.FramesPerBuffer, "frames-per-buffer", "b", config.DefaultFramesPerBuffer,
		"Samples per capture buffer (affects latency)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Audio.LowLatency, "low-latency", "l", config.DefaultLowLatency,
		"Use the device's low-latency setting")

	// Detection.
	rootCmd.PersistentFlags().IntVar(&flags.Pitch.FFTSize, "fft-size", config.DefaultFFTSize,
		"FFT size, a power of two")
	rootCmd.PersistentFlags().Float64Var(&flags.Pitch.ThresholdDB, "threshold-db", config.DefaultThresholdDB,
		"Loudness floor in dB; quieter buffers report silence")
	rootCmd.PersistentFlags().Float64Var(&flags.Pitch.MinFreq, "min-freq", config.DefaultMinFreq,
		"Lower bound of the pitch search band in Hz")
	rootCmd.PersistentFlags().Float64Var(&flags.Pitch.MaxFreq, "max-freq", config.DefaultMaxFreq,
		"Upper bound of the pitch search band in Hz")
	rootCmd.PersistentFlags().StringVarP(&flags.Pitch.Window, "window", "w", config.DefaultWindow,
		"Window function: hann, hamming, blackman, blackman-nuttall, bartlett-hann, lanczos, nuttall")
	rootCmd.PersistentFlags().StringVar(&flags.Pitch.Strategy, "strategy", config.DefaultStrategy,
		"Note matching strategy: semitone or nearest")

	// Recording.
	rootCmd.PersistentFlags().BoolVarP(&flags.Recording.Enabled, "record", "r", false,
		"Record raw input to WAV alongside tuning")
	rootCmd.PersistentFlags().StringVarP(&flags.Recording.OutputDir, "output", "o", config.DefaultRecordingDir,
		"Directory for recordings")

	rootCmd.PersistentFlags().BoolVarP(&flags.Debug, "verbose", "v", false,
		"Show verbose output")

	rootCmd.SetArgs(os.Args[1:])
	if err := rootCmd.Execute(); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	cfg.Command = flags.Command
	cfg.TUIMode = flags.TUIMode

	// Explicit flags beat the file and the environment.
	pf := rootCmd.PersistentFlags()
	if pf.Changed("device") {
		cfg.Audio.InputDevice = flags.Audio.InputDevice
	}
	if pf.Changed("sample-rate") {
		cfg.Audio.SampleRate = flags.Audio.SampleRate
	}
	if pf.Changed("frames-per-buffer") {
		cfg.Audio.FramesPerBuffer = flags.Audio.FramesPerBuffer
	}
	if pf.Changed("low-latency") {
		cfg.Audio.LowLatency = flags.Audio.LowLatency
	}
	if pf.Changed("fft-size") {
		cfg.Pitch.FFTSize = flags.Pitch.FFTSize
	}
	if pf.Changed("threshold-db") {
		cfg.Pitch.ThresholdDB = flags.Pitch.ThresholdDB
	}
	if pf.Changed("min-freq") {
		cfg.Pitch.MinFreq = flags.Pitch.MinFreq
	}
	if pf.Changed("max-freq") {
		cfg.Pitch.MaxFreq = flags.Pitch.MaxFreq
	}
	if pf.Changed("window") {
		cfg.Pitch.Window = flags.Pitch.Window
	}
	if pf.Changed("strategy") {
		cfg.Pitch.Strategy = flags.Pitch.Strategy
	}
	if pf.Changed("record") {
		cfg.Recording.Enabled = flags.Recording.Enabled
	}
	if pf.Changed("output") {
		cfg.Recording.OutputDir = flags.Recording.OutputDir
	}
	if pf.Changed("verbose") {
		cfg.Debug = flags.Debug
	}

	// Flag overrides can invalidate a file-valid configuration.
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
