// SPDX-License-Identifier: MIT
package main

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"tuner/cmd"
	"tuner/internal/audio"
	"tuner/internal/build"
	"tuner/internal/config"
	applog "tuner/internal/log"
	"tuner/internal/notes"
	"tuner/internal/pitch"
	"tuner/internal/transport"
	"tuner/internal/transport/udp"
	"tuner/internal/tui"
	"tuner/internal/tuner"
)

// main runs in three phases:
//
// 1. Startup (cold path): runtime settings, PortAudio, argument parsing,
// one-off commands.
//
// 2. Capture (hot path): the PortAudio callback drives one detection
// cycle per buffer; the TUI and transports consume published readings.
//
// 3. Shutdown (cold path): stop recording, close the stream and
// transports.
func main() {
	info := build.Get()

	// One thread for the capture callback, one for UI and I/O.
	runtime.GOMAXPROCS(2)

	if err := audio.Initialize(); err != nil {
		applog.Fatalf("%v", err)
	}
	defer audio.Terminate()

	cfg, err := cmd.ParseArgs()
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if level, ok := applog.ParseLevel(cfg.LogLevel); ok {
		applog.SetLevel(level)
	}
	if cfg.Debug {
		applog.SetLevel(applog.LevelDebug)
	}
	applog.Debugf("%s %s (%s, built %s)", info.Name, info.Version, info.Commit, info.Time)

	if cfg.Command == "list" {
		if err := audio.ListDevices(); err != nil {
			applog.Fatalf("%v", err)
		}
		return
	}
	if !cfg.TUIMode {
		return
	}

	engine, cleanup, err := buildEngine(cfg)
	if err != nil {
		applog.Fatalf("%v", err)
	}
	defer cleanup()

	capture, err := audio.NewCapture(cfg, engine)
	if err != nil {
		applog.Fatalf("%v", err)
	}

	if err := capture.Start(); err != nil {
		applog.Fatalf("%v", err)
	}

	if cfg.Recording.Enabled {
		if err := capture.StartRecording(); err != nil {
			applog.Fatalf("%v", err)
		}
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// The TUI owns the terminal until the user quits; a signal also ends
	// the session.
	uiDone := make(chan error, 1)
	go func() { uiDone <- tui.Run(engine) }()

	select {
	case err := <-uiDone:
		if err != nil {
			applog.Errorf("display error: %v", err)
		}
	case <-done:
	}

	if err := capture.Close(); err != nil {
		applog.Errorf("error closing capture: %v", err)
	}
	if n := engine.Dropped(); n > 0 {
		applog.Debugf("dropped %d capture buffers during the session", n)
	}
}

// buildEngine assembles the detection pipeline and any configured
// transports. The returned cleanup closes everything started here.
func buildEngine(cfg *config.Config) (*tuner.Engine, func(), error) {
	window, err := pitch.ParseWindowFunc(cfg.Pitch.Window)
	if err != nil {
		return nil, nil, err
	}
	detector, err := pitch.NewDetector(pitch.Settings{
		SampleRate:  cfg.Audio.SampleRate,
		FFTSize:     cfg.Pitch.FFTSize,
		ThresholdDB: cfg.Pitch.ThresholdDB,
		Band:        pitch.Band{MinHz: cfg.Pitch.MinFreq, MaxHz: cfg.Pitch.MaxFreq},
		Window:      window,
	})
	if err != nil {
		return nil, nil, err
	}

	matcher, err := notes.ParseStrategy(cfg.Pitch.Strategy)
	if err != nil {
		return nil, nil, err
	}

	var sink transport.Transport
	var ws *transport.WebSocketTransport
	if cfg.Transport.WebSocketEnabled {
		ws = transport.NewWebSocketTransport(cfg.Transport.WebSocketAddr)
		sink = ws
	} else if cfg.Debug {
		sink = transport.NewLoggingTransport()
	}

	engine := tuner.NewEngine(detector, matcher, sink)

	var publisher *udp.Publisher
	if cfg.Transport.UDPEnabled {
		sender, err := udp.NewSender(cfg.Transport.UDPTargetAddress)
		if err != nil {
			return nil, nil, err
		}
		publisher, err = udp.NewPublisher(cfg.Transport.UDPSendInterval, sender, engine)
		if err != nil {
			return nil, nil, err
		}
		publisher.Start()
	}

	cleanup := func() {
		if publisher != nil {
			if err := publisher.Stop(); err != nil {
				applog.Errorf("error stopping UDP publisher: %v", err)
			}
		}
		if ws != nil {
			ws.Close()
		}
	}
	return engine, cleanup, nil
}
