// SPDX-License-Identifier: MIT
package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	applog "tuner/internal/log"
)

// StartRecording opens a WAV file under the configured output directory
// and begins writing every capture buffer to it. The filename is
// timestamped so repeated sessions never collide.
func (c *Capture) StartRecording() error {
	if c.isRecording.Load() {
		return fmt.Errorf("already recording")
	}

	if err := os.MkdirAll(c.cfg.Recording.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create recording directory: %w", err)
	}

	filename := filepath.Join(c.cfg.Recording.OutputDir,
		fmt.Sprintf("tuner-%s.wav", time.Now().Format("20060102-150405")))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create recording file: %w", err)
	}
	c.recordFile = file

	c.recorder = wav.NewEncoder(file, int(c.cfg.Audio.SampleRate),
		c.cfg.Recording.BitDepth, 1, 1)
	c.sampleBuf = &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(c.cfg.Audio.SampleRate),
		},
		SourceBitDepth: c.cfg.Recording.BitDepth,
		Data:           make([]int, c.cfg.Audio.FramesPerBuffer),
	}

	c.isRecording.Store(true)
	applog.Infof("Audio: recording to %s", filename)
	return nil
}

// StopRecording finalizes the WAV header and closes the file. Safe to
// call when not recording.
func (c *Capture) StopRecording() error {
	if !c.isRecording.Load() {
		return nil
	}
	c.isRecording.Store(false)

	if c.recorder != nil {
		if err := c.recorder.Close(); err != nil {
			return fmt.Errorf("failed to finalize recording: %w", err)
		}
		c.recorder = nil
	}
	if c.recordFile != nil {
		if err := c.recordFile.Close(); err != nil {
			return err
		}
		c.recordFile = nil
	}
	return nil
}

// writeRecording converts the float32 capture buffer to integer PCM at
// the configured bit depth and appends it. Runs in the stream callback,
// so it reuses the pre-allocated sample buffer.
func (c *Capture) writeRecording(in []float32) {
	scale := math.Pow(2, float64(c.cfg.Recording.BitDepth-1)) - 1

	n := len(in)
	if n > cap(c.sampleBuf.Data) {
		n = cap(c.sampleBuf.Data)
	}
	c.sampleBuf.Data = c.sampleBuf.Data[:n]
	for i := 0; i < n; i++ {
		s := float64(in[i])
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		c.sampleBuf.Data[i] = int(s * scale)
	}

	if err := c.recorder.Write(c.sampleBuf); err != nil {
		applog.Errorf("Audio: recording write failed: %v", err)
	}
}
