// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	applog "tuner/internal/log"
	"tuner/internal/notes"
	"tuner/internal/tuner"
)

// ReadingSource provides the most recently published reading. The tuner
// engine is the production implementation.
type ReadingSource interface {
	Latest() tuner.Reading
}

/*
Packet layout (BigEndian):

	Sequence Number  uint32   4 bytes  monotonically increasing
	Timestamp        int64    8 bytes  nanoseconds since epoch
	Detected         uint8    1 byte   1 when a tone was detected
	Frequency        float64  8 bytes  Hz, 0 when not detected
	Note Index       int16    2 bytes  catalog position, -1 when not detected
	Cents            float32  4 bytes  deviation from the matched note
*/

// Publisher periodically snapshots the source's latest reading, packs it,
// and sends it through a Sender. Polling the published state instead of
// subscribing keeps the capture path entirely decoupled from the network.
type Publisher struct {
	sender   *Sender
	source   ReadingSource
	interval time.Duration

	ticker   *time.Ticker
	doneChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.Mutex // guards ticker/doneChan across Start/Stop

	sequenceNum  uint32
	packetBuffer *bytes.Buffer // reused across ticks
}

// NewPublisher creates a publisher sending one packet per interval.
// Intervals <= 0 default to 33ms (~30 Hz).
func NewPublisher(interval time.Duration, sender *Sender, source ReadingSource) (*Publisher, error) {
	if sender == nil {
		return nil, fmt.Errorf("udp publisher: sender cannot be nil")
	}
	if source == nil {
		return nil, fmt.Errorf("udp publisher: reading source cannot be nil")
	}
	if interval <= 0 {
		interval = 33 * time.Millisecond
		applog.Warnf("UDP: invalid publish interval, defaulting to %s", interval)
	}

	return &Publisher{
		sender:       sender,
		source:       source,
		interval:     interval,
		packetBuffer: new(bytes.Buffer),
	}, nil
}

// Start launches the publishing goroutine. Calling Start on a running
// publisher is a no-op.
func (p *Publisher) Start() {
	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		applog.Warnf("UDP: publisher already running")
		return
	}
	p.ticker = time.NewTicker(p.interval)
	p.doneChan = make(chan struct{})
	p.stopOnce = sync.Once{}

	ticker := p.ticker
	doneChan := p.doneChan
	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		applog.Infof("UDP: publisher started (interval: %s)", p.interval)
		for {
			select {
			case <-ticker.C:
				p.sendLatest()
			case <-doneChan:
				return
			}
		}
	}()
}

// Stop signals the publishing goroutine and waits for it to exit.
// Idempotent.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		return nil
	}
	p.stopOnce.Do(func() {
		close(p.doneChan)
		p.ticker.Stop()
		p.ticker = nil
	})
	p.mu.Unlock()

	p.wg.Wait()
	applog.Infof("UDP: publisher stopped")
	return nil
}

// Close implements io.Closer.
func (p *Publisher) Close() error {
	return p.Stop()
}

func (p *Publisher) sendLatest() {
	p.sequenceNum++
	p.packetBuffer.Reset()
	if err := encodeReading(p.packetBuffer, p.sequenceNum, time.Now().UnixNano(), p.source.Latest()); err != nil {
		applog.Errorf("UDP: failed to pack reading: %v", err)
		return
	}
	if err := p.sender.Send(p.packetBuffer.Bytes()); err != nil {
		applog.Debugf("UDP: send failed: %v", err)
	}
}

// encodeReading packs one reading into the wire layout documented above.
func encodeReading(buf *bytes.Buffer, seq uint32, timestamp int64, r tuner.Reading) error {
	detected := uint8(0)
	noteIndex := int16(-1)
	if r.Detected {
		detected = 1
		noteIndex = int16(notes.IndexOf(r.Note))
	}

	var err error
	for _, field := range []any{seq, timestamp, detected, r.Frequency, noteIndex, float32(r.Cents)} {
		if err = binary.Write(buf, binary.BigEndian, field); err != nil {
			return err
		}
	}
	return nil
}
