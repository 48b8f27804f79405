// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"tuner/internal/notes"
	"tuner/internal/tuner"
)

type packet struct {
	Seq       uint32
	Timestamp int64
	Detected  uint8
	Frequency float64
	NoteIndex int16
	Cents     float32
}

func decodePacket(t *testing.T, raw []byte) packet {
	t.Helper()
	var p packet
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, &p); err != nil {
		t.Fatalf("failed to decode packet: %v", err)
	}
	return p
}

func TestEncodeReadingDetected(t *testing.T) {
	a2 := notes.Catalog()[33]
	r := tuner.Reading{Detected: true, Frequency: 110.25, Note: a2, Cents: 3.9}

	buf := new(bytes.Buffer)
	if err := encodeReading(buf, 7, 1234567890, r); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 27 {
		t.Errorf("packet length %d, expected 27", buf.Len())
	}

	p := decodePacket(t, buf.Bytes())
	if p.Seq != 7 || p.Timestamp != 1234567890 {
		t.Errorf("header mismatch: %+v", p)
	}
	if p.Detected != 1 {
		t.Error("expected detected flag set")
	}
	if p.Frequency != 110.25 {
		t.Errorf("frequency %.4f, expected 110.25", p.Frequency)
	}
	if p.NoteIndex != 33 {
		t.Errorf("note index %d, expected 33 (A2)", p.NoteIndex)
	}
	if math.Abs(float64(p.Cents)-3.9) > 1e-6 {
		t.Errorf("cents %.4f, expected 3.9", p.Cents)
	}
}

func TestEncodeReadingSilence(t *testing.T) {
	buf := new(bytes.Buffer)
	if err := encodeReading(buf, 1, 42, tuner.Reading{}); err != nil {
		t.Fatal(err)
	}

	p := decodePacket(t, buf.Bytes())
	if p.Detected != 0 {
		t.Error("expected detected flag clear")
	}
	if p.NoteIndex != -1 {
		t.Errorf("note index %d, expected -1 for silence", p.NoteIndex)
	}
	if p.Frequency != 0 || p.Cents != 0 {
		t.Errorf("expected zero frequency and cents, got %+v", p)
	}
}
