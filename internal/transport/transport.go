// SPDX-License-Identifier: MIT

// Package transport fans published tuner readings out to external
// consumers (websocket clients, UDP listeners, logs).
package transport

// Transport delivers a published reading to an external consumer.
// Implementations must be safe for concurrent use and must never block
// the caller: the engine invokes Send from the capture path, so a slow
// consumer drops data instead of stalling audio.
type Transport interface {
	Send(data any) error
	Close() error
}
