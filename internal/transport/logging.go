// SPDX-License-Identifier: MIT
package transport

import applog "tuner/internal/log"

// LoggingTransport writes readings to the debug log. Useful when running
// headless without a websocket or UDP consumer.
type LoggingTransport struct{}

// NewLoggingTransport creates a LoggingTransport.
func NewLoggingTransport() *LoggingTransport {
	applog.Infof("Transport: using logging transport")
	return &LoggingTransport{}
}

// Send logs the reading. It never fails.
func (lt *LoggingTransport) Send(data any) error {
	applog.Debugf("Transport: %+v", data)
	return nil
}

// Close is a no-op.
func (lt *LoggingTransport) Close() error {
	return nil
}

var _ Transport = (*LoggingTransport)(nil)
