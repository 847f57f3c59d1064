package snmp

import (
	"encoding/hex"
	"log"
	"time"
)

// SessionTrace defines a structure for handling session trace events. A
// partially specified trace is merged onto NoOpLoggingHooks at session
// construction, so callers overriding one hook still get silence (not a
// panic) on the rest.
type SessionTrace struct {
	// ConnectStart is called before establishing a target UDP endpoint.
	ConnectStart func(config *Config)

	// ConnectDone is called once endpoint resolution and socket setup
	// complete, with err indicating whether it was successful.
	ConnectDone func(config *Config, err error, d time.Duration)

	// Error is called after an error condition has been detected.
	Error func(location string, config *Config, err error)

	// WriteDone reports a PDU written to the wire. Sessions in this package
	// do not call it: the socket write happens inside engine.Engine, which
	// has no trace hooks.
	WriteDone func(config *Config, output []byte, err error, d time.Duration)

	// ReadDone reports a response read from the wire. Sessions in this
	// package do not call it: the socket read happens inside engine.Engine,
	// which has no trace hooks.
	ReadDone func(config *Config, input []byte, err error, d time.Duration)

	// RetryScheduled is called when a timed-out request is about to be
	// reissued with a fresh request-id.
	RetryScheduled func(config *Config, attempt int, err error)
}

// DefaultLoggingHooks reports errors only.
var DefaultLoggingHooks = &SessionTrace{
	Error: func(location string, config *Config, err error) {
		log.Printf("SNMP-Error context:%s target:%s err:%v\n", location, config.target, err)
	},
}

// MetricLoggingHooks reports timing for connect/write/read without payload
// bodies.
var MetricLoggingHooks = &SessionTrace{
	ConnectDone: func(config *Config, err error, d time.Duration) {
		log.Printf("SNMP-ConnectDone target:%s err:%v took:%dms\n", config.target, err, d.Milliseconds())
	},
	Error: DefaultLoggingHooks.Error,
	WriteDone: func(config *Config, output []byte, err error, d time.Duration) {
		log.Printf("SNMP-WriteDone target:%s err:%v took:%dms\n", config.target, err, d.Milliseconds())
	},
	ReadDone: func(config *Config, input []byte, err error, d time.Duration) {
		log.Printf("SNMP-ReadDone target:%s err:%v took:%dms\n", config.target, err, d.Milliseconds())
	},
	RetryScheduled: func(config *Config, attempt int, err error) {
		log.Printf("SNMP-RetryScheduled target:%s attempt:%d err:%v\n", config.target, attempt, err)
	},
}

// DiagnosticLoggingHooks logs every event with full payload bodies, hex
// encoded.
var DiagnosticLoggingHooks = &SessionTrace{
	ConnectStart: func(config *Config) {
		log.Printf("SNMP-ConnectStart target:%s\n", config.target)
	},
	ConnectDone: MetricLoggingHooks.ConnectDone,
	Error:       DefaultLoggingHooks.Error,
	WriteDone: func(config *Config, output []byte, err error, d time.Duration) {
		log.Printf("SNMP-WriteDone target:%s err:%v took:%dms data:%s\n", config.target, err, d.Milliseconds(), hex.EncodeToString(output))
	},
	ReadDone: func(config *Config, input []byte, err error, d time.Duration) {
		log.Printf("SNMP-ReadDone target:%s err:%v took:%dms data:%s\n", config.target, err, d.Milliseconds(), hex.EncodeToString(input))
	},
	RetryScheduled: MetricLoggingHooks.RetryScheduled,
}

// NoOpLoggingHooks does nothing; it is the merge base every partially
// specified trace is completed against.
var NoOpLoggingHooks = &SessionTrace{
	ConnectStart:   func(config *Config) {},
	ConnectDone:    func(config *Config, err error, d time.Duration) {},
	Error:          func(location string, config *Config, err error) {},
	WriteDone:      func(config *Config, output []byte, err error, d time.Duration) {},
	ReadDone:       func(config *Config, input []byte, err error, d time.Duration) {},
	RetryScheduled: func(config *Config, attempt int, err error) {},
}
