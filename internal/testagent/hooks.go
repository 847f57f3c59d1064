package testagent

import (
	"encoding/hex"
	"log"
	"net"
)

// Hooks defines a structure for handling agent trace events, adapted from
// damianoneill-net/v2/snmp/serverhooks.go's ServerHooks for a responder
// instead of a trap listener.
type Hooks struct {
	// StartListening is called when the agent is about to start serving.
	StartListening func(addr net.Addr)

	// StopListening is called when the agent has stopped serving.
	StopListening func(addr net.Addr, err error)

	// Error is called after an error condition has been detected.
	Error func(addr net.Addr, err error)

	// WriteComplete is called after a response has been written.
	WriteComplete func(addr net.Addr, output []byte, err error)

	// ReadComplete is called after a request has been read.
	ReadComplete func(addr net.Addr, input []byte, err error)
}

// DefaultHooks reports errors only.
var DefaultHooks = &Hooks{
	Error: func(addr net.Addr, err error) {
		log.Printf("testagent-Error source:%s err:%v\n", addr, err)
	},
}

// DiagnosticHooks logs every event with full payload bodies, hex encoded.
var DiagnosticHooks = &Hooks{
	StartListening: func(addr net.Addr) {
		log.Printf("testagent-StartListening address:%s\n", addr)
	},
	StopListening: func(addr net.Addr, err error) {
		log.Printf("testagent-StopListening address:%s err:%v\n", addr, err)
	},
	Error: DefaultHooks.Error,
	WriteComplete: func(addr net.Addr, output []byte, err error) {
		log.Printf("testagent-WriteComplete target:%s err:%v data:%s\n", addr, err, hex.EncodeToString(output))
	},
	ReadComplete: func(addr net.Addr, input []byte, err error) {
		log.Printf("testagent-ReadComplete source:%s err:%v data:%s\n", addr, err, hex.EncodeToString(input))
	},
}

// NoOpHooks does nothing; the merge base any partially specified hook set
// completes against.
var NoOpHooks = &Hooks{
	StartListening: func(addr net.Addr) {},
	StopListening:  func(addr net.Addr, err error) {},
	Error:          func(addr net.Addr, err error) {},
	WriteComplete:  func(addr net.Addr, output []byte, err error) {},
	ReadComplete:   func(addr net.Addr, input []byte, err error) {},
}
