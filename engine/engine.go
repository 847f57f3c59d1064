// Package engine implements the shared-socket request/response correlation
// engine: one UDP socket, one receiver goroutine demultiplexing inbound
// datagrams to waiting callers by request-id, and an atomic counter
// allocating those ids. Generalizes the per-session net.Conn
// request/response loop (damianoneill-net/v2/snmp/session.go) to the single
// shared-socket, many-concurrent-caller model this toolkit's fan-out driver
// needs.
package engine

import (
	"context"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/transport"
)

// maxRequestIDAttempts bounds the request-id allocation retry loop; it is
// far larger than any realistic number of concurrently enrolled requests,
// so exhausting it indicates the correlation table is pathologically full
// rather than ordinary contention.
const maxRequestIDAttempts = 1 << 20

// reply is what the receiver loop hands back to a waiting Send call.
type reply struct {
	msg pdu.Message
	err error
}

type pendingRequest struct {
	replyCh chan reply
}

// Engine owns one UDP socket and the correlation table of requests
// currently awaiting a response on it.
type Engine struct {
	socket       *transport.Socket
	counter      uint32
	correlations sync.Map // int32 request-id -> *pendingRequest
	closed       chan struct{}
	closeOnce    sync.Once
}

// New starts an engine's receiver loop over socket. The engine takes
// ownership of socket: closing the engine closes the socket.
func New(socket *transport.Socket) *Engine {
	e := &Engine{
		socket: socket,
		closed: make(chan struct{}),
	}
	go e.receiveLoop()
	return e
}

// Close shuts the engine down: the socket is closed (unblocking the
// receiver loop's pending read) and any request still awaiting a response
// is delivered ErrEngineClosed.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		close(e.closed)
		err = e.socket.Close()
	})
	return err
}

// Send assigns msg.PDU a fresh request-id, transmits it to addr, and blocks
// until the matching response arrives, timeout elapses, or ctx is done.
func (e *Engine) Send(ctx context.Context, addr *net.UDPAddr, msg pdu.Message, timeout time.Duration) (pdu.Message, error) {
	select {
	case <-e.closed:
		return pdu.Message{}, ErrEngineClosed
	default:
	}

	requestID, err := e.allocateRequestID()
	if err != nil {
		return pdu.Message{}, err
	}
	msg.PDU.RequestID = requestID

	pending := &pendingRequest{replyCh: make(chan reply, 1)}
	e.correlations.Store(requestID, pending)
	defer e.correlations.Delete(requestID)

	encoded, err := msg.Encode()
	if err != nil {
		return pdu.Message{}, errors.Wrap(err, "encode outbound message")
	}
	if err := e.socket.SendTo(encoded, addr); err != nil {
		return pdu.Message{}, errors.Wrap(err, "send outbound message")
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-pending.replyCh:
		return r.msg, r.err
	case <-timer.C:
		return pdu.Message{}, ErrTimeout
	case <-ctx.Done():
		return pdu.Message{}, ctx.Err()
	case <-e.closed:
		return pdu.Message{}, ErrEngineClosed
	}
}

// allocateRequestID picks the next free id: a monotonically increasing
// counter modulo 2^31, skipping 0 and any id currently enrolled in the
// correlation table.
func (e *Engine) allocateRequestID() (int32, error) {
	for attempt := 0; attempt < maxRequestIDAttempts; attempt++ {
		n := atomic.AddUint32(&e.counter, 1) & 0x7FFFFFFF
		if n == 0 {
			continue
		}
		if _, inUse := e.correlations.Load(int32(n)); !inUse {
			return int32(n), nil
		}
	}
	return 0, ErrRequestIDFull
}

// receiveLoop is the engine's single reader: it owns all calls to
// socket.ReceiveFrom, decodes each datagram, and demultiplexes it to the
// waiting Send call by request-id. Unmatched or malformed datagrams are
// dropped silently - a response arriving after its caller timed out is
// indistinguishable from an unsolicited packet.
func (e *Engine) receiveLoop() {
	buf := make([]byte, transport.MaxPayloadSize)
	for {
		n, _, err := e.socket.ReceiveFrom(buf, time.Time{})
		if err != nil {
			return
		}

		data := make([]byte, n)
		copy(data, buf[:n])

		msg, err := pdu.DecodeMessage(data)
		if err != nil {
			continue
		}

		v, ok := e.correlations.LoadAndDelete(msg.PDU.RequestID)
		if !ok {
			continue
		}
		pending := v.(*pendingRequest)
		select {
		case pending.replyCh <- reply{msg: msg}:
		default:
			// Send already gave up (timeout/cancel) and no longer reads;
			// the buffered slot was already consumed or never needed.
		}
	}
}
