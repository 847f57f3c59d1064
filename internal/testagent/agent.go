// Package testagent is a UDP-based SNMP agent simulator used by this
// module's own integration tests. It is adapted from the trap receiver in
// damianoneill-net/v2/snmp/server.go and serverfactory.go: the same "bind
// one UDP socket, decode each datagram, dispatch to a handler" skeleton,
// repurposed from logging-only trap receipt into a real request/response
// responder driving Get/GetNext/GetBulk/Set against an in-memory varbind
// store.
package testagent

import (
	"net"
	"sort"
	"sync"

	"github.com/imdario/mergo"

	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmpval"
)

// Config controls agent behaviour.
type Config struct {
	trace *Hooks

	// maxRepetitionsPerResponse caps how large a max_repetitions a GetBulk
	// response honors; a request above it gets a tooBig response instead,
	// simulating an agent with a packet-size limit.
	maxRepetitionsPerResponse int
}

var defaultConfig = Config{trace: DefaultHooks}

// Option configures an Agent.
type Option func(*Config)

// WithHooks installs a trace hook set. Default DefaultHooks.
func WithHooks(h *Hooks) Option { return func(c *Config) { c.trace = h } }

// WithMaxRepetitionsPerResponse caps GetBulk response size; requests
// exceeding it receive a tooBig error-status. Zero (the default) means
// unlimited.
func WithMaxRepetitionsPerResponse(n int) Option {
	return func(c *Config) { c.maxRepetitionsPerResponse = n }
}

func (c *Config) resolveHooks() {
	_ = mergo.Merge(c.trace, NoOpHooks)
}

// Agent simulates an SNMP responder over one UDP socket.
type Agent struct {
	conn   *net.UDPConn
	config Config

	mu    sync.Mutex
	store []pdu.Varbind // sorted ascending by OID
}

// New binds an agent to a loopback ephemeral port and starts serving.
func New(opts ...Option) (*Agent, error) {
	config := defaultConfig
	for _, opt := range opts {
		opt(&config)
	}
	config.resolveHooks()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		return nil, err
	}

	a := &Agent{conn: conn, config: config}
	a.serve()
	return a, nil
}

// LocalAddr returns the address callers should target.
func (a *Agent) LocalAddr() *net.UDPAddr {
	return a.conn.LocalAddr().(*net.UDPAddr)
}

// Close stops the agent.
func (a *Agent) Close() error {
	return a.conn.Close()
}

// SetVarbinds replaces the agent's simulated MIB content.
func (a *Agent) SetVarbinds(vbs []pdu.Varbind) {
	a.mu.Lock()
	defer a.mu.Unlock()

	sorted := make([]pdu.Varbind, len(vbs))
	copy(sorted, vbs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].OID.Less(sorted[j].OID) })
	a.store = sorted
}

func (a *Agent) serve() {
	go func() {
		a.config.trace.StartListening(a.conn.LocalAddr())
		err := a.listen()
		a.config.trace.StopListening(a.conn.LocalAddr(), err)
	}()
}

func (a *Agent) listen() error {
	buf := make([]byte, 65507)
	for {
		n, addr, err := a.conn.ReadFromUDP(buf)
		if err != nil {
			return err
		}
		a.config.trace.ReadComplete(addr, buf[:n], nil)

		data := make([]byte, n)
		copy(data, buf[:n])

		if err := a.handleDatagram(data, addr); err != nil {
			a.config.trace.Error(addr, err)
		}
	}
}

func (a *Agent) handleDatagram(data []byte, addr *net.UDPAddr) error {
	msg, err := pdu.DecodeMessage(data)
	if err != nil {
		return err
	}

	respPDU, err := a.respond(msg)
	if err != nil {
		return err
	}

	resp := pdu.Message{Version: msg.Version, Community: msg.Community, PDU: respPDU}
	encoded, err := resp.Encode()
	if err != nil {
		return err
	}

	_, err = a.conn.WriteToUDP(encoded, addr)
	a.config.trace.WriteComplete(addr, encoded, err)
	return err
}

func (a *Agent) respond(msg pdu.Message) (pdu.PDU, error) {
	switch msg.PDU.Kind {
	case pdu.GetRequest:
		return a.respondGet(msg.PDU)
	case pdu.GetNextRequest:
		return a.respondGetNext(msg.PDU)
	case pdu.GetBulkRequest:
		return a.respondGetBulk(msg.PDU)
	case pdu.SetRequest:
		return a.respondSet(msg.PDU)
	default:
		return pdu.NewResponse(msg.PDU.RequestID, pdu.GenErr, 1, msg.PDU.Varbinds)
	}
}

func (a *Agent) respondGet(p pdu.PDU) (pdu.PDU, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]pdu.Varbind, len(p.Varbinds))
	for i, req := range p.Varbinds {
		if vb, ok := a.lookupExact(req.OID); ok {
			out[i] = vb
		} else {
			out[i] = pdu.Varbind{OID: req.OID, Value: snmpval.NoSuchObject{}}
		}
	}
	return pdu.NewResponse(p.RequestID, pdu.NoError, 0, out)
}

func (a *Agent) respondGetNext(p pdu.PDU) (pdu.PDU, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]pdu.Varbind, len(p.Varbinds))
	for i, req := range p.Varbinds {
		if vb, ok := a.lookupNext(req.OID); ok {
			out[i] = vb
		} else {
			out[i] = pdu.Varbind{OID: req.OID, Value: snmpval.EndOfMibView{}}
		}
	}
	return pdu.NewResponse(p.RequestID, pdu.NoError, 0, out)
}

func (a *Agent) respondGetBulk(p pdu.PDU) (pdu.PDU, error) {
	if a.config.maxRepetitionsPerResponse > 0 && p.MaxRepetitions > a.config.maxRepetitionsPerResponse {
		return pdu.NewResponse(p.RequestID, pdu.TooBig, 1, nil)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var out []pdu.Varbind
	nonRepeaters := p.NonRepeaters
	for i, req := range p.Varbinds {
		if i < nonRepeaters {
			if vb, ok := a.lookupNext(req.OID); ok {
				out = append(out, vb)
			} else {
				out = append(out, pdu.Varbind{OID: req.OID, Value: snmpval.EndOfMibView{}})
			}
			continue
		}
		cursor := req.OID
		got := 0
		for got < p.MaxRepetitions {
			vb, ok := a.lookupNext(cursor)
			if !ok {
				out = append(out, pdu.Varbind{OID: cursor, Value: snmpval.EndOfMibView{}})
				break
			}
			out = append(out, vb)
			cursor = vb.OID
			got++
		}
	}
	return pdu.NewResponse(p.RequestID, pdu.NoError, 0, out)
}

func (a *Agent) respondSet(p pdu.PDU) (pdu.PDU, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, req := range p.Varbinds {
		a.upsert(req)
	}
	return pdu.NewResponse(p.RequestID, pdu.NoError, 0, p.Varbinds)
}

// lookupExact, lookupNext, and upsert assume a.mu is already held.

func (a *Agent) lookupExact(o oid.OID) (pdu.Varbind, bool) {
	for _, vb := range a.store {
		if vb.OID.Equal(o) {
			return vb, true
		}
	}
	return pdu.Varbind{}, false
}

func (a *Agent) lookupNext(o oid.OID) (pdu.Varbind, bool) {
	for _, vb := range a.store {
		if o.Less(vb.OID) {
			return vb, true
		}
	}
	return pdu.Varbind{}, false
}

func (a *Agent) upsert(vb pdu.Varbind) {
	for i, existing := range a.store {
		if existing.OID.Equal(vb.OID) {
			a.store[i] = vb
			return
		}
	}
	a.store = append(a.store, vb)
	sort.Slice(a.store, func(i, j int) bool { return a.store[i].OID.Less(a.store[j].OID) })
}
