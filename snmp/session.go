// Package snmp is the single-target driver: the public façade over the
// pdu/engine/transport/hostaddr layers, mirroring the
// Session/SessionFactory shape (damianoneill-net/v2/snmp/session.go,
// sessionfactory.go) but delegating wire framing and socket I/O instead of
// inlining ber.Marshal calls.
package snmp

import (
	"context"
	"net"
	"time"

	goerrors "github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/engine"
	"github.com/damianoneill/snmpkit/hostaddr"
	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmpval"
	"github.com/damianoneill/snmpkit/transport"
	"github.com/damianoneill/snmpkit/walk"
)

// Session provides Get/GetNext/Set/GetBulk against one target.
type Session interface {
	// Get issues a GetRequest for o and returns its sole varbind. Exception
	// values (noSuchObject/noSuchInstance/endOfMibView) are surfaced as
	// errors, never as a returned value.
	Get(ctx context.Context, o oid.OID) (pdu.Varbind, error)

	// GetNext issues a GetNextRequest for o.
	GetNext(ctx context.Context, o oid.OID) (pdu.Varbind, error)

	// Set issues a SetRequest carrying varbinds.
	Set(ctx context.Context, varbinds ...pdu.Varbind) error

	// GetBulk issues a GetBulkRequest. It is v2c-only: calling it on a v1
	// session fails with ErrGetBulkRequiresV2c before any bytes are sent.
	GetBulk(ctx context.Context, nonRepeaters, maxRepetitions int, oids ...oid.OID) ([]pdu.Varbind, error)

	// Walk retrieves every varbind under subtree using GetNext (v1) or
	// adaptive GetBulk (v2c).
	Walk(ctx context.Context, subtree oid.OID, opts ...walk.Option) ([]pdu.Varbind, error)

	// WalkStream begins a lazy, pull-driven walk under subtree.
	WalkStream(ctx context.Context, subtree oid.OID, opts ...walk.Option) *walk.Stream

	// Target returns the resolved remote address this session talks to.
	Target() *net.UDPAddr

	// Config returns the session's effective configuration, read-only.
	Config() Config

	// engine returns the underlying request engine. It is unexported, so
	// only code inside package snmp can call it.
	engine() *engine.Engine

	// Close releases the session's resources. If the session opened its
	// own socket (it was not built with WithEngine), that socket is
	// closed; a shared engine is left running for its other owners.
	Close() error
}

// Factory instantiates sessions against a target.
type Factory interface {
	NewSession(ctx context.Context, target string, opts ...Option) (Session, error)
}

// NewFactory returns the default session factory.
func NewFactory() Factory {
	return &factoryImpl{}
}

type factoryImpl struct{}

func (f *factoryImpl) NewSession(ctx context.Context, target string, opts ...Option) (Session, error) {
	config := DefaultConfig
	config.target = target
	for _, opt := range opts {
		opt(&config)
	}
	config.resolveTrace()

	if config.version != pdu.V1 && config.version != pdu.V2c {
		config.trace.Error("validate version", &config, pdu.ErrUnknownVersion)
		return nil, pdu.ErrUnknownVersion
	}

	addr, err := resolveTarget(target)
	if err != nil {
		config.trace.Error("resolve target", &config, err)
		return nil, err
	}

	eng := config.sharedEngine
	ownsEngine := false
	if eng == nil {
		defer func(begin time.Time) {
			config.trace.ConnectDone(&config, err, time.Since(begin))
		}(time.Now())
		config.trace.ConnectStart(&config)

		socket, sockErr := transport.Open()
		if sockErr != nil {
			err = sockErr
			config.trace.Error("open socket", &config, err)
			return nil, err
		}
		eng = engine.New(socket)
		ownsEngine = true
	}

	return &sessionImpl{config: config, addr: addr, eng: eng, ownsEngine: ownsEngine}, nil
}

type sessionImpl struct {
	config     Config
	addr       *net.UDPAddr
	eng        *engine.Engine
	ownsEngine bool
}

func (s *sessionImpl) Target() *net.UDPAddr { return s.addr }
func (s *sessionImpl) Config() Config       { return s.config }
func (s *sessionImpl) engine() *engine.Engine { return s.eng }

func (s *sessionImpl) Close() error {
	if s.ownsEngine {
		return s.eng.Close()
	}
	return nil
}

func (s *sessionImpl) Get(ctx context.Context, o oid.OID) (pdu.Varbind, error) {
	return s.getLike(ctx, pdu.GetRequest, o)
}

func (s *sessionImpl) GetNext(ctx context.Context, o oid.OID) (pdu.Varbind, error) {
	return s.getLike(ctx, pdu.GetNextRequest, o)
}

func (s *sessionImpl) getLike(ctx context.Context, kind pdu.Kind, o oid.OID) (pdu.Varbind, error) {
	resp, err := s.roundTrip(ctx, func(requestID int32) (pdu.PDU, error) {
		if kind == pdu.GetNextRequest {
			return pdu.NewGetNextRequest(requestID, o)
		}
		return pdu.NewGetRequest(requestID, o)
	})
	if err != nil {
		return pdu.Varbind{}, err
	}

	if err := normalizeErrorStatus(resp.PDU, s.config.version); err != nil {
		return pdu.Varbind{}, err
	}
	if len(resp.PDU.Varbinds) == 0 {
		return pdu.Varbind{}, goerrors.New("snmp: response carried no varbinds")
	}

	vb := resp.PDU.Varbinds[0]
	if err := exceptionError(vb.Value); err != nil {
		return pdu.Varbind{}, err
	}
	return vb, nil
}

func (s *sessionImpl) Set(ctx context.Context, varbinds ...pdu.Varbind) error {
	if len(varbinds) == 0 {
		return ErrEmptyOIDs
	}
	resp, err := s.roundTrip(ctx, func(requestID int32) (pdu.PDU, error) {
		return pdu.NewSetRequest(requestID, varbinds...)
	})
	if err != nil {
		return err
	}
	if resp.PDU.ErrorStatus != pdu.NoError {
		return goerrors.Errorf("snmp: set failed: %s", resp.PDU.ErrorStatus)
	}
	return nil
}

func (s *sessionImpl) GetBulk(ctx context.Context, nonRepeaters, maxRepetitions int, oids ...oid.OID) ([]pdu.Varbind, error) {
	if s.config.version != pdu.V2c {
		return nil, ErrGetBulkRequiresV2c
	}
	if len(oids) == 0 {
		return nil, ErrEmptyOIDs
	}
	resp, err := s.roundTrip(ctx, func(requestID int32) (pdu.PDU, error) {
		return pdu.NewGetBulkRequest(pdu.V2c, requestID, nonRepeaters, maxRepetitions, oids...)
	})
	if err != nil {
		return nil, err
	}
	if resp.PDU.ErrorStatus != pdu.NoError && resp.PDU.ErrorStatus != pdu.TooBig {
		return nil, goerrors.Errorf("snmp: getbulk failed: %s", resp.PDU.ErrorStatus)
	}
	return resp.PDU.Varbinds, nil
}

func (s *sessionImpl) Walk(ctx context.Context, subtree oid.OID, opts ...walk.Option) ([]pdu.Varbind, error) {
	return walk.Walk(ctx, s, subtree, opts...)
}

func (s *sessionImpl) WalkStream(ctx context.Context, subtree oid.OID, opts ...walk.Option) *walk.Stream {
	return walk.WalkStream(ctx, s, subtree, opts...)
}

// Version implements walk.Stepper.
func (s *sessionImpl) Version() pdu.Version { return s.config.version }

// StepNext implements walk.Stepper: a single GetNextRequest, returning the
// raw varbind without exception-to-error translation so the walk can
// recognize an exception value as a termination signal rather than a
// failure.
func (s *sessionImpl) StepNext(ctx context.Context, cursor oid.OID) (pdu.Varbind, error) {
	resp, err := s.roundTrip(ctx, func(requestID int32) (pdu.PDU, error) {
		return pdu.NewGetNextRequest(requestID, cursor)
	})
	if err != nil {
		return pdu.Varbind{}, err
	}
	if err := normalizeErrorStatus(resp.PDU, s.config.version); err != nil {
		return pdu.Varbind{}, err
	}
	if len(resp.PDU.Varbinds) == 0 {
		return pdu.Varbind{}, goerrors.New("snmp: response carried no varbinds")
	}
	return resp.PDU.Varbinds[0], nil
}

// StepBulk implements walk.Stepper: a single GetBulkRequest, reporting
// tooBig separately from a hard error so the walk can adapt bulk size and
// retry from the same cursor.
func (s *sessionImpl) StepBulk(ctx context.Context, nonRepeaters, maxRepetitions int, cursor oid.OID) ([]pdu.Varbind, bool, error) {
	resp, err := s.roundTrip(ctx, func(requestID int32) (pdu.PDU, error) {
		return pdu.NewGetBulkRequest(pdu.V2c, requestID, nonRepeaters, maxRepetitions, cursor)
	})
	if err != nil {
		return nil, false, err
	}
	if resp.PDU.ErrorStatus == pdu.TooBig {
		return nil, true, nil
	}
	if resp.PDU.ErrorStatus != pdu.NoError {
		return nil, false, goerrors.Errorf("snmp: getbulk failed: %s", resp.PDU.ErrorStatus)
	}
	return resp.PDU.Varbinds, false, nil
}

// roundTrip builds a PDU (with a placeholder request-id the engine
// replaces), frames it, and sends it through the session's engine,
// retrying on timeout up to config.retries times.
func (s *sessionImpl) roundTrip(ctx context.Context, build func(requestID int32) (pdu.PDU, error)) (pdu.Message, error) {
	var lastErr error
	for attempt := 0; attempt <= s.config.retries; attempt++ {
		p, err := build(0)
		if err != nil {
			return pdu.Message{}, err
		}
		msg := pdu.Message{Version: s.config.version, Community: []byte(s.config.community), PDU: p}

		resp, err := s.eng.Send(ctx, s.addr, msg, s.config.timeout)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if err != engine.ErrTimeout {
			s.config.trace.Error("round trip", &s.config, err)
			return pdu.Message{}, err
		}
		if attempt < s.config.retries {
			s.config.trace.RetryScheduled(&s.config, attempt+1, err)
		}
	}
	return pdu.Message{}, lastErr
}

// resolveTarget parses a target spelling and resolves it to a concrete UDP
// address via the system resolver.
func resolveTarget(target string) (*net.UDPAddr, error) {
	endpoint, err := hostaddr.Parse(target)
	if err != nil {
		return nil, err
	}
	return transport.ResolveUDPAddr(endpoint)
}

// exceptionError maps a decoded SNMPv2c exception value to its named
// error, or nil if v is not an exception.
func exceptionError(v snmpval.Value) error {
	switch v.(type) {
	case snmpval.NoSuchObject:
		return ErrNoSuchObject
	case snmpval.NoSuchInstance:
		return ErrNoSuchInstance
	case snmpval.EndOfMibView:
		return ErrEndOfMibView
	default:
		return nil
	}
}

// normalizeErrorStatus applies the Get/GetNext genErr heuristic: on
// SNMPv2c, genErr for a Get is reported as noSuchObject; on v1, as
// noSuchName. Never applied to Set.
func normalizeErrorStatus(p pdu.PDU, version pdu.Version) error {
	if p.ErrorStatus == pdu.NoError {
		return nil
	}
	if p.ErrorStatus == pdu.GenErr {
		if version == pdu.V2c {
			return ErrNoSuchObject
		}
		return goerrors.New("snmp: " + pdu.NoSuchName.String())
	}
	return goerrors.Errorf("snmp: request failed: %s", p.ErrorStatus)
}
