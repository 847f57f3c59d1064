// Package multi is the fan-out driver: it dispatches Get requests across
// many (target, oid) pairs through one shared engine, bounded by
// max_concurrent, generalizing the semaphore-channel pattern the example
// pack's connection-pool implementation uses per-device into one
// process-wide bound shared across all targets.
package multi

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/damianoneill/snmpkit/engine"
	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmp"
	"github.com/damianoneill/snmpkit/transport"
)

// DefaultMaxConcurrent bounds outstanding requests for UDP ephemeral-port
// and OS-buffer friendliness.
const DefaultMaxConcurrent = 50

// Request is one (target, oid) pair to fetch.
type Request struct {
	Target string
	OID    oid.OID
}

// Result is one request's outcome. Err is non-nil on a per-target failure;
// Varbind is the zero value in that case. BatchID is shared by every Result
// from the same GetMulti call, for correlating log lines across a fan-out
// the way the netconf layer correlates RPC request/response pairs by
// message-id.
type Result struct {
	Target  string
	OID     oid.OID
	Varbind pdu.Varbind
	Err     error
	BatchID string
}

// Key identifies a Result in Map-shaped output.
type Key struct {
	Target string
	OID    string
}

// Options configures a fan-out call.
type Options struct {
	maxConcurrent int
	timeout       time.Duration
	sessionOpts   []snmp.Option
}

// Option customizes fan-out behaviour.
type Option func(*Options)

// MaxConcurrent bounds outstanding requests. Default DefaultMaxConcurrent.
func MaxConcurrent(n int) Option { return func(o *Options) { o.maxConcurrent = n } }

// Timeout sets the per-request timeout passed through to each session.
func Timeout(d time.Duration) Option { return func(o *Options) { o.timeout = d } }

// SessionOptions applies additional snmp.Option values to every session the
// fan-out opens (e.g. Community, WithVersion).
func SessionOptions(opts ...snmp.Option) Option {
	return func(o *Options) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

func resolveOptions(opts []Option) Options {
	o := Options{maxConcurrent: DefaultMaxConcurrent}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxConcurrent <= 0 {
		o.maxConcurrent = DefaultMaxConcurrent
	}
	return o
}

// GetMulti issues one Get per request, sharing a single engine (and its UDP
// socket) across every session it opens, bounded by max_concurrent. It
// returns results in the same order as requests, each result already
// carrying its Target - this one return value covers both the "list" and
// "with_targets" output shapes; see Map for the keyed-by-(target,oid) shape.
//
// Global-failure collapse: if every result failed with the same error, a
// single error is returned instead of a same-looking list, so a caller
// polling a downed subnet does not have to sift through N identical
// failures.
func GetMulti(ctx context.Context, factory snmp.Factory, requests []Request, opts ...Option) ([]Result, error) {
	options := resolveOptions(opts)
	results := make([]Result, len(requests))
	batchID := uuid.New().String()

	socket, err := transport.Open()
	if err != nil {
		return nil, err
	}
	sharedEngine := engine.New(socket)
	defer sharedEngine.Close()

	sem := semaphore.NewWeighted(int64(options.maxConcurrent))
	group, groupCtx := errgroup.WithContext(ctx)

	for i, req := range requests {
		i, req := i, req
		if err := sem.Acquire(groupCtx, 1); err != nil {
			results[i] = Result{Target: req.Target, OID: req.OID, Err: err, BatchID: batchID}
			continue
		}
		group.Go(func() error {
			defer sem.Release(1)
			results[i] = fetchOne(groupCtx, factory, sharedEngine, req, options)
			results[i].BatchID = batchID
			return nil
		})
	}
	_ = group.Wait()

	if collapsed, ok := collapseGlobalFailure(results); ok {
		return nil, collapsed
	}
	return results, nil
}

// Map runs GetMulti and reshapes its output keyed by (target, oid).
func Map(ctx context.Context, factory snmp.Factory, requests []Request, opts ...Option) (map[Key]Result, error) {
	results, err := GetMulti(ctx, factory, requests, opts...)
	if err != nil {
		return nil, err
	}
	out := make(map[Key]Result, len(results))
	for _, r := range results {
		out[Key{Target: r.Target, OID: r.OID.String()}] = r
	}
	return out, nil
}

func fetchOne(ctx context.Context, factory snmp.Factory, sharedEngine *engine.Engine, req Request, options Options) Result {
	sessionOpts := append([]snmp.Option{snmp.WithEngine(sharedEngine)}, options.sessionOpts...)
	if options.timeout > 0 {
		sessionOpts = append(sessionOpts, snmp.Timeout(options.timeout))
	}

	session, err := factory.NewSession(ctx, req.Target, sessionOpts...)
	if err != nil {
		return Result{Target: req.Target, OID: req.OID, Err: err}
	}
	defer session.Close()

	vb, err := session.Get(ctx, req.OID)
	return Result{Target: req.Target, OID: req.OID, Varbind: vb, Err: err}
}

// collapseGlobalFailure reports whether every result failed with the same
// error string, returning that single error if so.
func collapseGlobalFailure(results []Result) (error, bool) {
	if len(results) == 0 {
		return nil, false
	}
	first := results[0].Err
	if first == nil {
		return nil, false
	}
	for _, r := range results[1:] {
		if r.Err == nil || r.Err.Error() != first.Error() {
			return nil, false
		}
	}
	return first, true
}
