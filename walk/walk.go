// Package walk implements subtree traversal: GetNext-driven for SNMPv1,
// adaptive GetBulk-driven for SNMPv2c, plus a streaming variant. It operates
// over the small Stepper interface rather than snmp.Session directly so it
// can be exercised against a fake in tests without a real socket.
package walk

import (
	"context"
	"time"

	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmpval"
)

const (
	// DefaultBulkSize is the max_repetitions a v2c walk starts with.
	DefaultBulkSize = 25
	// MinBulkSize is the floor adaptive sizing backs off to on repeated
	// tooBig responses.
	MinBulkSize = 5
	// MaxBulkSize is the ceiling adaptive sizing grows back toward.
	MaxBulkSize = 100

	// BulkSegmentTimeout is the per-GetBulk-segment deadline within a walk.
	BulkSegmentTimeout = 10 * time.Second
	// MaxWalkDuration bounds a single walk's total elapsed time across all
	// of its segments.
	MaxWalkDuration = 20 * time.Minute
)

// Stepper is the narrow capability a walk needs from a session: advance the
// cursor by one varbind (v1) or by a batch (v2c), and report which SNMP
// version it speaks so the walk can pick its primitive.
type Stepper interface {
	StepNext(ctx context.Context, cursor oid.OID) (pdu.Varbind, error)
	StepBulk(ctx context.Context, nonRepeaters, maxRepetitions int, cursor oid.OID) (varbinds []pdu.Varbind, tooBig bool, err error)
	Version() pdu.Version
}

// Options configures a walk.
type Options struct {
	bulkSize int
}

// Option customizes walk behaviour.
type Option func(*Options)

// WithInitialBulkSize overrides the starting max_repetitions for a v2c
// walk. Clamped to [MinBulkSize, MaxBulkSize].
func WithInitialBulkSize(n int) Option {
	return func(o *Options) { o.bulkSize = n }
}

func resolveOptions(opts []Option) Options {
	o := Options{bulkSize: DefaultBulkSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bulkSize < MinBulkSize {
		o.bulkSize = MinBulkSize
	}
	if o.bulkSize > MaxBulkSize {
		o.bulkSize = MaxBulkSize
	}
	return o
}

// Walk retrieves every varbind under subtree, returning the complete
// accumulated sequence. On a timeout with no retries left it returns the
// error alone, discarding any partial accumulation; callers wanting partial
// results should use WalkStream instead.
func Walk(ctx context.Context, stepper Stepper, subtree oid.OID, opts ...Option) ([]pdu.Varbind, error) {
	stream := WalkStream(ctx, stepper, subtree, opts...)
	var result []pdu.Varbind
	for {
		vb, ok, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, vb)
	}
}

// Stream is a lazy, finite sequence of varbinds pulled from one walk. It is
// not restartable: once exhausted or failed, start a new walk.
type Stream struct {
	stepper  Stepper
	progress *progress
	pending  []pdu.Varbind
	err      error
	deadline time.Time
}

// WalkStream begins a streaming walk. Each Next call may block on a network
// round trip.
func WalkStream(ctx context.Context, stepper Stepper, subtree oid.OID, opts ...Option) *Stream {
	options := resolveOptions(opts)
	return &Stream{
		stepper:  stepper,
		progress: newProgress(subtree.Clone(), options.bulkSize),
		deadline: time.Now().Add(MaxWalkDuration),
	}
}

// Next returns the next varbind in the walk, ok=false once the walk is
// Done, or an error if a segment failed.
func (s *Stream) Next(ctx context.Context) (pdu.Varbind, bool, error) {
	if s.err != nil {
		return pdu.Varbind{}, false, s.err
	}
	for len(s.pending) == 0 && s.progress.state != done {
		if time.Now().After(s.deadline) {
			s.err = ErrWalkCeilingExceeded
			return pdu.Varbind{}, false, s.err
		}
		if err := s.advance(ctx); err != nil {
			s.err = err
			return pdu.Varbind{}, false, err
		}
	}
	if len(s.pending) == 0 {
		return pdu.Varbind{}, false, nil
	}
	vb := s.pending[0]
	s.pending = s.pending[1:]
	return vb, true, nil
}

// advance runs one walk segment: a single GetNext (v1) or one adaptively
// sized GetBulk (v2c), filtering the result down to in-subtree varbinds and
// updating the cursor, or transitioning to Done on termination.
func (s *Stream) advance(ctx context.Context) error {
	if s.stepper.Version() == pdu.V1 {
		return s.advanceGetNext(ctx)
	}
	return s.advanceGetBulk(ctx)
}

func (s *Stream) advanceGetNext(ctx context.Context) error {
	vb, err := s.stepper.StepNext(ctx, s.progress.cursor)
	if err != nil {
		return err
	}
	return s.consume([]pdu.Varbind{vb})
}

func (s *Stream) advanceGetBulk(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, BulkSegmentTimeout)
	defer cancel()

	for {
		vbs, tooBig, err := s.stepper.StepBulk(ctx, 0, s.progress.bulkSize, s.progress.cursor)
		if err != nil {
			return err
		}
		if tooBig {
			if s.progress.bulkSize <= MinBulkSize {
				return ErrBulkFloorRejected
			}
			s.progress.bulkSize /= 2
			if s.progress.bulkSize < MinBulkSize {
				s.progress.bulkSize = MinBulkSize
			}
			continue
		}
		if s.progress.bulkSize < MaxBulkSize {
			s.progress.bulkSize++
		}
		return s.consume(vbs)
	}
}

// consume filters a batch of response varbinds against the subtree,
// enforcing monotonic cursor advance, and terminates the walk on the first
// exception value, lexicographic overflow, or nil-typed varbind.
func (s *Stream) consume(vbs []pdu.Varbind) error {
	for _, vb := range vbs {
		if vb.Value == nil {
			return ErrTypeInformationLost
		}
		if snmpval.IsException(vb.Value) {
			s.progress.state = done
			return nil
		}
		if !vb.OID.HasPrefix(s.progress.subtreePrefix) {
			s.progress.state = done
			return nil
		}
		if len(s.progress.accumulated) > 0 && !s.progress.accumulated[len(s.progress.accumulated)-1].Less(vb.OID) {
			s.progress.state = done
			return nil
		}

		s.pending = append(s.pending, vb)
		s.progress.accumulated = append(s.progress.accumulated, vb.OID)
		s.progress.cursor = vb.OID
	}

	return nil
}
