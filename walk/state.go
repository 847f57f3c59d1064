package walk

import "github.com/damianoneill/snmpkit/oid"

// state is the walk subsystem's per-call state machine: Walking while the
// cursor is still advancing under the subtree, Done once a response signals
// the walk is finished (exception value, an OID outside the subtree, or a
// non-increasing OID). Stream.consume moves straight from Walking to Done;
// no code path sets the terminating value.
type state int

const (
	walking state = iota
	terminating
	done
)

// progress is the mutable state one Walk/WalkStream call threads through
// its segments: the cursor advances, the accumulator grows, and bulkSize
// adapts to tooBig responses.
type progress struct {
	subtreePrefix oid.OID
	cursor        oid.OID
	accumulated   []oid.OID // OIDs already emitted, for monotonicity bookkeeping only
	bulkSize      int
	state         state
}

func newProgress(subtreePrefix oid.OID, bulkSize int) *progress {
	return &progress{
		subtreePrefix: subtreePrefix,
		cursor:        subtreePrefix,
		bulkSize:      bulkSize,
		state:         walking,
	}
}
