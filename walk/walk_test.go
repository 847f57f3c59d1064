package walk

import (
	"context"
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/pdu"
	"github.com/damianoneill/snmpkit/snmpval"
)

// fakeStepper serves a fixed, ordered varbind universe, simulating a v1
// GetNext walk or a v2c GetBulk walk over it without any network.
type fakeStepper struct {
	version  pdu.Version
	universe []pdu.Varbind // sorted by OID
	tooBigUntil int         // StepBulk reports tooBig while requested max_repetitions exceeds this
}

func (f *fakeStepper) Version() pdu.Version { return f.version }

func (f *fakeStepper) StepNext(ctx context.Context, cursor oid.OID) (pdu.Varbind, error) {
	for _, vb := range f.universe {
		if cursor.Less(vb.OID) {
			return vb, nil
		}
	}
	return pdu.Varbind{OID: cursor, Value: snmpval.EndOfMibView{}}, nil
}

func (f *fakeStepper) StepBulk(ctx context.Context, nonRepeaters, maxRepetitions int, cursor oid.OID) ([]pdu.Varbind, bool, error) {
	if f.tooBigUntil > 0 && maxRepetitions > f.tooBigUntil {
		return nil, true, nil
	}
	var out []pdu.Varbind
	for _, vb := range f.universe {
		if len(out) >= maxRepetitions {
			break
		}
		if cursor.Less(vb.OID) {
			out = append(out, vb)
		}
	}
	if len(out) == 0 {
		out = append(out, pdu.Varbind{OID: cursor, Value: snmpval.EndOfMibView{}})
	}
	return out, false, nil
}

func v(s string, val snmpval.Value) pdu.Varbind {
	return pdu.Varbind{OID: oid.MustParse(s), Value: val}
}

func TestWalkV1CollectsAllVarbindsUnderSubtree(t *testing.T) {
	stepper := &fakeStepper{
		version: pdu.V1,
		universe: []pdu.Varbind{
			v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a")),
			v("1.3.6.1.2.1.1.2.0", snmpval.OctetString("b")),
			v("1.3.6.1.2.1.1.3.0", snmpval.TimeTicks(7)),
			v("1.3.6.1.2.1.2.1.0", snmpval.Integer32(1)), // outside subtree
		},
	}

	result, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"))
	assert.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, "1.3.6.1.2.1.1.1.0", result[0].OID.String())
	assert.Equal(t, "1.3.6.1.2.1.1.3.0", result[2].OID.String())
}

func TestWalkV2cCollectsAllVarbindsViaBulk(t *testing.T) {
	stepper := &fakeStepper{
		version: pdu.V2c,
		universe: []pdu.Varbind{
			v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a")),
			v("1.3.6.1.2.1.1.2.0", snmpval.OctetString("b")),
			v("1.3.6.1.2.1.1.3.0", snmpval.TimeTicks(7)),
		},
	}

	result, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"))
	assert.NoError(t, err)
	assert.Len(t, result, 3)
}

func TestWalkTerminatesOnEndOfMibViewWithoutIncludingIt(t *testing.T) {
	stepper := &fakeStepper{
		version: pdu.V2c,
		universe: []pdu.Varbind{
			v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a")),
			v("1.3.6.1.2.1.1.2.0", snmpval.OctetString("b")),
			v("1.3.6.1.2.1.1.3.0", snmpval.TimeTicks(7)),
		},
	}

	result, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"))
	assert.NoError(t, err)
	assert.Len(t, result, 3)
	for _, vb := range result {
		assert.False(t, snmpval.IsException(vb.Value))
	}
}

func TestWalkAdaptsBulkSizeOnTooBig(t *testing.T) {
	stepper := &fakeStepper{
		version: pdu.V2c,
		universe: []pdu.Varbind{
			v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a")),
			v("1.3.6.1.2.1.1.2.0", snmpval.OctetString("b")),
		},
		tooBigUntil: 12, // rejects the default 25, accepts 12 after one halving
	}

	result, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"), WithInitialBulkSize(25))
	assert.NoError(t, err)
	assert.Len(t, result, 2)
}

func TestWalkFailsWhenTooBigPersistsAtFloor(t *testing.T) {
	stepper := &fakeStepper{
		version:     pdu.V2c,
		universe:    []pdu.Varbind{v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a"))},
		tooBigUntil: 1, // rejects everything down to and including MinBulkSize
	}

	_, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"), WithInitialBulkSize(MinBulkSize))
	assert.ErrorIs(t, err, ErrBulkFloorRejected)
}

func TestWalkRejectsNilTypedVarbind(t *testing.T) {
	stepper := &fakeStepper{
		version:  pdu.V1,
		universe: []pdu.Varbind{{OID: oid.MustParse("1.3.6.1.2.1.1.1.0"), Value: nil}},
	}

	_, err := Walk(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"))
	assert.ErrorIs(t, err, ErrTypeInformationLost)
}

func TestWalkStreamPullsLazily(t *testing.T) {
	stepper := &fakeStepper{
		version: pdu.V1,
		universe: []pdu.Varbind{
			v("1.3.6.1.2.1.1.1.0", snmpval.OctetString("a")),
			v("1.3.6.1.2.1.1.2.0", snmpval.OctetString("b")),
		},
	}

	stream := WalkStream(context.Background(), stepper, oid.MustParse("1.3.6.1.2.1.1"))
	vb, ok, err := stream.Next(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.3.6.1.2.1.1.1.0", vb.OID.String())

	vb, ok, err = stream.Next(context.Background())
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1.3.6.1.2.1.1.2.0", vb.OID.String())

	_, ok, err = stream.Next(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
}
