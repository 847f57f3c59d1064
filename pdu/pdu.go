package pdu

import (
	"github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/ber"
	"github.com/damianoneill/snmpkit/oid"
)

// PDU is a tagged SNMP protocol data unit. For a GetBulkRequest, the wire
// position otherwise occupied by ErrorStatus and ErrorIndex instead carries
// NonRepeaters and MaxRepetitions (RFC-1905 §4.2.3); the builders keep these
// as distinct named fields rather than aliasing them, so callers never read
// an ErrorStatus value that actually means "max_repetitions" by accident.
type PDU struct {
	Kind           Kind
	RequestID      int32
	ErrorStatus    ErrorStatus
	ErrorIndex     int
	Varbinds       []Varbind
	NonRepeaters   int
	MaxRepetitions int
}

// NewGetRequest builds a GetRequest PDU with one Null-valued varbind per
// OID.
func NewGetRequest(requestID int32, oids ...oid.OID) (PDU, error) {
	return newReadRequest(GetRequest, requestID, oids)
}

// NewGetNextRequest builds a GetNextRequest PDU.
func NewGetNextRequest(requestID int32, oids ...oid.OID) (PDU, error) {
	return newReadRequest(GetNextRequest, requestID, oids)
}

func newReadRequest(kind Kind, requestID int32, oids []oid.OID) (PDU, error) {
	if len(oids) == 0 {
		return PDU{}, ErrEmptyVarbinds
	}
	varbinds := make([]Varbind, len(oids))
	for i, o := range oids {
		varbinds[i] = NullVarbind(o)
	}
	return PDU{Kind: kind, RequestID: requestID, Varbinds: varbinds}, nil
}

// NewSetRequest builds a SetRequest PDU carrying the given (OID, value)
// varbinds.
func NewSetRequest(requestID int32, varbinds ...Varbind) (PDU, error) {
	if len(varbinds) == 0 {
		return PDU{}, ErrEmptyVarbinds
	}
	return PDU{Kind: SetRequest, RequestID: requestID, Varbinds: varbinds}, nil
}

// NewGetBulkRequest builds a GetBulkRequest PDU. GetBulk is a v2c-only
// construct; building one against v1 is rejected before any bytes are sent.
func NewGetBulkRequest(version Version, requestID int32, nonRepeaters, maxRepetitions int, oids ...oid.OID) (PDU, error) {
	if version != V2c {
		return PDU{}, ErrGetBulkRequiresV2c
	}
	if len(oids) == 0 {
		return PDU{}, ErrEmptyVarbinds
	}
	varbinds := make([]Varbind, len(oids))
	for i, o := range oids {
		varbinds[i] = NullVarbind(o)
	}
	return PDU{
		Kind:           GetBulkRequest,
		RequestID:      requestID,
		Varbinds:       varbinds,
		NonRepeaters:   nonRepeaters,
		MaxRepetitions: maxRepetitions,
	}, nil
}

// NewResponse builds a Response PDU. errorIndex must be 0 exactly when
// errorStatus is NoError.
func NewResponse(requestID int32, errorStatus ErrorStatus, errorIndex int, varbinds []Varbind) (PDU, error) {
	p := PDU{
		Kind:        Response,
		RequestID:   requestID,
		ErrorStatus: errorStatus,
		ErrorIndex:  errorIndex,
		Varbinds:    varbinds,
	}
	if err := Validate(p); err != nil {
		return PDU{}, err
	}
	return p, nil
}

// NewInformRequest builds an InformRequest PDU.
func NewInformRequest(requestID int32, varbinds []Varbind) (PDU, error) {
	if len(varbinds) == 0 {
		return PDU{}, ErrEmptyVarbinds
	}
	return PDU{Kind: InformRequest, RequestID: requestID, Varbinds: varbinds}, nil
}

// NewTrapV2 builds a TrapV2 PDU.
func NewTrapV2(requestID int32, varbinds []Varbind) (PDU, error) {
	if len(varbinds) == 0 {
		return PDU{}, ErrEmptyVarbinds
	}
	return PDU{Kind: TrapV2, RequestID: requestID, Varbinds: varbinds}, nil
}

// Validate checks the structural invariants every PDU must satisfy before
// encoding, independent of kind-specific construction rules.
func Validate(p PDU) error {
	if p.Kind == Response && (p.ErrorIndex == 0) != (p.ErrorStatus == NoError) {
		return ErrInconsistentError
	}
	if p.Kind == GetBulkRequest && p.MaxRepetitions > 0 {
		if p.NonRepeaters+1 > len(p.Varbinds) {
			return ErrNonRepeatersTooHigh
		}
	}
	return nil
}

// Encode renders p's content SEQUENCE (request-id, error-status/non-reps,
// error-index/max-reps, varbind list) wrapped in its kind's context-specific
// tag.
func (p PDU) Encode() ([]byte, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	tag, err := tagForKind(p.Kind)
	if err != nil {
		return nil, err
	}

	secondField := int64(p.ErrorStatus)
	thirdField := int64(p.ErrorIndex)
	if p.Kind == GetBulkRequest {
		secondField = int64(p.NonRepeaters)
		thirdField = int64(p.MaxRepetitions)
	}

	varbindBytes, err := encodeVarbinds(p.Varbinds)
	if err != nil {
		return nil, errors.Wrap(err, "encode pdu varbinds")
	}

	content := ber.EncodeInteger(int64(p.RequestID))
	content = append(content, ber.EncodeInteger(secondField)...)
	content = append(content, ber.EncodeInteger(thirdField)...)
	content = append(content, varbindBytes...)

	return ber.EncodeTLV(tag, content), nil
}

// DecodePDU reads one PDU TLV from the front of data.
func DecodePDU(data []byte) (p PDU, rest []byte, err error) {
	raw, rest, err := ber.DecodeTLV(data)
	if err != nil {
		return PDU{}, nil, errors.Wrap(err, "decode pdu tlv")
	}

	kind, err := kindForTag(raw.Tag)
	if err != nil {
		return PDU{}, nil, err
	}

	requestID, after, err := ber.DecodeInteger(raw.Content)
	if err != nil {
		return PDU{}, nil, errors.Wrap(err, "decode pdu request-id")
	}

	second, after, err := ber.DecodeInteger(after)
	if err != nil {
		return PDU{}, nil, errors.Wrap(err, "decode pdu error-status/non-repeaters")
	}

	third, after, err := ber.DecodeInteger(after)
	if err != nil {
		return PDU{}, nil, errors.Wrap(err, "decode pdu error-index/max-repetitions")
	}

	varbinds, after, err := decodeVarbinds(after)
	if err != nil {
		return PDU{}, nil, err
	}
	if len(after) != 0 {
		return PDU{}, nil, errors.New("pdu: trailing bytes after pdu content")
	}

	p = PDU{Kind: kind, RequestID: int32(requestID), Varbinds: varbinds}
	if kind == GetBulkRequest {
		p.NonRepeaters = int(second)
		p.MaxRepetitions = int(third)
	} else {
		p.ErrorStatus = ErrorStatus(second)
		p.ErrorIndex = int(third)
	}

	if err := checkTypePreservation(p.Varbinds); err != nil {
		return PDU{}, nil, err
	}

	return p, rest, nil
}

// checkTypePreservation fails decode if any varbind's value is missing
// (nil interface) despite successful sequence decode - a regression in the
// codec path that must never silently become an inferred type.
func checkTypePreservation(varbinds []Varbind) error {
	for _, vb := range varbinds {
		if vb.Value == nil {
			return ErrTypeInformationLost
		}
	}
	return nil
}
