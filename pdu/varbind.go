package pdu

import (
	"github.com/pkg/errors"

	"github.com/damianoneill/snmpkit/ber"
	"github.com/damianoneill/snmpkit/oid"
	"github.com/damianoneill/snmpkit/snmpval"
)

// Varbind is a single (OID, value) pair. The value carries its own SNMP
// type tag; nothing here infers one.
type Varbind struct {
	OID   oid.OID
	Value snmpval.Value
}

// NullVarbind builds a request-placeholder varbind: the given OID with a
// Null value, as used in the varbind list of Get/GetNext/GetBulk requests.
func NullVarbind(o oid.OID) Varbind {
	return Varbind{OID: o, Value: snmpval.Null{}}
}

// Encode renders vb as a SEQUENCE of OID and value.
func (vb Varbind) Encode() ([]byte, error) {
	oidBytes, err := ber.EncodeOID(vb.OID)
	if err != nil {
		return nil, errors.Wrap(err, "encode varbind oid")
	}
	if vb.Value == nil {
		return nil, errors.New("pdu: varbind has a nil value")
	}
	content := append(oidBytes, vb.Value.Encode()...)
	return ber.EncodeSequence(content), nil
}

// decodeVarbind reads one varbind SEQUENCE from the front of data.
func decodeVarbind(data []byte) (vb Varbind, rest []byte, err error) {
	seqContent, rest, err := ber.DecodeSequence(data)
	if err != nil {
		return Varbind{}, nil, errors.Wrap(err, "decode varbind sequence")
	}

	o, afterOID, err := ber.DecodeOID(seqContent)
	if err != nil {
		return Varbind{}, nil, errors.Wrap(err, "decode varbind oid")
	}

	value, afterValue, err := snmpval.Decode(afterOID)
	if err != nil {
		return Varbind{}, nil, errors.Wrap(err, "decode varbind value")
	}
	if len(afterValue) != 0 {
		return Varbind{}, nil, errors.New("pdu: trailing bytes after varbind value")
	}

	return Varbind{OID: oid.OID(o), Value: value}, rest, nil
}

// encodeVarbinds renders a varbind list as one SEQUENCE OF varbind.
func encodeVarbinds(varbinds []Varbind) ([]byte, error) {
	var content []byte
	for _, vb := range varbinds {
		encoded, err := vb.Encode()
		if err != nil {
			return nil, err
		}
		content = append(content, encoded...)
	}
	return ber.EncodeSequence(content), nil
}

// decodeVarbinds reads a SEQUENCE OF varbind from the front of data.
func decodeVarbinds(data []byte) ([]Varbind, []byte, error) {
	seqContent, rest, err := ber.DecodeSequence(data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "decode varbind list")
	}

	var varbinds []Varbind
	for len(seqContent) > 0 {
		var vb Varbind
		vb, seqContent, err = decodeVarbind(seqContent)
		if err != nil {
			return nil, nil, err
		}
		varbinds = append(varbinds, vb)
	}
	return varbinds, rest, nil
}
