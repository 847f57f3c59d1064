package pdu

import "github.com/damianoneill/snmpkit/ber"

// Kind identifies which SNMP PDU variant a PDU value carries.
type Kind int

const (
	GetRequest Kind = iota
	GetNextRequest
	GetBulkRequest
	SetRequest
	Response
	InformRequest
	TrapV2
)

func (k Kind) String() string {
	switch k {
	case GetRequest:
		return "GetRequest"
	case GetNextRequest:
		return "GetNextRequest"
	case GetBulkRequest:
		return "GetBulkRequest"
	case SetRequest:
		return "SetRequest"
	case Response:
		return "Response"
	case InformRequest:
		return "InformRequest"
	case TrapV2:
		return "TrapV2"
	default:
		return "Unknown"
	}
}

// tagForKind maps a PDU kind to its context-specific wire tag.
func tagForKind(k Kind) (ber.Tag, error) {
	switch k {
	case GetRequest:
		return ber.TagGetRequest, nil
	case GetNextRequest:
		return ber.TagGetNextRequest, nil
	case GetBulkRequest:
		return ber.TagGetBulkRequest, nil
	case SetRequest:
		return ber.TagSetRequest, nil
	case Response:
		return ber.TagGetResponse, nil
	case InformRequest:
		return ber.TagInformRequest, nil
	case TrapV2:
		return ber.TagTrapV2, nil
	default:
		return 0, ErrUnknownKind
	}
}

// kindForTag is the inverse of tagForKind.
func kindForTag(t ber.Tag) (Kind, error) {
	switch t {
	case ber.TagGetRequest:
		return GetRequest, nil
	case ber.TagGetNextRequest:
		return GetNextRequest, nil
	case ber.TagGetBulkRequest:
		return GetBulkRequest, nil
	case ber.TagSetRequest:
		return SetRequest, nil
	case ber.TagGetResponse:
		return Response, nil
	case ber.TagInformRequest:
		return InformRequest, nil
	case ber.TagTrapV2:
		return TrapV2, nil
	default:
		return 0, ErrUnknownKind
	}
}
