package hostaddr

import "errors"

// Errors returned by endpoint parsing and validation.
var (
	ErrInvalidPort       = errors.New("hostaddr: port must be in range 1..65535")
	ErrInvalidIPv4Tuple  = errors.New("hostaddr: ipv4 tuple must have exactly 4 octets")
	ErrInvalidIPv6Tuple  = errors.New("hostaddr: ipv6 tuple must have exactly 16 octets")
	ErrUnsupportedFormat = errors.New("hostaddr: unsupported endpoint format")
	ErrEmptyHost         = errors.New("hostaddr: host must not be empty")
)
