package snmp

import (
	"time"

	"github.com/imdario/mergo"

	"github.com/damianoneill/snmpkit/engine"
	"github.com/damianoneill/snmpkit/pdu"
)

// Config defines properties controlling a session's behaviour. Callers
// never mutate this directly; it is built from DefaultConfig by applying
// Options, mirroring SessionConfig/defaultConfig from
// damianoneill-net/v2/snmp/sessionconfig.go.
type Config struct {
	target    string
	community string
	version   pdu.Version
	timeout   time.Duration
	retries   int
	trace     *SessionTrace

	// sharedEngine, when non-nil, is used instead of opening a private
	// socket - the multi-target driver sets this so all its sessions
	// share one engine and one UDP socket.
	sharedEngine *engine.Engine
}

// DefaultConfig is a package-level convenience starting point for option
// application; it is never mutated in place.
var DefaultConfig = Config{
	community: pdu.DefaultCommunity,
	version:   pdu.V2c,
	timeout:   5 * time.Second,
	retries:   3,
	trace:     DefaultLoggingHooks,
}

// Option configures session behaviour.
type Option func(*Config)

// Timeout sets the per-request timeout. Default 5s.
func Timeout(d time.Duration) Option {
	return func(c *Config) { c.timeout = d }
}

// Retries sets how many times a timed-out request is reissued with a fresh
// request-id. Default 3.
func Retries(n int) Option {
	return func(c *Config) { c.retries = n }
}

// WithVersion sets the SNMP version. Default pdu.V2c.
func WithVersion(v pdu.Version) Option {
	return func(c *Config) { c.version = v }
}

// Community sets the community string. Default "public".
func Community(value string) Option {
	return func(c *Config) { c.community = value }
}

// LoggingHooks sets the trace hook set. Default DefaultLoggingHooks.
func LoggingHooks(trace *SessionTrace) Option {
	return func(c *Config) { c.trace = trace }
}

// WithEngine shares an existing engine (and its socket) rather than opening
// a private one for this session. Used by the multi-target driver.
func WithEngine(e *engine.Engine) Option {
	return func(c *Config) { c.sharedEngine = e }
}

func (c *Config) resolveTrace() {
	_ = mergo.Merge(c.trace, NoOpLoggingHooks)
}
