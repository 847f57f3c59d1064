// Package mib provides a static, bidirectional registry mapping well-known
// symbolic MIB object names to their numeric OIDs, the way a MIB compiler's
// output is consumed at runtime. It ships a fixed table and never parses
// MIB text itself; MIB text compilation is treated as an external
// collaborator's concern.
package mib

import (
	"errors"
	"sort"
	"strings"

	"github.com/damianoneill/snmpkit/oid"
)

// Errors returned by registry lookups.
var (
	ErrNotFound = errors.New("mib: name not found")
)

// Registry is a static bidirectional name<->OID table.
type Registry struct {
	byName map[string]oid.OID
}

// Entry is one static table row: a symbolic name and its dotted OID string.
type Entry struct {
	Name string
	OID  string
}

// wellKnownObjects is the static table this registry is built from: a
// representative slice of the MIB-II system/interfaces groups and the
// DOCSIS-relevant ifTable columns this toolkit's target fleets poll most.
var wellKnownObjects = []Entry{
	{"sysDescr", "1.3.6.1.2.1.1.1"},
	{"sysObjectID", "1.3.6.1.2.1.1.2"},
	{"sysUpTime", "1.3.6.1.2.1.1.3"},
	{"sysContact", "1.3.6.1.2.1.1.4"},
	{"sysName", "1.3.6.1.2.1.1.5"},
	{"sysLocation", "1.3.6.1.2.1.1.6"},
	{"sysServices", "1.3.6.1.2.1.1.7"},

	{"ifNumber", "1.3.6.1.2.1.2.1"},
	{"ifIndex", "1.3.6.1.2.1.2.2.1.1"},
	{"ifDescr", "1.3.6.1.2.1.2.2.1.2"},
	{"ifType", "1.3.6.1.2.1.2.2.1.3"},
	{"ifMtu", "1.3.6.1.2.1.2.2.1.4"},
	{"ifSpeed", "1.3.6.1.2.1.2.2.1.5"},
	{"ifPhysAddress", "1.3.6.1.2.1.2.2.1.6"},
	{"ifAdminStatus", "1.3.6.1.2.1.2.2.1.7"},
	{"ifOperStatus", "1.3.6.1.2.1.2.2.1.8"},
	{"ifLastChange", "1.3.6.1.2.1.2.2.1.9"},
	{"ifInOctets", "1.3.6.1.2.1.2.2.1.10"},
	{"ifInUcastPkts", "1.3.6.1.2.1.2.2.1.11"},
	{"ifInDiscards", "1.3.6.1.2.1.2.2.1.13"},
	{"ifInErrors", "1.3.6.1.2.1.2.2.1.14"},
	{"ifOutOctets", "1.3.6.1.2.1.2.2.1.16"},
	{"ifOutUcastPkts", "1.3.6.1.2.1.2.2.1.17"},
	{"ifOutDiscards", "1.3.6.1.2.1.2.2.1.19"},
	{"ifOutErrors", "1.3.6.1.2.1.2.2.1.20"},
	{"ifHighSpeed", "1.3.6.1.2.1.31.1.1.1.15"},
	{"ifHCInOctets", "1.3.6.1.2.1.31.1.1.1.6"},
	{"ifHCOutOctets", "1.3.6.1.2.1.31.1.1.1.10"},
	{"ifName", "1.3.6.1.2.1.31.1.1.1.1"},
	{"ifAlias", "1.3.6.1.2.1.31.1.1.1.18"},

	// DOCSIS downstream/upstream channel tables (docsIfDownstreamChannelTable
	// / docsIfUpstreamChannelTable) commonly polled across cable-modem
	// fleets.
	{"docsIfDownChannelFrequency", "1.3.6.1.2.1.10.127.1.1.1.1.2"},
	{"docsIfDownChannelPower", "1.3.6.1.2.1.10.127.1.1.1.1.6"},
	{"docsIfSigQSignalNoise", "1.3.6.1.2.1.10.127.1.1.4.1.5"},
	{"docsIfUpChannelFrequency", "1.3.6.1.2.1.10.127.1.1.2.1.2"},
	{"docsIfCmStatusValue", "1.3.6.1.2.1.10.127.1.2.2.1.1"},
}

// Default is the package-wide registry built from wellKnownObjects.
var Default = New(wellKnownObjects)

// New builds an independent Registry from a table of name/oid-string pairs.
// The result holds only the given entries, not Default's, and building it
// leaves Default unchanged.
func New(entries []Entry) *Registry {
	r := &Registry{
		byName: make(map[string]oid.OID, len(entries)),
	}
	for _, e := range entries {
		r.byName[e.Name] = oid.MustParse(e.OID)
	}
	return r
}

// Lookup resolves a bare symbolic name to its OID.
func (r *Registry) Lookup(name string) (oid.OID, error) {
	o, ok := r.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	return o.Clone(), nil
}

// Resolve resolves a "name" or "name.instance" form to a fully-qualified
// OID, e.g. "sysDescr.0" -> sysDescr's OID with [0] appended.
func (r *Registry) Resolve(nameWithInstance string) (oid.OID, error) {
	name, instance, hasInstance := strings.Cut(nameWithInstance, ".")

	base, ok := r.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	if !hasInstance || instance == "" {
		return base.Clone(), nil
	}

	// A bare numeric suffix (e.g. "0") can be shorter than oid.Parse's
	// 2-component minimum, so instances are parsed directly here rather than
	// through oid.Parse.
	suffix, err := parseInstanceSuffix(instance)
	if err != nil {
		return nil, err
	}
	return base.Append(suffix...), nil
}

// ReverseLookup finds the symbolic name for o. An exact match returns the
// name with an empty remainder. Otherwise it returns the longest registered
// ancestor's name and the remaining suffix as the instance; if no ancestor
// is registered, ok is false and the caller should fall back to numeric
// display.
func (r *Registry) ReverseLookup(o oid.OID) (name string, instance oid.OID, ok bool) {
	bestLen := -1
	bestName := ""
	for n, candidate := range r.byName {
		if o.HasPrefix(candidate) && len(candidate) > bestLen {
			bestLen = len(candidate)
			bestName = n
		}
	}
	if bestLen < 0 {
		return "", nil, false
	}
	return bestName, o[bestLen:], true
}

// Children returns the names of all registered objects whose OID is exactly
// one component longer than o and has o as a prefix.
func (r *Registry) Children(o oid.OID) []string {
	var children []string
	for n, candidate := range r.byName {
		if len(candidate) == len(o)+1 && candidate.HasPrefix(o) {
			children = append(children, n)
		}
	}
	sort.Strings(children)
	return children
}

// parseInstanceSuffix parses a dotted instance string of any length
// (including a single component, which oid.Parse rejects as too short
// since it enforces the >=2-component OID invariant).
func parseInstanceSuffix(s string) ([]int, error) {
	if s == "" {
		return nil, ErrNotFound
	}
	parts := strings.Split(s, ".")
	components := make([]int, len(parts))
	for i, p := range parts {
		n, err := parseNonNegativeInt(p)
		if err != nil {
			return nil, err
		}
		components[i] = n
	}
	return components, nil
}

func parseNonNegativeInt(s string) (int, error) {
	n := 0
	if s == "" {
		return 0, ErrNotFound
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, ErrNotFound
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
