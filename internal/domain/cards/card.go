package cards

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the printed card type as published by the card database.
type Type string

const (
	TypeIdentity  Type = "Identity"
	TypeEvent     Type = "Event"
	TypeHardware  Type = "Hardware"
	TypeResource  Type = "Resource"
	TypeAgenda    Type = "Agenda"
	TypeAsset     Type = "Asset"
	TypeUpgrade   Type = "Upgrade"
	TypeOperation Type = "Operation"
	TypeProgram   Type = "Program"
	TypeICE       Type = "ICE"
)

// Types lists every known card type.
var Types = []Type{
	TypeIdentity,
	TypeEvent,
	TypeHardware,
	TypeResource,
	TypeAgenda,
	TypeAsset,
	TypeUpgrade,
	TypeOperation,
	TypeProgram,
	TypeICE,
}

// ParseType maps a raw type string (name or type code) onto a Type.
func ParseType(raw string) (Type, error) {
	raw = strings.TrimSpace(raw)
	for _, t := range Types {
		if strings.EqualFold(raw, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown card type %q", raw)
}

// CanonicalType returns the Type that raw names, or raw itself when it
// names no known type.
func CanonicalType(raw string) Type {
	if t, err := ParseType(raw); err == nil {
		return t
	}
	return Type(raw)
}

const (
	SideCorp   = "Corp"
	SideRunner = "Runner"
)

// subtypeSeparator splits the flat subtype line, e.g. "Sentry - Tracer - Observer".
const subtypeSeparator = " - "

// ParseSubtypes splits a raw subtype line into its keywords.
func ParseSubtypes(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, subtypeSeparator)
	subtypes := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			subtypes = append(subtypes, p)
		}
	}
	return subtypes
}

// CardRecord is a single card of the catalog. Records are shared between
// snapshots and requests and must never be modified after loading.
type CardRecord struct {
	Code       string
	Title      string
	Type       Type
	Subtypes   []string
	Side       string
	Faction    string
	Uniqueness bool
	URL        string

	Cost            *int
	FactionCost     *int
	Strength        *int
	MemoryUnits     *int
	Trash           *int
	AdvancementCost *int
	MinimumDeckSize *int
	InfluenceLimit  *int
	AgendaPoints    *int
	BaseLink        *int
}

// HasSubtype reports whether the card carries the keyword, ignoring case.
func (c *CardRecord) HasSubtype(keyword string) bool {
	for _, s := range c.Subtypes {
		if strings.EqualFold(s, keyword) {
			return true
		}
	}
	return false
}

// SubtypeLine joins the subtypes back into their printed form.
func (c *CardRecord) SubtypeLine() string {
	return strings.Join(c.Subtypes, subtypeSeparator)
}

// NumericCode returns the code as a number, or -1 when it is not numeric.
func (c *CardRecord) NumericCode() int {
	n, err := strconv.Atoi(c.Code)
	if err != nil {
		return -1
	}
	return n
}

// Validate checks the fields every record must carry.
func (c *CardRecord) Validate() error {
	if strings.TrimSpace(c.Code) == "" {
		return fmt.Errorf("card has no code")
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("card %s has no title", c.Code)
	}
	if _, err := ParseType(string(c.Type)); err != nil {
		return fmt.Errorf("card %s: %w", c.Code, err)
	}
	return nil
}

// Canonical returns the record with its type spelled as the Type constant.
// The receiver is returned unchanged when it already is, otherwise a copy.
func (c *CardRecord) Canonical() *CardRecord {
	t := CanonicalType(string(c.Type))
	if t == c.Type {
		return c
	}
	fixed := *c
	fixed.Type = t
	return &fixed
}

// IntValue dereferences an optional attribute, returning 0 when absent.
func IntValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// Int returns a pointer to v.
func Int(v int) *int {
	return &v
}
