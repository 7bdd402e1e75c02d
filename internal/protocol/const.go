package protocol

import "fmt"

// Const is the constant table for one protocol version: which value
// types exist, how their payloads are validated, and which value types
// each presentation type may carry.
type Const struct {
	// Version is the base version of this table. Patch revisions that
	// introduce no new constants alias the table of their base version.
	Version string

	// Validators maps every value type known to this version to its
	// payload validator.
	Validators map[SetReq]Validator

	// ValidTypes maps each presentation type known to this version to
	// the value types it may report or be asked to set.
	ValidTypes map[Presentation][]SetReq
}

// HasSetReq reports whether the value type exists in this version.
func (c *Const) HasSetReq(v SetReq) bool {
	_, ok := c.Validators[v]
	return ok
}

// HasPresentation reports whether the presentation type exists in this
// version.
func (c *Const) HasPresentation(p Presentation) bool {
	_, ok := c.ValidTypes[p]
	return ok
}

// ValidatePayload runs the value type's validator against a payload.
func (c *Const) ValidatePayload(v SetReq, value string) error {
	validator, ok := c.Validators[v]
	if !ok {
		return fmt.Errorf("%w: %s in version %s", ErrUnknownValueType, v, c.Version)
	}
	if err := validator(value); err != nil {
		return fmt.Errorf("%s: %w", v, err)
	}
	return nil
}

// consts maps accepted version tokens to their constant tables.
// Built once at startup; tables are never mutated afterwards.
var consts map[string]*Const

func init() {
	c14 := const14()
	c15 := const15(c14)
	c20 := const20(c15)

	consts = map[string]*Const{
		"1.4": c14,
		"1.5": c15,
		"2.0": c20,
		"2.1": c20,
		"2.2": c20,
	}
}

// GetConst returns the constant table governing a protocol version.
// Unknown versions are a hard failure; callers must not fall back to a
// different table.
func GetConst(version string) (*Const, error) {
	c, ok := consts[version]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVersion, version)
	}
	return c, nil
}

// extend creates a new table based on a previous version's, sharing no
// maps with it, so later versions can add entries safely.
func extend(base *Const, version string) *Const {
	c := &Const{
		Version:    version,
		Validators: make(map[SetReq]Validator, len(base.Validators)),
		ValidTypes: make(map[Presentation][]SetReq, len(base.ValidTypes)),
	}
	for v, fn := range base.Validators {
		c.Validators[v] = fn
	}
	for p, types := range base.ValidTypes {
		cp := make([]SetReq, len(types))
		copy(cp, types)
		c.ValidTypes[p] = cp
	}
	return c
}
