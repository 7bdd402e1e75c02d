package protocol

import (
	"fmt"
	"sync"
)

// Schema maps value types to the validator that gates them for one
// (protocol version, presentation type) pair. A schema rejects any
// value type it has no entry for.
type Schema map[SetReq]Validator

// Validate checks a candidate value map against the schema.
// It returns a descriptive error naming the first offending key or
// value; nil means every entry is acceptable.
func (s Schema) Validate(values map[SetReq]string) error {
	for vt, value := range values {
		if err := s.ValidateValue(vt, value); err != nil {
			return err
		}
	}
	return nil
}

// ValidateValue checks a single value-type/value pair against the schema.
func (s Schema) ValidateValue(vt SetReq, value string) error {
	validator, ok := s[vt]
	if !ok {
		return fmt.Errorf("%w: %s not allowed by schema", ErrUnknownValueType, vt)
	}
	if err := validator(value); err != nil {
		return fmt.Errorf("%s: %w", vt, err)
	}
	return nil
}

// schemaCache holds schemas resolved by SchemaFor. Schemas are built at
// most once per (table, presentation) pair and shared afterwards; the
// underlying maps are never mutated after construction.
var (
	schemaCache   = make(map[string]map[Presentation]Schema)
	schemaCacheMu sync.RWMutex
)

// SchemaFor resolves the validation schema for a presentation type under
// a protocol version: the generic custom-sensor entries form the base,
// and the type's own entries override them on collision.
//
// Composition never fails for a presentation type registered in the
// version; the only errors are an unknown version or an unknown type.
func SchemaFor(version string, p Presentation) (Schema, error) {
	c, err := GetConst(version)
	if err != nil {
		return nil, err
	}

	types, ok := c.ValidTypes[p]
	if !ok {
		return nil, fmt.Errorf("%w: %s in version %s", ErrUnknownPresentation, p, c.Version)
	}

	// Patch revisions share their base version's tables, so cache under
	// the table's version rather than the requested token.
	schemaCacheMu.RLock()
	cached, ok := schemaCache[c.Version][p]
	schemaCacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	base := c.ValidTypes[PresentationCustom]
	schema := make(Schema, len(base)+len(types))
	for _, vt := range base {
		schema[vt] = c.Validators[vt]
	}
	for _, vt := range types {
		schema[vt] = c.Validators[vt]
	}

	schemaCacheMu.Lock()
	if schemaCache[c.Version] == nil {
		schemaCache[c.Version] = make(map[Presentation]Schema)
	}
	schemaCache[c.Version][p] = schema
	schemaCacheMu.Unlock()

	return schema, nil
}
