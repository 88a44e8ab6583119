package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Object represents a CRM object (contact, company, deal or ticket). IDs are
// serialized as strings on objects, matching the v3 API; webhook events and
// association payloads carry them as numbers.
//
// UpdatedAt is stamped once at creation and never refreshed by updates. That
// mirrors the behavior client libraries are tested against; do not "fix" it
// without checking the consumers.
type Object struct {
	ID         string            `json:"id"`
	Properties map[string]string `json:"properties"`
	CreatedAt  string            `json:"createdAt"`
	UpdatedAt  string            `json:"updatedAt"`
	Archived   bool              `json:"archived"`

	// Associations is populated only when a read requests an associations
	// expansion; the association index is the authoritative storage.
	Associations map[string]AssociationExpansion `json:"associations,omitempty"`
}

// Properties is the open property bag as it arrives on the wire. Values may
// be JSON strings, numbers or booleans; numbers and booleans are normalized
// to their string form, which is also how they are stored and read back.
type Properties map[string]string

// UnmarshalJSON normalizes scalar values to strings. Numbers keep their
// literal form (no float round-trip), booleans become "true"/"false". Any
// other value type is rejected.
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	m := make(map[string]string, len(raw))
	for name, value := range raw {
		switch v := value.(type) {
		case string:
			m[name] = v
		case json.Number:
			m[name] = v.String()
		case bool:
			m[name] = strconv.FormatBool(v)
		default:
			return fmt.Errorf("property %q: value must be a string, number or boolean", name)
		}
	}
	*p = m
	return nil
}

// CreateInput holds the data needed to create a new object.
type CreateInput struct {
	Properties Properties `json:"properties"`
}

// UpdateInput holds the data needed to partially update an existing object.
type UpdateInput struct {
	Properties Properties `json:"properties"`
}

// ReadOpts holds the optional parameters of a single-object read.
type ReadOpts struct {
	// Archived is the archived-state the caller wants; an object whose flag
	// does not match is treated as not found.
	Archived bool
	// Associations lists related-type names (singular or plural) to expand.
	Associations []string
}
