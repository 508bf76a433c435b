package reactome

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// flexID decodes a Reactome dbId, which the web service emits as a JSON number
// but which older cached payloads may carry as a string.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid dbId %s: %w", data, err)
	}
	*f = flexID(n.String())
	return nil
}

// Ref points at another database object from inside a record.
type Ref struct {
	ID          string `json:"dbId"`
	DisplayName string `json:"displayName,omitempty"`
	SchemaClass string `json:"schemaClass,omitempty"`
}

// UnmarshalJSON accepts both embedded objects and bare ids.
func (r *Ref) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '{' {
		var id flexID
		if err := id.UnmarshalJSON(data); err != nil {
			return err
		}
		*r = Ref{ID: string(id)}
		return nil
	}

	type alias Ref
	aux := struct {
		ID flexID `json:"dbId"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	return nil
}

// Record is one database object as returned by the entity web service.
// Only the fields the converter reads are modelled; the raw payload is
// retained so caches can store exactly what was fetched.
//
// Absent list fields stay nil while present-but-empty ones decode to an empty
// slice, so callers can tell "no hasMember key" apart from "no members".
type Record struct {
	ID               string   `json:"dbId"`
	SchemaClass      string   `json:"schemaClass"`
	DisplayName      string   `json:"displayName,omitempty"`
	Name             []string `json:"name,omitempty"`
	SpeciesName      string   `json:"speciesName,omitempty"`
	ReferenceEntity  *Ref     `json:"referenceEntity,omitempty"`
	PhysicalEntity   *Ref     `json:"physicalEntity,omitempty"`
	StableIdentifier *Ref     `json:"stableIdentifier,omitempty"`
	Created          *Ref     `json:"created,omitempty"`
	HasComponent     []Ref    `json:"hasComponent"`
	HasMember        []Ref    `json:"hasMember"`
	HasCandidate     []Ref    `json:"hasCandidate"`
	Compartment      []Ref    `json:"compartment,omitempty"`
	CrossReference   []Ref    `json:"crossReference,omitempty"`
	CatalystActivity []Ref    `json:"catalystActivity,omitempty"`
	Input            []Ref    `json:"input,omitempty"`
	Output           []Ref    `json:"output,omitempty"`

	raw []byte
}

func (r *Record) UnmarshalJSON(data []byte) error {
	type alias Record
	aux := struct {
		ID flexID `json:"dbId"`
		*alias
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ID = string(aux.ID)
	return nil
}

// DecodeRecord parses a web service payload and keeps a copy of it.
func DecodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	rec.raw = append([]byte(nil), data...)
	return &rec, nil
}

// Payload returns the bytes the record was decoded from, or a fresh encoding
// for records built in memory.
func (r *Record) Payload() ([]byte, error) {
	if len(r.raw) > 0 {
		return r.raw, nil
	}
	return json.Marshal(r)
}

// FirstName returns the primary name, falling back to the display name.
func (r *Record) FirstName() (string, bool) {
	if len(r.Name) > 0 {
		return r.Name[0], true
	}
	if r.DisplayName != "" {
		return r.DisplayName, true
	}
	return "", false
}

// CompartmentName returns the display name of the first compartment.
// Only the first one is used when an entity spans several.
func (r *Record) CompartmentName() string {
	if len(r.Compartment) == 0 {
		return ""
	}
	return r.Compartment[0].DisplayName
}
