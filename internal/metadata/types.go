// Package metadata reads and writes metadata documents: option sets,
// program indicators and their analytics period boundaries.
package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the UTC millisecond layout used for created and
// lastUpdated fields.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// System describes the instance a snapshot was exported from.
type System struct {
	ID      string `json:"id"`
	Rev     string `json:"rev"`
	Version string `json:"version"`
	Date    string `json:"date"`
}

// Ref is a reference to another record by identifier.
type Ref struct {
	ID string `json:"id"`
}

// Option is a single entry of an option set.
type Option struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	ID              string          `json:"id"`
	Created         string          `json:"created,omitempty"`
	LastUpdated     string          `json:"lastUpdated,omitempty"`
	SortOrder       int             `json:"sortOrder"`
	OptionSet       Ref             `json:"optionSet"`
	AttributeValues json.RawMessage `json:"attributeValues,omitempty"`
	Translations    json.RawMessage `json:"translations,omitempty"`
}

// TrackedEntityAttribute is a data field filter expressions refer to.
type TrackedEntityAttribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Code      string `json:"code"`
}

// Metadata is an input snapshot.
type Metadata struct {
	System                  System                   `json:"system"`
	Options                 []Option                 `json:"options"`
	ProgramIndicators       []Indicator              `json:"programIndicators"`
	TrackedEntityAttributes []TrackedEntityAttribute `json:"trackedEntityAttributes"`
}

// Indicator returns the program indicator with the given id.
func (m *Metadata) Indicator(id string) (*Indicator, bool) {
	for i := range m.ProgramIndicators {
		if m.ProgramIndicators[i].ID == id {
			return &m.ProgramIndicators[i], true
		}
	}
	return nil, false
}

// Attribute returns the tracked entity attribute with the given id.
func (m *Metadata) Attribute(id string) (*TrackedEntityAttribute, bool) {
	for i := range m.TrackedEntityAttributes {
		if m.TrackedEntityAttributes[i].ID == id {
			return &m.TrackedEntityAttributes[i], true
		}
	}
	return nil, false
}

// Identifiers returns every record identifier in the snapshot, in
// document order.
func (m *Metadata) Identifiers() []string {
	var ids []string
	for _, o := range m.Options {
		ids = append(ids, o.ID)
	}
	for _, ind := range m.ProgramIndicators {
		ids = append(ids, ind.ID)
		for _, b := range ind.AnalyticsPeriodBoundaries {
			ids = append(ids, b.ID)
		}
	}
	for _, a := range m.TrackedEntityAttributes {
		ids = append(ids, a.ID)
	}
	return ids
}

// Document is the output shape: generated indicators only.
type Document struct {
	ProgramIndicators []Indicator `json:"programIndicators"`
}

// fields holds every JSON member of a record as read, in document order,
// so that members the tool does not model are written back unchanged.
type fields struct {
	keys []string
	vals map[string]json.RawMessage
}

// decodeFields reads a JSON object keeping the order of its members.
func decodeFields(data []byte) (fields, error) {
	f := fields{vals: make(map[string]json.RawMessage)}
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return f, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return f, fmt.Errorf("expected object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return f, err
		}
		key, ok := tok.(string)
		if !ok {
			return f, fmt.Errorf("expected member name, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return f, fmt.Errorf("field %q: %w", key, err)
		}
		if _, dup := f.vals[key]; !dup {
			f.keys = append(f.keys, key)
		}
		f.vals[key] = raw
	}
	if _, err := dec.Token(); err != nil {
		return f, err
	}
	return f, nil
}

func (f fields) clone() fields {
	out := fields{
		keys: append([]string(nil), f.keys...),
		vals: make(map[string]json.RawMessage, len(f.vals)),
	}
	for k, v := range f.vals {
		out.vals[k] = v
	}
	return out
}

func (f fields) decode(key string, dst any) error {
	raw, ok := f.vals[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// set replaces a member in place or appends it after the existing ones.
func (f *fields) set(key string, v any) error {
	raw, err := marshal(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	if f.vals == nil {
		f.vals = make(map[string]json.RawMessage)
	}
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = raw
	return nil
}

// encode writes the members as a JSON object in order.
func (f fields) encode() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(f.vals[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshal encodes v without escaping <, > and &, so filter and
// expression strings stay readable.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Boundary is an analytics period boundary nested in an indicator.
type Boundary struct {
	ID          string
	Created     string
	LastUpdated string

	raw fields
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Boundary) UnmarshalJSON(data []byte) error {
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	*b = Boundary{raw: raw}
	for key, dst := range map[string]*string{"id": &b.ID, "created": &b.Created, "lastUpdated": &b.LastUpdated} {
		if err := raw.decode(key, dst); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (b Boundary) MarshalJSON() ([]byte, error) {
	out := b.raw.clone()
	for _, m := range []struct{ key, v string }{
		{"id", b.ID},
		{"created", b.Created},
		{"lastUpdated", b.LastUpdated},
	} {
		if err := out.set(m.key, m.v); err != nil {
			return nil, err
		}
	}
	return out.encode()
}

// Field returns the raw JSON of a member, or nil if absent.
func (b Boundary) Field(key string) json.RawMessage {
	return b.raw.vals[key]
}

// Clone returns a copy that shares no mutable state with b.
func (b Boundary) Clone() Boundary {
	c := b
	c.raw = b.raw.clone()
	return c
}

// Indicator is a program indicator. Only the members that generation
// rewrites are typed; everything else is carried as raw JSON.
type Indicator struct {
	ID          string
	Name        string
	ShortName   string
	Filter      string
	Created     string
	LastUpdated string

	AnalyticsPeriodBoundaries []Boundary

	raw fields
}

const boundariesKey = "analyticsPeriodBoundaries"

// UnmarshalJSON implements json.Unmarshaler.
func (ind *Indicator) UnmarshalJSON(data []byte) error {
	raw, err := decodeFields(data)
	if err != nil {
		return err
	}
	*ind = Indicator{raw: raw}
	strs := map[string]*string{
		"id":          &ind.ID,
		"name":        &ind.Name,
		"shortName":   &ind.ShortName,
		"filter":      &ind.Filter,
		"created":     &ind.Created,
		"lastUpdated": &ind.LastUpdated,
	}
	for key, dst := range strs {
		if err := raw.decode(key, dst); err != nil {
			return err
		}
	}
	return raw.decode(boundariesKey, &ind.AnalyticsPeriodBoundaries)
}

// MarshalJSON implements json.Marshaler.
func (ind Indicator) MarshalJSON() ([]byte, error) {
	out := ind.raw.clone()
	for _, m := range []struct{ key, v string }{
		{"id", ind.ID},
		{"created", ind.Created},
		{"lastUpdated", ind.LastUpdated},
		{"name", ind.Name},
		{"shortName", ind.ShortName},
		{"filter", ind.Filter},
	} {
		if err := out.set(m.key, m.v); err != nil {
			return nil, err
		}
	}
	if ind.AnalyticsPeriodBoundaries != nil {
		if err := out.set(boundariesKey, ind.AnalyticsPeriodBoundaries); err != nil {
			return nil, err
		}
	}
	return out.encode()
}

// Field returns the raw JSON of a member, or nil if absent.
func (ind Indicator) Field(key string) json.RawMessage {
	return ind.raw.vals[key]
}

// Clone returns a deep copy. Templates are cloned, never modified.
func (ind Indicator) Clone() Indicator {
	c := ind
	c.raw = ind.raw.clone()
	if ind.AnalyticsPeriodBoundaries != nil {
		c.AnalyticsPeriodBoundaries = make([]Boundary, len(ind.AnalyticsPeriodBoundaries))
		for i, b := range ind.AnalyticsPeriodBoundaries {
			c.AnalyticsPeriodBoundaries[i] = b.Clone()
		}
	}
	return c
}
