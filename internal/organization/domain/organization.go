package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// TenantStatus is the lifecycle state of a club as reported in the user summary.
type TenantStatus string

const (
	TenantStatusActive TenantStatus = "Active"
)

// TenantMembership is the caller's view of one club: its name and status.
type TenantMembership struct {
	TenantName   string       `json:"tenantName"`
	TenantStatus TenantStatus `json:"tenantStatus"`
}

// Tenants maps tenantId to tenant (club) name and remembers the order in which
// the server listed them, so name lookups are stable across calls.
type Tenants struct {
	ids   []string
	names map[string]string
}

// NewTenants builds Tenants from alternating id, name pairs. Used by tests and callers
// that construct summaries by hand. A repeated id keeps its first position and takes the last name.
func NewTenants(pairs ...string) Tenants {
	var t Tenants
	for i := 0; i+1 < len(pairs); i += 2 {
		t.set(pairs[i], pairs[i+1])
	}
	return t
}

func (t *Tenants) set(id, name string) {
	if t.names == nil {
		t.names = make(map[string]string)
	}
	if _, ok := t.names[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.names[id] = name
}

// Clone returns a copy of t that shares no memory with it.
func (t Tenants) Clone() Tenants {
	var out Tenants
	for _, id := range t.ids {
		out.set(id, t.names[id])
	}
	return out
}

// Len returns the number of tenants.
func (t Tenants) Len() int { return len(t.ids) }

// Has reports whether id is a known tenant.
func (t Tenants) Has(id string) bool {
	_, ok := t.names[id]
	return ok
}

// Name returns the name for id.
func (t Tenants) Name(id string) (string, bool) {
	name, ok := t.names[id]
	return name, ok
}

// IDs returns tenant ids in server order. The slice is a copy.
func (t Tenants) IDs() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)
	return out
}

// Map returns a copy of the id → name mapping.
func (t Tenants) Map() map[string]string {
	out := make(map[string]string, len(t.names))
	for k, v := range t.names {
		out[k] = v
	}
	return out
}

// UnmarshalJSON decodes a JSON object of tenantId → name, keeping key order.
func (t *Tenants) UnmarshalJSON(data []byte) error {
	*t = Tenants{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("tenants: expected JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		id, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("tenants: unexpected key %v", keyTok)
		}
		var name string
		if err := dec.Decode(&name); err != nil {
			return fmt.Errorf("tenants: name for %q: %w", id, err)
		}
		t.set(id, name)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes Tenants as a JSON object in server order.
func (t Tenants) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range t.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(t.names[id])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
