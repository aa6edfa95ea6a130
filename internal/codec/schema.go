package codec

import (
	"fmt"
	"sync"
)

// Schema describes one versioned, named record type stored via BSER:
// its declared fields and the version it was registered at.
type Schema struct {
	Name    string
	Version Version
	Fields  []string
}

// SchemaRegistry is a process-wide, lock-protected map of type name to
// Schema, mirroring the teacher's pattern of a guarded global registry
// (internal/registry/blocks.go's package-level maps) generalized to a
// struct so tests can construct independent registries.
type SchemaRegistry struct {
	mu      sync.RWMutex
	schemas map[string]Schema
}

// NewSchemaRegistry returns an empty registry.
func NewSchemaRegistry() *SchemaRegistry {
	return &SchemaRegistry{schemas: make(map[string]Schema)}
}

// Register adds or replaces a schema. Re-registering the same name with a
// lower version is rejected; same-or-higher is accepted (last writer wins),
// matching spec's versioning rules for evolving record layouts.
func (r *SchemaRegistry) Register(s Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.schemas[s.Name]; ok {
		if !versionLess(existing.Version, s.Version) && existing.Version != s.Version {
			return newErr(KindValidation, fmt.Sprintf("schema %q: cannot register older version %+v over %+v", s.Name, s.Version, existing.Version), nil)
		}
	}
	r.schemas[s.Name] = s
	return nil
}

// Lookup returns the registered schema for a type name.
func (r *SchemaRegistry) Lookup(name string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	return s, ok
}

// CompatibleWith reports whether a record written at `have` can be decoded
// against the registry's current schema for `name`.
func (r *SchemaRegistry) CompatibleWith(name string, have Version) (bool, error) {
	s, ok := r.Lookup(name)
	if !ok {
		return false, newErr(KindValidation, fmt.Sprintf("unknown schema %q", name), nil)
	}
	return s.Version.Compatible(have), nil
}

func versionLess(a, b Version) bool {
	if a.Major != b.Major {
		return a.Major < b.Major
	}
	if a.Minor != b.Minor {
		return a.Minor < b.Minor
	}
	return a.Patch < b.Patch
}

// FindField scans an already-begun object's remaining fields for a target
// name, skipping every field it passes over. It returns false without
// error if the field is absent — callers fall back to a default, per
// spec §7's Resource-kind "fallback to default" rule.
func (r *Reader) FindField(hdr *ObjectHeader, target string) (found bool, err error) {
	for _, name := range hdr.FieldOrder {
		if name == target {
			return true, nil
		}
		if err := r.SkipValue(); err != nil {
			return false, err
		}
	}
	return false, nil
}

// HasField reports whether an object header declares a field, without
// consuming stream bytes (it only inspects the already-read directory).
func (hdr *ObjectHeader) HasField(name string) bool {
	for _, n := range hdr.FieldOrder {
		if n == name {
			return true
		}
	}
	return false
}
