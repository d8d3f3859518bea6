package entities

import "github.com/google/uuid"

// IDSource is the two-variant identifier input for new records: either the
// caller supplied an id on the wire or the service generates one. It
// replaces nullable-id-with-implicit-default handling.
type IDSource struct {
	id string
}

// GenerateID requests a freshly generated identifier.
func GenerateID() IDSource {
	return IDSource{}
}

// UseID requests the caller-supplied identifier. An empty id falls back to
// generation, so handlers can pass the wire field through unconditionally.
func UseID(id string) IDSource {
	return IDSource{id: id}
}

// Value resolves the source to a concrete identifier.
func (s IDSource) Value() string {
	if s.id == "" {
		return uuid.NewString()
	}
	return s.id
}
