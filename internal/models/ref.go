package models

import (
	"bytes"
	"encoding/json"

	"github.com/google/uuid"
)

// Ref is a non-owning reference to another record that may be unassigned.
// The zero value is unassigned.
type Ref struct {
	id       uuid.UUID
	assigned bool
}

// Unassigned returns an empty reference.
func Unassigned() Ref { return Ref{} }

// AssignedTo returns a reference to id. uuid.Nil yields an unassigned reference.
func AssignedTo(id uuid.UUID) Ref {
	if id == uuid.Nil {
		return Ref{}
	}
	return Ref{id: id, assigned: true}
}

// RefFromPtr converts a nullable column value into a Ref.
func RefFromPtr(id *uuid.UUID) Ref {
	if id == nil {
		return Ref{}
	}
	return AssignedTo(*id)
}

// Get returns the referenced id and whether the reference is assigned.
func (r Ref) Get() (uuid.UUID, bool) { return r.id, r.assigned }

func (r Ref) IsAssigned() bool { return r.assigned }

// Ptr returns the id as a nullable value for SQL parameters.
func (r Ref) Ptr() *uuid.UUID {
	if !r.assigned {
		return nil
	}
	id := r.id
	return &id
}

func (r Ref) String() string {
	if !r.assigned {
		return "unassigned"
	}
	return r.id.String()
}

func (r Ref) MarshalJSON() ([]byte, error) {
	if !r.assigned {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}

func (r *Ref) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Ref{}
		return nil
	}
	var id uuid.UUID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*r = AssignedTo(id)
	return nil
}
