package models

import "time"

// Snapshot is a consistent read of the collections a report is built from.
// Items keep the order they were read in.
type Snapshot struct {
	Items    []*InventoryItem
	Storages []*Storage
	Units    []*UnitOfMeasure
	TakenAt  time.Time
}

// StorageName resolves an item's storage name, or "" with false when the item
// is unassigned or the storage is not part of the snapshot.
func (s *Snapshot) StorageName(ref Ref) (string, bool) {
	id, ok := ref.Get()
	if !ok {
		return "", false
	}
	for _, st := range s.Storages {
		if st.ID == id {
			return st.Name, true
		}
	}
	return "", false
}

// UnitSymbol resolves an item's unit symbol the same way as StorageName.
func (s *Snapshot) UnitSymbol(ref Ref) (string, bool) {
	id, ok := ref.Get()
	if !ok {
		return "", false
	}
	for _, u := range s.Units {
		if u.ID == id {
			return u.Symbol, true
		}
	}
	return "", false
}
