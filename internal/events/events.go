// Package events carries fire-and-forget completion notices for committed
// commands. Publishing never blocks the caller and delivery failures never
// reach it.
package events

import (
	"time"

	"github.com/google/uuid"
)

type Name string

const (
	StorageCreated          Name = "storageCreated"
	StorageUpdated          Name = "storageUpdated"
	StorageDeleted          Name = "storageDeleted"
	ItemAdded               Name = "itemAdded"
	ItemUpdated             Name = "itemUpdated"
	ItemDeleted             Name = "itemDeleted"
	InventoryCountCompleted Name = "inventoryCountCompleted"
	SettingsChanged         Name = "settingsChanged"
)

type Event struct {
	Name       Name      `json:"name"`
	EntityID   uuid.UUID `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func New(name Name, entityID uuid.UUID) Event {
	return Event{Name: name, EntityID: entityID, OccurredAt: time.Now().UTC()}
}

// Publisher is what commands depend on.
type Publisher interface {
	Publish(e Event)
}
