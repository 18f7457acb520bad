// file: websocket/messenger.go
package websocket

import (
	"encoding/json"
	"time"

	"wanderlust/logger"
)

// ChangeEvent tells dashboards that another admin changed a collection.
type ChangeEvent struct {
	Action     string    `json:"action"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	By         string    `json:"by"`
	At         time.Time `json:"at"`
}

// Messenger announces admin mutations.
type Messenger interface {
	NotifyCollectionChanged(collection, action, id, by string)
}

// NopMessenger drops every event.
type NopMessenger struct{}

func (NopMessenger) NotifyCollectionChanged(string, string, string, string) {}

// HubMessenger broadcasts change events through a Hub.
type HubMessenger struct {
	Hub *Hub
}

func (m HubMessenger) NotifyCollectionChanged(collection, action, id, by string) {
	msg, err := json.Marshal(ChangeEvent{
		Action:     action,
		Collection: collection,
		ID:         id,
		By:         by,
		At:         time.Now().UTC(),
	})
	if err != nil {
		logger.Error.Printf("HubMessenger: Error marshalling change event: %v", err)
		return
	}
	m.Hub.Broadcast(msg)
	logger.Debug.Printf("HubMessenger: %s %s %s by %s", action, collection, id, by)
}
