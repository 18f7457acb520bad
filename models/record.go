// File: models/record.go
package models

// Record is implemented by every persisted entity.
type Record interface {
	GetID() string
}
