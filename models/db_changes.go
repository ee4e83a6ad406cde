package models

import (
	"time"
)

// DBChange is one row of the change log appended on every collection write.
// Other instances sharing the same database poll it to learn which
// collection moved.
type DBChange struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Collection string    `gorm:"type:varchar(64);not null;index:idx_collection" json:"collection"`
	Revision   int64     `gorm:"not null" json:"revision"`
	Origin     string    `gorm:"type:varchar(128);not null" json:"origin"`
	ChangedAt  time.Time `gorm:"not null;index:idx_changed_at" json:"changed_at"`
}

// Collection stores one named document. Payload encoding is opaque to the
// database layer.
type Collection struct {
	Name      string    `gorm:"primaryKey;type:varchar(64)"`
	Payload   []byte    `gorm:"not null"`
	Revision  int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}
