package model

import "time"

const (
	TipEventKindCharge = "charge"
)

// TipEvent is an outbox row written together with a pending tip and published by
// the charge publisher.
type TipEvent struct {
	ID          int64      `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	TipID       int64      `gorm:"column:tip_id;index;not null;<-:create"`
	Kind        string     `gorm:"column:kind;type:varchar(32);not null;<-:create"`
	Published   bool       `gorm:"column:published;not null;default:false;index"`
	PublishedAt *time.Time `gorm:"column:published_at"`
	LastError   *string    `gorm:"column:last_error;type:text"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`

	Tip Tip `gorm:"foreignKey:TipID"`
}

func (TipEvent) TableName() string {
	return "tip_events"
}
