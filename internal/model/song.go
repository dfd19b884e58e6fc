package model

import "time"

// Song is a track requested in a live session. Only BoostVotes is written by this service.
type Song struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	SessionID   string    `gorm:"column:session_id;type:varchar(64);index"`
	Title       string    `gorm:"column:title;type:varchar(255)"`
	Artist      string    `gorm:"column:artist;type:varchar(255)"`
	RequestedBy string    `gorm:"column:requested_by;type:varchar(64)"`
	Votes       int       `gorm:"column:votes;not null;default:0"`
	BoostVotes  int       `gorm:"column:boost_votes;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Song) TableName() string {
	return "songs"
}

func (s Song) Rank() int {
	return s.Votes + s.BoostVotes
}
