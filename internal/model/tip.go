package model

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/whatssound/tipservice/internal/tipping"
)

type Tip struct {
	ID             int64           `gorm:"primaryKey;autoIncrement;column:id;<-:create"`
	IdempotencyKey string          `gorm:"column:idempotency_key;type:varchar(191);uniqueIndex;not null;<-:create"`
	SenderID       string          `gorm:"column:sender_id;type:varchar(64);index;not null;<-:create"`
	SenderName     string          `gorm:"column:sender_name;type:varchar(255);<-:create"`
	ReceiverID     string          `gorm:"column:receiver_id;type:varchar(64);index;not null;<-:create"`
	ReceiverName   string          `gorm:"column:receiver_name;type:varchar(255);<-:create"`
	SessionID      *string         `gorm:"column:session_id;type:varchar(64);index;<-:create"`
	SongID         *int64          `gorm:"column:song_id;<-:create"`
	Amount         decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null;<-:create"`
	ProcessorFee   decimal.Decimal `gorm:"column:processor_fee;type:decimal(10,2);not null;<-:create"`
	PlatformFee    decimal.Decimal `gorm:"column:platform_fee;type:decimal(10,2);not null;<-:create"`
	NetAmount      decimal.Decimal `gorm:"column:net_amount;type:decimal(10,2);not null;<-:create"`
	Currency       string          `gorm:"column:currency;type:varchar(3);not null;<-:create"`
	Status         tipping.Status  `gorm:"column:status;type:varchar(16);index;not null"`
	IsAnonymous    bool            `gorm:"column:is_anonymous;not null;default:false;<-:create"`
	Message        string          `gorm:"column:message;type:varchar(280);<-:create"`
	FailureReason  *string         `gorm:"column:failure_reason;type:text"`
	SettledAt      *time.Time      `gorm:"column:settled_at"`
	CreatedAt      time.Time       `gorm:"column:created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at"`
}

func (Tip) TableName() string {
	return "tips"
}

func (t Tip) DisplaySenderName() string {
	return tipping.SenderDisplayName(t.SenderName, t.IsAnonymous)
}
