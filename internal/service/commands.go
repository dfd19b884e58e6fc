package service

import (
	"github.com/shopspring/decimal"
	"github.com/whatssound/tipservice/internal/tipping"
)

type SendTipCommand struct {
	ClientTipID  string
	SenderID     string
	SenderName   string
	ReceiverID   string
	ReceiverName string
	SessionID    string
	SongID       *int64
	Amount       float64
	IsAnonymous  bool
	Message      string
}

type ApplyTipEventCommand struct {
	TipID  int64
	Event  tipping.Event
	Reason string
}

type ListTipsQuery struct {
	ReceiverID string
	Limit      int
	Offset     int
}

type LeaderboardQuery struct {
	SessionID string
	Limit     int
}

type ChargePaymentCommand struct {
	CustomerID     string
	MerchantID     string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
	Description    string
}

type RefundPaymentCommand struct {
	ChargeKey      string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
	Reason         string
}

// ProcessChargeCommand is the body published to the charge queue.
type ProcessChargeCommand struct {
	EventID    int64           `json:"event_id"`
	TipID      int64           `json:"tip_id"`
	SenderID   string          `json:"sender_id"`
	ReceiverID string          `json:"receiver_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
}
