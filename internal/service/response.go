package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/whatssound/tipservice/internal/model"
	"github.com/whatssound/tipservice/internal/tipping"
)

type FeeQuote struct {
	tipping.FeeBreakdown
	Currency string  `json:"currency"`
	NetShare float64 `json:"net_share"`
}

// TipView is a tip as shown to clients. Anonymous senders are already masked.
type TipView struct {
	ID            int64           `json:"id"`
	SenderID      string          `json:"sender_id"`
	SenderName    string          `json:"sender_name"`
	ReceiverID    string          `json:"receiver_id"`
	ReceiverName  string          `json:"receiver_name"`
	SessionID     *string         `json:"session_id,omitempty"`
	SongID        *int64          `json:"song_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	ProcessorFee  decimal.Decimal `json:"processor_fee"`
	PlatformFee   decimal.Decimal `json:"platform_fee"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	Currency      string          `json:"currency"`
	Status        tipping.Status  `json:"status"`
	IsAnonymous   bool            `json:"is_anonymous"`
	Message       string          `json:"message,omitempty"`
	FailureReason *string         `json:"failure_reason,omitempty"`
	SettledAt     *time.Time      `json:"settled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

type TipResult struct {
	Tip       TipView `json:"tip"`
	Duplicate bool    `json:"duplicate"`
}

type ListTipsResult struct {
	Tips  []TipView `json:"tips"`
	Total int64     `json:"total"`
}

type LeaderboardEntry struct {
	Rank         int     `json:"rank"`
	ID           string  `json:"id"`
	DisplayName  string  `json:"display_name"`
	GoldenBoosts int     `json:"golden_boosts"`
	TotalTips    float64 `json:"total_tips"`
}

type GoldenBoostBalance struct {
	SenderID     string          `json:"sender_id"`
	TotalTipped  decimal.Decimal `json:"total_tipped"`
	TipCount     int64           `json:"tip_count"`
	GoldenBoosts int             `json:"golden_boosts"`
	NextBoostIn  decimal.Decimal `json:"next_boost_in"`
}

func newTipView(tip *model.Tip) TipView {
	return TipView{
		ID:            tip.ID,
		SenderID:      tipping.SenderDisplayID(tip.SenderID, tip.IsAnonymous),
		SenderName:    tip.DisplaySenderName(),
		ReceiverID:    tip.ReceiverID,
		ReceiverName:  tip.ReceiverName,
		SessionID:     tip.SessionID,
		SongID:        tip.SongID,
		Amount:        tip.Amount,
		ProcessorFee:  tip.ProcessorFee,
		PlatformFee:   tip.PlatformFee,
		NetAmount:     tip.NetAmount,
		Currency:      tip.Currency,
		Status:        tip.Status,
		IsAnonymous:   tip.IsAnonymous,
		Message:       tip.Message,
		FailureReason: tip.FailureReason,
		SettledAt:     tip.SettledAt,
		CreatedAt:     tip.CreatedAt,
	}
}

func newLeaderboard(ranked []tipping.RankedEntity) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(ranked))
	for i, entity := range ranked {
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			ID:           entity.ID,
			DisplayName:  entity.DisplayName,
			GoldenBoosts: entity.PrimaryScore,
			TotalTips:    entity.SecondaryScore,
		})
	}

	return entries
}
