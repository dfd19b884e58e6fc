package v1

type FeeQuoteRequest struct {
	Amount string `query:"amount" validate:"required,amount"`
}

type SendTipRequest struct {
	ClientTipID  string  `json:"client_tip_id" validate:"omitempty,max=64"`
	SenderID     string  `json:"sender_id" validate:"required,user_id"`
	SenderName   string  `json:"sender_name" validate:"max=255"`
	ReceiverID   string  `json:"receiver_id" validate:"required,user_id"`
	ReceiverName string  `json:"receiver_name" validate:"max=255"`
	SessionID    string  `json:"session_id" validate:"omitempty,max=64"`
	SongID       *int64  `json:"song_id" validate:"omitempty,min=1"`
	Amount       float64 `json:"amount"`
	IsAnonymous  bool    `json:"is_anonymous"`
	Message      string  `json:"message"`
}

type TransitionRequest struct {
	Event  string `json:"event" validate:"required,oneof=confirm decline fail refund"`
	Reason string `json:"reason" validate:"max=255"`
}

type ListTipsRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

type LeaderboardRequest struct {
	SessionID string `query:"session_id" validate:"omitempty,max=64"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type UserPath struct {
	UserID string `params:"id" validate:"required,user_id"`
}

type TipPath struct {
	TipID int64 `params:"id" validate:"required,min=1"`
}
