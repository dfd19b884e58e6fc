package paymentprocessor

import "time"

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	TrackID string `json:"x_track_id,omitempty"`
	Result  Result `json:"result,omitempty"`
}

type Result struct {
	ReferenceID string    `json:"reference_id"`
	Status      string    `json:"status"`
	ProcessedAt time.Time `json:"processed_at"`
}
