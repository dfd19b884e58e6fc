package v1

import "github.com/whatssound/tipservice/internal/service"

type LeaderboardResponse struct {
	Board     string                     `json:"board"`
	SessionID string                     `json:"session_id,omitempty"`
	Entries   []service.LeaderboardEntry `json:"entries"`
}
