package cache

import (
	"fmt"
	"strings"
)

const (
	LeaderboardPrefix = "leaderboard"

	BoardDJs        = "djs"
	BoardSupporters = "supporters"
)

const allSessions = "all"

func NamespaceKey(parts ...string) string {
	return strings.Join(parts, ":")
}

// LeaderboardKey returns "leaderboard:{board}:{session|all}:{limit}".
func LeaderboardKey(board, sessionID string, limit int) string {
	if sessionID == "" {
		sessionID = allSessions
	}

	return NamespaceKey(LeaderboardPrefix, board, sessionID, fmt.Sprint(limit))
}
