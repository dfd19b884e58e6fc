package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	CodeSuccess = "success"

	FeeQuoted           = "fee quote calculated"
	TipCreated          = "tip created successfully"
	TipAlreadyExists    = "tip already exists"
	TipRetrieved        = "tip retrieved successfully"
	TipTransitioned     = "tip status updated"
	TipsListed          = "tips retrieved successfully"
	LeaderboardRendered = "leaderboard retrieved successfully"
	BalanceRetrieved    = "golden boost balance retrieved successfully"
)
