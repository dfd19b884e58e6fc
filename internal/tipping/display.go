package tipping

import "strings"

const (
	AnonymousSenderName = "Anonymous"
	// AnonymousSenderID replaces the sender ID of anonymous tips wherever they are shown.
	AnonymousSenderID = "anonymous"
)

func SenderDisplayName(name string, anonymous bool) string {
	if anonymous || strings.TrimSpace(name) == "" {
		return AnonymousSenderName
	}

	return name
}

func SenderDisplayID(id string, anonymous bool) string {
	if anonymous {
		return AnonymousSenderID
	}

	return id
}
