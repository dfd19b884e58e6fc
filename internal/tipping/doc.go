// Package tipping holds the tip business rules: fee splitting, Golden Boost counting,
// leaderboard ordering and the payment status state machine. Everything here is pure;
// configuration is passed in explicitly and nothing touches storage.
package tipping
