package entities

import "time"

// PrizePool holds the optional payout configuration for the event. Amount is
// in base currency units and is split into three equal integer shares at
// resolution; the division remainder stays undistributed.
type PrizePool struct {
	Source     string
	Amount     int64
	Configured bool
}

// EventState is the global ledger state. ProjectCount is the authoritative
// sequential-id counter: live project ids always form the dense range
// 1..ProjectCount. Once Resolved flips to true no vote count or voter
// history may change again.
type EventState struct {
	ProjectCount uint64
	TotalVoters  uint64
	Resolved     bool
	WinnerID     uint64
	PrizePool    PrizePool
	ResolvedAt   *time.Time
}

// RankedProject is one occupied slot of the resolution leaderboard.
type RankedProject struct {
	ProjectID    uint64
	Title        string
	PayoutTarget string
	VoteCount    uint64
}
