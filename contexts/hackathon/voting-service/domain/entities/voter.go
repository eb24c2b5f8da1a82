package entities

import "time"

// MaxVotesPerVoter caps the number of distinct projects one identity may
// back during the event.
const MaxVotesPerVoter = 2

// VoterRecord is created lazily on an identity's first vote. ProjectIDs
// preserves insertion order, never exceeds MaxVotesPerVoter entries, and
// contains no duplicates.
type VoterRecord struct {
	VoterID     string
	ProjectIDs  []uint64
	VoteCount   int
	FirstVoteAt time.Time
	LastVoteAt  time.Time
}

// HasVoted reports whether the record already contains projectID.
func (r VoterRecord) HasVoted(projectID uint64) bool {
	for _, id := range r.ProjectIDs {
		if id == projectID {
			return true
		}
	}
	return false
}

// AtCapacity reports whether the record holds the maximum number of votes.
func (r VoterRecord) AtCapacity() bool {
	return len(r.ProjectIDs) >= MaxVotesPerVoter
}
