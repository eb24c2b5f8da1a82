package entities

import "time"

// Project is a registered hackathon entry. Identifiers are assigned
// sequentially from 1 by the registry and are never reused. Only VoteCount
// mutates after registration, and only while the event is unresolved.
type Project struct {
	ID           uint64
	Title        string
	Description  string
	TeamName     string
	Category     string
	LiveURL      string
	DemoURL      string
	SourceURL    string
	PayoutTarget string
	VoteCount    uint64
	RegisteredAt time.Time
}
