package services

import (
	"sort"

	"demoday/contexts/hackathon/voting-service/domain/entities"
)

// RankedSlots is the fixed leaderboard depth used by resolution and the
// prize split.
const RankedSlots = 3

// RankTopProjects scans projects in ascending identifier order and maintains
// a fixed three-slot leaderboard sorted by descending vote count. A project
// displaces a slot only when its count strictly exceeds that slot's count,
// so an earlier-registered project is never displaced by an equal count:
// ties resolve to the lower identifier. Projects with zero votes never
// occupy a slot.
func RankTopProjects(projects []entities.Project) []entities.RankedProject {
	ordered := make([]entities.Project, len(projects))
	copy(ordered, projects)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	slots := make([]entities.RankedProject, 0, RankedSlots)
	for _, project := range ordered {
		if project.VoteCount == 0 {
			continue
		}
		pos := len(slots)
		for i := range slots {
			if project.VoteCount > slots[i].VoteCount {
				pos = i
				break
			}
		}
		if pos >= RankedSlots {
			continue
		}
		entry := entities.RankedProject{
			ProjectID:    project.ID,
			Title:        project.Title,
			PayoutTarget: project.PayoutTarget,
			VoteCount:    project.VoteCount,
		}
		slots = append(slots, entities.RankedProject{})
		copy(slots[pos+1:], slots[pos:])
		slots[pos] = entry
		if len(slots) > RankedSlots {
			slots = slots[:RankedSlots]
		}
	}
	return slots
}

// SplitPrize returns the per-slot share of a prize pool. The pool is divided
// into three equal integer shares regardless of how many slots end up
// occupied; the remainder is never distributed.
func SplitPrize(amount int64) int64 {
	if amount <= 0 {
		return 0
	}
	return amount / RankedSlots
}
