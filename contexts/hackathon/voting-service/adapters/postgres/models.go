package postgresadapter

import (
	"encoding/json"
	"strings"
	"time"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	"demoday/contexts/hackathon/voting-service/ports"
)

type eventStateModel struct {
	ID                  int        `gorm:"column:id;primaryKey"`
	ProjectCount        uint64     `gorm:"column:project_count"`
	TotalVoters         uint64     `gorm:"column:total_voters"`
	Resolved            bool       `gorm:"column:resolved"`
	WinnerID            uint64     `gorm:"column:winner_id"`
	PrizePoolSource     string     `gorm:"column:prize_pool_source"`
	PrizePoolAmount     int64      `gorm:"column:prize_pool_amount"`
	PrizePoolConfigured bool       `gorm:"column:prize_pool_configured"`
	ResolvedAt          *time.Time `gorm:"column:resolved_at"`
}

func (eventStateModel) TableName() string {
	return "voting_event_state"
}

func eventStateModelFromEntity(state entities.EventState) eventStateModel {
	return eventStateModel{
		ID:                  eventStateRowID,
		ProjectCount:        state.ProjectCount,
		TotalVoters:         state.TotalVoters,
		Resolved:            state.Resolved,
		WinnerID:            state.WinnerID,
		PrizePoolSource:     strings.TrimSpace(state.PrizePool.Source),
		PrizePoolAmount:     state.PrizePool.Amount,
		PrizePoolConfigured: state.PrizePool.Configured,
		ResolvedAt:          normalizeOptionalTime(state.ResolvedAt),
	}
}

func (m eventStateModel) toEntity() entities.EventState {
	return entities.EventState{
		ProjectCount: m.ProjectCount,
		TotalVoters:  m.TotalVoters,
		Resolved:     m.Resolved,
		WinnerID:     m.WinnerID,
		PrizePool: entities.PrizePool{
			Source:     m.PrizePoolSource,
			Amount:     m.PrizePoolAmount,
			Configured: m.PrizePoolConfigured,
		},
		ResolvedAt: normalizeOptionalTime(m.ResolvedAt),
	}
}

type projectModel struct {
	ID           uint64    `gorm:"column:id;primaryKey"`
	Title        string    `gorm:"column:title"`
	Description  string    `gorm:"column:description"`
	TeamName     string    `gorm:"column:team_name"`
	Category     string    `gorm:"column:category"`
	LiveURL      string    `gorm:"column:live_url"`
	DemoURL      string    `gorm:"column:demo_url"`
	SourceURL    string    `gorm:"column:source_url"`
	PayoutTarget string    `gorm:"column:payout_target"`
	VoteCount    uint64    `gorm:"column:vote_count"`
	RegisteredAt time.Time `gorm:"column:registered_at"`
}

func (projectModel) TableName() string {
	return "projects"
}

func projectModelFromEntity(project entities.Project) projectModel {
	row := projectModel{
		ID:           project.ID,
		Title:        strings.TrimSpace(project.Title),
		Description:  strings.TrimSpace(project.Description),
		TeamName:     strings.TrimSpace(project.TeamName),
		Category:     strings.TrimSpace(project.Category),
		LiveURL:      strings.TrimSpace(project.LiveURL),
		DemoURL:      strings.TrimSpace(project.DemoURL),
		SourceURL:    strings.TrimSpace(project.SourceURL),
		PayoutTarget: strings.TrimSpace(project.PayoutTarget),
		VoteCount:    project.VoteCount,
		RegisteredAt: project.RegisteredAt.UTC(),
	}
	if row.RegisteredAt.IsZero() {
		row.RegisteredAt = time.Now().UTC()
	}
	return row
}

func (m projectModel) toEntity() entities.Project {
	return entities.Project{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		TeamName:     m.TeamName,
		Category:     m.Category,
		LiveURL:      m.LiveURL,
		DemoURL:      m.DemoURL,
		SourceURL:    m.SourceURL,
		PayoutTarget: m.PayoutTarget,
		VoteCount:    m.VoteCount,
		RegisteredAt: m.RegisteredAt.UTC(),
	}
}

type voteModel struct {
	VoterID   string    `gorm:"column:voter_id;primaryKey"`
	ProjectID uint64    `gorm:"column:project_id;primaryKey"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "voting_outbox"
}

func toProjectEntities(rows []projectModel) []entities.Project {
	items := make([]entities.Project, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items
}

func marshalEnvelope(envelope ports.EventEnvelope) ([]byte, error) {
	return json.Marshal(envelope)
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
