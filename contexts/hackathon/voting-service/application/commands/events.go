package commands

import (
	"encoding/json"
	"strconv"
	"time"

	"demoday/contexts/hackathon/voting-service/ports"
)

func newVotingEnvelope(
	eventID string,
	eventType string,
	projectID uint64,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	// Command-side events are partitioned by project for stable ordering on
	// project-scoped consumers.
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "voting-service",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "project_id",
		PartitionKey:     strconv.FormatUint(projectID, 10),
		Data:             payload,
	}, nil
}
