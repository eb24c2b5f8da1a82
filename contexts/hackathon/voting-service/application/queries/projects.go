package queries

import (
	"context"

	"demoday/contexts/hackathon/voting-service/domain/entities"
	"demoday/contexts/hackathon/voting-service/ports"
)

// ProjectUseCase serves read-only project lookups.
type ProjectUseCase struct {
	Ledger ports.Repository
}

func (uc ProjectUseCase) GetProject(ctx context.Context, projectID uint64) (entities.Project, error) {
	return uc.Ledger.GetProject(ctx, projectID)
}

// ListProjects returns all registered projects in ascending identifier
// order.
func (uc ProjectUseCase) ListProjects(ctx context.Context) ([]entities.Project, error) {
	return uc.Ledger.ListProjects(ctx)
}
