package demand

import (
	"context"

	"github.com/fisker/webdb-console/internal/model"
	"github.com/fisker/webdb-console/internal/repository"
	"github.com/fisker/webdb-console/pkg/database"
)

type DemandService struct {
	repo *repository.DemandRepository
}

func NewDemandService(repo *repository.DemandRepository) *DemandService {
	return &DemandService{repo: repo}
}

// Summarize returns the open ticket summary. On failure the rows are an empty slice so the
// page still renders, and the error is a *model.QueryError.
func (s *DemandService) Summarize(ctx context.Context) ([]model.DemandRow, error) {
	rows, err := s.repo.Summarize(ctx)
	if err != nil {
		return []model.DemandRow{}, database.WrapError(err)
	}
	return rows, nil
}
