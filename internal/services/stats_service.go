package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// StatsService reports store-wide figures.
type StatsService struct {
	DB   *gorm.DB
	Repo StatsRepo
}

// NewStatsService constructs a StatsService over db and r.
func NewStatsService(db *gorm.DB, r StatsRepo) *StatsService {
	return &StatsService{DB: db, Repo: r}
}

// RowCounts returns the number of rows in every tracker table.
func (s *StatsService) RowCounts(ctx context.Context) (domain.RowCounts, error) {
	return s.Repo.RowCounts(ctx, s.DB)
}
