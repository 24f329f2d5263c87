// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used by the
// stats endpoint, the console "counts" command, and the startup log line.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker/internal/domain"
)

// RowCounts returns the number of rows in each tracker table.
func RowCounts(ctx context.Context, db *gorm.DB) (domain.RowCounts, error) {
	var rc domain.RowCounts
	q := db.WithContext(ctx)
	for _, c := range []struct {
		model any
		dst   *int64
	}{
		{&domain.User{}, &rc.Users},
		{&domain.Company{}, &rc.Companies},
		{&domain.Job{}, &rc.Jobs},
		{&domain.Application{}, &rc.Applications},
		{&domain.Activity{}, &rc.Activities},
	} {
		if err := q.Model(c.model).Count(c.dst).Error; err != nil {
			return domain.RowCounts{}, wrap("count rows", err)
		}
	}
	return rc, nil
}
