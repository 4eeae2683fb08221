package dummydb

import (
	"context"

	"github.com/trezcool/kozi/core/course"
)

type progressRepository struct {
	db *progressTable
}

var _ course.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db *DB) course.Repository {
	return &progressRepository{db: db.progress}
}

func (repo *progressRepository) UpsertProgress(_ context.Context, userID, videoID string, percent float64) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	rows, ok := repo.db.table[userID]
	if !ok {
		rows = make(map[string]float64)
		repo.db.table[userID] = rows
	}
	rows[videoID] = percent
	return nil
}

func (repo *progressRepository) GetAllProgress(_ context.Context, userID string) (course.ProgressMap, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	progress := make(course.ProgressMap, len(repo.db.table[userID]))
	for videoID, pct := range repo.db.table[userID] {
		progress[videoID] = pct
	}
	return progress, nil
}
