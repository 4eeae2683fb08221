package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/kozi/core"
	"github.com/trezcool/kozi/core/course"
)

type progressRepository struct {
	db core.DBExecutor
}

var _ course.Repository = (*progressRepository)(nil) // interface compliance check

func NewProgressRepository(db core.DBExecutor) course.Repository {
	return &progressRepository{db: db}
}

func (repo *progressRepository) UpsertProgress(ctx context.Context, userID, videoID string, percent float64) error {
	query := `
INSERT INTO video_progress (user_id, video_id, progress)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, video_id)
    DO UPDATE SET progress = EXCLUDED.progress, updated_at = NOW()`
	if _, err := repo.db.ExecContext(ctx, query, userID, videoID, percent); err != nil {
		return errors.Wrap(err, "upserting video progress")
	}
	return nil
}

func (repo *progressRepository) GetAllProgress(ctx context.Context, userID string) (course.ProgressMap, error) {
	query := `SELECT video_id, progress FROM video_progress WHERE user_id = $1`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying video progress")
	}
	defer func() { _ = rows.Close() }()

	progress := make(course.ProgressMap)
	for rows.Next() {
		var videoID string
		var pct float64
		if err = rows.Scan(&videoID, &pct); err != nil {
			return nil, errors.Wrap(err, "scanning video progress")
		}
		progress[videoID] = pct
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "reading video progress")
	}
	return progress, nil
}
