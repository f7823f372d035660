package sqlxrepos

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/stats"
)

type statsRepository struct {
	db core.DBExecutor
}

var _ stats.Repository = (*statsRepository)(nil)

func NewStatsRepository(db core.DBExecutor) stats.Repository {
	return &statsRepository{db: db}
}

func (repo *statsRepository) SolvedProblemNumbers(ctx context.Context, userID string) ([]int, error) {
	q := `SELECT DISTINCT p.number
	FROM "Submission" s
	JOIN "Problem" p ON p.id = s."problemId"
	WHERE s."userId" = $1 AND s.status = 'ACCEPTED'
	ORDER BY p.number`

	numbers := make([]int, 0)
	if err := repo.db.SelectContext(ctx, &numbers, q, userID); err != nil {
		return nil, errors.Wrap(err, "selecting solved problem numbers")
	}
	return numbers, nil
}

func (repo *statsRepository) SolvedDays(ctx context.Context, userID string) ([]string, error) {
	q := `SELECT DISTINCT TO_CHAR(DATE("createdAt" AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS solved_date
	FROM "Submission"
	WHERE "userId" = $1 AND status = 'ACCEPTED'
	ORDER BY solved_date`

	days := make([]string, 0)
	if err := repo.db.SelectContext(ctx, &days, q, userID); err != nil {
		return nil, errors.Wrap(err, "selecting solved days")
	}
	return days, nil
}

func (repo *statsRepository) DailySolveCounts(ctx context.Context, userID string, since time.Time) ([]stats.DailyCount, error) {
	q := `SELECT TO_CHAR(DATE("createdAt" AT TIME ZONE 'UTC'), 'YYYY-MM-DD') AS date, COUNT(DISTINCT "problemId") AS count
	FROM "Submission"
	WHERE "userId" = $1 AND status = 'ACCEPTED' AND "createdAt" >= $2
	GROUP BY 1
	ORDER BY 1`

	counts := make([]stats.DailyCount, 0)
	if err := repo.db.SelectContext(ctx, &counts, q, userID, since.UTC()); err != nil {
		return nil, errors.Wrap(err, "selecting daily solve counts")
	}
	return counts, nil
}

func (repo *statsRepository) SolvedDifficulties(ctx context.Context, userID string) ([]string, error) {
	q := `SELECT COALESCE(p.difficulty, '')
	FROM "Problem" p
	WHERE p.id IN (SELECT "problemId" FROM "Submission" WHERE "userId" = $1 AND status = 'ACCEPTED')`

	difficulties := make([]string, 0)
	if err := repo.db.SelectContext(ctx, &difficulties, q, userID); err != nil {
		return nil, errors.Wrap(err, "selecting solved difficulties")
	}
	return difficulties, nil
}

func (repo *statsRepository) SiteStats(ctx context.Context) (stats.SiteStats, error) {
	q := `SELECT
		(SELECT COUNT(*) FROM "Problem") AS problem_count,
		(SELECT COUNT(*) FROM "User") AS user_count,
		(SELECT COUNT(*) FROM "Submission") AS submission_count`

	var s stats.SiteStats
	if err := repo.db.GetContext(ctx, &s, q); err != nil {
		return stats.SiteStats{}, errors.Wrap(err, "counting site stats")
	}
	return s, nil
}
