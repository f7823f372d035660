package sqlxrepos

import (
	"context"

	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/ranking"
)

type rankingRepository struct {
	db core.DBExecutor
}

var _ ranking.Repository = (*rankingRepository)(nil)

func NewRankingRepository(db core.DBExecutor) ranking.Repository {
	return &rankingRepository{db: db}
}

func (repo *rankingRepository) QueryRankings(ctx context.Context) ([]ranking.Row, error) {
	q := `SELECT id, COALESCE(NULLIF(TRIM(name), ''), id) AS name, COALESCE(division, '') AS division,
		rating, "solvedCount", wins, losses, draws
	FROM "User"
	ORDER BY rating DESC, "solvedCount" DESC, id`

	rows := make([]ranking.Row, 0)
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "selecting rankings")
	}
	return rows, nil
}

func (repo *rankingRepository) QuerySolvedSets(ctx context.Context) (map[string]class.SolvedSet, error) {
	q := `SELECT DISTINCT s."userId" AS user_id, p.number
	FROM "Submission" s
	JOIN "Problem" p ON p.id = s."problemId"
	WHERE s.status = 'ACCEPTED'`

	var pairs []struct {
		UserID string `db:"user_id"`
		Number int    `db:"number"`
	}
	if err := repo.db.SelectContext(ctx, &pairs, q); err != nil {
		return nil, errors.Wrap(err, "selecting solved problems")
	}

	sets := make(map[string]class.SolvedSet)
	for _, p := range pairs {
		set, ok := sets[p.UserID]
		if !ok {
			set = class.NewSolvedSet()
			sets[p.UserID] = set
		}
		set.Add(p.Number)
	}
	return sets, nil
}
