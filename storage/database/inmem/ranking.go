package inmemdb

import (
	"context"
	"sort"

	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/ranking"
)

type rankingRepository struct {
	db *DB
}

var _ ranking.Repository = (*rankingRepository)(nil)

func NewRankingRepository(db *DB) ranking.Repository {
	return &rankingRepository{db: db}
}

func (repo *rankingRepository) QueryRankings(_ context.Context) ([]ranking.Row, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	rows := make([]ranking.Row, 0, len(repo.db.users))
	for _, u := range repo.db.users {
		name := u.Name
		if name == "" {
			name = u.ID
		}
		rows = append(rows, ranking.Row{
			ID:          u.ID,
			Name:        name,
			Division:    u.Division,
			Rating:      u.Rating,
			SolvedCount: u.SolvedCount,
			Wins:        u.Wins,
			Losses:      u.Losses,
			Draws:       u.Draws,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Rating != rows[j].Rating {
			return rows[i].Rating > rows[j].Rating
		}
		if rows[i].SolvedCount != rows[j].SolvedCount {
			return rows[i].SolvedCount > rows[j].SolvedCount
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func (repo *rankingRepository) QuerySolvedSets(_ context.Context) (map[string]class.SolvedSet, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	sets := make(map[string]class.SolvedSet)
	for _, s := range repo.db.accepted("") {
		if _, ok := repo.db.problems[s.ProblemID]; !ok {
			continue
		}
		set, ok := sets[s.UserID]
		if !ok {
			set = class.NewSolvedSet()
			sets[s.UserID] = set
		}
		set.Add(s.ProblemID)
	}
	return sets, nil
}
