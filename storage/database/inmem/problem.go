package inmemdb

import (
	"context"
	"sort"

	"github.com/berrycrepe/choco-chip/core/problem"
)

type problemRepository struct {
	db *DB
}

var _ problem.Repository = (*problemRepository)(nil)

func NewProblemRepository(db *DB) problem.Repository {
	return &problemRepository{db: db}
}

// solvedCounts counts distinct accepted submissions per problem number.
func (repo *problemRepository) solvedCounts() map[int]int {
	counts := make(map[int]int)
	for _, s := range repo.db.accepted("") {
		counts[s.ProblemID]++
	}
	return counts
}

func (repo *problemRepository) QueryProblems(_ context.Context) ([]problem.Row, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	counts := repo.solvedCounts()
	rows := make([]problem.Row, 0, len(repo.db.problems))
	for _, p := range repo.db.problems {
		row := p.Row
		row.SolvedCount = counts[p.Number]
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Number < rows[j].Number })
	return rows, nil
}

func (repo *problemRepository) GetProblem(_ context.Context, number int) (problem.DetailRow, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	p, ok := repo.db.problems[number]
	if !ok {
		return problem.DetailRow{}, problem.ErrNotFound
	}
	row := *p
	row.SolvedCount = repo.solvedCounts()[number]
	return row, nil
}
