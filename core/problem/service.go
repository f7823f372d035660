package problem

import (
	"context"
	"errors"

	"github.com/berrycrepe/choco-chip/core/class"
)

var ErrNotFound = errors.New("problem not found")

type (
	Repository interface {
		// QueryProblems returns the catalog ordered by problem number.
		QueryProblems(ctx context.Context) ([]Row, error)
		GetProblem(ctx context.Context, number int) (DetailRow, error)
	}

	Service interface {
		Query(ctx context.Context) ([]Problem, error)
		GetByNumber(ctx context.Context, number int) (Detail, error)
		ClassGroups(ctx context.Context) ([]class.Group, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Query(ctx context.Context) ([]Problem, error) {
	rows, err := svc.repo.QueryProblems(ctx)
	if err != nil {
		return nil, err
	}
	problems := make([]Problem, len(rows))
	for i, r := range rows {
		problems[i] = FromRow(r)
	}
	return problems, nil
}

func (svc *service) GetByNumber(ctx context.Context, number int) (Detail, error) {
	row, err := svc.repo.GetProblem(ctx, number)
	if err != nil {
		return Detail{}, err
	}
	return DetailFromRow(row), nil
}

func (svc *service) ClassGroups(ctx context.Context) ([]class.Group, error) {
	problems, err := svc.Query(ctx)
	if err != nil {
		return nil, err
	}
	return class.BuildGroups(Candidates(problems)), nil
}
