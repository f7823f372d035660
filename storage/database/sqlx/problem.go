package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/problem"
)

type problemRow struct {
	ID          string      `db:"id"`
	Number      int         `db:"number"`
	Title       string      `db:"title"`
	Difficulty  null.String `db:"difficulty"`
	Tags        null.String `db:"tags"`
	SolvedCount int         `db:"solved_count"`
}

func (r problemRow) toRow() problem.Row {
	return problem.Row{
		Number:      r.Number,
		DBID:        r.ID,
		Title:       r.Title,
		Difficulty:  r.Difficulty.String,
		Tags:        r.Tags.String,
		SolvedCount: r.SolvedCount,
	}
}

type problemDetailRow struct {
	problemRow
	Description null.String `db:"description"`
	InputDesc   null.String `db:"inputDesc"`
	OutputDesc  null.String `db:"outputDesc"`
	TimeLimit   null.Int    `db:"timeLimit"`
	MemoryLimit null.Int    `db:"memoryLimit"`
}

type problemRepository struct {
	db core.DBExecutor
}

var _ problem.Repository = (*problemRepository)(nil)

func NewProblemRepository(db core.DBExecutor) problem.Repository {
	return &problemRepository{db: db}
}

func (repo *problemRepository) QueryProblems(ctx context.Context) ([]problem.Row, error) {
	q := `SELECT p.id, p.number, p.title, p.difficulty, p.tags,
		COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'ACCEPTED') AS solved_count
	FROM "Problem" p
	LEFT JOIN "Submission" s ON s."problemId" = p.id
	GROUP BY p.id, p.number, p.title, p.difficulty, p.tags
	ORDER BY p.number`

	var rows []problemRow
	if err := repo.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, errors.Wrap(err, "selecting problems")
	}
	problems := make([]problem.Row, len(rows))
	for i, r := range rows {
		problems[i] = r.toRow()
	}
	return problems, nil
}

func (repo *problemRepository) GetProblem(ctx context.Context, number int) (problem.DetailRow, error) {
	q := `SELECT p.id, p.number, p.title, p.difficulty, p.tags,
		p.description, p."inputDesc", p."outputDesc", p."timeLimit", p."memoryLimit",
		COUNT(DISTINCT s.id) FILTER (WHERE s.status = 'ACCEPTED') AS solved_count
	FROM "Problem" p
	LEFT JOIN "Submission" s ON s."problemId" = p.id
	WHERE p.number = $1
	GROUP BY p.id`

	var row problemDetailRow
	if err := repo.db.GetContext(ctx, &row, q, number); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return problem.DetailRow{}, problem.ErrNotFound
		}
		return problem.DetailRow{}, errors.Wrap(err, "selecting problem")
	}
	return problem.DetailRow{
		Row:         row.toRow(),
		Description: row.Description.String,
		InputDesc:   row.InputDesc.String,
		OutputDesc:  row.OutputDesc.String,
		TimeLimit:   row.TimeLimit.Int,
		MemoryLimit: row.MemoryLimit.Int,
	}, nil
}
