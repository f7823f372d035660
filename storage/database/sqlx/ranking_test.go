package sqlxrepos

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berrycrepe/choco-chip/core/class"
	"github.com/berrycrepe/choco-chip/core/ranking"
)

func TestRankingRepository_QueryRankings(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`ORDER BY rating DESC, "solvedCount" DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "division", "rating", "solvedCount", "wins", "losses", "draws"}).
			AddRow("bob", "Bob", "Gold", 1500, 10, 1, 0, 0).
			AddRow("alice", "Alice", "Gold", 1500, 8, 0, 1, 0))

	rows, err := NewRankingRepository(db).QueryRankings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []ranking.Row{
		{ID: "bob", Name: "Bob", Division: "Gold", Rating: 1500, SolvedCount: 10, Wins: 1},
		{ID: "alice", Name: "Alice", Division: "Gold", Rating: 1500, SolvedCount: 8, Losses: 1},
	}, rows)
}

func TestRankingRepository_QuerySolvedSets(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT DISTINCT").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "number"}).
			AddRow("bob", 1000).AddRow("bob", 1001).AddRow("alice", 1000))

	sets, err := NewRankingRepository(db).QuerySolvedSets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]class.SolvedSet{
		"bob":   class.NewSolvedSet(1000, 1001),
		"alice": class.NewSolvedSet(1000),
	}, sets)
}

func TestRankingRepository_Error(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("conn reset"))

	_, err := NewRankingRepository(db).QueryRankings(context.Background())
	assert.EqualError(t, err, "selecting rankings: conn reset")
}
