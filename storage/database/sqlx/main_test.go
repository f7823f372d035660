package sqlxrepos

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}

var userCols = []string{
	"id", "handle", "name", "email", "password", "role", "division", "rating", "solvedCount", "wins", "losses", "draws",
	"bio", "avatarDataUrl", "bannerType", "customBannerDataUrl", "createdAt",
}
