package sqlxrepos

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/user"
)

const userColumns = `id, handle, name, email, password, role, division, rating, "solvedCount", wins, losses, draws,
	bio, "avatarDataUrl", "bannerType", "customBannerDataUrl", "createdAt"`

type userRow struct {
	ID                  string      `db:"id"`
	Handle              null.String `db:"handle"`
	Name                string      `db:"name"`
	Email               string      `db:"email"`
	Password            string      `db:"password"`
	Role                string      `db:"role"`
	Division            null.String `db:"division"`
	Rating              int         `db:"rating"`
	SolvedCount         int         `db:"solvedCount"`
	Wins                int         `db:"wins"`
	Losses              int         `db:"losses"`
	Draws               int         `db:"draws"`
	Bio                 null.String `db:"bio"`
	AvatarDataURL       null.String `db:"avatarDataUrl"`
	BannerType          null.String `db:"bannerType"`
	CustomBannerDataURL null.String `db:"customBannerDataUrl"`
	CreatedAt           time.Time   `db:"createdAt"`
}

func (r userRow) toUser() user.User {
	usr := user.User{
		ID:                  r.ID,
		Handle:              r.Handle.String,
		Name:                r.Name,
		Email:               r.Email,
		Role:                r.Role,
		Division:            r.Division.String,
		Rating:              r.Rating,
		SolvedCount:         r.SolvedCount,
		Wins:                r.Wins,
		Losses:              r.Losses,
		Draws:               r.Draws,
		Bio:                 r.Bio.String,
		AvatarDataURL:       r.AvatarDataURL.String,
		BannerType:          r.BannerType.String,
		CustomBannerDataURL: r.CustomBannerDataURL.String,
		PasswordHash:        r.Password,
		CreatedAt:           r.CreatedAt.UTC(),
	}
	usr.Handle = usr.ProfileHandle()
	if usr.BannerType == "" {
		usr.BannerType = user.BannerFreeGrid
	}
	return usr
}

func fromUser(usr user.User) userRow {
	return userRow{
		ID:                  usr.ID,
		Handle:              null.StringFrom(usr.Handle),
		Name:                usr.Name,
		Email:               usr.Email,
		Password:            usr.PasswordHash,
		Role:                usr.Role,
		Division:            null.StringFrom(usr.Division),
		Rating:              usr.Rating,
		SolvedCount:         usr.SolvedCount,
		Wins:                usr.Wins,
		Losses:              usr.Losses,
		Draws:               usr.Draws,
		Bio:                 null.StringFrom(usr.Bio),
		AvatarDataURL:       null.StringFrom(usr.AvatarDataURL),
		BannerType:          null.StringFrom(usr.BannerType),
		CustomBannerDataURL: null.StringFrom(usr.CustomBannerDataURL),
		CreatedAt:           usr.CreatedAt,
	}
}

type userRepository struct {
	db core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db core.DBExecutor) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUniqueness(ctx context.Context, id, email, nickname string) error {
	var taken struct {
		ID       bool `db:"id_taken"`
		Email    bool `db:"email_taken"`
		Nickname bool `db:"nickname_taken"`
	}
	q := `SELECT
		EXISTS (SELECT 1 FROM "User" WHERE LOWER(id) = LOWER($1)) AS id_taken,
		EXISTS (SELECT 1 FROM "User" WHERE LOWER(email) = LOWER($2)) AS email_taken,
		EXISTS (SELECT 1 FROM "User" WHERE LOWER(name) = LOWER($3)) AS nickname_taken`
	if err := repo.db.GetContext(ctx, &taken, q, id, email, nickname); err != nil {
		return errors.Wrap(err, "checking user uniqueness")
	}

	switch {
	case taken.ID:
		return user.ErrIDExists
	case taken.Email:
		return user.ErrEmailExists
	case taken.Nickname:
		return user.ErrNicknameExists
	}
	return nil
}

func (repo *userRepository) CheckNicknameUniqueness(ctx context.Context, nickname, excludedID string) error {
	var taken bool
	q := `SELECT EXISTS (
		SELECT 1 FROM "User"
		WHERE id <> $2
		  AND (LOWER(COALESCE(NULLIF(handle, ''), name)) = LOWER($1) OR LOWER(id) = LOWER($1) OR LOWER(name) = LOWER($1))
	)`
	if err := repo.db.GetContext(ctx, &taken, q, nickname, excludedID); err != nil {
		return errors.Wrap(err, "checking nickname uniqueness")
	}
	if taken {
		return user.ErrNicknameExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := `INSERT INTO "User" (` + userColumns + `)
	VALUES (:id, :handle, :name, :email, :password, :role, :division, :rating, :solvedCount, :wins, :losses, :draws,
		:bio, :avatarDataUrl, :bannerType, :customBannerDataUrl, :createdAt)`
	if _, err := sqlx.NamedExecContext(ctx, repo.db, q, fromUser(usr)); err != nil {
		if taken := uniqueViolation(err); taken != nil {
			return user.User{}, taken
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

const uniqueViolationCode = "23505"

// uniqueViolation maps a unique index violation on insert to the matching user error, nil otherwise.
func uniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolationCode {
		return nil
	}
	if pqErr.Constraint == "user_email_lower_idx" {
		return user.ErrEmailExists
	}
	return user.ErrIDExists
}

func (repo *userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	var (
		q   string
		arg string
	)
	switch {
	case filter.ID != "":
		q = `SELECT ` + userColumns + ` FROM "User" WHERE LOWER(id) = LOWER($1) LIMIT 1`
		arg = filter.ID
	case filter.Handle != "":
		// handle first, then id for links predating handles
		q = `SELECT ` + userColumns + ` FROM "User"
		WHERE LOWER(COALESCE(NULLIF(handle, ''), name)) = LOWER($1) OR LOWER(id) = LOWER($1)
		ORDER BY CASE WHEN LOWER(COALESCE(NULLIF(handle, ''), name)) = LOWER($1) THEN 0 ELSE 1 END
		LIMIT 1`
		arg = filter.Handle
	default:
		return user.User{}, user.ErrNotFound
	}

	var row userRow
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "selecting user")
	}
	return row.toUser(), nil
}

// UpdateProfile saves the editable profile fields. The handle is left untouched.
func (repo *userRepository) UpdateProfile(ctx context.Context, usr user.User) (user.User, error) {
	q := `UPDATE "User"
	SET name = $2, bio = $3, "avatarDataUrl" = $4, "bannerType" = $5, "customBannerDataUrl" = $6
	WHERE id = $1
	RETURNING ` + userColumns
	var row userRow
	err := repo.db.GetContext(ctx, &row, q, usr.ID, usr.Name, usr.Bio, usr.AvatarDataURL, usr.BannerType, usr.CustomBannerDataURL)
	if err != nil {
		if errors.Cause(err) == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "updating user profile")
	}
	return row.toUser(), nil
}

func (repo *userRepository) SetPassword(ctx context.Context, id, passwordHash string) error {
	res, err := repo.db.ExecContext(ctx, `UPDATE "User" SET password = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return errors.Wrap(err, "updating user password")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating user password")
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (repo *userRepository) SearchUsers(ctx context.Context, q string, limit int) ([]user.User, error) {
	pattern := "%" + likeEscaper.Replace(q) + "%"
	query := `SELECT ` + userColumns + ` FROM "User"
	WHERE name ILIKE $1 OR handle ILIKE $1
	ORDER BY "solvedCount" DESC, id
	LIMIT $2`

	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows, query, pattern, limit); err != nil {
		return nil, errors.Wrap(err, "searching users")
	}
	users := make([]user.User, len(rows))
	for i, r := range rows {
		users[i] = r.toUser()
	}
	return users, nil
}
