package user

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/berrycrepe/choco-chip/core"
)

// SearchLimit caps the number of users returned by a search.
const SearchLimit = 8

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrWrongPassword  = errors.New("wrong password")
	ErrIDExists       = errors.New("this id is already in use")
	ErrEmailExists    = errors.New("this email is already in use")
	ErrNicknameExists = errors.New("this nickname is already in use")

	nowFunc = time.Now // mockable
)

type (
	Repository interface {
		// CheckUniqueness returns the first of ErrIDExists, ErrEmailExists or ErrNicknameExists matching (case-insensitive) an existing user.
		CheckUniqueness(ctx context.Context, id, email, nickname string) error
		// CheckNicknameUniqueness returns ErrNicknameExists if a user other than excludedID uses nickname as name, handle or id.
		CheckNicknameUniqueness(ctx context.Context, nickname, excludedID string) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		UpdateProfile(ctx context.Context, usr User) (User, error)
		SetPassword(ctx context.Context, id, passwordHash string) error
		// SearchUsers matches q (case-insensitive) against name or handle, most solved first.
		SearchUsers(ctx context.Context, q string, limit int) ([]User, error)
	}

	Service interface {
		Signup(ctx context.Context, nu NewUser, validate *validator.Validate) (User, error)
		Authenticate(ctx context.Context, identifier, pwd string) (User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByHandle(ctx context.Context, handle string) (User, error)
		UpdateProfile(ctx context.Context, id string, up UpdateProfile) (User, error)
		ResetPassword(ctx context.Context, id, pwd string) error
		Search(ctx context.Context, q string) ([]User, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func conflictField(err error) (string, bool) {
	switch err {
	case ErrIDExists:
		return "id", true
	case ErrEmailExists:
		return "email", true
	case ErrNicknameExists:
		return "nickname", true
	default:
		return "", false
	}
}

func asConflict(err error) error {
	if field, ok := conflictField(err); ok {
		return core.NewConflictError(err, field)
	}
	return err
}

func (svc *service) Signup(ctx context.Context, nu NewUser, validate *validator.Validate) (User, error) {
	nu.Clean()
	if err := validate.Struct(nu); err != nil {
		return User{}, err
	}
	if err := svc.repo.CheckUniqueness(ctx, nu.ID, nu.Email, nu.Nickname); err != nil {
		return User{}, asConflict(err)
	}

	usr := User{
		ID:         nu.ID,
		Handle:     nu.Nickname,
		Name:       nu.Nickname,
		Email:      nu.Email,
		Role:       RoleStudent,
		Division:   DefaultDivision,
		Rating:     DefaultRating,
		BannerType: BannerFreeGrid,
		CreatedAt:  nowFunc().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	// the store reports ids or emails taken since the uniqueness check
	created, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, asConflict(err)
	}
	return created, nil
}

// Authenticate returns ErrNotFound for unknown identifiers and ErrWrongPassword for bad credentials.
func (svc *service) Authenticate(ctx context.Context, identifier, pwd string) (User, error) {
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: core.CleanString(identifier)})
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrWrongPassword
	}
	return usr, nil
}

func (svc *service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: core.CleanString(id)})
}

func (svc *service) GetByHandle(ctx context.Context, handle string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{Handle: core.CleanString(handle)})
}

// UpdateProfile expects a validated UpdateProfile.
func (svc *service) UpdateProfile(ctx context.Context, id string, up UpdateProfile) (User, error) {
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		return User{}, err
	}
	if err = svc.repo.CheckNicknameUniqueness(ctx, up.Nickname, usr.ID); err != nil {
		return User{}, asConflict(err)
	}

	usr.Name = up.Nickname
	usr.Bio = up.Bio
	usr.AvatarDataURL = up.AvatarDataURL
	usr.BannerType = up.BannerType
	usr.CustomBannerDataURL = up.CustomBannerDataURL
	return svc.repo.UpdateProfile(ctx, usr)
}

func (svc *service) ResetPassword(ctx context.Context, id, pwd string) error {
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: core.CleanString(id)})
	if err != nil {
		return err
	}
	if err = usr.SetPassword(pwd); err != nil {
		return err
	}
	return svc.repo.SetPassword(ctx, usr.ID, usr.PasswordHash)
}

func (svc *service) Search(ctx context.Context, q string) ([]User, error) {
	q = core.CleanString(q)
	if q == "" {
		return []User{}, nil
	}
	return svc.repo.SearchUsers(ctx, q, SearchLimit)
}
