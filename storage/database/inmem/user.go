package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/berrycrepe/choco-chip/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.users))
	for _, u := range repo.db.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (repo *userRepository) CheckUniqueness(_ context.Context, id, email, nickname string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := repo.query()
	for _, usr := range users {
		if strings.EqualFold(usr.ID, id) {
			return user.ErrIDExists
		}
	}
	for _, usr := range users {
		if strings.EqualFold(usr.Email, email) {
			return user.ErrEmailExists
		}
	}
	for _, usr := range users {
		if strings.EqualFold(usr.Name, nickname) {
			return user.ErrNicknameExists
		}
	}
	return nil
}

func (repo *userRepository) CheckNicknameUniqueness(_ context.Context, nickname, excludedID string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.ID == excludedID {
			continue
		}
		if strings.EqualFold(usr.ProfileHandle(), nickname) || strings.EqualFold(usr.ID, nickname) || strings.EqualFold(usr.Name, nickname) {
			return user.ErrNicknameExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.users[lower(usr.ID)]; ok {
		return user.User{}, user.ErrIDExists
	}
	repo.db.users[lower(usr.ID)] = &usr
	return usr, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter.ID != "" {
		if usr, ok := repo.db.users[lower(filter.ID)]; ok {
			return *usr, nil
		}
		return user.User{}, user.ErrNotFound
	}
	if filter.Handle != "" {
		for _, usr := range repo.query() {
			if strings.EqualFold(usr.ProfileHandle(), filter.Handle) {
				return usr, nil
			}
		}
		if usr, ok := repo.db.users[lower(filter.Handle)]; ok {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateProfile(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.users[lower(usr.ID)]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	orig.Name = usr.Name
	orig.Bio = usr.Bio
	orig.AvatarDataURL = usr.AvatarDataURL
	orig.BannerType = usr.BannerType
	orig.CustomBannerDataURL = usr.CustomBannerDataURL
	return *orig, nil
}

func (repo *userRepository) SetPassword(_ context.Context, id, passwordHash string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	usr, ok := repo.db.users[lower(id)]
	if !ok {
		return user.ErrNotFound
	}
	usr.PasswordHash = passwordHash
	return nil
}

func (repo *userRepository) SearchUsers(_ context.Context, q string, limit int) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	q = lower(q)
	users := make([]user.User, 0)
	for _, usr := range repo.query() {
		if strings.Contains(lower(usr.Name), q) || strings.Contains(lower(usr.Handle), q) {
			users = append(users, usr)
		}
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].SolvedCount > users[j].SolvedCount })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}
