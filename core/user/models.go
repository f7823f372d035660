package user

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/berrycrepe/choco-chip/core"
)

// Account defaults
const (
	RoleStudent = "STUDENT"
	RoleAdmin   = "ADMIN"

	DefaultDivision = "Bronze"
	DefaultRating   = 1200
)

// Banner types
const (
	BannerFreeGrid     = "free-grid"
	BannerFreeNebula   = "free-nebula"
	BannerFreeMidnight = "free-midnight"
	BannerCustomUpload = "custom-upload"

	// CustomBannerMinClass is the CLASS level required to upload a custom banner.
	CustomBannerMinClass = 5
)

type User struct {
	ID                  string    `json:"id"`
	Handle              string    `json:"handle"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	Role                string    `json:"-"`
	Division            string    `json:"division"`
	Rating              int       `json:"rating"`
	SolvedCount         int       `json:"solvedCount"`
	Wins                int       `json:"wins"`
	Losses              int       `json:"losses"`
	Draws               int       `json:"draws"`
	Bio                 string    `json:"bio"`
	AvatarDataURL       string    `json:"avatarDataUrl"`
	BannerType          string    `json:"bannerType"`
	CustomBannerDataURL string    `json:"customBannerDataUrl"`
	PasswordHash        string    `json:"-"`
	CreatedAt           time.Time `json:"-"` // UTC
}

// ProfileHandle is the permanent profile URL key. Accounts created before handles existed fall back to their name.
func (u *User) ProfileHandle() string {
	if u.Handle != "" {
		return u.Handle
	}
	return u.Name
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares pwd with the stored bcrypt hash and returns ErrWrongPassword on mismatch.
// Legacy accounts imported with plain text passwords are compared as is.
func (u *User) CheckPassword(pwd string) error {
	if isBcryptHash(u.PasswordHash) {
		err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
		if err == bcrypt.ErrMismatchedHashAndPassword {
			return ErrWrongPassword
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(u.PasswordHash), []byte(pwd)) != 1 {
		return ErrWrongPassword
	}
	return nil
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

// NewUser contains information needed to sign up.
type NewUser struct {
	ID       string `json:"id" validate:"required,handle"`
	Email    string `json:"email" validate:"required"`
	Nickname string `json:"nickname" validate:"required"`
	Password string `json:"password" validate:"required,notblank"`
}

func (nu *NewUser) Clean() {
	nu.ID = core.CleanString(nu.ID)
	nu.Email = core.CleanString(nu.Email)
	nu.Nickname = core.CleanString(nu.Nickname)
}

// UpdateProfile defines what information may be provided to modify a profile.
// The handle is not part of it: it never changes.
type UpdateProfile struct {
	UserID              string `json:"userId"`
	Nickname            string `json:"nickname" validate:"required"`
	Bio                 string `json:"bio"`
	AvatarDataURL       string `json:"avatarDataUrl"`
	BannerType          string `json:"bannerType" validate:"oneof=free-grid free-nebula free-midnight custom-upload"`
	CustomBannerDataURL string `json:"customBannerDataUrl"`
}

func (up *UpdateProfile) Clean() {
	up.UserID = core.CleanString(up.UserID)
	up.Nickname = core.CleanString(up.Nickname)
	if up.BannerType == "" {
		up.BannerType = BannerFreeGrid
	}
}

func (up *UpdateProfile) Validate(validate *validator.Validate) error {
	up.Clean()
	return validate.Struct(up)
}

type GetFilter struct {
	ID     string // case-insensitive
	Handle string // case-insensitive; falls back to ID
}
