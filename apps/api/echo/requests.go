package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/stats"
	"github.com/berrycrepe/choco-chip/core/user"
)

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Identifier = core.CleanString(r.Identifier)
	return validate.Struct(r)
}

// Account is the signed in user as returned on login and signup.
type Account struct {
	ID                  string `json:"id"`
	Handle              string `json:"handle"`
	Email               string `json:"email"`
	Nickname            string `json:"nickname"`
	Division            string `json:"division"`
	Rating              int    `json:"rating"`
	SolvedCount         int    `json:"solvedCount"`
	Wins                int    `json:"wins"`
	Losses              int    `json:"losses"`
	Draws               int    `json:"draws"`
	SolvedProblemIDs    []int  `json:"solvedProblemIds"`
	Bio                 string `json:"bio"`
	AvatarDataURL       string `json:"avatarDataUrl"`
	BannerType          string `json:"bannerType"`
	CustomBannerDataURL string `json:"customBannerDataUrl"`
}

func NewAccount(usr user.User, solved []int) Account {
	if solved == nil {
		solved = []int{}
	}
	return Account{
		ID:                  usr.ID,
		Handle:              usr.ProfileHandle(),
		Email:               usr.Email,
		Nickname:            usr.Name,
		Division:            usr.Division,
		Rating:              usr.Rating,
		SolvedCount:         usr.SolvedCount,
		Wins:                usr.Wins,
		Losses:              usr.Losses,
		Draws:               usr.Draws,
		SolvedProblemIDs:    solved,
		Bio:                 usr.Bio,
		AvatarDataURL:       usr.AvatarDataURL,
		BannerType:          usr.BannerType,
		CustomBannerDataURL: usr.CustomBannerDataURL,
	}
}

type SessionResponse struct {
	OK      bool    `json:"ok"`
	Message string  `json:"message"`
	Token   string  `json:"token"`
	User    Account `json:"user"`
}

type TokenResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

type ProfileResponse struct {
	OK               bool               `json:"ok"`
	User             user.User          `json:"user"`
	SolvedProblemIDs []int              `json:"solvedProblemIds"`
	Heatmap          []stats.HeatmapDay `json:"heatmap"`
	CurrentStreak    int                `json:"currentStreak"`
	LongestStreak    int                `json:"longestStreak"`
	TopDifficultySum int                `json:"topDifficultySum"`
	Class            stats.Standing     `json:"class"`
	ACRating         stats.ACRating     `json:"acRating"`
}

type UpdatedProfileResponse struct {
	OK               bool      `json:"ok"`
	User             user.User `json:"user"`
	SolvedProblemIDs []int     `json:"solvedProblemIds"`
}

// SearchUser is the public subset of a user shown in search results.
type SearchUser struct {
	ID            string `json:"id"`
	Handle        string `json:"handle"`
	Name          string `json:"name"`
	Division      string `json:"division"`
	Rating        int    `json:"rating"`
	SolvedCount   int    `json:"solvedCount"`
	AvatarDataURL string `json:"avatarDataUrl"`
}

type SearchResponse struct {
	OK    bool         `json:"ok"`
	Users []SearchUser `json:"users"`
}

type StreakResponse struct {
	OK bool `json:"ok"`
	stats.Streak
}
