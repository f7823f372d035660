package echoapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/ranking"
	"github.com/berrycrepe/choco-chip/core/stats"
	"github.com/berrycrepe/choco-chip/core/user"
)

type userApi struct {
	svc        user.Service
	statsSvc   stats.Service
	rankingSvc ranking.Service
	validate   *validator.Validate
	logger     core.Logger
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := userApi{
		svc:        deps.UserSvc,
		statsSvc:   deps.StatsSvc,
		rankingSvc: deps.RankingSvc,
		validate:   deps.Validate,
		logger:     deps.Logger,
	}

	ug := g.Group("/users")
	ug.GET("/profile", api.profile)
	ug.PATCH("/profile", api.updateProfile, jwt)
	ug.GET("/search", api.search)
	ug.GET("/streak", api.streak)
}

func requiredParam(name string) error {
	return core.NewValidationError(
		errors.Errorf("%s is required", name),
		core.FieldError{Field: name, Error: "this field is required"},
	)
}

// Handlers

func (api *userApi) profile(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("userId"))
	handle := core.CleanString(ctx.QueryParam("handle"))

	c := ctx.Request().Context()
	var usr user.User
	var err error
	switch {
	case userID != "":
		usr, err = api.svc.GetByID(c, userID)
	case handle != "":
		usr, err = api.svc.GetByHandle(c, handle)
	default:
		err = user.ErrNotFound
	}
	if err != nil {
		return errors.Wrap(err, "finding user")
	}

	st, err := api.statsSvc.UserStats(c, usr.ID, usr.SolvedCount)
	if err != nil {
		return errors.Wrap(err, "computing user stats")
	}

	return ctx.JSON(http.StatusOK, ProfileResponse{
		OK:               true,
		User:             usr,
		SolvedProblemIDs: st.SolvedProblemIDs,
		Heatmap:          st.Heatmap,
		CurrentStreak:    st.CurrentStreak,
		LongestStreak:    st.LongestStreak,
		TopDifficultySum: st.TopDifficultySum,
		Class:            st.Class,
		ACRating:         st.ACRating,
	})
}

func (api *userApi) updateProfile(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data user.UpdateProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if data.UserID = core.CleanString(data.UserID); data.UserID == "" {
		data.UserID = claims.Subject
	}
	if !strings.EqualFold(data.UserID, claims.Subject) {
		return errHttpForbidden
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	c := ctx.Request().Context()
	if data.BannerType == user.BannerCustomUpload {
		standing, err := api.statsSvc.Standing(c, claims.Subject)
		if err != nil {
			return errors.Wrap(err, "computing class standing")
		}
		if standing.Level < user.CustomBannerMinClass {
			return errCustomBannerLocked
		}
	}

	usr, err := api.svc.UpdateProfile(c, claims.Subject, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	if err = api.rankingSvc.Invalidate(c); err != nil {
		api.logger.Warn("invalidating rankings", err, usr)
	}

	solved, err := api.statsSvc.SolvedProblemNumbers(c, usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying solved problems")
	}
	if solved == nil {
		solved = []int{}
	}

	return ctx.JSON(http.StatusOK, UpdatedProfileResponse{OK: true, User: usr, SolvedProblemIDs: solved})
}

func (api *userApi) search(ctx echo.Context) error {
	users, err := api.svc.Search(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return errors.Wrap(err, "searching users")
	}

	results := make([]SearchUser, len(users))
	for i, usr := range users {
		results[i] = SearchUser{
			ID:            usr.ID,
			Handle:        usr.ProfileHandle(),
			Name:          usr.Name,
			Division:      usr.Division,
			Rating:        usr.Rating,
			SolvedCount:   usr.SolvedCount,
			AvatarDataURL: usr.AvatarDataURL,
		}
	}
	return ctx.JSON(http.StatusOK, SearchResponse{OK: true, Users: results})
}

func (api *userApi) streak(ctx echo.Context) error {
	userID := core.CleanString(ctx.QueryParam("userId"))
	if userID == "" {
		return requiredParam("userId")
	}

	streak, err := api.statsSvc.Streak(ctx.Request().Context(), userID)
	if err != nil {
		return errors.Wrap(err, "computing streak")
	}
	return ctx.JSON(http.StatusOK, StreakResponse{OK: true, Streak: streak})
}
