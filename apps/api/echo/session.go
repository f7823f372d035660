package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/ranking"
	"github.com/berrycrepe/choco-chip/core/stats"
	"github.com/berrycrepe/choco-chip/core/user"
)

type sessionApi struct {
	auth       *authenticator
	userSvc    user.Service
	statsSvc   stats.Service
	rankingSvc ranking.Service
	validate   *validator.Validate
	logger     core.Logger
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := sessionApi{
		auth:       auth,
		userSvc:    deps.UserSvc,
		statsSvc:   deps.StatsSvc,
		rankingSvc: deps.RankingSvc,
		validate:   deps.Validate,
		logger:     deps.Logger,
	}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/signup", api.signup)
	ag.POST("/token-refresh", api.refreshToken, jwt)
}

// Handlers

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c := ctx.Request().Context()
	usr, err := api.userSvc.Authenticate(c, data.Identifier, data.Password)
	if err != nil {
		switch errors.Cause(err) {
		case user.ErrNotFound:
			return errAccountNotFound
		case user.ErrWrongPassword:
			return errWrongPassword
		}
		return errors.Wrap(err, "authenticating")
	}

	solved, err := api.statsSvc.SolvedProblemNumbers(c, usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying solved problems")
	}
	token, err := api.auth.token(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, SessionResponse{
		OK:      true,
		Message: "logged in",
		Token:   token,
		User:    NewAccount(usr, solved),
	})
}

func (api *sessionApi) signup(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}

	c := ctx.Request().Context()
	usr, err := api.userSvc.Signup(c, data, api.validate)
	if err != nil {
		return errors.Wrap(err, "signing up")
	}
	if err = api.rankingSvc.Invalidate(c); err != nil {
		api.logger.Warn("invalidating rankings", err, usr)
	}

	token, err := api.auth.token(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, SessionResponse{
		OK:      true,
		Message: "signed up",
		Token:   token,
		User:    NewAccount(usr, nil),
	})
}

func (api *sessionApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{OK: true, Token: token})
}
