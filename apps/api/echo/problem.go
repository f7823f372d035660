package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core"
	"github.com/berrycrepe/choco-chip/core/problem"
)

type problemApi struct {
	svc problem.Service
}

func registerProblemAPI(g *echo.Group, svc problem.Service) {
	api := problemApi{svc: svc}

	g.GET("/problems", api.query)
	g.GET("/problems/:id", api.retrieve)
	g.GET("/class-problems", api.classGroups)
}

// Handlers

func (api *problemApi) query(ctx echo.Context) error {
	problems, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying problems")
	}
	return ctx.JSON(http.StatusOK, problems)
}

func (api *problemApi) retrieve(ctx echo.Context) error {
	number, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return core.NewValidationError(
			errors.New("invalid problem id"),
			core.FieldError{Field: "id", Error: "must be a problem number"},
		)
	}

	p, err := api.svc.GetByNumber(ctx.Request().Context(), number)
	if err != nil {
		return errors.Wrap(err, "getting problem")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *problemApi) classGroups(ctx echo.Context) error {
	groups, err := api.svc.ClassGroups(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "building class groups")
	}
	return ctx.JSON(http.StatusOK, groups)
}
