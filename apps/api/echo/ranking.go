package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/berrycrepe/choco-chip/core/ranking"
	"github.com/berrycrepe/choco-chip/core/stats"
)

type rankingApi struct {
	svc      ranking.Service
	statsSvc stats.Service
}

func registerRankingAPI(g *echo.Group, svc ranking.Service, statsSvc stats.Service) {
	api := rankingApi{svc: svc, statsSvc: statsSvc}

	g.GET("/rankings", api.query)
	g.GET("/stats", api.siteStats)
}

// Handlers

func (api *rankingApi) query(ctx echo.Context) error {
	entries, err := api.svc.Query(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying rankings")
	}
	if entries == nil {
		entries = []ranking.Entry{}
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *rankingApi) siteStats(ctx echo.Context) error {
	s, err := api.statsSvc.SiteStats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "counting site stats")
	}
	return ctx.JSON(http.StatusOK, s)
}
