package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/shule/core/report"
)

type dashboardApi struct {
	reports *report.Engine
}

func registerDashboardAPI(g *echo.Group, reports *report.Engine) {
	api := dashboardApi{reports: reports}

	dg := g.Group("/dashboard")
	dg.GET("/stats", api.stats)
	dg.GET("/class-performances", api.classPerformances)
	dg.GET("/recent-activities", api.recentActivities)
}

func (api *dashboardApi) stats(ctx echo.Context) error {
	stats, err := api.reports.DashboardStats(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing dashboard stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api *dashboardApi) classPerformances(ctx echo.Context) error {
	perfs, err := api.reports.ClassPerformances(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "computing class performances")
	}
	return ctx.JSON(http.StatusOK, perfs)
}

func (api *dashboardApi) recentActivities(ctx echo.Context) error {
	activities, err := api.reports.RecentActivities(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing recent activities")
	}
	return ctx.JSON(http.StatusOK, activities)
}
