package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/delivery"
	"github.com/x-xyz/gameanalytics/domain"
	"github.com/x-xyz/gameanalytics/domain/economy"
	"github.com/x-xyz/gameanalytics/middleware"
)

type handler struct {
	economy economy.UseCase
}

func New(e *echo.Echo, us economy.UseCase) {
	h := &handler{us}

	g := e.Group("/analytics")

	g.GET("/dashboard", h.view(func(d *economy.Dashboard) interface{} { return d }))

	g.GET("/daily", h.view(func(d *economy.Dashboard) interface{} { return d.DailyMetrics }))

	g.GET("/tokens", h.view(func(d *economy.Dashboard) interface{} { return d.TokenMetrics }))

	g.GET("/leaderboard", h.view(func(d *economy.Dashboard) interface{} { return d.Leaderboard }))

	g.GET("/whales", h.view(func(d *economy.Dashboard) interface{} { return d.Whales }))

	g.GET("/heatmap", h.view(func(d *economy.Dashboard) interface{} { return d.Heatmap }))

	g.GET("/recent", h.getRecent)

	g.GET("/stats", h.view(func(d *economy.Dashboard) interface{} { return d.Stats }))

	g.GET("/overview", h.view(func(d *economy.Dashboard) interface{} { return d.Overview }))

	g.GET("/timeseries", h.view(func(d *economy.Dashboard) interface{} { return d.HourlySeries }))

	e.GET("/players/:address/inventory", h.getInventory, middleware.IsValidAddress("address"))
}

// view serves one slice of the current dashboard.
func (h *handler) view(pick func(*economy.Dashboard) interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Get("ctx").(ctx.Ctx)

		if d, err := h.economy.Dashboard(ctx); err != nil {
			return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
		} else {
			return delivery.MakeJsonResp(c, http.StatusOK, pick(d))
		}
	}
}

func (h *handler) getRecent(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		Limit int `query:"limit" validate:"omitempty,gte=1"`
	}

	p := params{}

	if err := c.Bind(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid limit")
	}

	if err := c.Validate(&p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	d, err := h.economy.Dashboard(ctx)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	res := d.RecentEvents
	if p.Limit > 0 && p.Limit < len(res) {
		res = res[:p.Limit]
	}
	return delivery.MakeJsonResp(c, http.StatusOK, res)
}

func (h *handler) getInventory(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	address := domain.Address(c.Param("address")).ToLower()

	if res, err := h.economy.Inventory(ctx, address); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	} else {
		return delivery.MakeJsonResp(c, http.StatusOK, res)
	}
}
