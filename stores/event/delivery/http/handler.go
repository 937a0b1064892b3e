package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/x-xyz/gameanalytics/base/ctx"
	"github.com/x-xyz/gameanalytics/base/delivery"
	"github.com/x-xyz/gameanalytics/domain/event"
)

type handler struct {
	event event.UseCase
}

func New(e *echo.Echo, us event.UseCase) {
	h := &handler{us}

	e.POST("/events", h.ingest)
}

type batch struct {
	Transfers []event.TransferEvent `json:"transfers" validate:"dive"`
	Lootboxes []event.LootboxEvent  `json:"lootboxes" validate:"dive"`
}

type ingestResult struct {
	Transfers int `json:"transfers"`
	Lootboxes int `json:"lootboxes"`
}

// ingest accepts a batch in chain order. One malformed event rejects the whole batch.
func (h *handler) ingest(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	b := batch{}

	if err := c.Bind(&b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, "invalid body")
	}

	if err := c.Validate(&b); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	if err := h.event.IngestTransfers(ctx, b.Transfers); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	if err := h.event.IngestLootboxes(ctx, b.Lootboxes); err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusAccepted, ingestResult{len(b.Transfers), len(b.Lootboxes)})
}
