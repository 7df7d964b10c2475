package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/investlens/internal/domain/dto"
	"github.com/guttosm/investlens/internal/middleware"
	"github.com/guttosm/investlens/internal/watchlist"
)

func entryResponse(e watchlist.Entry) dto.WatchlistEntryResponse {
	return dto.WatchlistEntryResponse{ID: e.ID, Ticker: dto.NewTickerResponse(e.Ticker), AddedAt: e.AddedAt}
}

// ListWatchlist godoc
// @Summary      List watchlist entries
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}  dto.WatchlistEntryResponse
// @Router       /api/v1/watchlist [get]
func (h *Handler) ListWatchlist(c *gin.Context) {
	entries := h.watchlist.List()
	out := make([]dto.WatchlistEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = entryResponse(e)
	}
	c.JSON(http.StatusOK, out)
}

// AddWatchlist godoc
// @Summary      Follow a ticker
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        body  body      dto.WatchlistRequest  true  "Ticker to follow"
// @Success      201   {object}  dto.WatchlistEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist [post]
func (h *Handler) AddWatchlist(c *gin.Context) {
	var req dto.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid body", err)
		return
	}
	e, err := h.watchlist.Add(req.Ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse(e))
}

// UpdateWatchlist godoc
// @Summary      Change the ticker of an entry
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Entry ID"
// @Param        body  body      dto.WatchlistRequest  true  "New ticker"
// @Success      200   {object}  dto.WatchlistEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist/{id} [put]
func (h *Handler) UpdateWatchlist(c *gin.Context) {
	var req dto.WatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid body", err)
		return
	}
	e, err := h.watchlist.Update(c.Param("id"), req.Ticker)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entryResponse(e))
}

// RemoveWatchlist godoc
// @Summary      Stop following an entry
// @Tags         watchlist
// @Param        id  path  string  true  "Entry ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/watchlist/{id} [delete]
func (h *Handler) RemoveWatchlist(c *gin.Context) {
	if err := h.watchlist.Remove(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// WatchlistQuotes godoc
// @Summary      Quotes for every entry
// @Description  Entries whose quote failed carry an error message instead
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}  dto.WatchlistQuoteResponse
// @Router       /api/v1/watchlist/quotes [get]
func (h *Handler) WatchlistQuotes(c *gin.Context) {
	results := h.watchlist.Quotes(c.Request.Context())
	out := make([]dto.WatchlistQuoteResponse, len(results))
	for i, r := range results {
		item := dto.WatchlistQuoteResponse{ID: r.Entry.ID}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else if r.Quote != nil {
			q := dto.NewQuoteResponse(r.Quote)
			item.Quote = &q
		}
		out[i] = item
	}
	c.JSON(http.StatusOK, out)
}
