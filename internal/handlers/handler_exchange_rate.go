package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rateService portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rateService}
}

// splitPair parses a "USD-PEN" path segment into its two currency codes.
func splitPair(pair string) (string, string, bool) {
	base, target, found := strings.Cut(pair, "-")
	if !found || base == "" || target == "" {
		return "", "", false
	}
	return strings.ToUpper(base), strings.ToUpper(target), true
}

// setExchangeRate godoc
// @Summary      Create or replace the rate for an ordered pair
// @Description  The lookup is strictly directional; setting USD-PEN says nothing about PEN-USD
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        rate body dto.UpsertExchangeRateRequest true "Pair and rate"
// @Success      200 {object} dto.ExchangeRateResponse
// @Failure      400 {object} map[string]string "Invalid rate or identical codes"
// @Failure      404 {object} map[string]string "Unknown currency code"
// @Security     BearerAuth
// @Router       /exchange-rates [post]
func (h *exchangeRateHandler) setExchangeRate(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpsertExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.SetRate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to set exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// listExchangeRates godoc
// @Summary      List all stored exchange rates
// @Tags         exchange-rates
// @Produce      json
// @Success      200 {array} dto.ExchangeRateResponse
// @Security     BearerAuth
// @Router       /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	rates, err := h.rateService.ListExchangeRates(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list exchange rates")
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// getExchangeRate godoc
// @Summary      Get an exchange rate row by ID
// @Tags         exchange-rates
// @Produce      json
// @Param        id path string true "Exchange rate ID"
// @Success      200 {object} dto.ExchangeRateResponse
// @Failure      404 {object} map[string]string "Exchange rate not found"
// @Security     BearerAuth
// @Router       /exchange-rates/{id} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	rate, err := h.rateService.GetExchangeRateByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// getExchangeRateByPair godoc
// @Summary      Get the rate row for an ordered pair
// @Tags         exchange-rates
// @Produce      json
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Success      200 {object} dto.ExchangeRateResponse
// @Failure      400 {object} map[string]string "Malformed pair"
// @Failure      404 {object} map[string]string "No rate stored for the pair"
// @Security     BearerAuth
// @Router       /exchange-rates/pair/{pair} [get]
func (h *exchangeRateHandler) getExchangeRateByPair(c *gin.Context) {
	base, target, ok := splitPair(c.Param("pair"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pair must be of the form BASE-TARGET"})
		return
	}

	rate, err := h.rateService.GetExchangeRateByPair(c.Request.Context(), base, target)
	if err != nil {
		respondError(c, err, "Failed to get exchange rate for pair")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// updateExchangeRate godoc
// @Summary      Update the rate of an existing pair row
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        id path string true "Exchange rate ID"
// @Param        rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success      200 {object} dto.ExchangeRateResponse
// @Failure      404 {object} map[string]string "Exchange rate not found"
// @Security     BearerAuth
// @Router       /exchange-rates/{id} [put]
func (h *exchangeRateHandler) updateExchangeRate(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}

	rate, err := h.rateService.UpdateExchangeRate(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRate godoc
// @Summary      Delete an exchange rate row
// @Tags         exchange-rates
// @Param        id path string true "Exchange rate ID"
// @Success      204 "Exchange rate deleted"
// @Failure      404 {object} map[string]string "Exchange rate not found"
// @Security     BearerAuth
// @Router       /exchange-rates/{id} [delete]
func (h *exchangeRateHandler) deleteExchangeRate(c *gin.Context) {
	if err := h.rateService.DeleteExchangeRate(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete exchange rate")
		return
	}

	c.Status(http.StatusNoContent)
}

// updateExchangeRateByPair godoc
// @Summary      Update the rate of a pair addressed by its codes
// @Tags         exchange-rates
// @Accept       json
// @Produce      json
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Param        rate body dto.UpdateExchangeRateRequest true "New rate"
// @Success      200 {object} dto.ExchangeRateResponse
// @Failure      404 {object} map[string]string "No rate stored for the pair"
// @Security     BearerAuth
// @Router       /exchange-rates/pair/{pair} [put]
func (h *exchangeRateHandler) updateExchangeRateByPair(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	base, target, ok := splitPair(c.Param("pair"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pair must be of the form BASE-TARGET"})
		return
	}

	var req dto.UpdateExchangeRateRequest
	if !bindJSON(c, &req) {
		return
	}

	existing, err := h.rateService.GetExchangeRateByPair(c.Request.Context(), base, target)
	if err != nil {
		respondError(c, err, "Failed to get exchange rate for pair")
		return
	}

	rate, err := h.rateService.UpdateExchangeRate(c.Request.Context(), existing.ExchangeRateID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// deleteExchangeRateByPair godoc
// @Summary      Delete the rate of a pair addressed by its codes
// @Tags         exchange-rates
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Success      204 "Exchange rate deleted"
// @Failure      404 {object} map[string]string "No rate stored for the pair"
// @Security     BearerAuth
// @Router       /exchange-rates/pair/{pair} [delete]
func (h *exchangeRateHandler) deleteExchangeRateByPair(c *gin.Context) {
	base, target, ok := splitPair(c.Param("pair"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pair must be of the form BASE-TARGET"})
		return
	}

	existing, err := h.rateService.GetExchangeRateByPair(c.Request.Context(), base, target)
	if err != nil {
		respondError(c, err, "Failed to get exchange rate for pair")
		return
	}

	if err := h.rateService.DeleteExchangeRate(c.Request.Context(), existing.ExchangeRateID); err != nil {
		respondError(c, err, "Failed to delete exchange rate")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerExchangeRateRoutes wires the exchange rate endpoints. Writes are
// staff-only; reads serve the mobile app pricing screens.
func registerExchangeRateRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listExchangeRates)
		rates.GET("/pair/:pair", h.getExchangeRateByPair)
		rates.PUT("/pair/:pair", staff, h.updateExchangeRateByPair)
		rates.PATCH("/pair/:pair", staff, h.updateExchangeRateByPair)
		rates.DELETE("/pair/:pair", staff, h.deleteExchangeRateByPair)
		rates.GET("/:id", h.getExchangeRate)
		rates.POST("", staff, h.setExchangeRate)
		rates.PUT("/:id", staff, h.updateExchangeRate)
		rates.PATCH("/:id", staff, h.updateExchangeRate)
		rates.DELETE("/:id", staff, h.deleteExchangeRate)
	}
}
