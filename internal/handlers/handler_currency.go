package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

func newCurrencyHandler(currencyService portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{currencyService: currencyService}
}

// createCurrency godoc
// @Summary      Create a new currency
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Param        currency body dto.CreateCurrencyRequest true "Currency details"
// @Success      201 {object} dto.CurrencyResponse
// @Failure      400 {object} map[string]string "Invalid request format"
// @Failure      409 {object} map[string]string "Currency code already exists"
// @Security     BearerAuth
// @Router       /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}

	currency, err := h.currencyService.CreateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create currency")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary      List currencies
// @Tags         currencies
// @Produce      json
// @Param        active query bool false "Return active currencies only"
// @Success      200 {array} dto.CurrencyResponse
// @Security     BearerAuth
// @Router       /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err, "Failed to list currencies")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getCurrency godoc
// @Summary      Get a currency by code
// @Tags         currencies
// @Produce      json
// @Param        code path string true "Currency code"
// @Success      200 {object} dto.CurrencyResponse
// @Failure      404 {object} map[string]string "Currency not found"
// @Security     BearerAuth
// @Router       /currencies/{code} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	code := c.Param("code")

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), code)
	if err != nil {
		respondError(c, err, "Failed to get currency")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateCurrency godoc
// @Summary      Update a currency
// @Tags         currencies
// @Accept       json
// @Produce      json
// @Param        code path string true "Currency code"
// @Param        currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success      200 {object} dto.CurrencyResponse
// @Failure      404 {object} map[string]string "Currency not found"
// @Security     BearerAuth
// @Router       /currencies/{code} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	code := c.Param("code")

	var req dto.UpdateCurrencyRequest
	if !bindJSON(c, &req) {
		return
	}

	currency, err := h.currencyService.UpdateCurrency(c.Request.Context(), code, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update currency")
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// deactivateCurrency godoc
// @Summary      Deactivate a currency
// @Tags         currencies
// @Param        code path string true "Currency code"
// @Success      204 "Currency deactivated"
// @Failure      404 {object} map[string]string "Currency not found"
// @Security     BearerAuth
// @Router       /currencies/{code} [delete]
func (h *currencyHandler) deactivateCurrency(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	code := c.Param("code")

	if err := h.currencyService.DeactivateCurrency(c.Request.Context(), code, userID); err != nil {
		respondError(c, err, "Failed to deactivate currency")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerCurrencyRoutes wires the currency endpoints. Writes are staff-only.
func registerCurrencyRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.GET("", h.listCurrencies)
		currencies.GET("/:code", h.getCurrency)
		currencies.POST("", staff, h.createCurrency)
		currencies.PUT("/:code", staff, h.updateCurrency)
		currencies.DELETE("/:code", staff, h.deactivateCurrency)
	}
}
