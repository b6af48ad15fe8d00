package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/brtdigital/remesa-backend/internal/dto"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type commissionHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func newCommissionHandler(commissionService portssvc.CommissionSvcFacade) *commissionHandler {
	return &commissionHandler{commissionService: commissionService}
}

// splitBounds parses a "100-500.50" path segment into its two amounts.
func splitBounds(bounds string) (decimal.Decimal, decimal.Decimal, bool) {
	rawMin, rawMax, found := strings.Cut(bounds, "-")
	if !found {
		return decimal.Zero, decimal.Zero, false
	}
	minAmount, err := decimal.NewFromString(rawMin)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	maxAmount, err := decimal.NewFromString(rawMax)
	if err != nil {
		return decimal.Zero, decimal.Zero, false
	}
	return minAmount, maxAmount, true
}

// createCommission godoc
// @Summary      Create a commission schedule row
// @Description  Rejects a range that overlaps an existing tier of the same pair
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        commission body dto.CreateCommissionRequest true "Commission details"
// @Success      201 {object} dto.CommissionResponse
// @Failure      400 {object} map[string]string "Invalid percentage or unknown currency"
// @Failure      409 {object} map[string]string "Overlapping tier for the pair"
// @Security     BearerAuth
// @Router       /commissions [post]
func (h *commissionHandler) createCommission(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	commission, err := h.commissionService.CreateCommission(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create commission")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommissionResponse(commission))
}

// listCommissions godoc
// @Summary      List every commission schedule row
// @Tags         commissions
// @Produce      json
// @Success      200 {array} dto.CommissionResponse
// @Security     BearerAuth
// @Router       /commissions [get]
func (h *commissionHandler) listCommissions(c *gin.Context) {
	commissions, err := h.commissionService.ListCommissions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list commissions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCommissionResponse(commissions))
}

// getCommission godoc
// @Summary      Get a commission schedule row by ID
// @Tags         commissions
// @Produce      json
// @Param        id path string true "Commission ID"
// @Success      200 {object} dto.CommissionResponse
// @Failure      404 {object} map[string]string "Commission not found"
// @Security     BearerAuth
// @Router       /commissions/{id} [get]
func (h *commissionHandler) getCommission(c *gin.Context) {
	commission, err := h.commissionService.GetCommissionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get commission")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// updateCommission godoc
// @Summary      Update a commission schedule row
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        id path string true "Commission ID"
// @Param        commission body dto.UpdateCommissionRequest true "Fields to update"
// @Success      200 {object} dto.CommissionResponse
// @Failure      404 {object} map[string]string "Commission not found"
// @Failure      409 {object} map[string]string "Overlapping tier for the pair"
// @Security     BearerAuth
// @Router       /commissions/{id} [patch]
func (h *commissionHandler) updateCommission(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	commission, err := h.commissionService.UpdateCommission(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update commission")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// deleteCommission godoc
// @Summary      Delete a commission schedule row
// @Tags         commissions
// @Param        id path string true "Commission ID"
// @Success      204 "Commission deleted"
// @Failure      404 {object} map[string]string "Commission not found"
// @Security     BearerAuth
// @Router       /commissions/{id} [delete]
func (h *commissionHandler) deleteCommission(c *gin.Context) {
	if err := h.commissionService.DeleteCommission(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete commission")
		return
	}

	c.Status(http.StatusNoContent)
}

// resolveByPairAndRange is the shared lookup behind the pair-addressed routes.
func (h *commissionHandler) resolveByPairAndRange(c *gin.Context) (*dto.CommissionResponse, bool) {
	base, target, ok := splitPair(c.Param("pair"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Pair must be of the form BASE-TARGET"})
		return nil, false
	}
	minAmount, maxAmount, ok := splitBounds(c.Param("range"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Range must be of the form MIN-MAX"})
		return nil, false
	}

	commission, err := h.commissionService.GetCommissionByPairAndRange(c.Request.Context(), base, target, minAmount, maxAmount)
	if err != nil {
		respondError(c, err, "Failed to get commission for pair and range")
		return nil, false
	}

	resp := dto.ToCommissionResponse(commission)
	return &resp, true
}

// getCommissionByPairAndRange godoc
// @Summary      Get the commission row keyed by pair and range bounds
// @Tags         commissions
// @Produce      json
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Param        range path string true "Range bounds, e.g. 100-500"
// @Success      200 {object} dto.CommissionResponse
// @Failure      404 {object} map[string]string "No row for that pair and range"
// @Security     BearerAuth
// @Router       /commissions/pair/{pair}/{range} [get]
func (h *commissionHandler) getCommissionByPairAndRange(c *gin.Context) {
	resp, ok := h.resolveByPairAndRange(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// updateCommissionByPairAndRange godoc
// @Summary      Update the commission row keyed by pair and range bounds
// @Tags         commissions
// @Accept       json
// @Produce      json
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Param        range path string true "Range bounds, e.g. 100-500"
// @Param        commission body dto.UpdateCommissionRequest true "Fields to update"
// @Success      200 {object} dto.CommissionResponse
// @Failure      404 {object} map[string]string "No row for that pair and range"
// @Security     BearerAuth
// @Router       /commissions/pair/{pair}/{range} [patch]
func (h *commissionHandler) updateCommissionByPairAndRange(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}
	resolved, ok := h.resolveByPairAndRange(c)
	if !ok {
		return
	}

	var req dto.UpdateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	commission, err := h.commissionService.UpdateCommission(c.Request.Context(), resolved.CommissionID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to update commission")
		return
	}

	c.JSON(http.StatusOK, dto.ToCommissionResponse(commission))
}

// deleteCommissionByPairAndRange godoc
// @Summary      Delete the commission row keyed by pair and range bounds
// @Tags         commissions
// @Param        pair path string true "Ordered pair, e.g. USD-PEN"
// @Param        range path string true "Range bounds, e.g. 100-500"
// @Success      204 "Commission deleted"
// @Failure      404 {object} map[string]string "No row for that pair and range"
// @Security     BearerAuth
// @Router       /commissions/pair/{pair}/{range} [delete]
func (h *commissionHandler) deleteCommissionByPairAndRange(c *gin.Context) {
	resolved, ok := h.resolveByPairAndRange(c)
	if !ok {
		return
	}

	if err := h.commissionService.DeleteCommission(c.Request.Context(), resolved.CommissionID); err != nil {
		respondError(c, err, "Failed to delete commission")
		return
	}

	c.Status(http.StatusNoContent)
}

// listCommissionRates godoc
// @Summary      List commission tiers grouped by pair
// @Description  Keys are "USD-PEN" style pair strings, tiers ascend by minimum amount
// @Tags         commissions
// @Produce      json
// @Success      200 {object} map[string][]dto.TierRate
// @Security     BearerAuth
// @Router       /commission-rates [get]
func (h *commissionHandler) listCommissionRates(c *gin.Context) {
	grouped, err := h.commissionService.ListGroupedByPair(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list commission rates")
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// listReverseCommissionRates godoc
// @Summary      List reverse commission tiers grouped by the mirrored pair
// @Tags         commissions
// @Produce      json
// @Success      200 {object} map[string][]dto.TierRate
// @Security     BearerAuth
// @Router       /reverse-commission-rates [get]
func (h *commissionHandler) listReverseCommissionRates(c *gin.Context) {
	grouped, err := h.commissionService.ListReverseGroupedByPair(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list reverse commission rates")
		return
	}

	c.JSON(http.StatusOK, grouped)
}

// listCommissionRangeSummary godoc
// @Summary      List the lowest and highest configured tier per pair
// @Tags         commissions
// @Produce      json
// @Success      200 {array} dto.PairRangeSummary
// @Security     BearerAuth
// @Router       /commissions/ranges [get]
func (h *commissionHandler) listCommissionRangeSummary(c *gin.Context) {
	summary, err := h.commissionService.ListRangeSummary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list commission range summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// registerCommissionRoutes wires the commission schedule endpoints. The
// grouped rate views feed the mobile app; schedule writes are staff-only.
func registerCommissionRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, commissionService portssvc.CommissionSvcFacade) {
	h := newCommissionHandler(commissionService)

	rg.GET("/commission-rates", h.listCommissionRates)
	rg.GET("/reverse-commission-rates", h.listReverseCommissionRates)

	commissions := rg.Group("/commissions")
	{
		commissions.GET("", h.listCommissions)
		commissions.GET("/ranges", h.listCommissionRangeSummary)
		commissions.GET("/pair/:pair/:range", h.getCommissionByPairAndRange)
		commissions.GET("/:id", h.getCommission)
		commissions.POST("", staff, h.createCommission)
		commissions.PATCH("/:id", staff, h.updateCommission)
		commissions.DELETE("/:id", staff, h.deleteCommission)
		commissions.PATCH("/pair/:pair/:range", staff, h.updateCommissionByPairAndRange)
		commissions.DELETE("/pair/:pair/:range", staff, h.deleteCommissionByPairAndRange)
	}
}
