package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type rangeHandler struct {
	rangeService portssvc.RangeSvcFacade
}

func newRangeHandler(rangeService portssvc.RangeSvcFacade) *rangeHandler {
	return &rangeHandler{rangeService: rangeService}
}

// createRange godoc
// @Summary      Create a new amount range
// @Tags         ranges
// @Accept       json
// @Produce      json
// @Param        range body dto.CreateRangeRequest true "Range bounds"
// @Success      201 {object} dto.RangeResponse
// @Failure      400 {object} map[string]string "Invalid bounds"
// @Failure      409 {object} map[string]string "Range with those bounds already exists"
// @Security     BearerAuth
// @Router       /ranges [post]
func (h *rangeHandler) createRange(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	amountRange, err := h.rangeService.CreateRange(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create range")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRangeResponse(amountRange))
}

// listRanges godoc
// @Summary      List all amount ranges
// @Tags         ranges
// @Produce      json
// @Success      200 {array} dto.RangeResponse
// @Security     BearerAuth
// @Router       /ranges [get]
func (h *rangeHandler) listRanges(c *gin.Context) {
	ranges, err := h.rangeService.ListRanges(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list ranges")
		return
	}

	c.JSON(http.StatusOK, dto.ToListRangeResponse(ranges))
}

// getRange godoc
// @Summary      Get an amount range by ID
// @Tags         ranges
// @Produce      json
// @Param        id path string true "Range ID"
// @Success      200 {object} dto.RangeResponse
// @Failure      404 {object} map[string]string "Range not found"
// @Security     BearerAuth
// @Router       /ranges/{id} [get]
func (h *rangeHandler) getRange(c *gin.Context) {
	amountRange, err := h.rangeService.GetRangeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get range")
		return
	}

	c.JSON(http.StatusOK, dto.ToRangeResponse(amountRange))
}

// updateRange godoc
// @Summary      Replace the bounds of a range
// @Tags         ranges
// @Accept       json
// @Produce      json
// @Param        id path string true "Range ID"
// @Param        range body dto.CreateRangeRequest true "New bounds"
// @Success      200 {object} dto.RangeResponse
// @Failure      404 {object} map[string]string "Range not found"
// @Failure      409 {object} map[string]string "Range with those bounds already exists"
// @Security     BearerAuth
// @Router       /ranges/{id} [put]
func (h *rangeHandler) updateRange(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	amountRange, err := h.rangeService.UpdateRange(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update range")
		return
	}

	c.JSON(http.StatusOK, dto.ToRangeResponse(amountRange))
}

// deleteRange godoc
// @Summary      Delete an amount range
// @Description  Commission rows referencing the range are removed with it
// @Tags         ranges
// @Param        id path string true "Range ID"
// @Success      204 "Range deleted"
// @Failure      404 {object} map[string]string "Range not found"
// @Security     BearerAuth
// @Router       /ranges/{id} [delete]
func (h *rangeHandler) deleteRange(c *gin.Context) {
	if err := h.rangeService.DeleteRange(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete range")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerRangeRoutes wires the amount range endpoints, all staff-only.
func registerRangeRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, rangeService portssvc.RangeSvcFacade) {
	h := newRangeHandler(rangeService)

	ranges := rg.Group("/ranges", staff)
	{
		ranges.GET("", h.listRanges)
		ranges.GET("/:id", h.getRange)
		ranges.POST("", h.createRange)
		ranges.PUT("/:id", h.updateRange)
		ranges.DELETE("/:id", h.deleteRange)
	}
}
