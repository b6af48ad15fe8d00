package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/models"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type couponHandler struct {
	couponService portssvc.CouponSvcFacade
}

func newCouponHandler(couponService portssvc.CouponSvcFacade) *couponHandler {
	return &couponHandler{couponService: couponService}
}

// createManualCoupon godoc
// @Summary      Create a manual coupon
// @Description  Manual coupons require a unique code the client presents at checkout
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        coupon body dto.CreateCouponRequest true "Coupon details"
// @Success      201 {object} dto.CouponResponse
// @Failure      400 {object} map[string]string "Missing code or invalid dates"
// @Failure      409 {object} map[string]string "Code already exists"
// @Security     BearerAuth
// @Router       /coupons [post]
func (h *couponHandler) createManualCoupon(c *gin.Context) {
	h.createCoupon(c, models.CouponManual)
}

// createAutomaticCoupon godoc
// @Summary      Create an automatic coupon
// @Description  Automatic coupons apply on their own when a transfer matches; any code is discarded
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        coupon body dto.CreateCouponRequest true "Coupon details"
// @Success      201 {object} dto.CouponResponse
// @Failure      400 {object} map[string]string "Invalid dates or percentage"
// @Security     BearerAuth
// @Router       /coupons/automatic [post]
func (h *couponHandler) createAutomaticCoupon(c *gin.Context) {
	h.createCoupon(c, models.CouponAutomatic)
}

func (h *couponHandler) createCoupon(c *gin.Context, couponType models.CouponType) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), req, couponType, userID)
	if err != nil {
		respondError(c, err, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCouponResponse(coupon))
}

// listManualCoupons godoc
// @Summary      List manual coupons
// @Tags         coupons
// @Produce      json
// @Param        sourceCurrencyCode query string false "Filter by source currency"
// @Param        targetCurrencyCode query string false "Filter by target currency"
// @Success      200 {array} dto.CouponResponse
// @Security     BearerAuth
// @Router       /coupons [get]
func (h *couponHandler) listManualCoupons(c *gin.Context) {
	h.listCoupons(c, models.CouponManual)
}

// listAutomaticCoupons godoc
// @Summary      List automatic coupons
// @Tags         coupons
// @Produce      json
// @Param        sourceCurrencyCode query string false "Filter by source currency"
// @Param        targetCurrencyCode query string false "Filter by target currency"
// @Success      200 {array} dto.CouponResponse
// @Security     BearerAuth
// @Router       /coupons/automatic [get]
func (h *couponHandler) listAutomaticCoupons(c *gin.Context) {
	h.listCoupons(c, models.CouponAutomatic)
}

func (h *couponHandler) listCoupons(c *gin.Context, couponType models.CouponType) {
	var filter dto.CouponListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}
	filter.Type = couponType

	coupons, err := h.couponService.ListCoupons(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list coupons")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCouponResponse(coupons))
}

// getManualCoupon godoc
// @Summary      Get a manual coupon by ID
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID"
// @Success      200 {object} dto.CouponResponse
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/{id} [get]
func (h *couponHandler) getManualCoupon(c *gin.Context) {
	h.getCoupon(c, models.CouponManual)
}

// getAutomaticCoupon godoc
// @Summary      Get an automatic coupon by ID
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID"
// @Success      200 {object} dto.CouponResponse
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/automatic/{id} [get]
func (h *couponHandler) getAutomaticCoupon(c *gin.Context) {
	h.getCoupon(c, models.CouponAutomatic)
}

func (h *couponHandler) getCoupon(c *gin.Context, couponType models.CouponType) {
	coupon, err := h.couponService.GetCouponByID(c.Request.Context(), c.Param("id"), couponType)
	if err != nil {
		respondError(c, err, "Failed to get coupon")
		return
	}

	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// getCouponByCode godoc
// @Summary      Get a manual coupon by its code
// @Tags         coupons
// @Produce      json
// @Param        code path string true "Coupon code"
// @Success      200 {object} dto.CouponResponse
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/code/{code} [get]
func (h *couponHandler) getCouponByCode(c *gin.Context) {
	coupon, err := h.couponService.GetCouponByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err, "Failed to get coupon by code")
		return
	}

	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// updateManualCoupon godoc
// @Summary      Update a manual coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        id path string true "Coupon ID"
// @Param        coupon body dto.UpdateCouponRequest true "Fields to update"
// @Success      200 {object} dto.CouponResponse
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/{id} [patch]
func (h *couponHandler) updateManualCoupon(c *gin.Context) {
	h.updateCoupon(c, models.CouponManual)
}

// updateAutomaticCoupon godoc
// @Summary      Update an automatic coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        id path string true "Coupon ID"
// @Param        coupon body dto.UpdateCouponRequest true "Fields to update"
// @Success      200 {object} dto.CouponResponse
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/automatic/{id} [patch]
func (h *couponHandler) updateAutomaticCoupon(c *gin.Context) {
	h.updateCoupon(c, models.CouponAutomatic)
}

func (h *couponHandler) updateCoupon(c *gin.Context, couponType models.CouponType) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), c.Param("id"), req, couponType, userID)
	if err != nil {
		respondError(c, err, "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, dto.ToCouponResponse(coupon))
}

// deleteManualCoupon godoc
// @Summary      Delete a manual coupon
// @Tags         coupons
// @Param        id path string true "Coupon ID"
// @Success      204 "Coupon deleted"
// @Failure      404 {object} map[string]string "Coupon not found"
// @Security     BearerAuth
// @Router       /coupons/{id} [delete]
func (h *couponHandler) deleteManualCoupon(c *gin.Context) {
	if err := h.couponService.DeleteCoupon(c.Request.Context(), c.Param("id"), models.CouponManual); err != nil {
		respondError(c, err, "Failed to delete coupon")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerCouponRoutes wires the coupon endpoints, all staff-only. The type
// is fixed by the route so a manual endpoint can never touch an automatic
// coupon, and vice versa.
func registerCouponRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, couponService portssvc.CouponSvcFacade) {
	h := newCouponHandler(couponService)

	coupons := rg.Group("/coupons", staff)
	{
		coupons.GET("", h.listManualCoupons)
		coupons.POST("", h.createManualCoupon)
		coupons.GET("/code/:code", h.getCouponByCode)
		coupons.GET("/automatic", h.listAutomaticCoupons)
		coupons.POST("/automatic", h.createAutomaticCoupon)
		coupons.GET("/automatic/:id", h.getAutomaticCoupon)
		coupons.PUT("/automatic/:id", h.updateAutomaticCoupon)
		coupons.PATCH("/automatic/:id", h.updateAutomaticCoupon)
		coupons.GET("/:id", h.getManualCoupon)
		coupons.PATCH("/:id", h.updateManualCoupon)
		coupons.DELETE("/:id", h.deleteManualCoupon)
	}
}
