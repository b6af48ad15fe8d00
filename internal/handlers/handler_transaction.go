package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/middleware"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	voucherDir         string
}

func newTransactionHandler(transactionService portssvc.TransactionSvcFacade, voucherDir string) *transactionHandler {
	return &transactionHandler{transactionService: transactionService, voucherDir: voucherDir}
}

// createTransaction godoc
// @Summary      Create a transfer
// @Description  Computes the monetary breakdown server-side, applies any coupon, generates the business code and assigns a seller
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        transaction body dto.CreateTransactionRequest true "Transfer details"
// @Success      201 {object} dto.TransactionResponse
// @Failure      400 {object} map[string]string "Validation failed"
// @Failure      404 {object} map[string]string "Unknown pair or coupon code"
// @Failure      409 {object} map[string]string "Coupon exhausted"
// @Failure      422 {object} map[string]string "No commission tier covers the amount"
// @Security     BearerAuth
// @Router       /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary      List transfers (staff)
// @Tags         transactions
// @Produce      json
// @Param        status query string false "Filter by lifecycle status"
// @Success      200 {array} dto.TransactionResponse
// @Security     BearerAuth
// @Router       /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	var filter dto.TransactionListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter: " + err.Error()})
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(transactions))
}

// getTransaction godoc
// @Summary      Get a transfer with related entities embedded
// @Tags         transactions
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Success      200 {object} dto.TransactionDetailResponse
// @Failure      404 {object} map[string]string "Transaction not found"
// @Security     BearerAuth
// @Router       /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	detail, err := h.transactionService.GetTransactionDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get transaction")
		return
	}

	c.JSON(http.StatusOK, detail)
}

// listUserTransactions godoc
// @Summary      List a user's transfer history
// @Description  Owners see their own history; staff may inspect any user's
// @Tags         transactions
// @Produce      json
// @Param        userID path string true "Owner user ID"
// @Success      200 {array} dto.TransactionResponse
// @Security     BearerAuth
// @Router       /users/{userID}/transactions [get]
func (h *transactionHandler) listUserTransactions(c *gin.Context) {
	callerID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ownerID := c.Param("userID")
	if ownerID != callerID {
		principal, _ := middleware.GetPrincipalFromContext(c)
		if !principal.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only staff may view another user's transactions"})
			return
		}
	}

	transactions, err := h.transactionService.ListTransactionsByUser(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list user transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionResponse(transactions))
}

// updateTransactionStatus godoc
// @Summary      Move a transfer to the next lifecycle state (staff)
// @Description  Illegal jumps are rejected; cancelling requires a reason
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        transition body dto.UpdateTransactionStatusRequest true "Target status"
// @Success      200 {object} dto.TransactionResponse
// @Failure      404 {object} map[string]string "Transaction not found"
// @Failure      422 {object} map[string]string "Illegal status transition"
// @Security     BearerAuth
// @Router       /transactions/{id}/update-status [post]
func (h *transactionHandler) updateTransactionStatus(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateTransactionStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	txn, err := h.transactionService.UpdateStatus(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update transaction status")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// uploadAdminVoucher godoc
// @Summary      Attach the payout voucher and complete the transfer (staff)
// @Description  Stores the multipart file on disk, records its path and sends the completion email
// @Tags         transactions
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Transaction ID"
// @Param        voucher formData file true "Voucher file"
// @Success      200 {object} dto.TransactionResponse
// @Failure      400 {object} map[string]string "Missing file"
// @Failure      404 {object} map[string]string "Transaction not found"
// @Failure      422 {object} map[string]string "Transfer is cancelled"
// @Security     BearerAuth
// @Router       /transactions/{id}/upload-voucher [post]
func (h *transactionHandler) uploadAdminVoucher(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	file, err := c.FormFile("voucher")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Voucher file is required"})
		return
	}

	// Stored under a generated name so uploads can never collide or escape
	// the voucher directory.
	storedName := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(file.Filename))
	voucherPath := filepath.Join(h.voucherDir, storedName)
	if err := c.SaveUploadedFile(file, voucherPath); err != nil {
		respondError(c, err, "Failed to store voucher file")
		return
	}

	txn, err := h.transactionService.AttachAdminVoucher(c.Request.Context(), c.Param("id"), voucherPath, userID)
	if err != nil {
		respondError(c, err, "Failed to attach voucher")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// registerTransactionRoutes wires the transfer endpoints. Listing, status
// transitions and voucher uploads are staff-only.
func registerTransactionRoutes(rg *gin.RouterGroup, staff gin.HandlerFunc, transactionService portssvc.TransactionSvcFacade, voucherDir string) {
	h := newTransactionHandler(transactionService, voucherDir)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("", staff, h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/update-status", staff, h.updateTransactionStatus)
		transactions.POST("/:id/upload-voucher", staff, h.uploadAdminVoucher)
	}

	rg.GET("/users/:userID/transactions", h.listUserTransactions)
}
