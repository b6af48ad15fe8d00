package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brtdigital/remesa-backend/internal/dto"
	"github.com/brtdigital/remesa-backend/internal/middleware"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
)

type bankAccountHandler struct {
	bankAccountService portssvc.BankAccountSvcFacade
}

func newBankAccountHandler(bankAccountService portssvc.BankAccountSvcFacade) *bankAccountHandler {
	return &bankAccountHandler{bankAccountService: bankAccountService}
}

// createBankAccount godoc
// @Summary      Create a bank account
// @Description  PE accounts need an account number, BR accounts need CPF and PIX key; confirmation copies must match
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        account body dto.CreateBankAccountRequest true "Account details"
// @Success      201 {object} dto.BankAccountResponse
// @Failure      400 {object} map[string]string "Country validation failed"
// @Security     BearerAuth
// @Router       /bank-accounts [post]
func (h *bankAccountHandler) createBankAccount(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.bankAccountService.CreateBankAccount(c.Request.Context(), userID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to create bank account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToBankAccountResponse(account))
}

// listBankAccounts godoc
// @Summary      List active bank accounts
// @Description  Owners see their own accounts; staff may pass userID to inspect another user's
// @Tags         bank-accounts
// @Produce      json
// @Param        userID query string false "Owner to list (staff only)"
// @Success      200 {array} dto.BankAccountResponse
// @Security     BearerAuth
// @Router       /bank-accounts [get]
func (h *bankAccountHandler) listBankAccounts(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	ownerID := userID
	if requested := c.Query("userID"); requested != "" && requested != userID {
		principal, _ := middleware.GetPrincipalFromContext(c)
		if !principal.IsStaff() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only staff may list another user's accounts"})
			return
		}
		ownerID = requested
	}

	accounts, err := h.bankAccountService.ListBankAccounts(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err, "Failed to list bank accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListBankAccountResponse(accounts))
}

// getBankAccount godoc
// @Summary      Get a bank account by ID
// @Tags         bank-accounts
// @Produce      json
// @Param        id path string true "Bank account ID"
// @Success      200 {object} dto.BankAccountResponse
// @Failure      404 {object} map[string]string "Bank account not found"
// @Security     BearerAuth
// @Router       /bank-accounts/{id} [get]
func (h *bankAccountHandler) getBankAccount(c *gin.Context) {
	account, err := h.bankAccountService.GetBankAccountByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// updateBankAccount godoc
// @Summary      Update a bank account
// @Tags         bank-accounts
// @Accept       json
// @Produce      json
// @Param        id path string true "Bank account ID"
// @Param        account body dto.UpdateBankAccountRequest true "Fields to update"
// @Success      200 {object} dto.BankAccountResponse
// @Failure      404 {object} map[string]string "Bank account not found"
// @Security     BearerAuth
// @Router       /bank-accounts/{id} [put]
func (h *bankAccountHandler) updateBankAccount(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req dto.UpdateBankAccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.bankAccountService.UpdateBankAccount(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update bank account")
		return
	}

	c.JSON(http.StatusOK, dto.ToBankAccountResponse(account))
}

// deactivateBankAccount godoc
// @Summary      Deactivate a bank account
// @Description  Soft delete; deactivating an already inactive account is a validation error
// @Tags         bank-accounts
// @Param        id path string true "Bank account ID"
// @Success      204 "Bank account deactivated"
// @Failure      400 {object} map[string]string "Account already deactivated"
// @Failure      404 {object} map[string]string "Bank account not found"
// @Security     BearerAuth
// @Router       /bank-accounts/{id} [delete]
func (h *bankAccountHandler) deactivateBankAccount(c *gin.Context) {
	userID, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.bankAccountService.DeactivateBankAccount(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondError(c, err, "Failed to deactivate bank account")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerBankAccountRoutes wires the bank account endpoints.
func registerBankAccountRoutes(rg *gin.RouterGroup, bankAccountService portssvc.BankAccountSvcFacade) {
	h := newBankAccountHandler(bankAccountService)

	accounts := rg.Group("/bank-accounts")
	{
		accounts.GET("", h.listBankAccounts)
		accounts.GET("/:id", h.getBankAccount)
		accounts.POST("", h.createBankAccount)
		accounts.PUT("/:id", h.updateBankAccount)
		accounts.DELETE("/:id", h.deactivateBankAccount)
	}
}
