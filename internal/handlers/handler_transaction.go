package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bank_rules_app/internal/core/ports/services"
	"github.com/SscSPs/bank_rules_app/internal/dto"
	"github.com/SscSPs/bank_rules_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to bank transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
}

// RegisterTransactionRoutes registers routes related to bank transactions.
func RegisterTransactionRoutes(rg *gin.RouterGroup, transactionService portssvc.TransactionSvcFacade) {
	h := &transactionHandler{transactionService: transactionService}

	txns := rg.Group("/transactions")
	{
		txns.GET("/open", h.listOpenTransactions)
		txns.POST("/:id/process", h.processTransaction)
	}
}

// listOpenTransactions godoc
// @Summary List open transactions
// @Description Returns bank transactions that have not been posted yet, newest booking date first
// @Tags transactions
// @Produce  json
// @Param   limit query int false "Page size (default 50, max 500)"
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOpenTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions/open [get]
func (h *transactionHandler) listOpenTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOpenTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListOpenTransactions", slog.String("error", err.Error()))
		badRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	resp, err := h.transactionService.ListOpenTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// processTransaction godoc
// @Summary Post a transaction manually
// @Description Builds the posting lines for an open transaction, submits them to the ERP and marks the transaction booked
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path string true "Transaction ID"
// @Param   posting body dto.ProcessTransactionRequest true "Accounting target"
// @Success 200 {object} dto.ProcessTransactionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation issues"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Failure 409 {object} dto.ErrorResponse "Transaction is not open"
// @Failure 500 {object} dto.ErrorResponse "Failed to process transaction"
// @Security BearerAuth
// @Router /transactions/{id}/process [post]
func (h *transactionHandler) processTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	transactionID := c.Param("id")

	var req dto.ProcessTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessTransaction", slog.String("error", err.Error()))
		badRequest(c, "Invalid request format: "+err.Error())
		return
	}
	actor, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	logger = logger.With(slog.String("transaction_id", transactionID))
	resp, err := h.transactionService.ProcessTransaction(c.Request.Context(), transactionID, req, actor)
	if err != nil {
		respondError(c, logger, err, "Failed to process transaction")
		return
	}

	logger.Info("Transaction processed", slog.String("request_id", resp.RequestID))
	c.JSON(http.StatusOK, resp)
}
