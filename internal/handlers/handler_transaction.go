package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/remit_backend/internal/core/ports/services"
	"github.com/SscSPs/remit_backend/internal/dto"
	"github.com/SscSPs/remit_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler serves quotes and the caller's transactions.
type transactionHandler struct {
	quoteService       portssvc.QuoteSvc
	transactionService portssvc.TransactionSvcFacade
}

func newTransactionHandler(qs portssvc.QuoteSvc, ts portssvc.TransactionSvcFacade) *transactionHandler {
	return &transactionHandler{quoteService: qs, transactionService: ts}
}

// registerTransactionRoutes registers the authenticated transaction routes.
func registerTransactionRoutes(rg *gin.RouterGroup, qs portssvc.QuoteSvc, ts portssvc.TransactionSvcFacade) {
	h := newTransactionHandler(qs, ts)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("/calculate", h.calculate)
		transactions.POST("/send", h.send)
		transactions.GET("/history", h.history)
		transactions.GET("/:transactionID", h.getTransaction)
	}
}

// calculate godoc
// @Summary Quote a transfer
// @Description Prices a USD transfer into the target currency without recording anything.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.BreakdownResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "No exchange rate available"
// @Security BearerAuth
// @Router /transactions/calculate [post]
func (h *transactionHandler) calculate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	breakdown, err := h.quoteService.Calculate(c.Request.Context(), req.AmountUSD, req.TargetCurrency)
	if err != nil {
		respondWithError(c, logger, err, "Failed to calculate transfer")
		return
	}

	c.JSON(http.StatusOK, dto.ToBreakdownResponse(breakdown))
}

// send godoc
// @Summary Send a transfer
// @Description Prices the transfer and records it as a completed transaction.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.SendTransactionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse "No exchange rate available"
// @Security BearerAuth
// @Router /transactions/send [post]
func (h *transactionHandler) send(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	logger.Info("Received request to send transfer",
		slog.String("amount_usd", req.AmountUSD.String()),
		slog.String("target_currency", req.TargetCurrency))

	txn, breakdown, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req.AmountUSD, req.TargetCurrency, req.RecipientName)
	if err != nil {
		respondWithError(c, logger, err, "Failed to send transfer")
		return
	}

	logger.Info("Transfer recorded", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToSendTransactionResponse(txn, breakdown))
}

// history godoc
// @Summary List my transactions
// @Description Lists the caller's transactions, newest first, ten per page.
// @Tags transactions
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} dto.TransactionHistoryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/history [get]
func (h *transactionHandler) history(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	var params dto.TransactionHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondWithBindError(c, logger, err)
		return
	}

	resp, err := h.transactionService.ListTransactionHistory(c.Request.Context(), userID, params.Page)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Description Returns one of the caller's transactions.
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	transactionID := c.Param("transactionID")
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("transaction_id", transactionID)), err, "Failed to retrieve transaction")
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
