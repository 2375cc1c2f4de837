// internal/handler/rewards.go
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"rewards-tracker/internal/domain"
	"rewards-tracker/internal/rewards"
	"rewards-tracker/internal/storage"
	val "rewards-tracker/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RewardSummarizer interface {
	Summarize(ctx context.Context, customerID string) (*domain.RewardSummary, error)
}

type RewardsHandler struct {
	rewards RewardSummarizer
	store   storage.TransactionStorage
}

func NewRewardsHandler(rewards RewardSummarizer, store storage.TransactionStorage) *RewardsHandler {
	return &RewardsHandler{rewards: rewards, store: store}
}

// GetRewards godoc
// @Summary Reward points of a customer, per month and in total
// @Tags rewards
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {object} domain.RewardSummary
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/rewards/{customerId} [get]
func (h *RewardsHandler) GetRewards(c *gin.Context) {
	customerID := c.Param("customerId")

	summary, err := h.rewards.Summarize(c.Request.Context(), customerID)
	if err != nil {
		var notFound *rewards.NotFoundError
		if errors.As(err, &notFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
			return
		}
		slog.Error("Summarize failed", "error", err, "customer_id", customerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ListTransactions godoc
// @Summary Transactions of a customer
// @Tags transactions
// @Produce json
// @Param customerId path string true "Customer ID"
// @Success 200 {array} domain.Transaction
// @Failure 500 {object} map[string]string
// @Router /api/v1/customers/{customerId}/transactions [get]
func (h *RewardsHandler) ListTransactions(c *gin.Context) {
	customerID := c.Param("customerId")

	transactions, err := h.store.FindByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		slog.Error("FindByCustomerID failed", "error", err, "customer_id", customerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if transactions == nil {
		transactions = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, transactions)
}

// CreateTransaction godoc
// @Summary Record a customer transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/transactions [post]
func (h *RewardsHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, _ := val.ParseDate(req.Date) // already checked by txdate
	tx := domain.Transaction{
		ID:         strings.TrimSpace(req.ID),
		CustomerID: strings.TrimSpace(req.CustomerID),
		Amount:     req.Amount,
		Date:       date,
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	if err := h.store.SaveTransaction(c.Request.Context(), tx); err != nil {
		if errors.Is(err, storage.ErrDuplicateTransaction) {
			c.JSON(http.StatusConflict, gin.H{"error": fmt.Sprintf("transaction %s already exists", tx.ID)})
			return
		}
		slog.Error("Failed to save transaction", "error", err, "customer_id", tx.CustomerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save transaction"})
		return
	}

	slog.Info("Transaction saved", "id", tx.ID, "customer_id", tx.CustomerID, "amount", tx.Amount.String())
	c.JSON(http.StatusCreated, tx)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param id path string true "Transaction ID"
// @Success 200 {object} map[string]string{"status":"ok"}
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/transactions/{id} [delete]
func (h *RewardsHandler) DeleteTransaction(c *gin.Context) {
	id := c.Param("id")

	if err := h.store.DeleteTransaction(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("transaction %s not found", id)})
			return
		}
		slog.Error("DeleteTransaction failed", "error", err, "id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// === DTO ===

type CreateTransactionRequest struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id" validate:"required,notblank,max=64"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0,lte=9999999999.99"`
	Date       string          `json:"date" validate:"required,txdate"`
}

func init() {
	// the float64 view of Amount used by gt/lte cannot see extra decimal places
	val.Validate.RegisterStructValidation(func(sl validator.StructLevel) {
		req := sl.Current().Interface().(CreateTransactionRequest)
		if !val.IsMoney(req.Amount) {
			sl.ReportError(req.Amount, "Amount", "Amount", "money", "")
		}
	}, CreateTransactionRequest{})
}

func validateStruct(v any) error {
	if err := val.Validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid input: %w", err)
		}
		var errs []string
		for _, e := range verrs {
			errs = append(errs, fieldErrorToString(e))
		}
		return fmt.Errorf("invalid input: %s", strings.Join(errs, "; "))
	}
	return nil
}

func fieldErrorToString(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "txdate":
		return fmt.Sprintf("%s must be in YYYY-MM-DD or RFC3339 format", e.Field())
	case "notblank":
		return fmt.Sprintf("%s must not be blank", e.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "money":
		return fmt.Sprintf("%s must have at most %d decimal places", e.Field(), val.AmountScale)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
