package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	portssvc "github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/ports/services"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/dto"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/middleware"
)

// loanHandler handles HTTP requests for loans and their installment payments.
type loanHandler struct {
	loanService portssvc.LoanSvcFacade
	effects     portssvc.EffectDispatcher
}

func newLoanHandler(ls portssvc.LoanSvcFacade, effects portssvc.EffectDispatcher) *loanHandler {
	return &loanHandler{loanService: ls, effects: effects}
}

// registerLoanRoutes registers loan and installment payment routes.
func registerLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, effects portssvc.EffectDispatcher) {
	h := newLoanHandler(loanService, effects)
	accounting := middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting)

	loans := rg.Group("/loans")
	{
		loans.POST("", h.applyForLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/schedule", h.getSchedule)
		loans.GET("/:id/payments", h.listPayments)
		// Approval rights per status are enforced by the loan state table.
		loans.PUT("/:id/status", middleware.RequireRoles(domain.RoleAdmin, domain.RoleAccounting, domain.RoleManager), h.updateLoanStatus)
		loans.POST("/:id/payments", accounting, h.recordPayment)
		loans.POST("/:id/payments/submit", h.submitPayment)
	}

	payments := rg.Group("/loan-payments", accounting)
	{
		payments.POST("/:id/approve", h.approvePayment)
		payments.POST("/:id/reject", h.rejectPayment)
		payments.POST("/:id/cancel", h.cancelPayment)
	}
}

func (h *loanHandler) applyForLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ApplyLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyForLoan", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger.Info("Received loan application", slog.Int64("member_id", req.MemberID), slog.String("amount", req.Amount.String()))
	outcome, err := h.loanService.ApplyForLoan(c.Request.Context(), req.ToLoan(), actor)
	if err != nil {
		handleServiceError(c, logger, err, "apply for loan")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)
	c.JSON(http.StatusCreated, outcome.Loan)
}

func (h *loanHandler) listLoans(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListLoansParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListLoans", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	loans, err := h.loanService.ListLoans(c.Request.Context(), params.Status)
	if err != nil {
		handleServiceError(c, logger, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, loans)
}

func (h *loanHandler) getLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	loan, err := h.loanService.GetLoan(c.Request.Context(), loanID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("loan_id", loanID)), err, "retrieve loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (h *loanHandler) getSchedule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	schedule, err := h.loanService.Schedule(c.Request.Context(), loanID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("loan_id", loanID)), err, "compute loan schedule")
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (h *loanHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}

	payments, err := h.loanService.ListPayments(c.Request.Context(), loanID)
	if err != nil {
		handleServiceError(c, logger.With(slog.Int64("loan_id", loanID)), err, "list loan payments")
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (h *loanHandler) updateLoanStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.UpdateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateLoanStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("loan_id", loanID), slog.String("target_status", string(req.Status)))
	outcome, err := h.loanService.ApproveLoan(c.Request.Context(), loanID, req.Status, actor)
	if err != nil {
		handleServiceError(c, logger, err, "update loan status")
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Loan status updated")
	c.JSON(http.StatusOK, outcome.Loan)
}

func (h *loanHandler) recordPayment(c *gin.Context) {
	h.payInstallment(c, h.loanService.RecordInstallmentPayment, "record installment payment")
}

func (h *loanHandler) submitPayment(c *gin.Context) {
	h.payInstallment(c, h.loanService.SubmitInstallmentPayment, "submit installment payment")
}

type installmentAction func(ctx context.Context, loanID int64, installmentNumber int, actor domain.Actor) (*domain.PaymentOutcome, error)

func (h *loanHandler) payInstallment(c *gin.Context, action installmentAction, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	var req dto.InstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for installment payment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("loan_id", loanID), slog.Int("installment", req.InstallmentNumber))
	outcome, err := action(c.Request.Context(), loanID, req.InstallmentNumber, actor)
	if err != nil {
		handleServiceError(c, logger, err, name)
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)

	logger.Info("Installment payment stored", slog.Int64("payment_id", outcome.Payment.PaymentID), slog.String("status", string(outcome.Payment.Status)))
	c.JSON(http.StatusCreated, outcome)
}

func (h *loanHandler) approvePayment(c *gin.Context) {
	h.reviewPayment(c, h.loanService.ApprovePayment, "approve payment")
}

func (h *loanHandler) rejectPayment(c *gin.Context) {
	h.reviewPayment(c, h.loanService.RejectPayment, "reject payment")
}

func (h *loanHandler) cancelPayment(c *gin.Context) {
	h.reviewPayment(c, h.loanService.CancelInstallmentPayment, "cancel payment")
}

type paymentAction func(ctx context.Context, paymentID int64, actor domain.Actor) (*domain.PaymentOutcome, error)

func (h *loanHandler) reviewPayment(c *gin.Context, action paymentAction, name string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID, ok := parseIDParam(c, logger, "id")
	if !ok {
		return
	}
	actor, ok := actorFromContext(c, logger)
	if !ok {
		return
	}

	logger = logger.With(slog.Int64("payment_id", paymentID))
	outcome, err := action(c.Request.Context(), paymentID, actor)
	if err != nil {
		handleServiceError(c, logger, err, name)
		return
	}
	dispatchEffects(c.Request.Context(), h.effects, outcome.Effects)
	c.JSON(http.StatusOK, outcome)
}
