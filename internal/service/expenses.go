package service

import (
	"context"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/port"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var expenseTracer = otel.Tracer("service/expenses")

// ExpensesService manages the expense log. Expenses are append-and-delete
// only; there is no update path.
type ExpensesService struct {
	store     port.ExpenseStore
	snapshots port.Cache[*domain.DashboardView]
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewExpensesService creates the expenses service.
func NewExpensesService(store port.ExpenseStore, snapshots port.Cache[*domain.DashboardView], metrics *observability.Metrics, logger *zap.Logger) *ExpensesService {
	return &ExpensesService{
		store:     store,
		snapshots: snapshots,
		metrics:   metrics,
		logger:    logger,
	}
}

// List returns the expenses matching the filter, newest date first.
func (s *ExpensesService) List(ctx context.Context, f Filter) ([]domain.Expense, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpensesService.List")
	defer span.End()

	rows, err := s.store.ListExpenses(ctx)
	if err != nil {
		s.metrics.IncrStoreError("expenses")
		return nil, err
	}
	return FilterExpenses(rows, f), nil
}

// Create validates and logs a new expense. The outflow type is stamped
// server-side; the client never chooses it.
func (s *ExpensesService) Create(ctx context.Context, draft *domain.ExpenseDraft) (*domain.Expense, error) {
	ctx, span := expenseTracer.Start(ctx, "ExpensesService.Create")
	defer span.End()

	if draft.Description == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "required"}
	}
	if draft.Date == "" {
		return nil, &domain.ErrValidation{Field: "date", Message: "required"}
	}
	if draft.Category == "" {
		return nil, &domain.ErrValidation{Field: "category", Message: "required"}
	}
	if draft.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	exp := &domain.Expense{
		Description: draft.Description,
		Amount:      domain.Flex64(draft.Amount),
		Date:        draft.Date,
		Category:    draft.Category,
		Type:        domain.ExpenseTypeOutflow,
	}
	created, err := s.store.InsertExpense(ctx, exp)
	if err != nil {
		s.metrics.IncrStoreError("expenses")
		return nil, err
	}

	s.snapshots.Purge()
	s.logger.Info("expense logged",
		zap.Int64("expense_id", created.ID),
		zap.String("category", created.Category),
	)
	return created, nil
}

// Delete removes an expense from the log.
func (s *ExpensesService) Delete(ctx context.Context, id int64) error {
	ctx, span := expenseTracer.Start(ctx, "ExpensesService.Delete")
	defer span.End()
	span.SetAttributes(attribute.Int64("expense.id", id))

	if id <= 0 {
		return &domain.ErrValidation{Field: "id", Message: "required"}
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		s.metrics.IncrStoreError("expenses")
		return err
	}

	s.snapshots.Purge()
	s.logger.Info("expense removed", zap.Int64("expense_id", id))
	return nil
}
