package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/infra/observability"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.uber.org/zap"
)

func TestCreateExpense_StampsOutflowType(t *testing.T) {
	store := &mockExpenseStore{}
	svc := service.NewExpensesService(store, newSnapshotCache(), observability.NewMetrics(), zap.NewNop())

	created, err := svc.Create(context.Background(), &domain.ExpenseDraft{
		Description: "Combustível",
		Amount:      90,
		Date:        "2025-11-05",
		Category:    "logística",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.inserted.Type != domain.ExpenseTypeOutflow {
		t.Errorf("expected type %q stamped server-side, got %q", domain.ExpenseTypeOutflow, store.inserted.Type)
	}
	if created.ID != 9 {
		t.Errorf("expected stored row back, got %+v", created)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	svc := service.NewExpensesService(&mockExpenseStore{}, newSnapshotCache(), observability.NewMetrics(), zap.NewNop())

	cases := []struct {
		name  string
		draft domain.ExpenseDraft
	}{
		{"missing description", domain.ExpenseDraft{Amount: 10, Date: "2025-11-05", Category: "x"}},
		{"missing date", domain.ExpenseDraft{Description: "d", Amount: 10, Category: "x"}},
		{"missing category", domain.ExpenseDraft{Description: "d", Amount: 10, Date: "2025-11-05"}},
		{"zero amount", domain.ExpenseDraft{Description: "d", Date: "2025-11-05", Category: "x"}},
		{"negative amount", domain.ExpenseDraft{Description: "d", Amount: -5, Date: "2025-11-05", Category: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tc.draft)
			var verr *domain.ErrValidation
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestListExpenses_Filtered(t *testing.T) {
	store := &mockExpenseStore{expenses: []domain.Expense{
		{ID: 1, Date: "2025-11-05"},
		{ID: 2, Date: "2025-10-05"},
	}}
	svc := service.NewExpensesService(store, newSnapshotCache(), observability.NewMetrics(), zap.NewNop())

	got, err := svc.List(context.Background(), service.Filter{Start: "2025-11-01", End: "2025-11-30"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only the in-window expense, got %+v", got)
	}
}

func TestDeleteExpense(t *testing.T) {
	store := &mockExpenseStore{}
	svc := service.NewExpensesService(store, newSnapshotCache(), observability.NewMetrics(), zap.NewNop())

	if err := svc.Delete(context.Background(), 3); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if store.deleted != 3 {
		t.Errorf("expected delete of id 3, got %d", store.deleted)
	}
}
