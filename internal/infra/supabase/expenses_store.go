package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
)

// ============================================================
// Expenses store — list, insert, delete (no update path)
// ============================================================

// ListExpenses fetches expenses, newest date first.
func (c *Client) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListExpenses")
	defer span.End()

	var rows []domain.Expense

	err := c.execute(ctx, func() error {
		body, err := c.doGet(ctx, "expenses?select=*&order=date.desc")
		if err != nil {
			return err
		}
		if body == nil || string(body) == "[]" {
			rows = []domain.Expense{}
			return nil
		}

		if err := json.Unmarshal(body, &rows); err != nil {
			return fmt.Errorf("decode expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/expenses", Err: err}
	}

	return rows, nil
}

// InsertExpense logs one expense and returns the stored row.
func (c *Client) InsertExpense(ctx context.Context, exp *domain.Expense) (*domain.Expense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.InsertExpense")
	defer span.End()

	row := map[string]any{
		"description": exp.Description,
		"amount":      exp.Amount.Float(),
		"date":        exp.Date,
		"category":    exp.Category,
		"type":        exp.Type,
	}

	var created *domain.Expense
	err := c.execute(ctx, func() error {
		body, err := c.doPost(ctx, "expenses", row)
		if err != nil {
			return err
		}

		var results []domain.Expense
		if err := json.Unmarshal(body, &results); err != nil {
			return fmt.Errorf("decode expense insert: %w", err)
		}
		if len(results) == 0 {
			return fmt.Errorf("no result from expenses insert")
		}
		created = &results[0]
		return nil
	})
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/expenses", Err: err}
	}

	return created, nil
}

// DeleteExpense removes one expense row.
func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteExpense")
	defer span.End()

	err := c.execute(ctx, func() error {
		return c.doDelete(ctx, fmt.Sprintf("expenses?id=eq.%d", id))
	})
	if err != nil {
		return &domain.ErrExternalService{Service: "supabase/expenses", Err: err}
	}
	return nil
}
