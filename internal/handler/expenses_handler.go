package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.uber.org/zap"
)

func listExpensesHandler(svc *service.ExpensesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/expenses")
		defer span.End()

		expenses, err := svc.List(ctx, filterFromRequest(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"expenses": expenses})
	}
}

func createExpenseHandler(svc *service.ExpensesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/expenses")
		defer span.End()

		var draft domain.ExpenseDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		created, err := svc.Create(ctx, &draft)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, created)
	}
}

func deleteExpenseHandler(svc *service.ExpensesService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/expenses/{expenseId}")
		defer span.End()

		id, ok := pathID(r, "expenseId")
		if !ok {
			writeError(w, http.StatusBadRequest, "expenseId must be a positive integer")
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
