package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

func listOrdersHandler(svc *service.OrdersService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/orders")
		defer span.End()

		orders, err := svc.List(ctx, filterFromRequest(r))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
	}
}

func createOrderHandler(svc *service.OrdersService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/orders")
		defer span.End()

		var draft domain.OrderDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.Create(ctx, &draft)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(attribute.String("order.number", order.OrderNumber))

		writeJSON(w, http.StatusCreated, order)
	}
}

func updateOrderHandler(svc *service.OrdersService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/orders/{orderId}")
		defer span.End()

		id, ok := pathID(r, "orderId")
		if !ok {
			writeError(w, http.StatusBadRequest, "orderId must be a positive integer")
			return
		}

		var patch domain.OrderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.Update(ctx, id, &patch); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteOrderHandler(svc *service.OrdersService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/orders/{orderId}")
		defer span.End()

		id, ok := pathID(r, "orderId")
		if !ok {
			writeError(w, http.StatusBadRequest, "orderId must be a positive integer")
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
