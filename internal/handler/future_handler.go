package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rogeriogrn/logzz-analytics-clone/internal/domain"
	"github.com/rogeriogrn/logzz-analytics-clone/internal/service"

	"go.uber.org/zap"
)

func listFutureHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/future-deliveries")
		defer span.End()

		deliveries, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if deliveries == nil {
			deliveries = []domain.FutureDelivery{}
		}

		writeJSON(w, http.StatusOK, map[string]any{"deliveries": deliveries})
	}
}

func createFutureHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/future-deliveries")
		defer span.End()

		var draft domain.FutureDeliveryDraft
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

func updateFutureHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/future-deliveries/{deliveryId}")
		defer span.End()

		id, ok := pathID(r, "deliveryId")
		if !ok {
			writeError(w, http.StatusBadRequest, "deliveryId must be a positive integer")
			return
		}

		var draft domain.FutureDeliveryDraft
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.Update(ctx, id, &draft); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func completeFutureHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/future-deliveries/{deliveryId}/complete")
		defer span.End()

		id, ok := pathID(r, "deliveryId")
		if !ok {
			writeError(w, http.StatusBadRequest, "deliveryId must be a positive integer")
			return
		}

		if err := svc.Complete(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func futureNotesHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/future-deliveries/{deliveryId}/notes")
		defer span.End()

		id, ok := pathID(r, "deliveryId")
		if !ok {
			writeError(w, http.StatusBadRequest, "deliveryId must be a positive integer")
			return
		}

		var body struct {
			Notes string `json:"notes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.UpdateNote(ctx, id, body.Notes); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteFutureHandler(svc *service.FutureService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/future-deliveries/{deliveryId}")
		defer span.End()

		id, ok := pathID(r, "deliveryId")
		if !ok {
			writeError(w, http.StatusBadRequest, "deliveryId must be a positive integer")
			return
		}

		if err := svc.Delete(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
