package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"adega-delivery/models"
	"adega-delivery/repository"
	"adega-delivery/service"
)

// warningResponse carries a user-facing message shown inline by the client
type warningResponse struct {
	Warning string `json:"warning"`
	Code    string `json:"code,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("❌ failed to encode response", zap.Error(err))
	}
}

// decodeBody decodes a JSON request body into v, rejecting unknown fields
func decodeBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// statusFor maps service and engine errors to HTTP statuses
func statusFor(err error) int {
	if code, ok := models.CodeOf(err); ok {
		switch code {
		case models.CodeValidationRejected, models.CodeConfigurationIncomplete:
			return http.StatusUnprocessableEntity
		}
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(err, service.ErrCartNotFound), errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStoreClosed),
		errors.Is(err, service.ErrBelowMinimumOrder),
		errors.Is(err, service.ErrEmptyCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err. Rejections become warnings; internal failures are
// logged and hidden from the client.
func writeError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusUnprocessableEntity:
		code, _ := models.CodeOf(err)
		logger.Debug("⚠️ request rejected", zap.String("op", op), zap.String("warning", err.Error()))
		writeJSON(w, logger, status, warningResponse{Warning: err.Error(), Code: code.String()})
	case http.StatusInternalServerError:
		logger.Error("❌ request failed", zap.String("op", op), zap.Error(err))
		writeJSON(w, logger, status, errorResponse{Error: "internal error"})
	default:
		logger.Info("⚠️ request refused", zap.String("op", op), zap.Error(err))
		writeJSON(w, logger, status, errorResponse{Error: err.Error()})
	}
}

func badRequest(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	logger.Debug("❌ bad request", zap.String("op", op), zap.Error(err))
	writeJSON(w, logger, http.StatusBadRequest, errorResponse{Error: err.Error()})
}
