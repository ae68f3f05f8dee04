package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/compralista/shopping-list-platform/internal/models"
	service "github.com/compralista/shopping-list-platform/internal/services"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/compralista/shopping-list-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type PaymentHandler struct {
	paymentService service.PaymentService
	validator      *validator.Validate
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validator: utils.NewValidator()}
}

func (h *PaymentHandler) ListPaymentMethods() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		methods, err := h.paymentService.ListPaymentMethods(r.Context(), userID)
		if err != nil {
			slog.Error("Failed to fetch payment methods", slog.String("userId", userID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if methods == nil {
			methods = []*models.PaymentMethod{}
		}

		response.Success(w, http.StatusOK, map[string]any{"paymentMethods": methods})
	}
}

func (h *PaymentHandler) CreatePaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreatePaymentMethodRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.CreatePaymentMethod(r.Context(), &req)
		if err != nil {
			slog.Error("Payment method creation failed", slog.String("userId", req.UserID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Payment method created", slog.String("paymentMethodId", method.ID))
		response.Success(w, http.StatusCreated, method)
	}
}

func (h *PaymentHandler) UpdatePaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		var req models.UpdatePaymentMethodRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		method, err := h.paymentService.UpdatePaymentMethod(r.Context(), id, userID, &req)
		if err != nil {
			slog.Error("Payment method update failed", slog.String("paymentMethodId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Payment method updated", slog.String("paymentMethodId", method.ID))
		response.Success(w, http.StatusOK, method)
	}
}

func (h *PaymentHandler) DeletePaymentMethod() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		method, err := h.paymentService.DeletePaymentMethod(r.Context(), id, userID)
		if err != nil {
			slog.Error("Payment method deletion failed", slog.String("paymentMethodId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Payment method deleted", slog.String("paymentMethodId", method.ID))
		response.Success(w, http.StatusOK, map[string]any{
			"message":       "Payment method deleted successfully",
			"paymentMethod": method,
		})
	}
}
