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

type MarketHandler struct {
	marketService service.MarketService
	validator     *validator.Validate
}

func NewMarketHandler(marketService service.MarketService) *MarketHandler {
	return &MarketHandler{marketService: marketService, validator: utils.NewValidator()}
}

func (h *MarketHandler) ListMarkets() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		markets, err := h.marketService.ListMarkets(r.Context(), userID)
		if err != nil {
			slog.Error("Failed to fetch markets", slog.String("userId", userID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if markets == nil {
			markets = []*models.Market{}
		}

		response.Success(w, http.StatusOK, map[string]any{"markets": markets})
	}
}

func (h *MarketHandler) CreateMarket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateMarketRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		market, err := h.marketService.CreateMarket(r.Context(), &req)
		if err != nil {
			slog.Error("Market creation failed", slog.String("userId", req.UserID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Market created", slog.String("marketId", market.ID))
		response.Success(w, http.StatusCreated, market)
	}
}

func (h *MarketHandler) UpdateMarket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		var req models.UpdateMarketRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		market, err := h.marketService.UpdateMarket(r.Context(), id, userID, &req)
		if err != nil {
			slog.Error("Market update failed", slog.String("marketId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Market updated", slog.String("marketId", market.ID))
		response.Success(w, http.StatusOK, market)
	}
}

func (h *MarketHandler) DeleteMarket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		market, err := h.marketService.DeleteMarket(r.Context(), id, userID)
		if err != nil {
			slog.Error("Market deletion failed", slog.String("marketId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Market deleted", slog.String("marketId", market.ID))
		response.Success(w, http.StatusOK, map[string]any{
			"message": "Market deleted successfully",
			"market":  market,
		})
	}
}
