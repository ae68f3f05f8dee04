package handlers

import (
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/compralista/shopping-list-platform/internal/models"
	service "github.com/compralista/shopping-list-platform/internal/services"
	"github.com/compralista/shopping-list-platform/internal/utils"
	"github.com/compralista/shopping-list-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type ShoppingListHandler struct {
	listService service.ShoppingListService
	validator   *validator.Validate
}

func NewShoppingListHandler(listService service.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{listService: listService, validator: utils.NewValidator()}
}

func (h *ShoppingListHandler) CreateList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateShoppingListRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		list, err := h.listService.CreateList(r.Context(), &req)
		if err != nil {
			slog.Error("Shopping list creation failed", slog.String("userId", req.UserID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Shopping list created", slog.String("listId", list.ID), slog.Int("items", len(list.Items)))
		response.Success(w, http.StatusCreated, list)
	}
}

func parseListFilters(r *http.Request) models.ShoppingListFilters {
	query := r.URL.Query()

	filters := models.ShoppingListFilters{
		MarketID: query.Get("market_id"),
		OrderBy:  query.Get("orderBy"),
	}

	if value := query.Get("is_completed"); value != "" {
		if completed, err := strconv.ParseBool(value); err == nil {
			filters.IsCompleted = &completed
		}
	}

	filters.Limit, _ = strconv.Atoi(query.Get("limit"))
	filters.Offset, _ = strconv.Atoi(query.Get("offset"))

	return filters
}

func (h *ShoppingListHandler) ListLists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		lists, err := h.listService.ListLists(r.Context(), userID, parseListFilters(r))
		if err != nil {
			slog.Error("Failed to fetch shopping lists", slog.String("userId", userID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		if lists == nil {
			lists = []*models.ShoppingList{}
		}

		response.Success(w, http.StatusOK, lists)
	}
}

func (h *ShoppingListHandler) GetList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if id == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("List ID is required")))

			return
		}

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		list, err := h.listService.GetList(r.Context(), id, userID)
		if err != nil {
			slog.Warn("Failed to fetch shopping list", slog.String("listId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

// GetByShareCode serves the anonymous read-only view.
func (h *ShoppingListHandler) GetByShareCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.PathValue("code")

		if code == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("Share code is required")))

			return
		}

		list, err := h.listService.GetListByShareCode(r.Context(), code, clientIP(r))
		if err != nil {
			slog.Warn("Share code lookup failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

func (h *ShoppingListHandler) UpdateList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		var req models.UpdateShoppingListRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		list, err := h.listService.UpdateList(r.Context(), id, userID, &req)
		if err != nil {
			slog.Error("Shopping list update failed", slog.String("listId", id), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Shopping list updated", slog.String("listId", list.ID))
		response.Success(w, http.StatusOK, list)
	}
}

func (h *ShoppingListHandler) DeleteList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DeleteShoppingListRequest

		if err := utils.DecodeJSONBody(r, &req); err != nil {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(err))

			return
		}

		if req.ID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("List ID is required")))

			return
		}

		if req.UserID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		list, err := h.listService.DeleteList(r.Context(), req.ID, req.UserID)
		if err != nil {
			slog.Error("Shopping list deletion failed", slog.String("listId", req.ID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Shopping list deleted", slog.String("listId", list.ID))
		response.Success(w, http.StatusOK, models.DeleteShoppingListResponse{
			Message: "Shopping list deleted successfully",
			List:    list,
		})
	}
}

// GetStats aggregates over the user's full list result set. This is the one
// place a handler computes rather than delegates.
func (h *ShoppingListHandler) GetStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user_id")

		if userID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("User ID is required")))

			return
		}

		lists, err := h.listService.ListLists(r.Context(), userID, models.ShoppingListFilters{})
		if err != nil {
			slog.Error("Failed to compute stats", slog.String("userId", userID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		stats := models.ShoppingListStats{TotalLists: len(lists)}
		totalAmount := decimal.Zero

		for _, list := range lists {
			if list.IsCompleted {
				stats.CompletedLists++
			} else {
				stats.ActiveLists++
			}

			stats.TotalItems += list.ItemsCount
			stats.CheckedItems += list.CheckedItemsCount
			totalAmount = totalAmount.Add(decimal.NewFromFloat(list.TotalAmount))
		}

		stats.TotalAmount, _ = totalAmount.Round(2).Float64()

		if stats.TotalItems > 0 {
			stats.CompletionRate = int(math.Round(float64(stats.CheckedItems) / float64(stats.TotalItems) * 100))
		}

		response.Success(w, http.StatusOK, stats)
	}
}

func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
