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

type ItemHandler struct {
	listService service.ShoppingListService
	validator   *validator.Validate
}

func NewItemHandler(listService service.ShoppingListService) *ItemHandler {
	return &ItemHandler{listService: listService, validator: utils.NewValidator()}
}

func (h *ItemHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listID := r.PathValue("listId")

		if listID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("List ID is required")))

			return
		}

		var req models.AddItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.listService.AddItem(r.Context(), listID, &req)
		if err != nil {
			slog.Error("Failed to add item", slog.String("listId", listID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Item added", slog.String("itemId", item.ID), slog.String("listId", listID))
		response.Success(w, http.StatusCreated, item)
	}
}

func (h *ItemHandler) UpdateItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := r.PathValue("itemId")

		if itemID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("Item ID is required")))

			return
		}

		var req models.UpdateItemRequest

		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		item, err := h.listService.UpdateItem(r.Context(), itemID, &req)
		if err != nil {
			slog.Error("Failed to update item", slog.String("itemId", itemID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Item updated", slog.String("itemId", item.ID))
		response.Success(w, http.StatusOK, item)
	}
}

func (h *ItemHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := r.PathValue("itemId")

		if itemID == "" {
			response.WriteJson(w, http.StatusBadRequest, response.GeneralError(errors.New("Item ID is required")))

			return
		}

		item, err := h.listService.RemoveItem(r.Context(), itemID)
		if err != nil {
			slog.Error("Failed to remove item", slog.String("itemId", itemID), slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		slog.Info("Item removed", slog.String("itemId", item.ID))
		response.Success(w, http.StatusOK, models.RemoveItemResponse{
			Message: "Item removed successfully",
			Item:    item,
		})
	}
}
