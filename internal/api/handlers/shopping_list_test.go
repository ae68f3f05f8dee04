package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/compralista/shopping-list-platform/internal/api/handlers"
	appErrors "github.com/compralista/shopping-list-platform/internal/errors"
	"github.com/compralista/shopping-list-platform/internal/models"
	"github.com/compralista/shopping-list-platform/internal/services/mocks"
	"github.com/compralista/shopping-list-platform/internal/utils/response"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupListHandler() (*mocks.ShoppingListService, *handlers.ShoppingListHandler) {
	mockService := new(mocks.ShoppingListService)

	return mockService, handlers.NewShoppingListHandler(mockService)
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any

	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))

	return body
}

func TestCreateListHandler(t *testing.T) {
	userID := uuid.NewString()

	t.Run("Success - Item Totals Computed", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		payload := map[string]any{
			"user_id":       userID,
			"title":         "Compras da semana",
			"shopping_date": "2025-10-16",
			"items": []map[string]any{
				{"product_name": "Arroz", "category": "Mercearia", "quantity": 2, "unit": "un", "unit_price": 2.5},
			},
		}
		body, _ := json.Marshal(payload)

		detail := &models.ShoppingListDetail{
			ShoppingList: models.ShoppingList{ID: uuid.NewString(), UserID: userID, Title: "Compras da semana", TotalAmount: 5},
			Items: []*models.ShoppingListItem{
				{ProductName: "Arroz", Quantity: 2, UnitPrice: 2.5, TotalPrice: 5},
			},
		}
		mockService.On("CreateList", mock.Anything, mock.AnythingOfType("*models.CreateShoppingListRequest")).Return(detail, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.CreateList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, true, envelope["success"])

		data := envelope["data"].(map[string]any)
		items := data["items"].([]any)
		first := items[0].(map[string]any)
		assert.Equal(t, 5.0, first["total_price"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Empty Body", func(t *testing.T) {
		// Arrange
		_, handler := setupListHandler()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists", http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.CreateList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var flat response.Response

		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flat))
		assert.Equal(t, response.StatusError, flat.Status)
		assert.Equal(t, "request body cannot be empty", flat.Error)
	})

	t.Run("Failure - Missing Title Caught By Validation", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		body, _ := json.Marshal(map[string]any{"user_id": userID, "shopping_date": "2025-10-16"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.CreateList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, false, envelope["success"])

		errBody := envelope["error"].(map[string]any)
		assert.Equal(t, appErrors.ErrCodeValidation, errBody["code"])
		assert.Contains(t, errBody["details"], "Field Title is required")
		mockService.AssertNotCalled(t, "CreateList")
	})

	t.Run("Failure - Business Rule From The Service", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		body, _ := json.Marshal(map[string]any{"user_id": userID, "title": "Feira", "shopping_date": "2025-10-16", "items": []any{}})
		mockService.On("CreateList", mock.Anything, mock.Anything).
			Return(nil, appErrors.ValidationError("Shopping list must contain at least one item")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.CreateList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeEnvelope(t, rr)
		errBody := envelope["error"].(map[string]any)
		assert.Equal(t, "Shopping list must contain at least one item", errBody["message"])
	})
}

func TestListListsHandler(t *testing.T) {
	userID := uuid.NewString()

	t.Run("Failure - Missing User ID", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shopping-lists", http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.ListLists().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var flat response.Response

		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flat))
		assert.Equal(t, "User ID is required", flat.Error)
		mockService.AssertNotCalled(t, "ListLists")
	})

	t.Run("Success - No Lists Returns Empty Array", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		mockService.On("ListLists", mock.Anything, userID, models.ShoppingListFilters{}).Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shopping-lists?user_id="+userID, http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.ListLists().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"data":[]`)
		mockService.AssertExpectations(t)
	})

	t.Run("Success - Query Filters Forwarded", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		completed := true
		expected := models.ShoppingListFilters{IsCompleted: &completed, OrderBy: "shopping_date", Limit: 5, Offset: 10}
		mockService.On("ListLists", mock.Anything, userID, expected).Return([]*models.ShoppingList{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/shopping-lists?user_id="+userID+"&is_completed=true&orderBy=shopping_date&limit=5&offset=10", http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.ListLists().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})
}

func TestGetByShareCodeHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		detail := &models.ShoppingListDetail{
			ShoppingList: models.ShoppingList{ID: uuid.NewString(), Title: "Feira", IsSharedView: true},
		}
		mockService.On("GetListByShareCode", mock.Anything, "1234", mock.AnythingOfType("string")).Return(detail, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/1234", http.NoBody)
		req.SetPathValue("code", "1234")
		rr := httptest.NewRecorder()

		// Act
		handler.GetByShareCode().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, true, data["is_shared_view"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Malformed Code", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		mockService.On("GetListByShareCode", mock.Anything, "12ab", mock.AnythingOfType("string")).
			Return(nil, appErrors.ValidationError("Share code must be exactly 4 digits")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/12ab", http.NoBody)
		req.SetPathValue("code", "12ab")
		rr := httptest.NewRecorder()

		// Act
		handler.GetByShareCode().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeEnvelope(t, rr)
		errBody := envelope["error"].(map[string]any)
		assert.Equal(t, "Share code must be exactly 4 digits", errBody["message"])
	})

	t.Run("Failure - Rate Limited", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		mockService.On("GetListByShareCode", mock.Anything, "1234", mock.AnythingOfType("string")).
			Return(nil, appErrors.TooManyRequestsError("Too many share code attempts, retry in 30 seconds")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shared/1234", http.NoBody)
		req.SetPathValue("code", "1234")
		rr := httptest.NewRecorder()

		// Act
		handler.GetByShareCode().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	})
}

func TestDeleteListHandler(t *testing.T) {
	listID := uuid.NewString()
	userID := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		deleted := &models.ShoppingList{ID: listID, UserID: userID, Title: "Feira"}
		mockService.On("DeleteList", mock.Anything, listID, userID).Return(deleted, nil).Once()

		body, _ := json.Marshal(map[string]string{"id": listID, "user_id": userID})
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "Shopping list deleted successfully", data["message"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing User ID", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		body, _ := json.Marshal(map[string]string{"id": listID})
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var flat response.Response

		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flat))
		assert.Equal(t, "User ID is required", flat.Error)
		mockService.AssertNotCalled(t, "DeleteList")
	})

	t.Run("Failure - Missing List ID", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		body, _ := json.Marshal(map[string]string{"user_id": userID})
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/shopping-lists", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteList().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var flat response.Response

		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flat))
		assert.Equal(t, "List ID is required", flat.Error)
		mockService.AssertNotCalled(t, "DeleteList")
	})
}

func TestGetStatsHandler(t *testing.T) {
	userID := uuid.NewString()

	t.Run("Success - Aggregated Across Lists", func(t *testing.T) {
		// Arrange
		mockService, handler := setupListHandler()
		lists := []*models.ShoppingList{
			{ID: uuid.NewString(), IsCompleted: true, ItemsCount: 4, CheckedItemsCount: 4, TotalAmount: 100.10},
			{ID: uuid.NewString(), ItemsCount: 6, CheckedItemsCount: 1, TotalAmount: 49.90},
		}
		mockService.On("ListLists", mock.Anything, userID, models.ShoppingListFilters{}).Return(lists, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/shopping-lists/stats?user_id="+userID, http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.GetStats().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, 2.0, data["total_lists"])
		assert.Equal(t, 1.0, data["completed_lists"])
		assert.Equal(t, 1.0, data["active_lists"])
		assert.Equal(t, 10.0, data["total_items"])
		assert.Equal(t, 5.0, data["checked_items"])
		assert.Equal(t, 150.0, data["total_amount"])
		assert.Equal(t, 50.0, data["completion_rate"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing User ID", func(t *testing.T) {
		// Arrange
		_, handler := setupListHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/shopping-lists/stats", http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.GetStats().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
