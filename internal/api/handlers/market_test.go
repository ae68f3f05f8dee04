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

func setupMarketHandler() (*mocks.MarketService, *handlers.MarketHandler) {
	mockService := new(mocks.MarketService)

	return mockService, handlers.NewMarketHandler(mockService)
}

func TestCreateMarketHandler(t *testing.T) {
	userID := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		market := &models.Market{ID: uuid.NewString(), UserID: userID, Name: "Mercado Central"}
		mockService.On("CreateMarket", mock.Anything, mock.AnythingOfType("*models.CreateMarketRequest")).Return(market, nil).Once()

		body, _ := json.Marshal(map[string]string{"user_id": userID, "name": "Mercado Central"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/markets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.CreateMarket().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "Mercado Central", data["name"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Bad CNPJ Caught By Validation", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		body, _ := json.Marshal(map[string]string{"user_id": userID, "name": "Mercado Central", "cnpj": "123"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/markets", bytes.NewReader(body))
		rr := httptest.NewRecorder()

		// Act
		handler.CreateMarket().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		envelope := decodeEnvelope(t, rr)
		errBody := envelope["error"].(map[string]any)
		assert.Equal(t, appErrors.ErrCodeValidation, errBody["code"])
		assert.Contains(t, errBody["details"], "Field CNPJ must be a CNPJ with 14 digits")
		mockService.AssertNotCalled(t, "CreateMarket")
	})
}

func TestListMarketsHandler(t *testing.T) {
	userID := uuid.NewString()

	t.Run("Success - Wrapped In markets Key", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		markets := []*models.Market{{ID: uuid.NewString(), UserID: userID, Name: "Atacadão"}}
		mockService.On("ListMarkets", mock.Anything, userID).Return(markets, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/markets?user_id="+userID, http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.ListMarkets().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		wrapped := data["markets"].([]any)
		require.Len(t, wrapped, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Missing User ID", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/markets", http.NoBody)
		rr := httptest.NewRecorder()

		// Act
		handler.ListMarkets().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var flat response.Response

		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &flat))
		assert.Equal(t, "User ID is required", flat.Error)
		mockService.AssertNotCalled(t, "ListMarkets")
	})
}

func TestDeleteMarketHandler(t *testing.T) {
	marketID := uuid.NewString()
	userID := uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		market := &models.Market{ID: marketID, UserID: userID, Name: "Mercado Central"}
		mockService.On("DeleteMarket", mock.Anything, marketID, userID).Return(market, nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/markets/"+marketID+"?user_id="+userID, http.NoBody)
		req.SetPathValue("id", marketID)
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteMarket().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		envelope := decodeEnvelope(t, rr)
		data := envelope["data"].(map[string]any)
		assert.Equal(t, "Market deleted successfully", data["message"])
		mockService.AssertExpectations(t)
	})

	t.Run("Failure - Unknown Market", func(t *testing.T) {
		// Arrange
		mockService, handler := setupMarketHandler()
		mockService.On("DeleteMarket", mock.Anything, marketID, userID).
			Return(nil, appErrors.NotFoundError("Market not found")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/v1/markets/"+marketID+"?user_id="+userID, http.NoBody)
		req.SetPathValue("id", marketID)
		rr := httptest.NewRecorder()

		// Act
		handler.DeleteMarket().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
