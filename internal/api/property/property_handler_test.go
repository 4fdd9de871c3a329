package property

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-estate-assistant/internal/types"
)

// MockPropertyService is a mock implementation of the Service interface
type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Search(ctx context.Context, locationText string, filter types.ListingFilter) (*types.PropertySearchResponse, error) {
	args := m.Called(ctx, locationText, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PropertySearchResponse), args.Error(1)
}

func setupPropertyHandlerTest() (*Handler, *MockPropertyService) {
	mockService := new(MockPropertyService)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(mockService, logger), mockService
}

func postProperties(handler *Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/properties", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.HandlePropertySearch(w, req)
	return w
}

func TestHandlePropertySearch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		handler, mockService := setupPropertyHandlerTest()
		coords := types.LatLng{Lat: 30.2672, Lng: -97.7431}
		expected := &types.PropertySearchResponse{
			Message:     "I found 1 properties in Austin, TX, USA. Here are some properties that might interest you.",
			Address:     "Austin, TX, USA",
			Coordinates: &coords,
			Properties: []types.PropertyListing{{
				ID: "p1", Name: "Congress Lofts", ListingType: types.ListingForRent, Currency: "USD",
			}},
		}
		mockService.On("Search", mock.Anything, "Austin, TX", types.FilterRent).Return(expected, nil).Once()

		body, _ := json.Marshal(types.PropertySearchRequest{Location: "Austin, TX", Type: "rent"})
		w := postProperties(handler, body)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp types.PropertySearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, expected.Address, resp.Address)
		require.Len(t, resp.Properties, 1)
		assert.Equal(t, "Congress Lofts", resp.Properties[0].Name)
		mockService.AssertExpectations(t)
	})

	t.Run("missing filter defaults to all", func(t *testing.T) {
		handler, mockService := setupPropertyHandlerTest()
		mockService.On("Search", mock.Anything, "Austin, TX", types.FilterAll).
			Return(&types.PropertySearchResponse{Properties: []types.PropertyListing{}}, nil).Once()

		body, _ := json.Marshal(types.PropertySearchRequest{Location: "Austin, TX"})
		w := postProperties(handler, body)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("location not found passes through as 200", func(t *testing.T) {
		handler, mockService := setupPropertyHandlerTest()
		mockService.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return(&types.PropertySearchResponse{
				Error:      "Location not found",
				Properties: []types.PropertyListing{},
			}, nil).Once()

		body, _ := json.Marshal(types.PropertySearchRequest{Location: "xyzzy nowhere"})
		w := postProperties(handler, body)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp types.PropertySearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Location not found", resp.Error)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler, mockService := setupPropertyHandlerTest()

		w := postProperties(handler, []byte("{not json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp types.PropertySearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid request body", resp.Error)
		mockService.AssertNotCalled(t, "Search")
	})

	t.Run("service error", func(t *testing.T) {
		handler, mockService := setupPropertyHandlerTest()
		mockService.On("Search", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("places API status 500")).Once()

		body, _ := json.Marshal(types.PropertySearchRequest{Location: "Austin, TX"})
		w := postProperties(handler, body)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var resp types.PropertySearchResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Failed to fetch properties", resp.Error)
		assert.NotContains(t, w.Body.String(), "places API status 500")
	})
}
