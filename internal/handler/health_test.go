package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indianhorizon/tripplanner/internal/handler"
)

// TestGetHealth_returns200WithOKStatus verifies that GET /healthz returns
// HTTP 200 and a JSON body of {"status":"ok"}.
func TestGetHealth_returns200WithOKStatus(t *testing.T) {
	// Arrange
	h := handler.NewHealthHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	// Act
	h.ServeHTTP(rec, req)

	// Assert
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "ok", body.Status)
}

func TestGetOpenAPI_servesEmbeddedSpec(t *testing.T) {
	h := handler.NewHealthHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "openapi:")
	assert.Contains(t, rec.Body.String(), "/estimates/{id}/finalize")
}

func TestGetRates(t *testing.T) {
	h := handler.NewHealthHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/estimator/rates", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var card handler.RateCard
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&card))
	assert.Equal(t, []string{"Goa", "Kerala", "Rajasthan", "Himalayas"}, card.Destinations)
	assert.Equal(t, 8000, card.FlightPerPerson.Amount)
	assert.Equal(t, "₹8,000", card.FlightPerPerson.Display)
	require.Len(t, card.Transport, 3)
	assert.Equal(t, handler.TransportRate{Mode: "Cab", PerDay: handler.Money{Amount: 500, Display: "₹500"}}, card.Transport[0])
	assert.Equal(t, 10000, card.HotelPrice.Max)
	assert.Equal(t, 500, card.HotelPrice.Step)
	assert.Equal(t, 10, card.Travelers.Max)
}
