// FilePath: internal/agroapi/client_test.go
package agroapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/config"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(config.BackendConfig{
		APIURL:  srv.URL,
		Timeout: 5 * time.Second,
	})
	return client, srv
}

func authedCtx() context.Context {
	return auth.ContextWithToken(context.Background(), "test-token")
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, err := client.GetSensorData(authedCtx(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestNoTokenMeansNoAuthHeader(t *testing.T) {
	var gotAuth string
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, err := client.GetSensorData(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedIsAuthError(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
	})

	_, err := client.GetSensorData(authedCtx(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsAuth(err))
}

func TestServerErrorIsUpstream(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetReports(authedCtx(), 1)
	require.Error(t, err)
	assert.False(t, errors.IsAuth(err))

	apiErr, ok := err.(*errors.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.Code)
}

func TestGetSensorDataDecodesEnvelope(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sensor_data", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{
				{"timestamp": "2025-06-01T14:10:00", "measure": "TEMP", "value": 21.5},
				{"timestamp": "2025-06-01 14:15:00", "measure": "HUM", "value": 63},
			},
		})
	})

	readings, err := client.GetSensorData(authedCtx(), 7)
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, models.MeasureTemperature, readings[0].Measure)
	assert.Equal(t, 21.5, readings[0].Value)
	assert.Equal(t, 2025, readings[0].Timestamp.Year())
	assert.Equal(t, models.MeasureHumidity, readings[1].Measure)
}

func TestGetParametersEmptyMeansNil(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	params, err := client.GetParameters(authedCtx(), 7)
	require.NoError(t, err)
	assert.Nil(t, params)
}

func TestGetParametersReturnsFirstRecord(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"id": 1, "userid": 7,
				"min_temperature": 10.0, "max_temperature": 30.0,
				"min_humidity": 40.0, "max_humidity": 80.0,
				"min_soil_moisture": 20.0, "max_soil_moisture": 60.0,
			}},
		})
	})

	params, err := client.GetParameters(authedCtx(), 7)
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Equal(t, 10.0, params.MinTemperature)
	assert.Equal(t, 60.0, params.MaxSoilMoisture)
}

func TestSaveParametersPostsAllFields(t *testing.T) {
	var body map[string]any
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/parameters", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	err := client.SaveParameters(authedCtx(), 7, &models.AlarmParameters{
		MinTemperature: 10, MaxTemperature: 30,
		MinHumidity: 40, MaxHumidity: 80,
		MinSoilMoisture: 20, MaxSoilMoisture: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 7.0, body["userid"])
	assert.Equal(t, 30.0, body["max_temperature"])
	assert.Equal(t, 20.0, body["min_soil_moisture"])
}

func TestSyncUserUpserts(t *testing.T) {
	var body map[string]string
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{
			"userid": 42, "email": body["email"], "cognito_sub": body["cognito_sub"],
		})
	})

	user, err := client.SyncUser(authedCtx(), "sub-1", "farmer@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, 42, user.UserID)
	assert.Equal(t, "sub-1", body["cognito_sub"])
	assert.Equal(t, "farmer@example.com", body["email"])
}

func TestListUsers(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"userid": 1, "email": "a@example.com"},
			{"userid": 2, "email": "b@example.com"},
		})
	})

	users, err := client.ListUsers(authedCtx())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestCreateUser(t *testing.T) {
	var body map[string]string
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"userid": 9, "email": body["email"]})
	})

	user, err := client.CreateUser(authedCtx(), "new@example.com", "new")
	require.NoError(t, err)
	assert.Equal(t, 9, user.UserID)
	assert.Equal(t, "new", body["username"])
}

func TestSyncUserWithoutIDFails(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"email": "farmer@example.com"})
	})

	_, err := client.SyncUser(authedCtx(), "sub-1", "farmer@example.com", "")
	require.Error(t, err)
}

func TestGetReportsDecodesEnvelope(t *testing.T) {
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"reports": []map[string]any{
				{"date": "2025-06-02", "userid": 7, "report": "Todo en orden."},
				{"date": "2025-06-01", "userid": 7, "report": "Humedad baja."},
			},
		})
	})

	reports, err := client.GetReports(authedCtx(), 7)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "2025-06-02", reports[0].Date)
	assert.Equal(t, "Todo en orden.", reports[0].Text)
}

func TestRequestReportPostsDate(t *testing.T) {
	var body map[string]any
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(map[string]any{"success": true})
	})

	require.NoError(t, client.RequestReport(authedCtx(), 7, "2025-06-02"))
	assert.Equal(t, "2025-06-02", body["date"])
	assert.Equal(t, 7.0, body["userid"])
}

func TestGetDroneImagesLimit(t *testing.T) {
	var gotLimit string
	client, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/images", r.URL.Path)
		gotLimit = r.URL.Query().Get("limit")
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"count":   1,
			"data": []map[string]any{
				{"id": 1, "userid": 7, "field_status": "FIRE_DETECTED"},
			},
		})
	})

	images, err := client.GetDroneImages(authedCtx(), 7, 5)
	require.NoError(t, err)
	assert.Equal(t, "5", gotLimit)
	require.Len(t, images, 1)
	assert.Equal(t, models.FieldStatusFireDetected, images[0].FieldStatus)

	_, err = client.GetDroneImages(authedCtx(), 7, 0)
	require.NoError(t, err)
	assert.Empty(t, gotLimit)
}
