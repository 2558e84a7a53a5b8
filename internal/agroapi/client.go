// FilePath: internal/agroapi/client.go

// Package agroapi is the HTTP client for the AgroSynchro backend API. It is
// a pure transport: it attaches the current access token as a bearer
// credential, decodes the response envelopes and surfaces failures as typed
// errors. It never retries and never refreshes tokens; a 401 is reported as
// an auth error and the caller decides what to do with the session.
package agroapi

import (
	"context"
	"fmt"

	"github.com/FelipeCupito/agrosynchro-platform/internal/auth"
	"github.com/FelipeCupito/agrosynchro-platform/internal/config"
	"github.com/FelipeCupito/agrosynchro-platform/internal/errors"
	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/go-resty/resty/v2"
	nuts "github.com/vaudience/go-nuts"
)

// Client talks to the backend API.
type Client struct {
	http *resty.Client
}

// New creates a backend client for the configured base URL.
func New(cfg config.BackendConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.APIURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	// Bearer credential travels in the request context; requests without a
	// token go out unauthenticated and the backend answers accordingly.
	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := auth.TokenFromContext(req.Context()); token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})

	return &Client{http: httpClient}
}

// checkResponse maps transport-level failures into the error taxonomy.
func checkResponse(resp *resty.Response, err error, what string) error {
	if err != nil {
		return errors.NewUpstreamError("failed to reach backend: "+what, err)
	}
	if resp.StatusCode() == 401 {
		return errors.NewAuthError("backend rejected credentials: "+what, nil)
	}
	if !resp.IsSuccess() {
		return errors.NewUpstreamError(
			fmt.Sprintf("backend error (%s): %s", resp.Status(), what), nil)
	}
	return nil
}

// dataEnvelope is the {"success": true, "data": ...} wrapper most backend
// resources use.
type dataEnvelope[T any] struct {
	Success bool   `json:"success"`
	Count   int    `json:"count,omitempty"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
}

// ListUsers returns all registered users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&users).
		Get("/users")
	if err := checkResponse(resp, err, "list users"); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a user by email.
func (c *Client) CreateUser(ctx context.Context, email, username string) (*models.User, error) {
	var user models.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "username": username}).
		SetResult(&user).
		Post("/users")
	if err := checkResponse(resp, err, "create user"); err != nil {
		return nil, err
	}
	return &user, nil
}

// SyncUser upserts the user record for an identity-provider subject and
// returns it. The backend guarantees one record per subject, so calling this
// on every page load is safe.
func (c *Client) SyncUser(ctx context.Context, sub, email, name string) (*models.User, error) {
	var user models.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"cognito_sub": sub, "email": email, "name": name}).
		SetResult(&user).
		Post("/users")
	if err := checkResponse(resp, err, "sync user"); err != nil {
		return nil, err
	}
	if user.UserID == 0 {
		return nil, errors.NewUpstreamError("backend returned no user id on sync", nil)
	}
	return &user, nil
}

// GetParameters returns the user's alarm thresholds, or nil when the user
// has not configured any yet.
func (c *Client) GetParameters(ctx context.Context, userID int) (*models.AlarmParameters, error) {
	var envelope dataEnvelope[[]models.AlarmParameters]
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprint(userID)).
		SetResult(&envelope).
		Get("/parameters")
	if err := checkResponse(resp, err, "get parameters"); err != nil {
		return nil, err
	}
	if len(envelope.Data) == 0 {
		return nil, nil
	}
	// The backend keeps one row per user.
	return &envelope.Data[0], nil
}

// SaveParameters upserts the user's alarm thresholds.
func (c *Client) SaveParameters(ctx context.Context, userID int, params *models.AlarmParameters) error {
	body := map[string]any{
		"userid":            userID,
		"min_temperature":   params.MinTemperature,
		"max_temperature":   params.MaxTemperature,
		"min_humidity":      params.MinHumidity,
		"max_humidity":      params.MaxHumidity,
		"min_soil_moisture": params.MinSoilMoisture,
		"max_soil_moisture": params.MaxSoilMoisture,
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/parameters")
	return checkResponse(resp, err, "save parameters")
}

// GetSensorData returns the user's sensor readings, newest first.
func (c *Client) GetSensorData(ctx context.Context, userID int) ([]models.SensorReading, error) {
	var envelope dataEnvelope[[]models.SensorReading]
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprint(userID)).
		SetResult(&envelope).
		Get("/sensor_data")
	if err := checkResponse(resp, err, "get sensor data"); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// reportsEnvelope is the reports resource's own wrapper.
type reportsEnvelope struct {
	Reports []models.Report `json:"reports"`
}

// GetReports lists the user's generated reports, newest first.
func (c *Client) GetReports(ctx context.Context, userID int) ([]models.Report, error) {
	var envelope reportsEnvelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprint(userID)).
		SetResult(&envelope).
		Get("/reports")
	if err := checkResponse(resp, err, "get reports"); err != nil {
		return nil, err
	}
	return envelope.Reports, nil
}

// RequestReport asks the backend to generate a report for the given date
// (YYYY-MM-DD).
func (c *Client) RequestReport(ctx context.Context, userID int, date string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]any{"userid": userID, "date": date}).
		Post("/reports")
	if err := checkResponse(resp, err, "request report"); err != nil {
		return err
	}
	nuts.L.Infof("[AgroAPI] Report requested for user %d on %s", userID, date)
	return nil
}

// GetDroneImages lists analyzed drone captures for the user, newest first.
// limit <= 0 falls back to the backend default.
func (c *Client) GetDroneImages(ctx context.Context, userID, limit int) ([]models.DroneImage, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("user_id", fmt.Sprint(userID))
	if limit > 0 {
		req.SetQueryParam("limit", fmt.Sprint(limit))
	}

	var envelope dataEnvelope[[]models.DroneImage]
	resp, err := req.SetResult(&envelope).Get("/images")
	if err := checkResponse(resp, err, "get drone images"); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}
