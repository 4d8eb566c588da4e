package handlers

import (
	"context"
	"net/http"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockPrediction struct {
	pred    models.PredictionResult
	predErr error
	snap    models.ThermostatSnapshot
	snapErr error

	currentCalls int
}

func (m *mockPrediction) Current(ctx context.Context) (models.PredictionResult, error) {
	m.currentCalls++
	return m.pred, m.predErr
}
func (m *mockPrediction) Snapshot(ctx context.Context) (models.ThermostatSnapshot, error) {
	return m.snap, m.snapErr
}

type mockCurve struct {
	points    []models.CurvePoint
	getErr    error
	updateErr error

	lastUpdate []models.CurvePoint
}

func (m *mockCurve) Get(ctx context.Context) ([]models.CurvePoint, error) {
	return m.points, m.getErr
}
func (m *mockCurve) Update(ctx context.Context, points []models.CurvePoint) error {
	m.lastUpdate = points
	return m.updateErr
}

type mockStats struct {
	latest    *models.RuntimeStats
	latestErr error
}

func (m *mockStats) Refresh(ctx context.Context, tele models.Telemetry) (models.RuntimeStats, error) {
	return models.RuntimeStats{}, nil
}
func (m *mockStats) Latest(ctx context.Context) (*models.RuntimeStats, error) {
	return m.latest, m.latestErr
}

type mockObservationLog struct {
	resp     []models.Observation
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockObservationLog) List(ctx context.Context, f service.ObservationFilter) ([]models.Observation, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
