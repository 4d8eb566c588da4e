package handlers

import (
	"net/http"

	"furnace_forecast/internal/models"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errGetPrediction   = "failed to build prediction"
	errGetSnapshot     = "failed to load snapshot"
	errGetStats        = "failed to load runtime stats"
	errGetCurve        = "failed to load heat-up curve"
	errInvalidBodyPref = "invalid body: "
	errNoStats         = "no runtime stats yet"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// Request DTO for replacing the heat-up curve.
type curveRequest struct {
	Points []models.CurvePoint `json:"points" binding:"required"`
}

// CurveUpdateRequest is an exported model for Swagger docs of the putCurve payload.
type CurveUpdateRequest struct {
	// Calibration points mapping outdoor temperature (F) to heat-up rate (F/min)
	Points []models.CurvePoint `json:"points"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current furnace prediction
// @Description  Furnace status, countdowns and the 60-minute temperature projection built from the latest telemetry.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  models.PredictionResult
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/forecast/prediction [get]
// @Security     BearerAuth
func (h *Handler) getPrediction(c *gin.Context) {
	ctx := c.Request.Context()
	pred, err := h.services.Prediction.Current(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetPrediction, "forecast_prediction_failed", err)
		return
	}
	c.JSON(http.StatusOK, pred)
}

// @Summary      Latest thermostat snapshot
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  models.ThermostatSnapshot
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/forecast/snapshot [get]
// @Security     BearerAuth
func (h *Handler) getSnapshot(c *gin.Context) {
	ctx := c.Request.Context()
	snap, err := h.services.Prediction.Snapshot(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetSnapshot, "forecast_snapshot_failed", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// @Summary      Runtime statistics
// @Description  Aggregates over the trailing 24 h of interval samples: heating minutes, cycle counts, retention and the next-day projection.
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  models.RuntimeStats
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/forecast/stats [get]
// @Security     BearerAuth
func (h *Handler) getStats(c *gin.Context) {
	ctx := c.Request.Context()
	st, err := h.services.Stats.Latest(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetStats, "forecast_stats_failed", err)
		return
	}
	if st == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoStats})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      Get heat-up curve
// @Tags         forecast
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, points"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/forecast/curve [get]
// @Security     BearerAuth
func (h *Handler) getCurve(c *gin.Context) {
	ctx := c.Request.Context()
	points, err := h.services.Curve.Get(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errGetCurve, "forecast_curve_load_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":  len(points),
		"points": points,
	})
}

// @Summary      Replace heat-up curve
// @Description  Replaces the full calibration table. Points must be non-empty with non-negative rates.
// @Tags         forecast
// @Accept       json
// @Produce      json
// @Param        body  body   CurveUpdateRequest  true  "Curve payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/forecast/curve [put]
// @Security     BearerAuth
func (h *Handler) putCurve(c *gin.Context) {
	var req curveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.services.Curve.Update(ctx, req.Points); err != nil {
		// Validation failures surface as bad requests; the service keeps them typed.
		if h.log != nil {
			h.log.Errorw("forecast_curve_update_failed", "err", err, "points", len(req.Points))
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOK, "count": len(req.Points)})
}
