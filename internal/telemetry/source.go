package telemetry

import (
	"context"

	"furnace_forecast/internal/models"
)

// Source supplies one full telemetry fetch: live snapshot, the rolling 24 h
// interval series, and the weather outlook. The prediction core never talks
// to a Source directly; it is handed already-fetched data.
type Source interface {
	Fetch(ctx context.Context) (models.Telemetry, error)
}
