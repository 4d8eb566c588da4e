package service

import "time"

// ObservationFilter narrows the poll log by time range and type.
type ObservationFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "POLL", "POLL_ERROR", "CURVE_UPDATE"
}
