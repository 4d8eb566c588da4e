package repository_test

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"furnace_forecast/internal/models"
	"furnace_forecast/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestObservationSQLite_Append_FillsIDAndTimestamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewObservationSQLite(db)

	isNonEmptyString := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && s != ""
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO observations")).
		WithArgs(
			isNonEmptyString, // generated uuid
			isNonEmptyString, // formatted timestamp
			"POLL",
			"telemetry fetched",
			nil,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), models.Observation{
		Type:        "poll", // normalized to upper case
		Description: "telemetry fetched",
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestObservationSQLite_Append_MarshalsMetadata(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewObservationSQLite(db)

	isJSONObject := sqlmockArgumentFunc(func(v driver.Value) bool {
		s, ok := v.(string)
		return ok && len(s) > 2 && s[0] == '{'
	})
	anyString := sqlmockArgumentFunc(func(v driver.Value) bool {
		_, ok := v.(string)
		return ok
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO observations")).
		WithArgs("obs-1", anyString, "POLL_ERROR", "vendor unreachable", isJSONObject).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Append(context.Background(), models.Observation{
		ObservationID: "obs-1",
		ObservedAt:    time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC),
		Type:          "POLL_ERROR",
		Description:   "vendor unreachable",
		Metadata:      map[string]any{"attempt": 3},
	})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestObservationSQLite_List_AppliesFilters(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewObservationSQLite(db)

	from := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 13, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "observed_at", "type", "message", "meta"}).
		AddRow("obs-1", from.Add(2*time.Hour), "POLL", "telemetry fetched", nil).
		AddRow("obs-2", from.Add(3*time.Hour), "POLL", "telemetry fetched", `{"cycles":2}`)

	// range bounds are bound as text in the same layout the insert uses
	mock.ExpectQuery(regexp.QuoteMeta("FROM observations")).
		WithArgs("2026-01-12 00:00:00", "2026-01-13 00:00:00", "POLL").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), from, to, "poll")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d rows, want 2", len(got))
	}
	if got[1].Metadata == nil {
		t.Fatalf("expected metadata decoded for second row")
	}
}
