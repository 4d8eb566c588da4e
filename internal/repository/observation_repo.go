package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"furnace_forecast/internal/models"

	"github.com/google/uuid"
)

type ObservationSQLite struct {
	db *sql.DB
}

func NewObservationSQLite(db *sql.DB) *ObservationSQLite { return &ObservationSQLite{db: db} }

var _ ObservationRepo = (*ObservationSQLite)(nil)

// sqliteTimestampLayout matches how TIMESTAMP columns are stored.
const sqliteTimestampLayout = "2006-01-02 15:04:05"

// Append inserts a new observation, filling ObservationID and ObservedAt
// when the caller left them empty.
func (r *ObservationSQLite) Append(ctx context.Context, o models.Observation) error {
	if o.ObservationID == "" {
		o.ObservationID = uuid.NewString()
	}
	if o.ObservedAt.IsZero() {
		o.ObservedAt = time.Now().UTC()
	} else {
		o.ObservedAt = o.ObservedAt.UTC()
	}

	var metaPtr *string
	if o.Metadata != nil {
		if b, err := json.Marshal(o.Metadata); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO observations (id, observed_at, type, message, meta)
		VALUES (?, ?, ?, ?, ?)
	`,
		o.ObservationID,
		o.ObservedAt.Format(sqliteTimestampLayout),
		strings.ToUpper(strings.TrimSpace(o.Type)),
		o.Description,
		metaPtr,
	)
	return err
}

// List returns observations filtered by [from, to] (inclusive) and/or type,
// ordered ascending.
func (r *ObservationSQLite) List(ctx context.Context, from, to time.Time, typ string) ([]models.Observation, error) {
	var (
		conds []string
		args  []any
	)

	// bounds use the insert layout so the text comparison stays consistent
	if !from.IsZero() {
		conds = append(conds, "observed_at >= ?")
		args = append(args, from.UTC().Format(sqliteTimestampLayout))
	}
	if !to.IsZero() {
		conds = append(conds, "observed_at <= ?")
		args = append(args, to.UTC().Format(sqliteTimestampLayout))
	}
	if typ = strings.ToUpper(strings.TrimSpace(typ)); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}

	q := `SELECT id, observed_at, type, message, meta FROM observations`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY observed_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Observation, 0, 64)
	for rows.Next() {
		var o models.Observation
		var metaStr sql.NullString
		if err := rows.Scan(&o.ObservationID, &o.ObservedAt, &o.Type, &o.Description, &metaStr); err != nil {
			return nil, err
		}
		o.ObservedAt = o.ObservedAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var v any
			if err := json.Unmarshal([]byte(metaStr.String), &v); err == nil {
				o.Metadata = v
			} else {
				o.Metadata = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
