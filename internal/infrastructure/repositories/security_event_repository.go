package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sanatanigyan/granthalaya/internal/core/domain/security"
	"github.com/sanatanigyan/granthalaya/internal/core/ports"
	"github.com/sanatanigyan/granthalaya/internal/infrastructure/db"
)

type securityEventRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewSecurityEventRepository creates a new instance of SecurityEventRepository
func NewSecurityEventRepository(database *db.Database, logger *logrus.Logger) ports.SecurityEventRepository {
	return &securityEventRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a new security event into the database
func (r *securityEventRepository) Create(ctx context.Context, e *security.Event) error {
	// Generate ID if not provided
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	// Set timestamp if not provided
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	// Convert details to JSON if not nil
	var detailsJSON []byte
	var err error
	if e.Details != nil {
		detailsJSON, err = json.Marshal(e.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO security_events (
			id, event_type, client_id, details, ip_address, user_agent, timestamp
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err = r.db.DB.ExecContext(ctx, query,
		e.ID,
		e.EventType,
		e.ClientID,
		detailsJSON,
		e.IPAddress,
		e.UserAgent,
		e.Timestamp,
	)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"event_type": e.EventType, "client_id": e.ClientID}).WithError(err).Error("db: failed to insert security event")
		}
		return err
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"event_type": e.EventType, "client_id": e.ClientID}).Debug("db: security event inserted")
	}
	return nil
}

// List retrieves security events based on the provided filter
func (r *securityEventRepository) List(ctx context.Context, filter *security.EventFilter) ([]*security.Event, error) {
	query, args := r.buildListQuery(filter, false)
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"query": query, "args": args}).Debug("db: executing security event list query")
	}
	rows, err := r.db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"query": query}).WithError(err).Error("db: failed to execute security event list query")
		}
		return nil, err
	}
	defer rows.Close()

	var events []*security.Event
	for rows.Next() {
		e := &security.Event{}
		var detailsJSON sql.NullString

		err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.ClientID,
			&detailsJSON,
			&e.IPAddress,
			&e.UserAgent,
			&e.Timestamp,
		)
		if err != nil {
			return nil, err
		}

		// Parse details JSON if present
		if detailsJSON.Valid && detailsJSON.String != "" {
			var details interface{}
			if err := json.Unmarshal([]byte(detailsJSON.String), &details); err == nil {
				e.Details = details
			}
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: error iterating security event rows")
		}
		return nil, err
	}

	return events, nil
}

// Count returns the total number of security events matching the filter
func (r *securityEventRepository) Count(ctx context.Context, filter *security.EventFilter) (int, error) {
	query, args := r.buildListQuery(filter, true)

	var count int
	err := r.db.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"query": query}).WithError(err).Error("db: failed to execute security event count query")
		}
		return 0, err
	}
	return count, nil
}

// buildListQuery constructs the SQL query and arguments for listing/counting security events
func (r *securityEventRepository) buildListQuery(filter *security.EventFilter, isCount bool) (string, []interface{}) {
	var selectClause string
	if isCount {
		selectClause = "SELECT COUNT(*)"
	} else {
		selectClause = `SELECT
			id, event_type, client_id, details, ip_address, user_agent, timestamp`
	}

	query := selectClause + " FROM security_events"
	var conditions []string
	var args []interface{}
	argIndex := 1

	// Add WHERE conditions based on filter
	if filter != nil {
		if filter.EventType != nil {
			conditions = append(conditions, "event_type = $"+strconv.Itoa(argIndex))
			args = append(args, string(*filter.EventType))
			argIndex++
		}

		if filter.ClientID != nil {
			conditions = append(conditions, "client_id = $"+strconv.Itoa(argIndex))
			args = append(args, *filter.ClientID)
			argIndex++
		}

		if filter.StartTime != nil {
			conditions = append(conditions, "timestamp >= $"+strconv.Itoa(argIndex))
			args = append(args, *filter.StartTime)
			argIndex++
		}

		if filter.EndTime != nil {
			conditions = append(conditions, "timestamp <= $"+strconv.Itoa(argIndex))
			args = append(args, *filter.EndTime)
			argIndex++
		}
	}

	// Add WHERE clause if conditions exist
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Add ORDER BY and LIMIT/OFFSET for non-count queries
	if !isCount {
		query += " ORDER BY timestamp DESC"

		if filter != nil {
			if filter.Limit > 0 {
				query += " LIMIT $" + strconv.Itoa(argIndex)
				args = append(args, filter.Limit)
				argIndex++
			}

			if filter.Offset > 0 {
				query += " OFFSET $" + strconv.Itoa(argIndex)
				args = append(args, filter.Offset)
				argIndex++
			}
		}
	}

	return query, args
}
