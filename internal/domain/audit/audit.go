package audit

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgconn"

	"timetrack/internal/identity"
)

// DB is the subset of *pgxpool.Pool the recorder needs.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type Service struct {
	DB DB
}

func New(db DB) *Service {
	return &Service{DB: db}
}

// Record writes one audit event. details may be nil.
func (s *Service) Record(ctx context.Context, actor identity.Identity, action, entityType, entityID, requestID, ip string, details any) error {
	var detailsJSON []byte
	if details != nil {
		payload, err := json.Marshal(details)
		if err != nil {
			return err
		}
		detailsJSON = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (actor_id, actor_name, action, entity_type, entity_id, request_id, ip, details_json)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, actor.UserID, actor.DisplayName, action, entityType, entityID, requestID, ip, detailsJSON)
	return err
}
