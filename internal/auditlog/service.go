package auditlog

import (
	"context"
	"encoding/json"
	"log"
)

// Store is the slice of the data store the audit service needs.
type Store interface {
	CreateAuditLog(ctx context.Context, entry AuditLog) error
	ListAuditLogs(ctx context.Context, userID string, limit int) ([]AuditLog, error)
}

type Service interface {
	LogAction(ctx context.Context, userID, eventID, action string, details map[string]interface{}, ip, status string) error
	GetAuditLogs(ctx context.Context, userID string, limit int) ([]AuditLog, error)
}

type service struct {
	store Store
}

func NewService(store Store) Service {
	return &service{store: store}
}

// LogAction records one audit entry. Audit failures are logged and swallowed
// so they never fail the mutation they describe.
func (s *service) LogAction(ctx context.Context, userID, eventID, action string, details map[string]interface{}, ip, status string) error {
	if details == nil {
		details = make(map[string]interface{})
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	entry := AuditLog{
		UserID:    userID,
		EventID:   eventID,
		Action:    action,
		Details:   string(detailsJSON),
		IPAddress: ip,
		Status:    status,
	}

	if err := s.store.CreateAuditLog(ctx, entry); err != nil {
		log.Printf("⚠️ audit log write failed (%s): %v", action, err)
		return err
	}
	return nil
}

func (s *service) GetAuditLogs(ctx context.Context, userID string, limit int) ([]AuditLog, error) {
	return s.store.ListAuditLogs(ctx, userID, limit)
}
