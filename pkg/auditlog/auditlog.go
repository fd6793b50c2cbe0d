package auditlog

import (
	"encoding/json"
	"fmt"

	"restaurant/internal/repository"
	"restaurant/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"go.uber.org/zap"
)

type Auditlog struct {
	r      *repository.Repository
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func NewAuditLog(r *repository.Repository, logger *zap.Logger) *Auditlog {
	return &Auditlog{r: r, logger: logger}
}

// Log appends an audit entry for a resource. Failures are logged and
// dropped; the audit trail is best effort and never fails the operation
// it describes.
func (a *Auditlog) Log(action string, data interface{}, item Auditable) {
	if a == nil {
		return
	}

	entry := item.CreateLogView()
	entry.Action = action

	if err := a.persist(entry, data); err != nil {
		a.logger.Error("unable to create audit log entry",
			zap.Int("resource_id", entry.ResourceID),
			zap.String("resource_type", entry.ResourceType),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (a *Auditlog) persist(entry models.AuditLog, data interface{}) error {
	dataJSON, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	query := a.r.GoquDBWrapper.Insert("audit_logs").
		Rows(goqu.Record{
			"resource_id":   entry.ResourceID,
			"resource_type": entry.ResourceType,
			"action":        entry.Action,
			"data":          dataJSON,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// GetResourceLog returns the audit trail for a single resource.
func (a *Auditlog) GetResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	query := a.r.GoquDBWrapper.
		From("audit_logs").
		Select("id", "resource_id", "resource_type", "action", "data", "created_at").
		Where(goqu.Ex{
			"resource_id":   id,
			"resource_type": resourceType,
		}).
		Order(goqu.I("created_at").Asc())

	var entries []models.AuditLog
	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	for i := range entries {
		entries[i].LoadFromDB()
	}

	return entries, nil
}
