package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type auditRepository struct {
	db *DB
}

func NewAuditRepository(db *DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Record(ctx context.Context, companyID uuid.UUID, action, details string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO audit_log (id, company_id, action, details, created_at)
        VALUES ($1, $2, $3, $4, NOW())`,
		uuid.New(), companyID, action, details)
	if err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}
	return nil
}
