package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	sq "github.com/Masterminds/squirrel"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

var auditLogColumns = []string{"id", "request_id", "user_id", "action", "metadata", "signature", "created_at"}

// PostgreSQLAuditLogRepository implements AuditLog persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new AuditLog. Nil metadata is stored as NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	querier := database.GetTx(ctx, p.db)

	metadataJSON, err := marshalMetadata(auditLog.Metadata)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_logs (id, request_id, user_id, action, metadata, signature, created_at) 
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		auditLog.ID,
		auditLog.RequestID,
		auditLog.UserID,
		auditLog.Action,
		metadataJSON,
		auditLog.Signature,
		auditLog.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List returns audit logs matching filter, newest first.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	querier := database.GetTx(ctx, p.db)

	query, args, err := listAuditLogsQuery(database.DriverPostgres, offset, limit, filter)
	if err != nil {
		return nil, err
	}

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	auditLogs := make([]*authDomain.AuditLog, 0)
	for rows.Next() {
		var auditLog authDomain.AuditLog
		var metadataJSON []byte

		err := rows.Scan(
			&auditLog.ID,
			&auditLog.RequestID,
			&auditLog.UserID,
			&auditLog.Action,
			&metadataJSON,
			&auditLog.Signature,
			&auditLog.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		if auditLog.Metadata, err = unmarshalMetadata(metadataJSON); err != nil {
			return nil, err
		}

		auditLogs = append(auditLogs, &auditLog)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return auditLogs, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL AuditLog repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}

func listAuditLogsQuery(driver string, offset, limit int, filter authDomain.AuditLogFilter) (string, []any, error) {
	builder := database.StatementBuilder(driver).
		Select(auditLogColumns...).
		From("audit_logs").
		OrderBy("created_at DESC").
		Limit(uint64(max(limit, 0))).  //nolint:gosec // clamped to non-negative
		Offset(uint64(max(offset, 0))) //nolint:gosec // clamped to non-negative

	if filter.CreatedAtFrom != nil {
		builder = builder.Where(sq.GtOrEq{"created_at": *filter.CreatedAtFrom})
	}
	if filter.CreatedAtTo != nil {
		builder = builder.Where(sq.LtOrEq{"created_at": *filter.CreatedAtTo})
	}
	if filter.UserID != nil {
		// MySQL stores ids as BINARY(16).
		var userID any = *filter.UserID
		if driver == database.DriverMySQL {
			userID = filter.UserID[:]
		}
		builder = builder.Where(sq.Eq{"user_id": userID})
	}
	if filter.Action != "" {
		builder = builder.Where(sq.Eq{"action": filter.Action})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to build audit log query")
	}
	return query, args, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit log metadata")
	}
	return metadataJSON, nil
}

func unmarshalMetadata(metadataJSON []byte) (map[string]any, error) {
	if metadataJSON == nil {
		return nil, nil
	}
	var metadata map[string]any
	if err := json.Unmarshal(metadataJSON, &metadata); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal audit log metadata")
	}
	return metadata, nil
}
