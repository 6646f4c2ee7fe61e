package repository

import (
	"context"
	"database/sql"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
)

// MySQLAuditLogRepository implements AuditLog persistence for MySQL using
// BINARY(16) UUID columns.
type MySQLAuditLogRepository struct {
	db *sql.DB
}

// Create inserts a new AuditLog. Nil metadata is stored as NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, auditLog *authDomain.AuditLog) error {
	querier := database.GetTx(ctx, m.db)

	metadataJSON, err := marshalMetadata(auditLog.Metadata)
	if err != nil {
		return err
	}

	id, err := auditLog.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}

	requestID, err := auditLog.RequestID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log request_id")
	}

	userID, err := auditLog.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log user_id")
	}

	query := `INSERT INTO audit_logs (id, request_id, user_id, action, metadata, signature, created_at) 
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		requestID,
		userID,
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
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	offset, limit int,
	filter authDomain.AuditLogFilter,
) ([]*authDomain.AuditLog, error) {
	querier := database.GetTx(ctx, m.db)

	query, args, err := listAuditLogsQuery(database.DriverMySQL, offset, limit, filter)
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
		var idBinary, requestIDBinary, userIDBinary []byte
		var metadataJSON []byte

		err := rows.Scan(
			&idBinary,
			&requestIDBinary,
			&userIDBinary,
			&auditLog.Action,
			&metadataJSON,
			&auditLog.Signature,
			&auditLog.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		if err := auditLog.ID.UnmarshalBinary(idBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log id")
		}
		if err := auditLog.RequestID.UnmarshalBinary(requestIDBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log request_id")
		}
		if err := auditLog.UserID.UnmarshalBinary(userIDBinary); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log user_id")
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

// NewMySQLAuditLogRepository creates a new MySQL AuditLog repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
