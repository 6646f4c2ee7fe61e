package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/onboarding/internal/auth/domain"
	authUseCase "github.com/allisson/onboarding/internal/auth/usecase"
)

// VerifyAuditLogsOptions selects the audit entries to verify. UserID and
// Action are optional; the dates are required.
type VerifyAuditLogsOptions struct {
	StartDate string
	EndDate   string
	UserID    string
	Action    string
	Format    string
}

// RunVerifyAuditLogs recomputes the HMAC of every matching audit entry with the
// audit subkey of the PII encryption key. A tampered entry makes the command
// fail so it can gate compliance exports.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase authUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	opts VerifyAuditLogsOptions,
) error {
	filter, err := opts.filter()
	if err != nil {
		return err
	}

	attrs := []any{
		slog.Time("start_date", *filter.CreatedAtFrom),
		slog.Time("end_date", *filter.CreatedAtTo),
	}
	if filter.UserID != nil {
		attrs = append(attrs, slog.String("user_id", filter.UserID.String()))
	}
	if filter.Action != "" {
		attrs = append(attrs, slog.String("action", filter.Action))
	}
	logger.Info("verifying audit logs", attrs...)

	report, err := auditLogUseCase.VerifyBatch(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if opts.Format == "json" {
		if err := outputVerifyJSON(writer, report); err != nil {
			return fmt.Errorf("failed to output JSON: %w", err)
		}
	} else {
		outputVerifyText(writer, report, filter)
	}

	logger.Info("verification completed",
		slog.Int64("total_checked", report.TotalChecked),
		slog.Int64("valid", report.ValidCount),
		slog.Int64("invalid", report.InvalidCount),
		slog.Int64("unsigned", report.UnsignedCount),
	)

	if report.InvalidCount > 0 {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.InvalidCount)
	}

	return nil
}

func (o VerifyAuditLogsOptions) filter() (authDomain.AuditLogFilter, error) {
	var filter authDomain.AuditLogFilter

	start, err := parseDate(o.StartDate)
	if err != nil {
		return filter, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := parseDate(o.EndDate)
	if err != nil {
		return filter, fmt.Errorf("invalid end date: %w", err)
	}
	if !end.After(start) {
		return filter, fmt.Errorf("end date must be after start date")
	}
	filter.CreatedAtFrom, filter.CreatedAtTo = &start, &end

	if o.UserID != "" {
		userID, err := uuid.Parse(o.UserID)
		if err != nil {
			return filter, fmt.Errorf("invalid user id: %w", err)
		}
		filter.UserID = &userID
	}

	if o.Action != "" {
		if !authDomain.IsKnownAction(o.Action) {
			return filter, fmt.Errorf("unknown audit action %q", o.Action)
		}
		filter.Action = o.Action
	}

	return filter, nil
}

// parseDate accepts "YYYY-MM-DD HH:MM:SS" or "YYYY-MM-DD" (start of day), in UTC.
func parseDate(dateStr string) (time.Time, error) {
	for _, layout := range []string{time.DateTime, time.DateOnly} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid date format (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS): %s",
		dateStr,
	)
}

func outputVerifyText(writer io.Writer, report *authUseCase.VerificationReport, filter authDomain.AuditLogFilter) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer,
		"Time Range: %s to %s\n",
		filter.CreatedAtFrom.Format(time.DateTime),
		filter.CreatedAtTo.Format(time.DateTime),
	)
	if filter.UserID != nil {
		_, _ = fmt.Fprintf(writer, "User:       %s\n", filter.UserID)
	}
	if filter.Action != "" {
		_, _ = fmt.Fprintf(writer, "Action:     %s\n", filter.Action)
	}
	_, _ = fmt.Fprintln(writer)

	_, _ = fmt.Fprintf(writer, "Total Checked:  %d\n", report.TotalChecked)
	_, _ = fmt.Fprintf(writer, "Signed:         %d\n", report.SignedCount)
	_, _ = fmt.Fprintf(writer, "Unsigned:       %d (key unavailable at write time)\n", report.UnsignedCount)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", report.ValidCount)
	_, _ = fmt.Fprintf(writer, "Invalid:        %d\n\n", report.InvalidCount)

	if len(report.ByAction) > 0 {
		_, _ = fmt.Fprintf(writer, "By Action:\n")
		actions := make([]string, 0, len(report.ByAction))
		for action := range report.ByAction {
			actions = append(actions, action)
		}
		slices.Sort(actions)
		for _, action := range actions {
			_, _ = fmt.Fprintf(writer, "  %-32s %d\n", action, report.ByAction[action])
		}
		_, _ = fmt.Fprintln(writer)
	}

	switch {
	case report.InvalidCount > 0:
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) failed integrity check!\n\n", report.InvalidCount)
		_, _ = fmt.Fprintf(writer, "Invalid Log IDs:\n")
		for _, id := range report.InvalidLogs {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.TotalChecked == 0:
		_, _ = fmt.Fprintf(writer, "Status: No logs found in specified time range\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}

func outputVerifyJSON(writer io.Writer, report *authUseCase.VerificationReport) error {
	byAction := report.ByAction
	if byAction == nil {
		byAction = map[string]int64{}
	}
	return writeJSON(writer, map[string]any{
		"total_checked":  report.TotalChecked,
		"signed_count":   report.SignedCount,
		"unsigned_count": report.UnsignedCount,
		"valid_count":    report.ValidCount,
		"invalid_count":  report.InvalidCount,
		"invalid_logs":   report.InvalidLogs,
		"by_action":      byAction,
		"passed":         report.InvalidCount == 0,
	})
}
