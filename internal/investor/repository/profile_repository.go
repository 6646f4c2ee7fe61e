// Package repository persists investor profiles and their type-specific detail
// for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/investor/domain"
)

var profileColumns = []string{
	"id",
	"user_id",
	"investor_type",
	"is_accredited",
	"accreditation_type",
	"completion_percentage",
	"is_active",
	"created_at",
	"updated_at",
}

// SQLProfileRepository implements ProfileRepository for both supported
// drivers. On MySQL UUIDs are stored as BINARY(16).
type SQLProfileRepository struct {
	db     *sql.DB
	driver string
}

// Create inserts the profile row followed by its detail rows. Callers run it
// inside a transaction so a failure leaves nothing behind.
func (r *SQLProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	id, err := r.idArg(profile.ID)
	if err != nil {
		return err
	}
	userID, err := r.idArg(profile.UserID)
	if err != nil {
		return err
	}

	insert := r.builder().
		Insert("investor_profiles").
		Columns(profileColumns...).
		Values(
			id,
			userID,
			string(profile.Type),
			profile.IsAccredited,
			accreditationTypeValue(profile.AccreditationType),
			profile.CompletionPercentage,
			profile.IsActive,
			profile.CreatedAt,
			profile.UpdatedAt,
		)

	if err := r.exec(ctx, insert, "create investor profile"); err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrProfileAlreadyExists
		}
		return err
	}

	return r.createDetail(ctx, id, profile.Detail)
}

// GetByID returns the profile with its detail or ErrProfileNotFound.
func (r *SQLProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	arg, err := r.idArg(id)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, sq.Eq{"id": arg})
}

// GetByUserID returns the user's profile with its detail or ErrProfileNotFound.
func (r *SQLProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	arg, err := r.idArg(userID)
	if err != nil {
		return nil, err
	}
	return r.get(ctx, sq.Eq{"user_id": arg})
}

// UpdateAccreditation writes the accreditation state and the recomputed completion.
func (r *SQLProfileRepository) UpdateAccreditation(ctx context.Context, profile *domain.Profile) error {
	id, err := r.idArg(profile.ID)
	if err != nil {
		return err
	}

	update := r.builder().
		Update("investor_profiles").
		Set("is_accredited", profile.IsAccredited).
		Set("accreditation_type", accreditationTypeValue(profile.AccreditationType)).
		Set("completion_percentage", profile.CompletionPercentage).
		Set("updated_at", profile.UpdatedAt).
		Where(sq.Eq{"id": id})

	return r.execAffectingOne(ctx, update, "update investor accreditation")
}

// Delete removes the profile. Detail and child rows go with it through ON DELETE CASCADE.
func (r *SQLProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	arg, err := r.idArg(id)
	if err != nil {
		return err
	}

	del := r.builder().Delete("investor_profiles").Where(sq.Eq{"id": arg})
	return r.execAffectingOne(ctx, del, "delete investor profile")
}

func (r *SQLProfileRepository) get(ctx context.Context, where sq.Eq) (*domain.Profile, error) {
	query, args, err := r.builder().
		Select(profileColumns...).
		From("investor_profiles").
		Where(where).
		ToSql()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build investor profile query")
	}

	var profile domain.Profile
	var accreditationType sql.NullString
	err = database.GetTx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Type,
		&profile.IsAccredited,
		&accreditationType,
		&profile.CompletionPercentage,
		&profile.IsActive,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get investor profile")
	}

	if accreditationType.Valid {
		t := domain.AccreditationType(accreditationType.String)
		profile.AccreditationType = &t
	}

	profileID, err := r.idArg(profile.ID)
	if err != nil {
		return nil, err
	}

	// Only the detail table named by the type tag is read.
	if profile.Detail, err = r.loadDetail(ctx, profileID, profile.Type); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *SQLProfileRepository) createDetail(ctx context.Context, profileID any, detail domain.Detail) error {
	switch d := detail.(type) {
	case domain.IndividualDetail:
		insert := r.builder().
			Insert("individual_details").
			Columns(individualColumns...).
			Values(
				profileID,
				d.FirstName,
				d.LastName,
				d.DateOfBirth,
				d.TaxID.Envelope,
				d.TaxID.Masked,
				d.Address.Line1,
				d.Address.Line2,
				d.Address.City,
				d.Address.State,
				d.Address.PostalCode,
				d.Address.Country,
			)
		return r.exec(ctx, insert, "create individual detail")

	case domain.JointDetail:
		insert := r.builder().
			Insert("joint_details").
			Columns("profile_id", "joint_type").
			Values(profileID, d.JointType)
		if err := r.exec(ctx, insert, "create joint detail"); err != nil {
			return err
		}
		if len(d.Holders) == 0 {
			return nil
		}
		holders := r.builder().Insert("joint_holders").Columns(jointHolderColumns...)
		for i, h := range d.Holders {
			holders = holders.Values(profileID, i, h.FirstName, h.LastName, h.Email, h.TaxID.Envelope, h.TaxID.Masked)
		}
		return r.exec(ctx, holders, "create joint holders")

	case domain.IRADetail:
		insert := r.builder().
			Insert("ira_details").
			Columns(iraColumns...).
			Values(
				profileID,
				d.Custodian,
				d.AccountNumber,
				d.IRAType,
				d.OwnerName,
				d.TaxID.Envelope,
				d.TaxID.Masked,
			)
		return r.exec(ctx, insert, "create ira detail")

	case domain.TrustDetail:
		insert := r.builder().
			Insert("trust_details").
			Columns(trustColumns...).
			Values(profileID, d.TrustName, d.TrustType, d.FormationDate, d.TaxID.Envelope, d.TaxID.Masked)
		if err := r.exec(ctx, insert, "create trust detail"); err != nil {
			return err
		}
		if len(d.Grantors) == 0 {
			return nil
		}
		grantors := r.builder().Insert("trust_grantors").Columns(trustGrantorColumns...)
		for i, g := range d.Grantors {
			grantors = grantors.Values(profileID, i, g.Name, g.Email)
		}
		return r.exec(ctx, grantors, "create trust grantors")

	case domain.EntityDetail:
		insert := r.builder().
			Insert("entity_details").
			Columns(entityColumns...).
			Values(profileID, d.LegalName, d.EntityType, d.StateOfFormation, d.TaxID.Envelope, d.TaxID.Masked)
		if err := r.exec(ctx, insert, "create entity detail"); err != nil {
			return err
		}
		if len(d.EquityOwners) == 0 {
			return nil
		}
		owners := r.builder().Insert("equity_owners").Columns(equityOwnerColumns...)
		for i, o := range d.EquityOwners {
			owners = owners.Values(profileID, i, o.Name, o.Title, o.OwnershipPercent)
		}
		return r.exec(ctx, owners, "create equity owners")
	}

	return domain.ErrDetailRequired
}

func (r *SQLProfileRepository) exec(ctx context.Context, stmt sq.Sqlizer, action string) error {
	_, err := r.execResult(ctx, stmt, action)
	return err
}

func (r *SQLProfileRepository) execAffectingOne(ctx context.Context, stmt sq.Sqlizer, action string) error {
	result, err := r.execResult(ctx, stmt, action)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "failed to %s", action)
	}
	if rows == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *SQLProfileRepository) execResult(ctx context.Context, stmt sq.Sqlizer, action string) (sql.Result, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to build %s query", action)
	}

	result, err := database.GetTx(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to %s", action)
	}
	return result, nil
}

func (r *SQLProfileRepository) builder() sq.StatementBuilderType {
	return database.StatementBuilder(r.driver)
}

// idArg returns the query argument for a UUID in the driver's storage format.
func (r *SQLProfileRepository) idArg(id uuid.UUID) (any, error) {
	if r.driver != database.DriverMySQL {
		return id, nil
	}
	b, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal uuid")
	}
	return b, nil
}

func accreditationTypeValue(t *domain.AccreditationType) any {
	if t == nil {
		return nil
	}
	return string(*t)
}

// NewSQLProfileRepository creates a profile repository for the given driver.
func NewSQLProfileRepository(db *sql.DB, driver string) *SQLProfileRepository {
	return &SQLProfileRepository{db: db, driver: driver}
}

// nullTime keeps optional dates nil when the column is NULL.
func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
