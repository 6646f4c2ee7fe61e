package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"

	"github.com/allisson/onboarding/internal/database"
	apperrors "github.com/allisson/onboarding/internal/errors"
	"github.com/allisson/onboarding/internal/investor/domain"
)

var (
	individualColumns = []string{
		"profile_id",
		"first_name",
		"last_name",
		"date_of_birth",
		"tax_id_envelope",
		"tax_id_masked",
		"address_line1",
		"address_line2",
		"city",
		"state",
		"postal_code",
		"country",
	}
	jointHolderColumns = []string{
		"profile_id", "position", "first_name", "last_name", "email", "tax_id_envelope", "tax_id_masked",
	}
	iraColumns = []string{
		"profile_id", "custodian", "account_number", "ira_type", "owner_name", "tax_id_envelope", "tax_id_masked",
	}
	trustColumns = []string{
		"profile_id", "trust_name", "trust_type", "formation_date", "tax_id_envelope", "tax_id_masked",
	}
	trustGrantorColumns = []string{"profile_id", "position", "name", "email"}
	entityColumns       = []string{
		"profile_id", "legal_name", "entity_type", "state_of_formation", "tax_id_envelope", "tax_id_masked",
	}
	equityOwnerColumns = []string{"profile_id", "position", "name", "title", "ownership_percent"}
)

func (r *SQLProfileRepository) loadDetail(
	ctx context.Context,
	profileID any,
	investorType domain.InvestorType,
) (domain.Detail, error) {
	switch investorType {
	case domain.InvestorTypeIndividual:
		return r.loadIndividual(ctx, profileID)
	case domain.InvestorTypeJoint:
		return r.loadJoint(ctx, profileID)
	case domain.InvestorTypeIRA:
		return r.loadIRA(ctx, profileID)
	case domain.InvestorTypeTrust:
		return r.loadTrust(ctx, profileID)
	case domain.InvestorTypeEntity:
		return r.loadEntity(ctx, profileID)
	}
	return nil, domain.ErrInvalidInvestorType
}

func (r *SQLProfileRepository) loadIndividual(ctx context.Context, profileID any) (domain.Detail, error) {
	var d domain.IndividualDetail
	var dateOfBirth sql.NullTime
	err := r.queryRow(ctx, "individual_details", individualColumns, profileID,
		new(any),
		&d.FirstName,
		&d.LastName,
		&dateOfBirth,
		&d.TaxID.Envelope,
		&d.TaxID.Masked,
		&d.Address.Line1,
		&d.Address.Line2,
		&d.Address.City,
		&d.Address.State,
		&d.Address.PostalCode,
		&d.Address.Country,
	)
	if err != nil {
		return nil, err
	}
	d.DateOfBirth = nullTime(dateOfBirth)
	return d, nil
}

func (r *SQLProfileRepository) loadJoint(ctx context.Context, profileID any) (domain.Detail, error) {
	var d domain.JointDetail
	err := r.queryRow(ctx, "joint_details", []string{"profile_id", "joint_type"}, profileID, new(any), &d.JointType)
	if err != nil {
		return nil, err
	}

	err = r.queryRows(ctx, "joint_holders", jointHolderColumns, profileID, func(rows *sql.Rows) error {
		var h domain.JointHolder
		var position int
		if err := rows.Scan(
			new(any),
			&position,
			&h.FirstName,
			&h.LastName,
			&h.Email,
			&h.TaxID.Envelope,
			&h.TaxID.Masked,
		); err != nil {
			return err
		}
		d.Holders = append(d.Holders, h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLProfileRepository) loadIRA(ctx context.Context, profileID any) (domain.Detail, error) {
	var d domain.IRADetail
	err := r.queryRow(ctx, "ira_details", iraColumns, profileID,
		new(any),
		&d.Custodian,
		&d.AccountNumber,
		&d.IRAType,
		&d.OwnerName,
		&d.TaxID.Envelope,
		&d.TaxID.Masked,
	)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLProfileRepository) loadTrust(ctx context.Context, profileID any) (domain.Detail, error) {
	var d domain.TrustDetail
	var formationDate sql.NullTime
	err := r.queryRow(ctx, "trust_details", trustColumns, profileID,
		new(any),
		&d.TrustName,
		&d.TrustType,
		&formationDate,
		&d.TaxID.Envelope,
		&d.TaxID.Masked,
	)
	if err != nil {
		return nil, err
	}
	d.FormationDate = nullTime(formationDate)

	err = r.queryRows(ctx, "trust_grantors", trustGrantorColumns, profileID, func(rows *sql.Rows) error {
		var g domain.TrustGrantor
		var position int
		if err := rows.Scan(new(any), &position, &g.Name, &g.Email); err != nil {
			return err
		}
		d.Grantors = append(d.Grantors, g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *SQLProfileRepository) loadEntity(ctx context.Context, profileID any) (domain.Detail, error) {
	var d domain.EntityDetail
	err := r.queryRow(ctx, "entity_details", entityColumns, profileID,
		new(any),
		&d.LegalName,
		&d.EntityType,
		&d.StateOfFormation,
		&d.TaxID.Envelope,
		&d.TaxID.Masked,
	)
	if err != nil {
		return nil, err
	}

	err = r.queryRows(ctx, "equity_owners", equityOwnerColumns, profileID, func(rows *sql.Rows) error {
		var o domain.EquityOwner
		var position int
		if err := rows.Scan(new(any), &position, &o.Name, &o.Title, &o.OwnershipPercent); err != nil {
			return err
		}
		d.EquityOwners = append(d.EquityOwners, o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

// queryRow scans the single detail row of a profile. A missing row means the
// profile was never fully written and is reported as not found.
func (r *SQLProfileRepository) queryRow(
	ctx context.Context,
	table string,
	columns []string,
	profileID any,
	dest ...any,
) error {
	query, args, err := r.builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"profile_id": profileID}).
		ToSql()
	if err != nil {
		return apperrors.Wrapf(err, "failed to build %s query", table)
	}

	err = database.GetTx(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(dest...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProfileNotFound
		}
		return apperrors.Wrapf(err, "failed to get %s", table)
	}
	return nil
}

// queryRows iterates the child rows of a profile in position order.
func (r *SQLProfileRepository) queryRows(
	ctx context.Context,
	table string,
	columns []string,
	profileID any,
	scan func(rows *sql.Rows) error,
) error {
	query, args, err := r.builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"profile_id": profileID}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return apperrors.Wrapf(err, "failed to build %s query", table)
	}

	rows, err := database.GetTx(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrapf(err, "failed to list %s", table)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return apperrors.Wrapf(err, "failed to scan %s", table)
		}
	}

	if err := rows.Err(); err != nil {
		return apperrors.Wrapf(err, "failed to iterate %s", table)
	}
	return nil
}
