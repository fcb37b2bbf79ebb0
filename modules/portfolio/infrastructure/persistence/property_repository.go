package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/modules/portfolio/infrastructure/persistence/models"
	"github.com/immodash/immodash/pkg/composables"
)

var (
	ErrPropertyNotFound = fmt.Errorf("property not found")
)

const (
	propertyFindQuery = `SELECT id, type, name, sort_index, created_at, updated_at FROM properties`
	// Deterministic order: sort index, then newest first, then id so
	// equal rows never flip between loads.
	propertyOrderClause = ` ORDER BY sort_index ASC, created_at DESC, id ASC`

	energyReadingsQuery = `SELECT property_id, month, kilowatt_hours FROM energy_readings WHERE property_id = $1 ORDER BY month ASC`
	rentalPaymentsQuery = `SELECT property_id, period, amount_cents, currency FROM rental_payments WHERE property_id = $1 ORDER BY period ASC`
)

type PropertyRepository struct{}

func NewPropertyRepository() property.Repository {
	return &PropertyRepository{}
}

func (r *PropertyRepository) GetAll(ctx context.Context) ([]*property.Property, error) {
	return r.queryProperties(ctx, propertyFindQuery+propertyOrderClause)
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	query := propertyFindQuery + " WHERE id = $1"
	properties, err := r.queryProperties(ctx, query, id.String())
	if err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, ErrPropertyNotFound
	}
	return properties[0], nil
}

func (r *PropertyRepository) Create(ctx context.Context, p *property.Property) (*property.Property, error) {
	query := `
		INSERT INTO properties (id, type, name, sort_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		p.ID().String(),
		string(p.Type()),
		p.Name(),
		p.SortIndex(),
		p.CreatedAt(),
		p.UpdatedAt(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PropertyRepository) Update(ctx context.Context, p *property.Property) (*property.Property, error) {
	query := `
		UPDATE properties
		SET type = $1, name = $2, sort_index = $3, updated_at = $4
		WHERE id = $5
		RETURNING id
	`
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var idStr string
	if err := tx.QueryRow(
		ctx,
		query,
		string(p.Type()),
		p.Name(),
		p.SortIndex(),
		p.UpdatedAt(),
		p.ID().String(),
	).Scan(&idStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *PropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id.String())
	return err
}

func (r *PropertyRepository) EnergyReadings(ctx context.Context, propertyID uuid.UUID) ([]property.EnergyReading, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, energyReadingsQuery, propertyID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var readings []property.EnergyReading
	for rows.Next() {
		var m models.EnergyReading
		if err := rows.Scan(&m.PropertyID, &m.Month, &m.KilowattHours); err != nil {
			return nil, errors.Wrap(err, "failed to scan energy reading row")
		}
		readings = append(readings, toDomainEnergyReading(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return readings, nil
}

func (r *PropertyRepository) RentalPayments(ctx context.Context, propertyID uuid.UUID) ([]property.RentalPayment, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, rentalPaymentsQuery, propertyID.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var payments []property.RentalPayment
	for rows.Next() {
		var m models.RentalPayment
		if err := rows.Scan(&m.PropertyID, &m.Period, &m.AmountCents, &m.Currency); err != nil {
			return nil, errors.Wrap(err, "failed to scan rental payment row")
		}
		payments = append(payments, toDomainRentalPayment(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return payments, nil
}

func (r *PropertyRepository) queryProperties(ctx context.Context, query string, args ...interface{}) ([]*property.Property, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var properties []*property.Property
	for rows.Next() {
		var m models.Property
		if err := rows.Scan(
			&m.ID,
			&m.Type,
			&m.Name,
			&m.SortIndex,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan property row")
		}
		properties = append(properties, toDomainProperty(&m))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}
	return properties, nil
}
