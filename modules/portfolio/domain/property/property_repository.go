package property

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the backing-store contract for portfolio entries.
//
// GetAll returns the full list, ordered by sort index ascending with
// newest-first creation time as tie-break and id as the final key, so
// equal rows always come back in the same order. No pagination.
type Repository interface {
	GetAll(ctx context.Context) ([]*Property, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)
	Create(ctx context.Context, p *Property) (*Property, error)
	Update(ctx context.Context, p *Property) (*Property, error)
	Delete(ctx context.Context, id uuid.UUID) error

	EnergyReadings(ctx context.Context, propertyID uuid.UUID) ([]EnergyReading, error)
	RentalPayments(ctx context.Context, propertyID uuid.UUID) ([]RentalPayment, error)
}
