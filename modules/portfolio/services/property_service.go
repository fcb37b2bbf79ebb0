package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/pkg/composables"
	"github.com/immodash/immodash/pkg/eventbus"
)

// PropertyService provides operations for managing portfolio entries.
type PropertyService struct {
	repo      property.Repository
	publisher eventbus.EventBus
}

func NewPropertyService(repo property.Repository, publisher eventbus.EventBus) *PropertyService {
	return &PropertyService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAll returns the full property list in deterministic display order.
func (s *PropertyService) GetAll(ctx context.Context) ([]*property.Property, error) {
	return s.repo.GetAll(ctx)
}

func (s *PropertyService) GetByID(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PropertyService) EnergyReadings(ctx context.Context, propertyID uuid.UUID) ([]property.EnergyReading, error) {
	return s.repo.EnergyReadings(ctx, propertyID)
}

func (s *PropertyService) RentalPayments(ctx context.Context, propertyID uuid.UUID) ([]property.RentalPayment, error) {
	return s.repo.RentalPayments(ctx, propertyID)
}

func (s *PropertyService) Create(ctx context.Context, p *property.Property) (*property.Property, error) {
	var saved *property.Property
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.repo.Create(txCtx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(property.NewCreatedEvent(saved))
	return saved, nil
}

func (s *PropertyService) Update(ctx context.Context, p *property.Property) (*property.Property, error) {
	var saved *property.Property
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.repo.Update(txCtx, p)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(property.NewUpdatedEvent(saved))
	return saved, nil
}

func (s *PropertyService) Delete(ctx context.Context, id uuid.UUID) error {
	entity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = composables.InTx(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}
	s.publisher.Publish(property.NewDeletedEvent(entity))
	return nil
}
