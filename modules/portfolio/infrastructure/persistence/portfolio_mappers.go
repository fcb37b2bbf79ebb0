package persistence

import (
	"github.com/google/uuid"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/modules/portfolio/infrastructure/persistence/models"
)

func toDomainProperty(m *models.Property) *property.Property {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		id = uuid.Nil
	}
	return property.New(
		m.Name,
		property.WithID(id),
		property.WithType(property.Type(m.Type)),
		property.WithSortIndex(m.SortIndex),
		property.WithCreatedAt(m.CreatedAt),
		property.WithUpdatedAt(m.UpdatedAt),
	)
}

func toDomainEnergyReading(m *models.EnergyReading) property.EnergyReading {
	return property.NewEnergyReading(m.Month, m.KilowattHours)
}

func toDomainRentalPayment(m *models.RentalPayment) property.RentalPayment {
	return property.NewRentalPayment(m.Period, m.AmountCents, m.Currency)
}
