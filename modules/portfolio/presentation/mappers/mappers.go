package mappers

import (
	"time"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/modules/portfolio/presentation/viewmodels"
)

func PropertyToViewModel(p *property.Property) *viewmodels.Property {
	return &viewmodels.Property{
		ID:        p.ID().String(),
		Type:      string(p.Type()),
		TypeKnown: p.Type().IsKnown(),
		Name:      p.Name(),
		SortIndex: p.SortIndex(),
		CreatedAt: p.CreatedAt().Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt().Format(time.RFC3339),
	}
}

func EnergyReadingToChartPoint(r property.EnergyReading) viewmodels.ChartPoint {
	return viewmodels.ChartPoint{
		Label: r.Month().Format("2006-01"),
		Value: r.KilowattHours(),
	}
}

func RentalPaymentToChartPoint(r property.RentalPayment) viewmodels.ChartPoint {
	return viewmodels.ChartPoint{
		Label: r.Period().Format("2006-01"),
		Value: r.Amount().AsMajorUnits(),
	}
}
