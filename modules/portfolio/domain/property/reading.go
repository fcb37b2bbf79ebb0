package property

import (
	"time"

	"github.com/Rhymond/go-money"
)

// EnergyReading is one month of metered consumption for a property.
type EnergyReading struct {
	month         time.Time
	kilowattHours float64
}

func NewEnergyReading(month time.Time, kilowattHours float64) EnergyReading {
	return EnergyReading{month: month, kilowattHours: kilowattHours}
}

func (r EnergyReading) Month() time.Time {
	return r.month
}

func (r EnergyReading) KilowattHours() float64 {
	return r.kilowattHours
}

// RentalPayment is one period of collected rent for a property.
type RentalPayment struct {
	period time.Time
	amount *money.Money
}

func NewRentalPayment(period time.Time, amountCents int64, currency string) RentalPayment {
	if currency == "" {
		currency = money.EUR
	}
	return RentalPayment{period: period, amount: money.New(amountCents, currency)}
}

func (r RentalPayment) Period() time.Time {
	return r.period
}

func (r RentalPayment) Amount() *money.Money {
	return r.amount
}
