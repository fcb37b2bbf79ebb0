package models

import "time"

type Property struct {
	ID        string
	Type      string
	Name      string
	SortIndex int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type EnergyReading struct {
	PropertyID    string
	Month         time.Time
	KilowattHours float64
}

type RentalPayment struct {
	PropertyID  string
	Period      time.Time
	AmountCents int64
	Currency    string
}
