package property

import (
	"time"

	"github.com/google/uuid"
)

// Type categorizes a portfolio entry. Unrecognized values are kept
// verbatim so imported data still renders.
type Type string

const (
	TypeApartment  Type = "apartment"
	TypeHouse      Type = "house"
	TypeGarage     Type = "garage"
	TypeCommercial Type = "commercial"
	TypeLand       Type = "land"
)

func (t Type) IsKnown() bool {
	switch t {
	case TypeApartment, TypeHouse, TypeGarage, TypeCommercial, TypeLand:
		return true
	}
	return false
}

type Property struct {
	id        uuid.UUID
	typ       Type
	name      string
	sortIndex int
	createdAt time.Time
	updatedAt time.Time
}

type Option func(*Property)

func WithID(id uuid.UUID) Option {
	return func(p *Property) {
		p.id = id
	}
}

func WithType(t Type) Option {
	return func(p *Property) {
		p.typ = t
	}
}

func WithSortIndex(idx int) Option {
	return func(p *Property) {
		p.sortIndex = idx
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(p *Property) {
		p.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(p *Property) {
		p.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Property {
	p := &Property{
		id:        uuid.New(),
		typ:       TypeApartment,
		name:      name,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Property) ID() uuid.UUID {
	return p.id
}

func (p *Property) Type() Type {
	return p.typ
}

func (p *Property) Name() string {
	return p.name
}

func (p *Property) SortIndex() int {
	return p.sortIndex
}

func (p *Property) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Property) UpdatedAt() time.Time {
	return p.updatedAt
}
