package dtos

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/immodash/immodash/modules/portfolio/domain/property"
	"github.com/immodash/immodash/pkg/constants"
	"github.com/immodash/immodash/pkg/serrors"
)

type PropertyCreateDTO struct {
	Type      string `json:"type" validate:"required"`
	Name      string `json:"name" validate:"required"`
	SortIndex int    `json:"sortIndex" validate:"gte=0"`
}

func (d *PropertyCreateDTO) Normalize() {
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))
	d.Name = strings.TrimSpace(d.Name)
}

func (d *PropertyCreateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), fieldLocaleKey), false
}

func (d *PropertyCreateDTO) ToEntity() *property.Property {
	return property.New(
		d.Name,
		property.WithType(property.Type(d.Type)),
		property.WithSortIndex(d.SortIndex),
	)
}

type PropertyUpdateDTO struct {
	Type      string `json:"type" validate:"required"`
	Name      string `json:"name" validate:"required"`
	SortIndex int    `json:"sortIndex" validate:"gte=0"`
}

func (d *PropertyUpdateDTO) Normalize() {
	d.Type = strings.ToLower(strings.TrimSpace(d.Type))
	d.Name = strings.TrimSpace(d.Name)
}

func (d *PropertyUpdateDTO) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	errs := constants.Validate.Struct(d)
	if errs == nil {
		return serrors.ValidationErrors{}, true
	}
	return serrors.ProcessValidatorErrors(errs.(validator.ValidationErrors), fieldLocaleKey), false
}

func (d *PropertyUpdateDTO) ToEntity(id uuid.UUID, existing *property.Property) *property.Property {
	return property.New(
		d.Name,
		property.WithID(id),
		property.WithType(property.Type(d.Type)),
		property.WithSortIndex(d.SortIndex),
		property.WithCreatedAt(existing.CreatedAt()),
	)
}

func fieldLocaleKey(field string) string {
	switch field {
	case "Type", "Name", "SortIndex":
		return fmt.Sprintf("Property.Fields.%s", field)
	default:
		return ""
	}
}
