package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrganizationType string

const (
	OrganizationTypeEndowment OrganizationType = "Endowment"
	OrganizationTypeDonation  OrganizationType = "Donation"
)

func (t OrganizationType) IsValid() bool {
	switch t {
	case OrganizationTypeEndowment, OrganizationTypeDonation:
		return true
	default:
		return false
	}
}

type Restriction string

const (
	RestrictionRestricted   Restriction = "Restricted"
	RestrictionUnrestricted Restriction = "Unrestricted"
)

func (r Restriction) IsValid() bool {
	switch r {
	case RestrictionRestricted, RestrictionUnrestricted:
		return true
	default:
		return false
	}
}

type Organization struct {
	ID          int64            `json:"id,string"`
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Type        OrganizationType `json:"type"`
	Restriction Restriction      `json:"restriction"`
	Units       decimal.Decimal  `json:"units"`
	Amount      decimal.Decimal  `json:"amount"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// OrganizationPatch carries a partial update; nil fields are left untouched.
type OrganizationPatch struct {
	Name        *string
	Description *string
	Type        *OrganizationType
	Restriction *Restriction
	Units       *decimal.Decimal
	Amount      *decimal.Decimal
}

func (p OrganizationPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Type == nil &&
		p.Restriction == nil && p.Units == nil && p.Amount == nil
}
