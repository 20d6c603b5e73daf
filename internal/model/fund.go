package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type FundType string

const (
	FundTypeEndowment FundType = "ENDOWMENT"
	FundTypeDonation  FundType = "DONATION"
)

type Fund struct {
	ID             int64           `json:"id,string"`
	Name           string          `json:"name"`
	Type           FundType        `json:"type"`
	Restriction    bool            `json:"restriction"`
	Purpose        *string         `json:"purpose,omitempty"`
	OrganizationID int64           `json:"organizationId,string"`
	Units          decimal.Decimal `json:"units"`
	Amount         decimal.Decimal `json:"amount"`
	Description    *string         `json:"description,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
