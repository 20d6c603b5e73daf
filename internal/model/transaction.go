package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeDonation   TransactionType = "DONATION"
	TransactionTypeWithdrawal TransactionType = "WITHDRAWAL"
	TransactionTypeInvestment TransactionType = "INVESTMENT"
	TransactionTypeExpense    TransactionType = "EXPENSE"
)

func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDonation, TransactionTypeWithdrawal, TransactionTypeInvestment, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// Transaction amounts are stored positive regardless of type.
type Transaction struct {
	ID             int64            `json:"id,string"`
	OrganizationID int64            `json:"organizationId,string"`
	ContributorID  *int64           `json:"contributorId,string,omitempty"`
	FundID         *int64           `json:"fundId,string,omitempty"`
	Type           TransactionType  `json:"type"`
	Date           time.Time        `json:"date"`
	Amount         decimal.Decimal  `json:"amount"`
	Units          *decimal.Decimal `json:"units,omitempty"`
	Description    *string          `json:"description,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

type TransactionPatch struct {
	ContributorID *int64
	FundID        *int64
	Type          *TransactionType
	Date          *time.Time
	Amount        *decimal.Decimal
	Units         *decimal.Decimal
	Description   *string
}

func (p TransactionPatch) IsEmpty() bool {
	return p.ContributorID == nil && p.FundID == nil && p.Type == nil && p.Date == nil &&
		p.Amount == nil && p.Units == nil && p.Description == nil
}
