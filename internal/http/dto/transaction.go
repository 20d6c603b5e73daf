package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
)

type CreateTransactionRequest struct {
	OrganizationID *ID              `json:"organizationId"`
	ContributorID  *ID              `json:"contributorId"`
	FundID         *ID              `json:"fundId"`
	Type           string           `json:"type"`
	Date           string           `json:"date"`
	Amount         *decimal.Decimal `json:"amount"`
	Units          *decimal.Decimal `json:"units"`
	Description    *string          `json:"description"`
}

func (r CreateTransactionRequest) Input() service.CreateTransactionInput {
	return service.CreateTransactionInput{
		OrganizationID: r.OrganizationID.Int64(),
		ContributorID:  r.ContributorID.Int64(),
		FundID:         r.FundID.Int64(),
		Type:           r.Type,
		Date:           r.Date,
		Amount:         r.Amount,
		Units:          r.Units,
		Description:    r.Description,
	}
}

type UpdateTransactionRequest struct {
	ContributorID *ID                    `json:"contributorId"`
	FundID        *ID                    `json:"fundId"`
	Type          *model.TransactionType `json:"type"`
	Date          *string                `json:"date"`
	Amount        *decimal.Decimal       `json:"amount"`
	Units         *decimal.Decimal       `json:"units"`
	Description   *string                `json:"description"`
}

func (r UpdateTransactionRequest) Input() service.UpdateTransactionInput {
	return service.UpdateTransactionInput{
		ContributorID: r.ContributorID.Int64(),
		FundID:        r.FundID.Int64(),
		Type:          r.Type,
		Date:          r.Date,
		Amount:        r.Amount,
		Units:         r.Units,
		Description:   r.Description,
	}
}

type TransactionResponse struct {
	ID             int64                 `json:"id,string"`
	OrganizationID int64                 `json:"organizationId,string"`
	ContributorID  *int64                `json:"contributorId,string,omitempty"`
	FundID         *int64                `json:"fundId,string,omitempty"`
	Type           model.TransactionType `json:"type"`
	Date           time.Time             `json:"date"`
	Amount         decimal.Decimal       `json:"amount"`
	Units          *decimal.Decimal      `json:"units,omitempty"`
	Description    *string               `json:"description,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func ToTransactionResponse(tx *model.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:             tx.ID,
		OrganizationID: tx.OrganizationID,
		ContributorID:  tx.ContributorID,
		FundID:         tx.FundID,
		Type:           tx.Type,
		Date:           tx.Date,
		Amount:         tx.Amount,
		Units:          tx.Units,
		Description:    tx.Description,
		CreatedAt:      tx.CreatedAt,
		UpdatedAt:      tx.UpdatedAt,
	}
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
}

func ToTransactionList(items []model.Transaction, total int64) TransactionListResponse {
	return TransactionListResponse{Transactions: toList(items, ToTransactionResponse), Total: total}
}
