package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
)

type CreateOrganizationRequest struct {
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Type        *model.OrganizationType `json:"type"`
	Restriction *model.Restriction      `json:"restriction"`
	Units       *decimal.Decimal        `json:"units"`
	Amount      *decimal.Decimal        `json:"amount"`
}

func (r CreateOrganizationRequest) Input() service.CreateOrganizationInput {
	return service.CreateOrganizationInput{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Restriction: r.Restriction,
		Units:       r.Units,
		Amount:      r.Amount,
	}
}

type UpdateOrganizationRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Type        *model.OrganizationType `json:"type"`
	Restriction *model.Restriction      `json:"restriction"`
	Units       *decimal.Decimal        `json:"units"`
	Amount      *decimal.Decimal        `json:"amount"`
}

func (r UpdateOrganizationRequest) Patch() model.OrganizationPatch {
	return model.OrganizationPatch{
		Name:        r.Name,
		Description: r.Description,
		Type:        r.Type,
		Restriction: r.Restriction,
		Units:       r.Units,
		Amount:      r.Amount,
	}
}

type OrganizationResponse struct {
	ID          int64                  `json:"id,string"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Type        model.OrganizationType `json:"type"`
	Restriction model.Restriction      `json:"restriction"`
	Units       decimal.Decimal        `json:"units"`
	Amount      decimal.Decimal        `json:"amount"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

func ToOrganizationResponse(org *model.Organization) *OrganizationResponse {
	if org == nil {
		return nil
	}
	return &OrganizationResponse{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		Type:        org.Type,
		Restriction: org.Restriction,
		Units:       org.Units,
		Amount:      org.Amount,
		CreatedAt:   org.CreatedAt,
		UpdatedAt:   org.UpdatedAt,
	}
}

type AddContributorRequest struct {
	ContributorID *ID `json:"contributorId"`
}

type ContributorLinkResponse struct {
	OrganizationID int64     `json:"organizationId,string"`
	ContributorID  int64     `json:"contributorId,string"`
	CreatedAt      time.Time `json:"createdAt"`
}

func ToContributorLinkResponse(link *model.OrganizationContributor) *ContributorLinkResponse {
	return &ContributorLinkResponse{
		OrganizationID: link.OrganizationID,
		ContributorID:  link.ContributorID,
		CreatedAt:      link.CreatedAt,
	}
}

type OrganizationListResponse struct {
	Organizations []OrganizationResponse `json:"organizations"`
	Total         int64                  `json:"total"`
}

func ToOrganizationList(items []model.Organization, total int64) OrganizationListResponse {
	return OrganizationListResponse{Organizations: toList(items, ToOrganizationResponse), Total: total}
}

// toList converts a page of models, encoding an empty page as [] rather
// than null.
func toList[M, R any](items []M, convert func(*M) *R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, *convert(&items[i]))
	}
	return out
}
