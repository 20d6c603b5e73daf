package dto

import (
	"time"

	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
)

type CreateContributorRequest struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	OrganizationID *ID    `json:"organizationId"`
}

func (r CreateContributorRequest) Input() service.CreateContributorInput {
	return service.CreateContributorInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		OrganizationID: r.OrganizationID.Int64(),
	}
}

type UpdateContributorRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	OrganizationID *ID     `json:"organizationId"`
}

func (r UpdateContributorRequest) Patch() model.ContributorPatch {
	return model.ContributorPatch{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		OrganizationID: r.OrganizationID.Int64(),
	}
}

type ContributorResponse struct {
	ID             int64     `json:"id,string"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	OrganizationID *int64    `json:"organizationId,string,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func ToContributorResponse(c *model.Contributor) *ContributorResponse {
	return &ContributorResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		OrganizationID: c.OrganizationID,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type ContributorListResponse struct {
	Contributors []ContributorResponse `json:"contributors"`
	Total        int64                 `json:"total"`
}

func ToContributorList(items []model.Contributor, total int64) ContributorListResponse {
	return ContributorListResponse{Contributors: toList(items, ToContributorResponse), Total: total}
}
