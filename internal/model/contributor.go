package model

import "time"

type Contributor struct {
	ID        int64  `json:"id,string"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// OrganizationID is the primary organization. Membership is tracked by
	// OrganizationContributor links.
	OrganizationID *int64    `json:"organizationId,string,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type ContributorPatch struct {
	FirstName      *string
	LastName       *string
	OrganizationID *int64
}

func (p ContributorPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.OrganizationID == nil
}

type OrganizationContributor struct {
	OrganizationID int64     `json:"organizationId,string"`
	ContributorID  int64     `json:"contributorId,string"`
	CreatedAt      time.Time `json:"createdAt"`
}
