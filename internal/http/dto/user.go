package dto

import (
	"time"

	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
)

type UserResponse struct {
	ID             int64                 `json:"id,string"`
	FirebaseUID    string                `json:"firebaseUid"`
	Email          string                `json:"email"`
	FirstName      string                `json:"firstName"`
	LastName       string                `json:"lastName"`
	Role           model.Role            `json:"role"`
	OrganizationID int64                 `json:"organizationId,string"`
	Organization   *OrganizationResponse `json:"organization,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	UpdatedAt      time.Time             `json:"updatedAt"`
}

func ToUserResponse(u *model.User) *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		FirebaseUID:    u.FirebaseUID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Role:           u.Role,
		OrganizationID: u.OrganizationID,
		Organization:   ToOrganizationResponse(u.Organization),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Total      int64          `json:"total"`
	NextCursor *int64         `json:"nextCursor,string,omitempty"`
}

func ToUserList(page *service.UserPage) UserListResponse {
	return UserListResponse{
		Users:      toList(page.Items, ToUserResponse),
		Total:      page.Total,
		NextCursor: page.NextCursor,
	}
}
