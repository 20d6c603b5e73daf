package dto

import (
	"chem.app/api/internal/model"
	"chem.app/api/internal/service"
)

type SignUpRequest struct {
	Email            string `json:"email"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	OrganizationName string `json:"organizationName"`
	Role             string `json:"role"`

	OrganizationDescription *string `json:"organizationDescription"`
}

func (r SignUpRequest) Input() service.SignUpInput {
	return service.SignUpInput{
		Email:            r.Email,
		FirstName:        r.FirstName,
		LastName:         r.LastName,
		OrganizationName: r.OrganizationName,
		Role:             r.Role,

		OrganizationDescription: r.OrganizationDescription,
	}
}

type SignUpResponse struct {
	User         *UserResponse         `json:"user"`
	Organization *OrganizationResponse `json:"organization"`
}

func ToSignUpResponse(user *model.User, org *model.Organization) SignUpResponse {
	return SignUpResponse{User: ToUserResponse(user), Organization: ToOrganizationResponse(org)}
}

type LoginResponse struct {
	User *UserResponse `json:"user"`
}

type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

type SessionRequest struct {
	IDToken string `json:"idToken"`
}
