package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/lewisgroup/storefront/internal/domain/identity"
)

// AddressDTO carries a saved shipping address over the API
type AddressDTO struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Address1 string `json:"address1" binding:"required,max=200"`
	Address2 string `json:"address2" binding:"max=200"`
	City     string `json:"city" binding:"required,max=100"`
	State    string `json:"state" binding:"max=100"`
	Zip      string `json:"zip" binding:"required,max=20"`
	Country  string `json:"country" binding:"required,max=100"`
}

// RegisterRequest creates a new member account
type RegisterRequest struct {
	Username string      `json:"username" binding:"required,min=3,max=100"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8,max=128"`
	Address  *AddressDTO `json:"address"`
}

// LoginRequest authenticates an account. AnonymousBuyerID carries the
// anonymous basket cookie so the basket can be merged on login.
type LoginRequest struct {
	Username         string `json:"username" binding:"required"`
	Password         string `json:"password" binding:"required"`
	AnonymousBuyerID string `json:"-"`
}

// UpdateProfileRequest changes the account's username and/or email
type UpdateProfileRequest struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// UserResponse represents an account in API responses
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResult carries the issued tokens and the authenticated user
type LoginResult struct {
	AccessToken           string       `json:"access_token"`
	RefreshToken          string       `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time    `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time    `json:"refresh_token_expires_at"`
	TokenType             string       `json:"token_type"`
	User                  UserResponse `json:"user"`
}

// RefreshResult carries a re-issued token pair
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ToAddressDTO converts a domain Address to AddressDTO
func ToAddressDTO(a identity.Address) AddressDTO {
	return AddressDTO{
		FullName: a.FullName,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
	}
}

func (a AddressDTO) toDomain() identity.Address {
	return identity.Address{
		FullName: a.FullName,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
	}
}
