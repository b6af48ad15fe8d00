package dto

import (
	"github.com/brtdigital/remesa-backend/internal/models"
)

// LoginRequest defines the credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed JWT and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest defines the data needed to register a user.
type CreateUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	FirstName string      `json:"firstName" binding:"required"`
	LastName  string      `json:"lastName"`
	Password  string      `json:"password" binding:"required,min=8"`
	Role      models.Role `json:"role" binding:"required,oneof=client sales staff"`
}

// UserResponse defines the data returned for a user. The password hash
// never leaves the model layer.
type UserResponse struct {
	UserID    string      `json:"userID"`
	Email     string      `json:"email"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      models.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
}

// ToUserResponse converts a models.User to UserResponse DTO
func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
	}
}
