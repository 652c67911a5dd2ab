package dto

import (
	"time"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
)

type LoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type ActivateRequest struct {
	StudentID      string `json:"student_id"`
	Name           string `json:"name"`
	ActivationCode string `json:"activation_code"`
	Password       string `json:"password"`
	Nickname       string `json:"nickname"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID        uuid.UUID         `json:"id"`
	StudentID string            `json:"student_id"`
	Name      string            `json:"name"`
	Nickname  string            `json:"nickname"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
	Avatar    string            `json:"avatar,omitempty"`
	Contact   string            `json:"contact,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		StudentID: u.StudentID,
		Name:      u.Name,
		Nickname:  u.Nickname,
		Role:      u.Role,
		Status:    u.Status,
		Avatar:    u.Avatar,
		Contact:   u.Contact,
		CreatedAt: u.CreatedAt,
	}
}

type UpdateProfileRequest struct {
	Nickname *string `json:"nickname"`
	Contact  *string `json:"contact"`
	Avatar   *string `json:"avatar"`
}
