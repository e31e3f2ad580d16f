package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type UserAddress struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	City       string `json:"city" bson:"city" validate:"required"`
	State      string `json:"state" bson:"state" validate:"required"`
	PostalCode string `json:"postalCode" bson:"postal_code" validate:"required,len=6,number"`
	Country    string `json:"country" bson:"country" validate:"required"`
	Phone      string `json:"phone" bson:"phone" validate:"required,len=10,number"`
	IsDefault  bool   `json:"isDefault" bson:"is_default"`
}

// User's password hash is persisted but never serialized to a client.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"`
	Role      Role               `json:"role" bson:"role"`
	Addresses []UserAddress      `json:"addresses" bson:"addresses,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}

type UpdateProfileRequest struct {
	Name      *string        `json:"name,omitempty" validate:"omitempty,min=1"`
	Addresses *[]UserAddress `json:"addresses,omitempty" validate:"omitempty,dive"`
}

type UpdateUserRoleRequest struct {
	Role Role `json:"role" validate:"required,oneof=user admin"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	jwt.RegisteredClaims
}
