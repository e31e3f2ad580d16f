package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

type Notification struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"user_id"`
	Type      NotificationType   `json:"type" bson:"type"`
	Recipient string             `json:"recipient" bson:"recipient"`
	Subject   string             `json:"subject,omitempty" bson:"subject,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Status    NotificationStatus `json:"status" bson:"status"`
	Error     string             `json:"error,omitempty" bson:"error,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
	SentAt    *time.Time         `json:"sent_at,omitempty" bson:"sent_at,omitempty"`
}

type EmailNotificationRequest struct {
	Recipient   string   `json:"recipient" validate:"required,email"`
	Subject     string   `json:"subject" validate:"required"`
	Content     string   `json:"content" validate:"required"`
	HTMLContent string   `json:"htmlContent,omitempty"`
	CC          []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
}
