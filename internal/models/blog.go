package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Author    string             `json:"author" bson:"author"`
	Published bool               `json:"published" bson:"published"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

type CreateBlogRequest struct {
	Title     string `json:"title" validate:"required,min=3,max=200"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

type UpdateBlogRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
