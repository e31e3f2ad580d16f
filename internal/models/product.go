package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `json:"id"`
	UserID    primitive.ObjectID `json:"userId"`
	UserName  string             `json:"userName"`
	Rating    int                `json:"rating"`
	Comment   string             `json:"comment"`
	CreatedAt time.Time          `json:"createdAt"`
}

type Product struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Description    string             `json:"description"`
	Price          decimal.Decimal    `json:"price"`
	Images         []string           `json:"images"`
	Category       string             `json:"category"`
	Stock          int                `json:"stock"`
	Featured       bool               `json:"featured"`
	Reviews        []Review           `json:"reviews"`
	AverageRating  float64            `json:"averageRating"`
	NumReviews     int                `json:"numReviews"`
	Specifications map[string]string  `json:"specifications,omitempty"`
	Weight         float64            `json:"weight"`
	WeightUnit     string             `json:"weightUnit"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type CreateProductRequest struct {
	Name           string            `json:"name" validate:"required,min=3,max=200"`
	Description    string            `json:"description" validate:"required"`
	Price          decimal.Decimal   `json:"price"`
	Images         []string          `json:"images" validate:"required,min=1"`
	Category       string            `json:"category" validate:"required,oneof=ghee honey spices oils other"`
	Stock          int               `json:"stock" validate:"gte=0"`
	Featured       bool              `json:"featured"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Weight         float64           `json:"weight" validate:"required,gt=0"`
	WeightUnit     string            `json:"weightUnit" validate:"required,oneof=g kg ml l"`
}

type UpdateProductRequest struct {
	Name           *string            `json:"name,omitempty" validate:"omitempty,min=3,max=200"`
	Description    *string            `json:"description,omitempty"`
	Price          *decimal.Decimal   `json:"price,omitempty"`
	Images         *[]string          `json:"images,omitempty" validate:"omitempty,min=1"`
	Category       *string            `json:"category,omitempty" validate:"omitempty,oneof=ghee honey spices oils other"`
	Stock          *int               `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Featured       *bool              `json:"featured,omitempty"`
	Specifications *map[string]string `json:"specifications,omitempty"`
	Weight         *float64           `json:"weight,omitempty" validate:"omitempty,gt=0"`
	WeightUnit     *string            `json:"weightUnit,omitempty" validate:"omitempty,oneof=g kg ml l"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

type ListProductsQuery struct {
	Category string
	Featured *bool
	Page     int
	Size     int
}
