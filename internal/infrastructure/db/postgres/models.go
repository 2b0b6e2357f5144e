// Package postgres is the gorm-backed persistence layer. The same models run
// on the postgres driver in production and the in-memory sqlite driver in
// tests and local development.
package postgres

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
	Name                 string `gorm:"not null"`
	Email                string `gorm:"uniqueIndex;not null"`
	Photo                string
	Role                 string `gorm:"not null;default:user"`
	Password             string `gorm:"not null"`
	PasswordChangedAt    *time.Time
	PasswordResetToken   string `gorm:"index"`
	PasswordResetExpires *time.Time
	Active               bool `gorm:"default:true"`
}

func (UserModel) TableName() string {
	return "users"
}

type LocationModel struct {
	Lat         float64
	Lng         float64
	Address     string
	Description string
}

type TourModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Name            string  `gorm:"uniqueIndex;not null"`
	Duration        int     `gorm:"not null"`
	MaxGroupSize    int     `gorm:"not null"`
	Difficulty      string  `gorm:"not null"`
	RatingsAverage  float64 `gorm:"default:4.5"`
	RatingsQuantity int     `gorm:"default:0"`
	Price           float64 `gorm:"not null"`
	PriceDiscount   float64
	Summary         string `gorm:"not null"`
	Description     string
	ImageCover      string `gorm:"not null"`
	Images          string // JSON-encoded list
	StartLocation   LocationModel         `gorm:"embedded;embeddedPrefix:start_location_"`
	StartDates      []TourStartDateModel  `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE"`
	Guides          []UserModel           `gorm:"many2many:tour_guides"`
}

func (TourModel) TableName() string {
	return "tours"
}

type TourStartDateModel struct {
	ID       uint      `gorm:"primaryKey"`
	TourID   uuid.UUID `gorm:"type:uuid;index;not null"`
	StartsAt time.Time `gorm:"not null"`
}

func (TourStartDateModel) TableName() string {
	return "tour_start_dates"
}

type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Review    string    `gorm:"not null"`
	Rating    float64   `gorm:"not null"`
	TourID    uuid.UUID `gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	User      *UserModel `gorm:"foreignKey:UserID"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
