package model

import (
	"github.com/google/uuid"
)

// Category groups services into the tiles shown on the booking page.
type Category struct {
	Base
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description"`
	DisplayRank int    `db:"display_rank" json:"display_rank"`
	Active      bool   `db:"active" json:"active"`
}

type Service struct {
	Base
	CategoryID  uuid.UUID `db:"category_id" json:"category_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Duration    int       `db:"duration" json:"duration"` // in minutes
	Price       float64   `db:"price" json:"price"`
	Active      bool      `db:"active" json:"active"`
}
