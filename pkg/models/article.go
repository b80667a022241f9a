package models

import "time"

// Article is a titled, categorized piece of content. Prompts and base
// content share this shape and live in separate tables.
type Article struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title" binding:"required"`
	Content   string    `json:"content" db:"content" binding:"required"`
	Category  string    `json:"category" db:"category" binding:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
