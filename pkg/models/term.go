package models

import "time"

// TermItem is a vocabulary term attached to a lesson item.
type TermItem struct {
	Term        string `json:"term"`
	Description string `json:"description"`
}

// Term is an entry of the glossary table, filled from lesson content.
type Term struct {
	ID          int64     `json:"id" db:"id"`
	Term        string    `json:"term" db:"term"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
