package models

import "time"

// MaxItemsPerDay is the number of lesson items a date can hold.
const MaxItemsPerDay = 3

// AIInfo is one lesson item of a day. ItemIndex is 0-based and is the index
// learners record progress against.
type AIInfo struct {
	ID        int64      `json:"id" db:"id"`
	Date      string     `json:"date" db:"date"`
	ItemIndex int        `json:"index" db:"item_index"`
	Title     string     `json:"title" db:"title"`
	Content   string     `json:"content" db:"content"`
	TermsJSON string     `json:"-" db:"terms"`
	Terms     []TermItem `json:"terms" db:"-"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
