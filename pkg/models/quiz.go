package models

import "time"

// Quiz is an authored multiple choice question grouped by topic.
type Quiz struct {
	ID          int64     `json:"id" db:"id"`
	Topic       string    `json:"topic" db:"topic" binding:"required"`
	Question    string    `json:"question" db:"question" binding:"required"`
	Option1     string    `json:"option1" db:"option1" binding:"required"`
	Option2     string    `json:"option2" db:"option2" binding:"required"`
	Option3     string    `json:"option3" db:"option3" binding:"required"`
	Option4     string    `json:"option4" db:"option4" binding:"required"`
	Correct     int       `json:"correct" db:"correct" binding:"min=0,max=3"`
	Explanation string    `json:"explanation" db:"explanation"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
