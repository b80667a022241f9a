package models

// StatsSnapshot is the aggregate cached in a session's __stats__ row.
type StatsSnapshot struct {
	TotalLearned      int      `json:"total_learned"`
	TotalTermsLearned int      `json:"total_terms_learned"`
	StreakDays        int      `json:"streak_days"`
	MaxStreak         int      `json:"max_streak"`
	LastLearnedDate   *string  `json:"last_learned_date"`
	QuizScore         int      `json:"quiz_score"`
	Achievements      []string `json:"achievements"`
}

// QuizOutcome is the payload of a single __quiz__ attempt row.
type QuizOutcome struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Score   int `json:"score"` // percentage 0-100
}
