// Package quizgen builds multiple choice quizzes from vocabulary terms.
package quizgen

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/example/aihub/pkg/models"
)

const (
	// MaxQuestions is the most questions one quiz holds.
	MaxQuestions = 5
	// Distractors is the number of wrong options per question.
	Distractors = 3
)

// Question is a four option question about one term. Correct is the 0-based
// index of the right option.
type Question struct {
	ID          int    `json:"id"`
	Question    string `json:"question"`
	Option1     string `json:"option1"`
	Option2     string `json:"option2"`
	Option3     string `json:"option3"`
	Option4     string `json:"option4"`
	Correct     int    `json:"correct"`
	Explanation string `json:"explanation"`
}

// Options returns the four options in order.
func (q Question) Options() [4]string {
	return [4]string{q.Option1, q.Option2, q.Option3, q.Option4}
}

// Generator turns term pools into questions. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator creates a generator drawing from rnd, or from a time seeded
// source when rnd is nil.
func NewGenerator(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rnd: rnd}
}

// Dedupe drops terms with empty text and repeats of a term, keeping the first.
func Dedupe(pool []models.TermItem) []models.TermItem {
	seen := make(map[string]bool, len(pool))
	out := make([]models.TermItem, 0, len(pool))
	for _, t := range pool {
		key := strings.TrimSpace(t.Term)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// Generate picks up to MaxQuestions terms from pool and asks for the meaning
// of each. A term is skipped when the pool lacks Distractors other terms with
// distinct descriptions.
func (g *Generator) Generate(pool []models.TermItem) []Question {
	g.mu.Lock()
	defer g.mu.Unlock()

	terms := Dedupe(pool)
	g.rnd.Shuffle(len(terms), func(i, j int) {
		terms[i], terms[j] = terms[j], terms[i]
	})

	subjects := terms
	if len(subjects) > MaxQuestions {
		subjects = subjects[:MaxQuestions]
	}

	questions := make([]Question, 0, len(subjects))
	for i, subject := range subjects {
		// Distractors need descriptions distinct from the answer and from
		// each other, or the correct option would be ambiguous.
		seen := map[string]bool{subject.Description: true}
		others := make([]models.TermItem, 0, len(terms)-1)
		for _, t := range terms {
			if t.Term == subject.Term || seen[t.Description] {
				continue
			}
			seen[t.Description] = true
			others = append(others, t)
		}
		if len(others) < Distractors {
			continue
		}

		options := make([]string, 0, Distractors+1)
		for _, idx := range g.rnd.Perm(len(others))[:Distractors] {
			options = append(options, others[idx].Description)
		}
		options = append(options, subject.Description)
		correctIndex := len(options) - 1

		g.rnd.Shuffle(len(options), func(i, j int) {
			if i == correctIndex {
				correctIndex = j
			} else if j == correctIndex {
				correctIndex = i
			}
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, Question{
			ID:          i + 1,
			Question:    fmt.Sprintf("'%s'의 올바른 뜻은?", subject.Term),
			Option1:     options[0],
			Option2:     options[1],
			Option3:     options[2],
			Option4:     options[3],
			Correct:     correctIndex,
			Explanation: fmt.Sprintf("'%s'는 '%s'을 의미합니다.", subject.Term, subject.Description),
		})
	}
	return questions
}
