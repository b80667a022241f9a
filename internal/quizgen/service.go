package quizgen

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/example/aihub/internal/progress"
	"github.com/example/aihub/pkg/models"
)

// Lessons supplies lesson items by date.
type Lessons interface {
	ItemsByDate(ctx context.Context, date string) ([]models.AIInfo, error)
}

// Learning supplies what a session has learned.
type Learning interface {
	LearnedItems(ctx context.Context, session string) (map[string][]int, error)
	LearnedTermRows(ctx context.Context, session string) (map[progress.TermsKey][]string, error)
}

// QuizSet is a generated quiz. Message explains an empty set.
type QuizSet struct {
	Quizzes    []Question `json:"quizzes"`
	TotalTerms int        `json:"total_terms"`
	Message    string     `json:"message,omitempty"`
}

// LearnedTerm is a term together with where the session learned it.
type LearnedTerm struct {
	Term        string `json:"term"`
	Description string `json:"description"`
	LearnedDate string `json:"learned_date"`
	InfoIndex   int    `json:"info_index"`
}

// LearnedTermsReport lists a session's learned terms, newest date first.
type LearnedTermsReport struct {
	Terms        []LearnedTerm            `json:"terms"`
	TermsByDate  map[string][]LearnedTerm `json:"terms_by_date"`
	TotalTerms   int                      `json:"total_terms"`
	LearnedDates []string                 `json:"learned_dates"`
	Message      string                   `json:"message,omitempty"`
}

// Service builds quizzes from lesson content and learning progress.
type Service struct {
	gen      *Generator
	lessons  Lessons
	learning Learning
}

// NewService creates a quiz service.
func NewService(gen *Generator, lessons Lessons, learning Learning) *Service {
	return &Service{gen: gen, lessons: lessons, learning: learning}
}

// SessionPool returns the terms of every lesson item session has learned.
func (s *Service) SessionPool(ctx context.Context, session string) ([]models.TermItem, error) {
	learned, err := s.learning.LearnedItems(ctx, session)
	if err != nil {
		return nil, err
	}
	var pool []models.TermItem
	for _, date := range sortedKeys(learned) {
		items, err := s.lessons.ItemsByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if slices.Contains(learned[date], item.ItemIndex) {
				pool = append(pool, item.Terms...)
			}
		}
	}
	return pool, nil
}

// DatePool returns every term of the lesson items of date.
func (s *Service) DatePool(ctx context.Context, date string) ([]models.TermItem, error) {
	items, err := s.lessons.ItemsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	var pool []models.TermItem
	for _, item := range items {
		pool = append(pool, item.Terms...)
	}
	return pool, nil
}

// SessionQuiz generates a quiz over the terms session has learned.
func (s *Service) SessionQuiz(ctx context.Context, session string) (QuizSet, error) {
	learned, err := s.learning.LearnedItems(ctx, session)
	if err != nil {
		return QuizSet{}, err
	}
	if len(learned) == 0 {
		return QuizSet{Quizzes: []Question{}, Message: "학습한 내용이 없습니다."}, nil
	}
	pool, err := s.SessionPool(ctx, session)
	if err != nil {
		return QuizSet{}, err
	}
	if len(Dedupe(pool)) == 0 {
		return QuizSet{Quizzes: []Question{}, Message: "학습한 용어가 없습니다."}, nil
	}
	return s.build(pool), nil
}

// DateQuiz generates a quiz over every term of date, learned or not.
func (s *Service) DateQuiz(ctx context.Context, date string) (QuizSet, error) {
	items, err := s.lessons.ItemsByDate(ctx, date)
	if err != nil {
		return QuizSet{}, err
	}
	if len(items) == 0 {
		return QuizSet{Quizzes: []Question{}, Message: fmt.Sprintf("%s 날짜의 AI 정보가 없습니다.", date)}, nil
	}
	pool, err := s.DatePool(ctx, date)
	if err != nil {
		return QuizSet{}, err
	}
	if len(Dedupe(pool)) == 0 {
		return QuizSet{Quizzes: []Question{}, Message: fmt.Sprintf("%s 날짜에 등록된 용어가 없습니다.", date)}, nil
	}
	return s.build(pool), nil
}

func (s *Service) build(pool []models.TermItem) QuizSet {
	return QuizSet{Quizzes: s.gen.Generate(pool), TotalTerms: len(Dedupe(pool))}
}

// LearnedTerms lists the terms session learned: every term of a learned
// lesson item, and each term marked learned on its own. A term appears once
// per date.
func (s *Service) LearnedTerms(ctx context.Context, session string) (LearnedTermsReport, error) {
	report := LearnedTermsReport{
		Terms:        []LearnedTerm{},
		TermsByDate:  map[string][]LearnedTerm{},
		LearnedDates: []string{},
	}
	learned, err := s.learning.LearnedItems(ctx, session)
	if err != nil {
		return LearnedTermsReport{}, err
	}
	termRows, err := s.learning.LearnedTermRows(ctx, session)
	if err != nil {
		return LearnedTermsReport{}, err
	}

	marked := map[string]map[int][]string{}
	for key, terms := range termRows {
		if marked[key.Date] == nil {
			marked[key.Date] = map[int][]string{}
		}
		marked[key.Date][key.InfoIndex] = terms
	}
	dates := sortedKeys(learned)
	for date := range marked {
		if _, ok := learned[date]; !ok {
			dates = append(dates, date)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	for _, date := range dates {
		items, err := s.lessons.ItemsByDate(ctx, date)
		if err != nil {
			return LearnedTermsReport{}, err
		}
		if len(items) == 0 {
			continue
		}
		seen := map[string]bool{}
		for _, item := range items {
			whole := slices.Contains(learned[date], item.ItemIndex)
			picked := marked[date][item.ItemIndex]
			for _, t := range item.Terms {
				if t.Term == "" || seen[t.Term] {
					continue
				}
				if !whole && !slices.Contains(picked, t.Term) {
					continue
				}
				seen[t.Term] = true
				lt := LearnedTerm{Term: t.Term, Description: t.Description, LearnedDate: date, InfoIndex: item.ItemIndex}
				report.Terms = append(report.Terms, lt)
				report.TermsByDate[date] = append(report.TermsByDate[date], lt)
			}
		}
		if len(report.TermsByDate[date]) > 0 {
			report.LearnedDates = append(report.LearnedDates, date)
		}
	}

	report.TotalTerms = len(report.Terms)
	if report.TotalTerms == 0 {
		report.Message = "학습한 용어가 없습니다."
	}
	return report, nil
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
