package progress

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in slot keys and requests.
const DateLayout = "2006-01-02"

// ErrUnknownSlotKey is returned by ParseSlotKey for keys of no known shape.
var ErrUnknownSlotKey = errors.New("unknown slot key")

const (
	statsSentinel = "__stats__"
	termsSentinel = "__terms__"
	quizSentinel  = "__quiz__"
)

// SlotKey identifies what a progress row records. The variants are
// DailyKey, StatsKey, TermsKey and QuizAttemptKey.
type SlotKey interface {
	String() string
	slotKey()
}

// DailyKey addresses the lesson items learned on a date.
type DailyKey struct {
	Date string
}

// StatsKey addresses the cached statistics of a session.
type StatsKey struct{}

// TermsKey addresses the terms learned within one lesson item of a date.
type TermsKey struct {
	Date      string
	InfoIndex int
}

// QuizAttemptKey addresses one quiz attempt; Sequence starts at 1 each day.
type QuizAttemptKey struct {
	Date     string
	Sequence int
}

func (DailyKey) slotKey()       {}
func (StatsKey) slotKey()       {}
func (TermsKey) slotKey()       {}
func (QuizAttemptKey) slotKey() {}

func (k DailyKey) String() string { return k.Date }

func (StatsKey) String() string { return statsSentinel }

func (k TermsKey) String() string {
	return fmt.Sprintf("%s%s_%d", termsSentinel, k.Date, k.InfoIndex)
}

func (k QuizAttemptKey) String() string {
	return fmt.Sprintf("%s%s_%d", quizSentinel, k.Date, k.Sequence)
}

// TermsPrefix is the common prefix of every TermsKey of date.
func TermsPrefix(date string) string { return termsSentinel + date + "_" }

// QuizPrefix is the common prefix of every QuizAttemptKey of date.
func QuizPrefix(date string) string { return quizSentinel + date + "_" }

// ParseSlotKey parses the persisted form of a slot key.
func ParseSlotKey(s string) (SlotKey, error) {
	switch {
	case s == statsSentinel:
		return StatsKey{}, nil
	case strings.HasPrefix(s, termsSentinel):
		date, n, err := splitDated(strings.TrimPrefix(s, termsSentinel))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlotKey, s)
		}
		return TermsKey{Date: date, InfoIndex: n}, nil
	case strings.HasPrefix(s, quizSentinel):
		date, n, err := splitDated(strings.TrimPrefix(s, quizSentinel))
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSlotKey, s)
		}
		return QuizAttemptKey{Date: date, Sequence: n}, nil
	case ValidDate(s):
		return DailyKey{Date: s}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSlotKey, s)
}

// splitDated splits "{date}_{n}".
func splitDated(s string) (string, int, error) {
	date, num, ok := strings.Cut(s, "_")
	if !ok || !ValidDate(date) {
		return "", 0, ErrUnknownSlotKey
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return "", 0, err
	}
	return date, n, nil
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
