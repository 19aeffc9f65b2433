package countryquiz

import (
	"fmt"
	"time"
)

// GameState is one player's cumulative progress.
//
// An incorrect answer zeroes CurrentStreak only; CurrentScore is kept until
// the next reset. A plain reset is a session reset. FullReset is the only
// operation that clears lifetime bests and totals.
type GameState struct {
	PlayerKey      string     `json:"playerKey"`
	CurrentScore   int        `json:"currentScore"`
	HighScore      int        `json:"highScore"`
	CurrentStreak  int        `json:"currentStreak"`
	BestStreak     int        `json:"bestStreak"`
	TotalCorrect   int        `json:"totalCorrect"`
	TotalAnswered  int        `json:"totalAnswered"`
	SelectedMetric *Metric    `json:"selectedMetric,omitempty"`
	LastPlayedAt   *time.Time `json:"lastPlayedAt,omitempty"`
}

func NewGameState(playerKey string) *GameState {
	return &GameState{PlayerKey: playerKey}
}

func (s *GameState) RecordAnswer(correct bool, at time.Time) {
	s.TotalAnswered++
	if correct {
		s.TotalCorrect++
		s.CurrentScore++
		s.CurrentStreak++
		if s.CurrentScore > s.HighScore {
			s.HighScore = s.CurrentScore
		}
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
	at = at.UTC()
	s.LastPlayedAt = &at
}

// SessionReset starts a new run and keeps bests and totals.
func (s *GameState) SessionReset() {
	s.CurrentScore = 0
	s.CurrentStreak = 0
}

// FullReset clears everything except the player key and the metric preference.
func (s *GameState) FullReset() {
	s.SessionReset()
	s.HighScore = 0
	s.BestStreak = 0
	s.TotalCorrect = 0
	s.TotalAnswered = 0
}

// Accuracy is TotalCorrect/TotalAnswered, or 0 before the first answer.
func (s *GameState) Accuracy() float64 {
	if s.TotalAnswered <= 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAnswered)
}

// Validate reports a state that could not have been produced by the tracker,
// typically a corrupted or hand-edited stored document.
func (s *GameState) Validate() error {
	switch {
	case s.CurrentScore < 0, s.HighScore < 0, s.CurrentStreak < 0, s.BestStreak < 0,
		s.TotalCorrect < 0, s.TotalAnswered < 0:
		return fmt.Errorf("%w: negative counter", ErrCorruptState)
	case s.CurrentScore > s.HighScore:
		return fmt.Errorf("%w: score %d above high score %d", ErrCorruptState, s.CurrentScore, s.HighScore)
	case s.CurrentStreak > s.BestStreak:
		return fmt.Errorf("%w: streak %d above best streak %d", ErrCorruptState, s.CurrentStreak, s.BestStreak)
	case s.TotalCorrect > s.TotalAnswered:
		return fmt.Errorf("%w: %d correct of %d answered", ErrCorruptState, s.TotalCorrect, s.TotalAnswered)
	}
	if s.SelectedMetric != nil {
		if _, err := Lookup(*s.SelectedMetric); err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptState, err)
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *GameState) Clone() *GameState {
	c := *s
	if s.SelectedMetric != nil {
		m := *s.SelectedMetric
		c.SelectedMetric = &m
	}
	if s.LastPlayedAt != nil {
		t := *s.LastPlayedAt
		c.LastPlayedAt = &t
	}
	return &c
}
