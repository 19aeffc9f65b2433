package countryquiz

import (
	"fmt"
	"time"
)

// Result is an evaluated answer ready for display.
type Result struct {
	Outcome
	QuestionID string
	DisplayA   string
	DisplayB   string
	Message    string
	NewBest    bool
}

// Game drives rounds for a single GameState: one question outstanding at a
// time, answered at most once. Game is not safe for concurrent use.
type Game struct {
	state    *GameState
	gen      *Generator
	rand     Rand
	now      func() time.Time
	current  *Question
	answered bool
}

func NewGame(state *GameState, gen *Generator, r Rand, now func() time.Time) *Game {
	if now == nil {
		now = time.Now
	}
	return &Game{state: state, gen: gen, rand: r, now: now}
}

// NextQuestion replaces the outstanding question. Without an override the
// player's selected metric is used, if any.
func (g *Game) NextQuestion(override *Metric) (Question, error) {
	if override == nil {
		override = g.state.SelectedMetric
	}
	q, err := g.gen.Generate(override)
	if err != nil {
		return Question{}, fmt.Errorf("generating question: %w", err)
	}
	g.current = &q
	g.answered = false
	return q, nil
}

// Current returns the outstanding question, if any.
func (g *Game) Current() (Question, bool) {
	if g.current == nil {
		return Question{}, false
	}
	return *g.current, true
}

func (g *Game) Answer(questionID string, choice Side) (Result, error) {
	if g.current == nil {
		return Result{}, ErrNoQuestion
	}
	if questionID != g.current.ID {
		return Result{}, fmt.Errorf("%w: got %q", ErrStaleQuestion, questionID)
	}
	if g.answered {
		return Result{}, ErrAlreadyAnswered
	}

	out, err := Evaluate(*g.current, choice)
	if err != nil {
		return Result{}, err
	}
	spec, err := Lookup(out.Metric)
	if err != nil {
		return Result{}, err
	}

	prevBest := g.state.BestStreak
	g.state.RecordAnswer(out.IsCorrect, g.now())
	g.answered = true

	newBest := g.state.BestStreak > prevBest
	return Result{
		Outcome:    out,
		QuestionID: g.current.ID,
		DisplayA:   spec.Format(out.ValueA),
		DisplayB:   spec.Format(out.ValueB),
		Message:    Feedback(g.rand, out.IsCorrect, g.state.CurrentStreak, newBest),
		NewBest:    newBest,
	}, nil
}

// SessionReset clears the run and drops the outstanding question.
func (g *Game) SessionReset() string {
	g.state.SessionReset()
	g.current = nil
	return ResetMessage(g.rand)
}

func (g *Game) FullReset() string {
	g.state.FullReset()
	g.current = nil
	return ResetMessage(g.rand)
}

// SelectMetric sets the persisted preference; nil clears it.
func (g *Game) SelectMetric(m *Metric) error {
	if m == nil {
		g.state.SelectedMetric = nil
		return nil
	}
	if _, err := Lookup(*m); err != nil {
		return err
	}
	v := *m
	g.state.SelectedMetric = &v
	return nil
}

// State returns a copy of the current progress.
func (g *Game) State() *GameState {
	return g.state.Clone()
}
