package countryquiz

import "fmt"

type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideA, SideB:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSide, s)
}

type Outcome struct {
	Metric    Metric
	Choice    Side
	IsCorrect bool
	ValueA    float64
	ValueB    float64
}

// Evaluate scores choice against q. The chosen country wins when its value is
// greater than or equal to the other one, so a tie is correct for either side.
// Evaluate has no side effects; recording the outcome is up to the caller.
func Evaluate(q Question, choice Side) (Outcome, error) {
	spec, err := Lookup(q.Metric)
	if err != nil {
		return Outcome{}, err
	}

	out := Outcome{
		Metric: q.Metric,
		Choice: choice,
		ValueA: spec.Value(q.A),
		ValueB: spec.Value(q.B),
	}
	switch choice {
	case SideA:
		out.IsCorrect = out.ValueA >= out.ValueB
	case SideB:
		out.IsCorrect = out.ValueB >= out.ValueA
	default:
		return Outcome{}, fmt.Errorf("%w: %q", ErrInvalidSide, choice)
	}
	return out, nil
}
