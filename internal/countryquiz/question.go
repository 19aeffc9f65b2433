package countryquiz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Question asks which of A and B ranks higher on Metric. A new round gets a
// new Question; existing ones are never modified.
type Question struct {
	ID        string
	Metric    Metric
	A         Country
	B         Country
	CreatedAt time.Time
}

type Generator struct {
	catalog *Catalog
	rand    Rand
	now     func() time.Time
	newID   func() string
}

type GeneratorOption func(*Generator)

func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) { g.now = now }
}

func WithIDs(newID func() string) GeneratorOption {
	return func(g *Generator) { g.newID = newID }
}

func NewGenerator(catalog *Catalog, r Rand, opts ...GeneratorOption) *Generator {
	g := &Generator{
		catalog: catalog,
		rand:    r,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate draws two distinct countries uniformly without replacement. The
// metric is override when given, otherwise uniform over all metrics.
func (g *Generator) Generate(override *Metric) (Question, error) {
	n := g.catalog.Len()
	if n < 2 {
		return Question{}, fmt.Errorf("%w: have %d", ErrCatalogTooSmall, n)
	}

	var m Metric
	if override != nil {
		if _, err := Lookup(*override); err != nil {
			return Question{}, err
		}
		m = *override
	} else {
		m = Metric(g.rand.IntN(int(metricCount)))
	}

	a := g.rand.IntN(n)
	b := g.rand.IntN(n - 1)
	if b >= a {
		b++
	}

	return Question{
		ID:        g.newID(),
		Metric:    m,
		A:         g.catalog.At(a),
		B:         g.catalog.At(b),
		CreatedAt: g.now().UTC(),
	}, nil
}
