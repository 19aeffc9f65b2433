package countryquiz

import "fmt"

type Metric int

const (
	MetricPopulation Metric = iota
	MetricArea
	MetricGDP
	MetricGDPPerCapita
	MetricDensity
	MetricLiteracy
	MetricHDI
	MetricLifeExpectancy

	metricCount
)

// MetricSpec bundles everything the engine needs to ask about one statistic.
type MetricSpec struct {
	Metric Metric
	Key    string
	Label  string
	Prompt string
	Value  func(Country) float64
	Format func(float64) string
}

var registry = [metricCount]MetricSpec{
	MetricPopulation: {
		Key:    "population",
		Label:  "Population",
		Prompt: "Which country has a larger population?",
		Value:  func(c Country) float64 { return c.Population },
		Format: formatPopulation,
	},
	MetricArea: {
		Key:    "area",
		Label:  "Area",
		Prompt: "Which country is larger by area?",
		Value:  func(c Country) float64 { return c.Area },
		Format: formatArea,
	},
	MetricGDP: {
		Key:    "gdp",
		Label:  "GDP",
		Prompt: "Which country has a higher GDP?",
		Value:  func(c Country) float64 { return c.GDP },
		Format: formatCurrency,
	},
	MetricGDPPerCapita: {
		Key:    "gdp_per_capita",
		Label:  "GDP per Capita",
		Prompt: "Which country has higher GDP per capita?",
		Value:  func(c Country) float64 { return c.GDPPerCapita },
		Format: formatCurrency,
	},
	MetricDensity: {
		Key:    "density",
		Label:  "Pop. Density",
		Prompt: "Which country has higher population density?",
		Value:  func(c Country) float64 { return c.Density },
		Format: formatDensity,
	},
	MetricLiteracy: {
		Key:    "literacy",
		Label:  "Literacy Rate",
		Prompt: "Which country has a higher literacy rate?",
		Value:  func(c Country) float64 { return c.Literacy },
		Format: formatPercent,
	},
	MetricHDI: {
		Key:    "hdi",
		Label:  "HDI",
		Prompt: "Which country has a higher Human Development Index?",
		Value:  func(c Country) float64 { return c.HDI },
		Format: formatHDI,
	},
	MetricLifeExpectancy: {
		Key:    "life_expectancy",
		Label:  "Life Expectancy",
		Prompt: "Which country has higher life expectancy?",
		Value:  func(c Country) float64 { return c.LifeExpectancy },
		Format: formatYears,
	},
}

var metricByKey = func() map[string]Metric {
	m := make(map[string]Metric, metricCount)
	for i := range registry {
		registry[i].Metric = Metric(i)
		m[registry[i].Key] = Metric(i)
	}
	return m
}()

// Lookup returns the registry entry for m. Values outside the enum are a
// programming error and are reported, never mapped to a default.
func Lookup(m Metric) (MetricSpec, error) {
	if m < 0 || m >= metricCount {
		return MetricSpec{}, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}
	spec := registry[m]
	if spec.Value == nil || spec.Format == nil {
		return MetricSpec{}, fmt.Errorf("%w: %d has no registry entry", ErrUnknownMetric, int(m))
	}
	return spec, nil
}

// Metrics lists every metric in declaration order.
func Metrics() []Metric {
	out := make([]Metric, metricCount)
	for i := range out {
		out[i] = Metric(i)
	}
	return out
}

func ParseMetric(key string) (Metric, error) {
	m, ok := metricByKey[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, key)
	}
	return m, nil
}

func (m Metric) String() string {
	if m < 0 || m >= metricCount {
		return fmt.Sprintf("Metric(%d)", int(m))
	}
	return registry[m].Key
}

func (m Metric) MarshalText() ([]byte, error) {
	spec, err := Lookup(m)
	if err != nil {
		return nil, err
	}
	return []byte(spec.Key), nil
}

func (m *Metric) UnmarshalText(b []byte) error {
	v, err := ParseMetric(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// FormatValue renders v with the precision rules of metric m.
func FormatValue(m Metric, v float64) (string, error) {
	spec, err := Lookup(m)
	if err != nil {
		return "", err
	}
	return spec.Format(v), nil
}
