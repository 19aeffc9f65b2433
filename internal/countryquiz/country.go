package countryquiz

import (
	"fmt"
	"math"
	"strings"
)

type Country struct {
	Code      string `json:"code" yaml:"code"`
	Name      string `json:"name" yaml:"name"`
	ISO2      string `json:"iso2" yaml:"iso2"`
	Continent string `json:"continent" yaml:"continent"`
	Flag      string `json:"flag" yaml:"flag"`

	Population   float64 `json:"population" yaml:"population"`
	Area         float64 `json:"area" yaml:"area"`
	GDP          float64 `json:"gdp" yaml:"gdp"`
	GDPPerCapita float64 `json:"gdpPerCapita" yaml:"gdp_per_capita"`
	Density      float64 `json:"density" yaml:"density"`
	Literacy     float64 `json:"literacy" yaml:"literacy"`
	HDI          float64 `json:"hdi" yaml:"hdi"`
	// LifeExpectancy is in years.
	LifeExpectancy float64 `json:"lifeExpectancy" yaml:"life_expectancy"`
}

// flagEmoji maps an ISO 3166-1 alpha-2 code to its regional-indicator pair.
func flagEmoji(iso2 string) string {
	if len(iso2) != 2 {
		return ""
	}
	var b strings.Builder
	for _, c := range strings.ToUpper(iso2) {
		if c < 'A' || c > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (c - 'A'))
	}
	return b.String()
}

// Catalog is the read-only list of countries questions are drawn from.
type Catalog struct {
	countries []Country
	byCode    map[string]int
}

// NewCatalog validates and copies countries. Codes identify countries, so they
// must be unique. A catalog with fewer than two countries is accepted here and
// rejected when a question is generated from it.
func NewCatalog(countries []Country) (*Catalog, error) {
	c := &Catalog{
		countries: make([]Country, len(countries)),
		byCode:    make(map[string]int, len(countries)),
	}
	for i, country := range countries {
		if country.Code == "" {
			return nil, fmt.Errorf("%w: country %d has no code", ErrInvalidCatalog, i)
		}
		if _, dup := c.byCode[country.Code]; dup {
			return nil, fmt.Errorf("%w: duplicate code %q", ErrInvalidCatalog, country.Code)
		}
		for _, m := range Metrics() {
			spec, _ := Lookup(m)
			v := spec.Value(country)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("%w: %s has non-finite %s", ErrInvalidCatalog, country.Code, spec.Key)
			}
			if v < 0 {
				return nil, fmt.Errorf("%w: %s has negative %s", ErrInvalidCatalog, country.Code, spec.Key)
			}
		}
		if country.Flag == "" {
			country.Flag = flagEmoji(country.ISO2)
		}
		c.countries[i] = country
		c.byCode[country.Code] = i
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.countries) }

func (c *Catalog) At(i int) Country { return c.countries[i] }

func (c *Catalog) ByCode(code string) (Country, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return Country{}, false
	}
	return c.countries[i], true
}

// Countries returns a copy of the catalog in its original order.
func (c *Catalog) Countries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}
