package countryquiz

import (
	"testing"
	"time"
)

// seqRand replays a fixed sequence, reducing each value modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (s *seqRand) IntN(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func clock() time.Time { return fixedNow }

func testCountries() []Country {
	return []Country{
		{Code: "CHN", Name: "China", ISO2: "CN", Population: 1_411_750_000, Area: 9_596_961, GDP: 17_963e9, GDPPerCapita: 12720, Density: 147, Literacy: 97, HDI: 0.768, LifeExpectancy: 78.2},
		{Code: "IND", Name: "India", ISO2: "IN", Population: 1_428_630_000, Area: 3_287_263, GDP: 3_730e9, GDPPerCapita: 2612, Density: 435, Literacy: 77, HDI: 0.644, LifeExpectancy: 70.4},
		{Code: "FJI", Name: "Fiji", ISO2: "FJ", Population: 930_000, Area: 18_274, GDP: 5.31e9, GDPPerCapita: 5710, Density: 51, Literacy: 99, HDI: 0.730, LifeExpectancy: 67.4},
		{Code: "NZL", Name: "New Zealand", ISO2: "NZ", Population: 5_120_000, Area: 268_021, GDP: 247.7e9, GDPPerCapita: 48379, Density: 19, Literacy: 99, HDI: 0.937, LifeExpectancy: 82.5},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testCountries())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func metricPtr(m Metric) *Metric { return &m }
