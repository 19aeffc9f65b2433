package server

import (
	"net/http"

	"github.com/playperu/countryquiz/internal/countryquiz"
)

type MetricInfo struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

type CountryListItem struct {
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	ISO2      string   `json:"iso2"`
	Continent string   `json:"continent"`
	Flag      string   `json:"flag"`
	Value     *float64 `json:"value,omitempty"`
	Display   string   `json:"display,omitempty"`
}

func handleListMetrics() http.HandlerFunc {
	metrics := countryquiz.Metrics()
	items := make([]MetricInfo, 0, len(metrics))
	for _, m := range metrics {
		spec, err := countryquiz.Lookup(m)
		if err != nil {
			continue
		}
		items = append(items, MetricInfo{Key: spec.Key, Label: spec.Label, Prompt: spec.Prompt})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, items)
	}
}

// handleListCountries returns the catalog. With ?metric= each item also
// carries its raw and formatted value for that metric.
func handleListCountries(catalog *countryquiz.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec *countryquiz.MetricSpec
		if key := r.URL.Query().Get("metric"); key != "" {
			m, err := countryquiz.ParseMetric(key)
			if err != nil {
				writeError(w, http.StatusBadRequest, "unknown metric")
				return
			}
			s, err := countryquiz.Lookup(m)
			if err != nil {
				writeError(w, http.StatusBadRequest, "unknown metric")
				return
			}
			spec = &s
		}

		countries := catalog.Countries()
		items := make([]CountryListItem, 0, len(countries))
		for _, c := range countries {
			item := CountryListItem{
				Code:      c.Code,
				Name:      c.Name,
				ISO2:      c.ISO2,
				Continent: c.Continent,
				Flag:      c.Flag,
			}
			if spec != nil {
				v := spec.Value(c)
				item.Value = &v
				item.Display = spec.Format(v)
			}
			items = append(items, item)
		}
		writeJSON(w, http.StatusOK, items)
	}
}
