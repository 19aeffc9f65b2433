package countryquiz

import "testing"

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name   string
		metric Metric
		value  float64
		want   string
	}{
		{"population small", MetricPopulation, 930, "930"},
		{"population thousands", MetricPopulation, 12500, "12.50K"},
		{"population millions", MetricPopulation, 223_800_000, "223.80M"},
		{"population millions short", MetricPopulation, 5_450_000, "5.45M"},
		{"population billions china", MetricPopulation, 1_411_750_000, "1.412B"},
		{"population billions india", MetricPopulation, 1_428_630_000, "1.429B"},
		{"population trillions", MetricPopulation, 2e12, "2.000T"},
		{"population rounds into next tier", MetricPopulation, 999_999, "1.00M"},
		{"population integer rounds into K", MetricPopulation, 999.6, "1.00K"},
		{"population zero", MetricPopulation, 0, "0"},
		{"area", MetricArea, 9_596_961, "9.60M km²"},
		{"area small", MetricArea, 733, "733 km²"},
		{"gdp trillions", MetricGDP, 17_963_000_000_000, "$17.96T"},
		{"gdp billions", MetricGDP, 477_000_000_000, "$477.00B"},
		{"gdp per capita", MetricGDPPerCapita, 2131, "$2.13K"},
		{"gdp per capita small", MetricGDPPerCapita, 950, "$950"},
		{"density", MetricDensity, 7438, "7438.0/km²"},
		{"literacy", MetricLiteracy, 95.5, "95.5%"},
		{"hdi", MetricHDI, 0.925, "0.925"},
		{"hdi padded", MetricHDI, 0.9, "0.900"},
		{"life expectancy", MetricLifeExpectancy, 53.9, "53.9 years"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.metric, tt.value)
			if err != nil {
				t.Fatalf("FormatValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatValue(%s, %v) = %q, want %q", tt.metric, tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatDistinguishesLargePopulations(t *testing.T) {
	a, _ := FormatValue(MetricPopulation, 1_411_750_000)
	b, _ := FormatValue(MetricPopulation, 1_417_173_173)
	if a == b {
		t.Fatalf("both populations render as %q", a)
	}
	if a != "1.412B" || b != "1.417B" {
		t.Errorf("got %q and %q, want 1.412B and 1.417B", a, b)
	}
}

func TestFormatValueUnknownMetric(t *testing.T) {
	if _, err := FormatValue(Metric(99), 1); err == nil {
		t.Fatal("expected error for undefined metric")
	}
}
