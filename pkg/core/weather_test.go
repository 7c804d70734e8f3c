package core

import "testing"

func TestFormatTemperature(t *testing.T) {
	w := WeatherData{TempCelsius: 21.6, TempFahrenheit: 70.9}

	tests := []struct {
		unit string
		want string
	}{
		{UnitCelsius, "22°C"},
		{UnitFahrenheit, "71°F"},
		{"", "22°C"}, // unknown unit falls back to celsius
	}
	for _, tt := range tests {
		if got := FormatTemperature(w, tt.unit); got != tt.want {
			t.Errorf("FormatTemperature(%q) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}
