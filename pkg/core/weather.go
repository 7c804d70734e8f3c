package core

import "fmt"

// Weather conditions, normalized from provider condition codes.
const (
	ConditionClear        = "clear"
	ConditionPartlyCloudy = "partly_cloudy"
	ConditionCloudy       = "cloudy"
	ConditionOvercast     = "overcast"
	ConditionMist         = "mist"
	ConditionRain         = "rain"
	ConditionDrizzle      = "drizzle"
	ConditionSnow         = "snow"
	ConditionThunderstorm = "thunderstorm"
	ConditionFog          = "fog"
	ConditionUnknown      = "unknown"
)

// WeatherData is a snapshot of current conditions for a location.
type WeatherData struct {
	Location            string  `json:"location"`
	TempCelsius         float64 `json:"tempCelsius"`
	TempFahrenheit      float64 `json:"tempFahrenheit"`
	FeelsLikeCelsius    float64 `json:"feelsLikeCelsius"`
	FeelsLikeFahrenheit float64 `json:"feelsLikeFahrenheit"`
	Condition           string  `json:"condition"`
	ConditionText       string  `json:"conditionText"`
	Humidity            float64 `json:"humidity"`
	WindKPH             float64 `json:"windKph"`
	WindMPH             float64 `json:"windMph"`
	WindDirection       string  `json:"windDirection"`
	Pressure            float64 `json:"pressure"`
	UVIndex             float64 `json:"uvIndex"`
	Visibility          float64 `json:"visibility"`
	IsDay               bool    `json:"isDay"`
	Timestamp           string  `json:"timestamp"`
}

// JournalContext enriches an entry with ambient information.
type JournalContext struct {
	Weather   *WeatherData `json:"weather,omitempty"`
	DayOfWeek string       `json:"dayOfWeek"`
	TimeOfDay string       `json:"timeOfDay"` // morning | afternoon | evening | night
	MoonPhase string       `json:"moonPhase,omitempty"`
}

// FormatTemperature renders a temperature in the configured unit.
func FormatTemperature(w WeatherData, unit string) string {
	if unit == UnitFahrenheit {
		return fmt.Sprintf("%.0f°F", w.TempFahrenheit)
	}
	return fmt.Sprintf("%.0f°C", w.TempCelsius)
}
