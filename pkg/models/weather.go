package models

// WeatherReport current weather for a city
type WeatherReport struct {
	City        string
	TempC       float64
	FeelsLikeC  float64
	HumidityPct int
	Description string
}
