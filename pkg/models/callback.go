package models

import "strings"

// CallbackAction token carried by an inline button
type CallbackAction string

const (
	CallbackMyName      CallbackAction = "my_name"
	CallbackRandom      CallbackAction = "random"
	CallbackLongProcess CallbackAction = "long_process"
	CallbackWeather     CallbackAction = "weather"
)

// WeatherCityPrefix prefixes the city name in a city button token
const WeatherCityPrefix = "weather_"

// WeatherCityCallback builds the callback token for a city button
func WeatherCityCallback(city string) string {
	return WeatherCityPrefix + city
}

// ParseWeatherCity extracts the city from a city button token.
// Only the leading prefix is removed, so cities may contain underscores.
func ParseWeatherCity(data string) (string, bool) {
	return strings.CutPrefix(data, WeatherCityPrefix)
}
