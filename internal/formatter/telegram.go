package formatter

import (
	"fmt"

	"github.com/mixelka/menubot/pkg/models"
)

// Fixed reply texts
const (
	TextMainMenu      = "Welcome to the main menu! Choose an option:"
	TextReplyKeyboard = "This is just keyboard: "
	TextCitySelection = "Выберите город для просмотра погоды:"
	TextUnknown       = "Unknown command"
	TextImageLoading  = "Lunch image loading"
	TextImageCaption  = "Your random picture:"
	TextImageError    = "Ошибка загрузки изображения. Попробуйте позже!"
)

// FormatEcho formats the reply for an unrecognized message
func FormatEcho(text string) string {
	return "I don't get your message: " + text
}

// FormatName formats the greeting for the my_name button
func FormatName(displayName, username string) string {
	return fmt.Sprintf("Hello!\n\nYour name is: %s\nYour username is: @%s", displayName, username)
}

// FormatRandom formats the random number reply
func FormatRandom(n int) string {
	return fmt.Sprintf("Your random number is %d", n)
}

// FormatWeather formats a weather report
func FormatWeather(r *models.WeatherReport) string {
	return fmt.Sprintf(
		"Погода в %s:\n"+
			"Температура: %.1f°C\n"+
			"Ощущается как: %.1f°C\n"+
			"Влажность: %d%%\n"+
			"Описание: %s",
		r.City,
		r.TempC,
		r.FeelsLikeC,
		r.HumidityPct,
		r.Description,
	)
}

// FormatWeatherError formats the reply for a failed weather lookup
func FormatWeatherError(city string) string {
	return "Не удалось получить данные о погоде для " + city
}
