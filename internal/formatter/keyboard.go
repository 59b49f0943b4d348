package formatter

import (
	"github.com/go-telegram/bot/models"

	appmodels "github.com/mixelka/menubot/pkg/models"
)

// Cities offered in the weather menu, in display order
var Cities = []string{"Moscow", "Saint Petersburg", "Kyiv", "London", "New York"}

type menuItem struct {
	Text   string
	Action appmodels.CallbackAction
}

var mainMenu = []menuItem{
	{Text: "What is your name?", Action: appmodels.CallbackMyName},
	{Text: "Random digit", Action: appmodels.CallbackRandom},
	{Text: "Loading picture", Action: appmodels.CallbackLongProcess},
	{Text: "Show weather", Action: appmodels.CallbackWeather},
}

// BuildMainMenuKeyboard creates the /start inline keyboard, one button per row
func BuildMainMenuKeyboard() *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(mainMenu))
	for _, item := range mainMenu {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         item.Text,
			CallbackData: string(item.Action),
		}})
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// BuildCityKeyboard creates the city selection inline keyboard
func BuildCityKeyboard() *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(Cities))
	for _, city := range Cities {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         city,
			CallbackData: appmodels.WeatherCityCallback(city),
		}})
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: rows,
	}
}

// BuildReplyKeyboard creates the persistent reply keyboard
func BuildReplyKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: "Hello!"}, {Text: "Picture"}},
		},
		ResizeKeyboard: true,
	}
}
