package domain

// Business validation constants
const (
	MinEveryMinutes = 1
	MaxEveryMinutes = 1440 // сутки

	MinGraceMinutes = 0
	MaxGraceMinutes = 1440
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	MinutesPerDay = 24 * 60
)

// WeekdayNames имена дней недели, принимаемые на административной границе
// Конфигурация тарифов приходит как свободный JSON, строки валидируются здесь
var WeekdayNames = []string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}
