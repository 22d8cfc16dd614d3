package render

import "strings"

// Tablas de códigos 1..5 => etiqueta. Fuera de rango => default.

const defaultLabel = "普通"

var firmnessLabels = map[int]string{
	1: "とてもやわらかい",
	2: "やわらかい",
	3: "普通",
	4: "硬め",
	5: "硬い",
}

var foodAmountLabels = map[int]string{
	1: "空っぽ",
	2: "少し",
	3: "普通",
	4: "多め",
	5: "満杯",
}

var energyLabels = map[int]string{
	1: "絶不調 😫",
	2: "不調 😓",
	3: "普通 😐",
	4: "元気 🙂",
	5: "絶好調 😆",
}

// El icono de clima se resuelve por los 2 primeros caracteres ("01d" => "01").
var weatherEmoji = map[string]string{
	"01": "☀️",
	"02": "⛅",
	"03": "☁️",
	"09": "🌧️",
	"10": "☔",
	"13": "⛄",
}

const defaultWeatherEmoji = "🌤️"

func FirmnessLabel(code int) string   { return lookup(firmnessLabels, code) }
func FoodAmountLabel(code int) string { return lookup(foodAmountLabels, code) }
func EnergyLabel(code int) string     { return lookup(energyLabels, code) }

func WeatherEmoji(iconCode string) string {
	iconCode = strings.TrimSpace(iconCode)
	if len(iconCode) < 2 {
		return defaultWeatherEmoji
	}
	if e, ok := weatherEmoji[iconCode[:2]]; ok {
		return e
	}
	return defaultWeatherEmoji
}

func lookup(table map[int]string, code int) string {
	if l, ok := table[code]; ok {
		return l
	}
	return defaultLabel
}
