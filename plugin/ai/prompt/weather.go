package prompt

import (
	"fmt"
	"strings"

	"github.com/voyago/concierge/plugin/ai/tripcontext"
)

// FormatWeather renders a weather snapshot for the WEATHER_CONTEXT block.
func FormatWeather(w *tripcontext.WeatherSnapshot) string {
	if w == nil {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Condition: %s (%s)\n", w.Condition.Main, w.Condition.Description)
	fmt.Fprintf(&sb, "Temperature: %.1f°C (feels like %.1f°C)\n", w.Temperature, w.FeelsLike)
	fmt.Fprintf(&sb, "Humidity: %d%%\n", w.Humidity)
	fmt.Fprintf(&sb, "Wind: %.1f m/s\n", w.WindSpeed)
	if w.Precipitation > 0 {
		fmt.Fprintf(&sb, "Precipitation: %.1f mm\n", w.Precipitation)
	}
	fmt.Fprintf(&sb, "Cloud cover: %d%%", w.Clouds)
	return sb.String()
}
