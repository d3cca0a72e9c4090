package analytics

import "github.com/ruthwikaki/invochat-go/internal/domain"

const forecastWindow = 4

// Forecast produces a moving-average demand forecast for one SKU from its
// per-period unit sales. The next-period value is the last moving average
// plus the last step of the average, a one-step linear trend.
func Forecast(sku string, series []float64) domain.ForecastResult {
	result := domain.ForecastResult{SKU: sku, Trend: "stable"}

	if len(series) < forecastWindow {
		if len(series) > 0 {
			var sum float64
			for _, v := range series {
				sum += v
			}
			result.Forecast = sum / float64(len(series))
		}
		return result
	}

	averages := make([]float64, 0, len(series)-forecastWindow+1)
	for i := forecastWindow - 1; i < len(series); i++ {
		var sum float64
		for _, v := range series[i-forecastWindow+1 : i+1] {
			sum += v
		}
		averages = append(averages, sum/forecastWindow)
	}
	result.MovingAverages = averages

	last := averages[len(averages)-1]
	if len(averages) >= 2 {
		step := last - averages[len(averages)-2]
		result.Forecast = last + step
		switch {
		case step > 0:
			result.Trend = "increasing"
		case step < 0:
			result.Trend = "decreasing"
		}
	} else {
		result.Forecast = last
	}

	if result.Forecast < 0 {
		result.Forecast = 0
	}

	return result
}
