package forecast

import (
	"math"
	"sort"

	"github.com/freshbites/planner/pkg/domain/entities"
)

// Spike percent bounds accepted for demand simulation
const (
	MinSpikePercent = 10
	MaxSpikePercent = 100
)

// Forecaster produces demand projections and event-spike simulations.
// Every method is a pure function of its snapshot and parameters.
type Forecaster struct{}

// NewForecaster creates a new demand forecaster
func NewForecaster() *Forecaster {
	return &Forecaster{}
}

// SimulateSpike applies a demand spike to the (sku, region) series.
// spikePercent must be within [MinSpikePercent, MaxSpikePercent]. An
// unknown pair yields an empty result, not an error.
func (f *Forecaster) SimulateSpike(
	snap entities.Snapshot,
	region entities.Region,
	sku entities.SKU,
	spikePercent float64,
) ([]entities.SimulatedDemandRecord, error) {
	if spikePercent < MinSpikePercent || spikePercent > MaxSpikePercent {
		return nil, entities.NewValidationError("spike_percent",
			"%.2f outside [%d, %d]", spikePercent, MinSpikePercent, MaxSpikePercent)
	}
	return f.applySpike(snap, region, sku, spikePercent), nil
}

// applySpike runs the spike math without range checks. A zero percent
// leaves simulated demand equal to actual demand for every week.
func (f *Forecaster) applySpike(
	snap entities.Snapshot,
	region entities.Region,
	sku entities.SKU,
	spikePercent float64,
) []entities.SimulatedDemandRecord {
	factor := 1 + spikePercent/100

	var series []entities.DemandRecord
	for _, d := range snap.Demand {
		if d.SKU == sku && d.Region == region {
			series = append(series, d)
		}
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Week < series[j].Week })

	out := make([]entities.SimulatedDemandRecord, 0, len(series))
	prevActual := entities.Units(-1)
	for _, d := range series {
		spike := false
		if prevActual > 0 {
			spike = float64(d.ActualDemand) > float64(prevActual)*factor
		}
		out = append(out, entities.SimulatedDemandRecord{
			SKU:             d.SKU,
			Region:          d.Region,
			Week:            d.Week,
			ForecastDemand:  d.ForecastDemand,
			ActualDemand:    d.ActualDemand,
			SimulatedDemand: round2(float64(d.ActualDemand) * factor),
			Spike:           spike,
		})
		prevActual = d.ActualDemand
	}
	return out
}

// ForecastAdjust extrapolates the series by a least-squares linear trend.
// Identical input always yields identical output. Fewer than two points
// produce a flat continuation of the last value (zeros for an empty series).
func (f *Forecaster) ForecastAdjust(series []float64, periods int) (entities.ForecastResult, error) {
	if periods <= 0 {
		return entities.ForecastResult{}, entities.NewValidationError(
			"periods", "%d must be positive", periods)
	}

	result := entities.ForecastResult{
		OriginalSeries: make([]float64, len(series)),
		Forecast:       make([]float64, periods),
	}
	for i, v := range series {
		result.OriginalSeries[i] = round2(v)
	}

	if len(series) < 2 {
		last := 0.0
		if len(series) == 1 {
			last = series[0]
		}
		for i := range result.Forecast {
			result.Forecast[i] = round2(last)
		}
		return result, nil
	}

	slope, intercept := linearFit(series)
	n := float64(len(series))
	for i := 0; i < periods; i++ {
		result.Forecast[i] = round2(intercept + slope*(n+float64(i)))
	}
	return result, nil
}

// linearFit returns the least-squares slope and intercept of the series
// indexed 0..n-1
func linearFit(series []float64) (slope, intercept float64) {
	n := float64(len(series))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
