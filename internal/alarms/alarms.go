// FilePath: internal/alarms/alarms.go

// Package alarms derives the dashboard's presentational aggregates from raw
// sensor readings: per-measure averages, out-of-threshold events and their
// hourly counts. Pure and synchronous so it can be tested without any I/O.
package alarms

import (
	"sort"
	"time"

	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
)

// Threshold is one min/max pair from the alarm parameters.
type Threshold struct {
	Min float64
	Max float64
}

// MeasureAverage is the arithmetic mean of all readings of one measure.
type MeasureAverage struct {
	Measure models.Measure
	Avg     float64
	Count   int
}

// Event is a single reading that fell strictly outside its threshold pair.
type Event struct {
	Timestamp time.Time
	Measure   models.Measure
	Value     float64
}

// HourlyCount is the number of alarm events in one hour bucket.
type HourlyCount struct {
	Hour  time.Time
	Count int
}

// Summary bundles everything the dashboard view renders.
type Summary struct {
	Averages []MeasureAverage
	Hourly   []HourlyCount
	Events   []Event
}

// thresholds maps each measure code to its threshold pair. The mapping is an
// explicit table rather than a string transform so backend enum naming can
// drift without silently dropping alarms.
func thresholds(params *models.AlarmParameters) map[models.Measure]Threshold {
	if params == nil {
		return nil
	}
	return map[models.Measure]Threshold{
		models.MeasureTemperature:  {Min: params.MinTemperature, Max: params.MaxTemperature},
		models.MeasureHumidity:     {Min: params.MinHumidity, Max: params.MaxHumidity},
		models.MeasureSoilMoisture: {Min: params.MinSoilMoisture, Max: params.MaxSoilMoisture},
	}
}

// Derive computes the dashboard aggregates for a set of readings against an
// optional alarm-parameters record. With params == nil no reading is ever an
// alarm; averages are still computed.
func Derive(readings []models.SensorReading, params *models.AlarmParameters) Summary {
	limits := thresholds(params)

	sums := make(map[models.Measure]float64)
	counts := make(map[models.Measure]int)
	buckets := make(map[time.Time]int)
	var events []Event

	for _, r := range readings {
		sums[r.Measure] += r.Value
		counts[r.Measure]++

		limit, ok := limits[r.Measure]
		if !ok {
			continue
		}
		if r.Value < limit.Min || r.Value > limit.Max {
			hour := r.Timestamp.Time.Truncate(time.Hour)
			buckets[hour]++
			events = append(events, Event{
				Timestamp: r.Timestamp.Time,
				Measure:   r.Measure,
				Value:     r.Value,
			})
		}
	}

	averages := make([]MeasureAverage, 0, len(sums))
	for measure, sum := range sums {
		averages = append(averages, MeasureAverage{
			Measure: measure,
			Avg:     sum / float64(counts[measure]),
			Count:   counts[measure],
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		return averages[i].Measure < averages[j].Measure
	})

	hourly := make([]HourlyCount, 0, len(buckets))
	for hour, count := range buckets {
		hourly = append(hourly, HourlyCount{Hour: hour, Count: count})
	}
	sort.Slice(hourly, func(i, j int) bool {
		return hourly[i].Hour.Before(hourly[j].Hour)
	})

	return Summary{Averages: averages, Hourly: hourly, Events: events}
}
