// FilePath: internal/alarms/alarms_test.go
package alarms

import (
	"testing"
	"time"

	"github.com/FelipeCupito/agrosynchro-platform/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reading(measure models.Measure, value float64, at time.Time) models.SensorReading {
	return models.SensorReading{
		Measure:   measure,
		Value:     value,
		Timestamp: models.APITime{Time: at},
	}
}

func testParams() *models.AlarmParameters {
	return &models.AlarmParameters{
		MinTemperature:  10,
		MaxTemperature:  30,
		MinHumidity:     40,
		MaxHumidity:     80,
		MinSoilMoisture: 20,
		MaxSoilMoisture: 60,
	}
}

func TestDeriveAveragesAndEvents(t *testing.T) {
	base := time.Date(2025, 6, 1, 14, 10, 0, 0, time.UTC)

	readings := []models.SensorReading{
		reading(models.MeasureTemperature, 15, base),
		reading(models.MeasureTemperature, 20, base.Add(5*time.Minute)),
		reading(models.MeasureTemperature, 25, base.Add(10*time.Minute)),
		reading(models.MeasureTemperature, 35, base.Add(15*time.Minute)), // over max
	}

	summary := Derive(readings, testParams())

	require.Len(t, summary.Averages, 1)
	assert.Equal(t, models.MeasureTemperature, summary.Averages[0].Measure)
	assert.InDelta(t, 23.75, summary.Averages[0].Avg, 0.0001)
	assert.Equal(t, 4, summary.Averages[0].Count)

	require.Len(t, summary.Events, 1)
	assert.Equal(t, models.MeasureTemperature, summary.Events[0].Measure)
	assert.Equal(t, 35.0, summary.Events[0].Value)

	require.Len(t, summary.Hourly, 1)
	assert.Equal(t, base.Truncate(time.Hour), summary.Hourly[0].Hour)
	assert.Equal(t, 1, summary.Hourly[0].Count)
}

func TestDeriveBoundaryValuesAreNotAlarms(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	readings := []models.SensorReading{
		reading(models.MeasureHumidity, 40, at), // exactly min
		reading(models.MeasureHumidity, 80, at), // exactly max
		reading(models.MeasureHumidity, 39.9, at),
		reading(models.MeasureHumidity, 80.1, at),
	}

	summary := Derive(readings, testParams())

	require.Len(t, summary.Events, 2)
	assert.Equal(t, 39.9, summary.Events[0].Value)
	assert.Equal(t, 80.1, summary.Events[1].Value)
}

func TestDeriveNilParamsNeverAlarms(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	readings := []models.SensorReading{
		reading(models.MeasureTemperature, 999, at),
		reading(models.MeasureSoilMoisture, -40, at),
	}

	summary := Derive(readings, nil)

	assert.Empty(t, summary.Events)
	assert.Empty(t, summary.Hourly)
	require.Len(t, summary.Averages, 2)
}

func TestDeriveGroupsEventsByHour(t *testing.T) {
	params := testParams()
	hour14 := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	hour15 := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

	readings := []models.SensorReading{
		reading(models.MeasureSoilMoisture, 5, hour14.Add(2*time.Minute)),
		reading(models.MeasureSoilMoisture, 7, hour14.Add(40*time.Minute)),
		reading(models.MeasureSoilMoisture, 90, hour15.Add(1*time.Minute)),
		reading(models.MeasureSoilMoisture, 42, hour15.Add(5*time.Minute)), // in range
	}

	summary := Derive(readings, params)

	require.Len(t, summary.Hourly, 2)
	assert.Equal(t, hour14, summary.Hourly[0].Hour)
	assert.Equal(t, 2, summary.Hourly[0].Count)
	assert.Equal(t, hour15, summary.Hourly[1].Hour)
	assert.Equal(t, 1, summary.Hourly[1].Count)
}

func TestDeriveUnknownMeasureAveragedButNotAlarmed(t *testing.T) {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	readings := []models.SensorReading{
		reading(models.Measure("PRESSURE"), 1013, at),
	}

	summary := Derive(readings, testParams())

	assert.Empty(t, summary.Events)
	require.Len(t, summary.Averages, 1)
	assert.Equal(t, models.Measure("PRESSURE"), summary.Averages[0].Measure)
}

func TestDeriveEmptyInput(t *testing.T) {
	summary := Derive(nil, testParams())

	assert.Empty(t, summary.Averages)
	assert.Empty(t, summary.Hourly)
	assert.Empty(t, summary.Events)
}
