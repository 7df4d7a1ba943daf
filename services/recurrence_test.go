package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keeper/models"
)

func collect(freq models.Frequency, interval int, start, until time.Time) []time.Time {
	var out []time.Time
	for t := range Occurrences(freq, interval, start, until) {
		out = append(out, t)
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccurrencesDaily(t *testing.T) {
	got := collect(models.FrequencyDay, 1, day(2024, time.March, 1), day(2024, time.March, 5))
	want := []time.Time{
		day(2024, time.March, 1),
		day(2024, time.March, 2),
		day(2024, time.March, 3),
		day(2024, time.March, 4),
		day(2024, time.March, 5),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesWeeklyWithInterval(t *testing.T) {
	got := collect(models.FrequencyWeek, 2, day(2024, time.March, 4), day(2024, time.April, 4))
	want := []time.Time{
		day(2024, time.March, 4),
		day(2024, time.March, 18),
		day(2024, time.April, 1),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesMonthlyClampsToShortMonths(t *testing.T) {
	// A Jan 31 monthly series lands on the last valid day of short
	// months and returns to the 31st when the month allows it.
	got := collect(models.FrequencyMonth, 1, day(2024, time.January, 31), day(2024, time.April, 30))
	want := []time.Time{
		day(2024, time.January, 31),
		day(2024, time.February, 29), // leap year
		day(2024, time.March, 31),
		day(2024, time.April, 30),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesMonthlyClampNonLeapYear(t *testing.T) {
	got := collect(models.FrequencyMonth, 1, day(2023, time.January, 31), day(2023, time.March, 31))
	want := []time.Time{
		day(2023, time.January, 31),
		day(2023, time.February, 28),
		day(2023, time.March, 31),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesYearlyClampsLeapDay(t *testing.T) {
	got := collect(models.FrequencyYear, 1, day(2024, time.February, 29), day(2026, time.December, 31))
	want := []time.Time{
		day(2024, time.February, 29),
		day(2025, time.February, 28),
		day(2026, time.February, 28),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesDeterministic(t *testing.T) {
	first := collect(models.FrequencyMonth, 3, day(2024, time.January, 15), day(2025, time.June, 1))
	second := collect(models.FrequencyMonth, 3, day(2024, time.January, 15), day(2025, time.June, 1))
	assert.Equal(t, first, second)
}

func TestOccurrencesRestartable(t *testing.T) {
	seq := Occurrences(models.FrequencyDay, 1, day(2024, time.March, 1), day(2024, time.March, 3))

	var firstPass, secondPass []time.Time
	for v := range seq {
		firstPass = append(firstPass, v)
	}
	for v := range seq {
		secondPass = append(secondPass, v)
	}
	assert.Equal(t, firstPass, secondPass)
	assert.Len(t, firstPass, 3)
}

func TestOccurrencesBounds(t *testing.T) {
	start := day(2024, time.January, 10)
	until := day(2024, time.December, 31)
	got := collect(models.FrequencyMonth, 2, start, until)

	require.NotEmpty(t, got)
	assert.Equal(t, start, got[0])
	for _, occ := range got {
		assert.False(t, occ.After(until), "occurrence %v exceeds the end bound", occ)
	}
}

func TestOccurrencesInclusiveEnd(t *testing.T) {
	// An occurrence landing exactly on the end bound is included.
	got := collect(models.FrequencyWeek, 1, day(2024, time.March, 1), day(2024, time.March, 8))
	want := []time.Time{
		day(2024, time.March, 1),
		day(2024, time.March, 8),
	}
	assert.Equal(t, want, got)
}

func TestOccurrencesEmptyWhenStartAfterEnd(t *testing.T) {
	got := collect(models.FrequencyDay, 1, day(2024, time.May, 1), day(2024, time.April, 1))
	assert.Empty(t, got)
}

func TestOccurrencesEmptyForNonPositiveInterval(t *testing.T) {
	assert.Empty(t, collect(models.FrequencyDay, 0, day(2024, time.March, 1), day(2024, time.March, 5)))
	assert.Empty(t, collect(models.FrequencyDay, -1, day(2024, time.March, 1), day(2024, time.March, 5)))
}

func TestOccurrencesPreservesTimeOfDay(t *testing.T) {
	start := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)
	got := collect(models.FrequencyMonth, 1, start, time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC))
	require.Len(t, got, 2)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC), got[1])
}
