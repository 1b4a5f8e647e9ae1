// Package analytics derives personal records, trend series and aggregate
// statistics from logged workouts. All functions are pure over the
// caller-supplied log list and return zero values for empty input.
package analytics

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/bertomill/hyrox-workout-generator/internal/timefmt"
)

// Entry is one logged workout as the analytics engine sees it. OverallTime
// is in seconds; 0 means the log carries no usable total and is skipped by
// the time-based metrics.
type Entry struct {
	WorkoutID     int
	DateCompleted time.Time
	OverallTime   int
	FitnessLevel  string
	StationTimes  []StationTime
}

// StationTime is a per-station split inside an Entry.
type StationTime struct {
	Name string
	Time string
}

// RecordType distinguishes overall-time records from per-station records.
type RecordType string

const (
	RecordOverall RecordType = "overall"
	RecordStation RecordType = "station"
)

// PersonalRecord is a best time, overall or for one station. Improvement is
// the seconds gained over the previous best and is absent on the first
// record of its kind.
type PersonalRecord struct {
	Type          RecordType `json:"type"`
	Name          string     `json:"name"`
	Time          int        `json:"time"`
	TimeFormatted string     `json:"timeFormatted"`
	AchievedAt    time.Time  `json:"achievedAt"`
	WorkoutID     int        `json:"workoutId"`
	Improvement   *int       `json:"improvement,omitempty"`
}

// DetectPersonalRecords replays the history oldest-first tracking a strict
// running minimum, overall and per station, then keeps only the latest
// record per (type, name) pair, sorted most recent first.
func DetectPersonalRecords(entries []Entry) []PersonalRecord {
	if len(entries) == 0 {
		return nil
	}

	sorted := sortedByDateAscending(entries)

	var records []PersonalRecord

	bestOverall := math.MaxInt
	for _, entry := range sorted {
		if entry.OverallTime <= 0 || entry.OverallTime >= bestOverall {
			continue
		}
		record := PersonalRecord{
			Type:          RecordOverall,
			Name:          "Overall Time",
			Time:          entry.OverallTime,
			TimeFormatted: timefmt.Format(entry.OverallTime),
			AchievedAt:    entry.DateCompleted,
			WorkoutID:     entry.WorkoutID,
		}
		if bestOverall != math.MaxInt {
			improvement := bestOverall - entry.OverallTime
			record.Improvement = &improvement
		}
		bestOverall = entry.OverallTime
		records = append(records, record)
	}

	bestStations := make(map[string]int)
	for _, entry := range sorted {
		for _, station := range entry.StationTimes {
			seconds := timefmt.Parse(station.Time)
			if seconds <= 0 {
				continue
			}
			previous, seen := bestStations[station.Name]
			if seen && seconds >= previous {
				continue
			}
			record := PersonalRecord{
				Type:          RecordStation,
				Name:          station.Name,
				Time:          seconds,
				TimeFormatted: station.Time,
				AchievedAt:    entry.DateCompleted,
				WorkoutID:     entry.WorkoutID,
			}
			if seen {
				improvement := previous - seconds
				record.Improvement = &improvement
			}
			bestStations[station.Name] = seconds
			records = append(records, record)
		}
	}

	// Keep only the most recent record per (type, name) pair.
	type recordKey struct {
		recordType RecordType
		name       string
	}
	seen := make(map[recordKey]bool)
	var unique []PersonalRecord
	for i := len(records) - 1; i >= 0; i-- {
		key := recordKey{records[i].Type, records[i].Name}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, records[i])
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].AchievedAt.After(unique[j].AchievedAt)
	})
	return unique
}

// TrendPoint is one chart point in a performance trend.
type TrendPoint struct {
	Date          string `json:"date"`
	Time          int    `json:"time"`
	TimeFormatted string `json:"timeFormatted"`
	WorkoutID     int    `json:"workoutId"`
	FitnessLevel  string `json:"fitnessLevel"`
}

// trendDateLayout renders dates the way charts label their x axis.
const trendDateLayout = "Jan 2"

// PrepareTrendData takes the limit most recent entries and re-orders them
// oldest to newest for chronological chart rendering.
func PrepareTrendData(entries []Entry, limit int) []TrendPoint {
	if len(entries) == 0 || limit <= 0 {
		return nil
	}

	sorted := sortedByDateAscending(entries)
	if len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}

	points := make([]TrendPoint, 0, len(sorted))
	for _, entry := range sorted {
		points = append(points, TrendPoint{
			Date:          entry.DateCompleted.Format(trendDateLayout),
			Time:          entry.OverallTime,
			TimeFormatted: timefmt.Format(entry.OverallTime),
			WorkoutID:     entry.WorkoutID,
			FitnessLevel:  entry.FitnessLevel,
		})
	}
	return points
}

// Stats summarizes a workout history. AverageTime and BestTime are nil when
// no log carries a time.
type Stats struct {
	TotalWorkouts        int    `json:"totalWorkouts"`
	AverageTime          *int   `json:"averageTime"`
	AverageTimeFormatted string `json:"averageTimeFormatted,omitempty"`
	BestTime             *int   `json:"bestTime"`
	BestTimeFormatted    string `json:"bestTimeFormatted,omitempty"`
	RecentStreak         int    `json:"recentStreak"`
}

// CalculateStats computes aggregate statistics. The now parameter anchors
// the streak calculation.
func CalculateStats(entries []Entry, now time.Time) Stats {
	stats := Stats{TotalWorkouts: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	var sum, count int
	best := math.MaxInt
	for _, entry := range entries {
		if entry.OverallTime <= 0 {
			continue
		}
		sum += entry.OverallTime
		count++
		if entry.OverallTime < best {
			best = entry.OverallTime
		}
	}
	if count > 0 {
		average := int(math.Round(float64(sum) / float64(count)))
		stats.AverageTime = &average
		stats.AverageTimeFormatted = timefmt.Format(average)
		stats.BestTime = &best
		stats.BestTimeFormatted = timefmt.Format(best)
	}

	stats.RecentStreak = RecentStreak(entries, now)
	return stats
}

// RecentStreak counts consecutive calendar days with at least one workout,
// ending today or yesterday. A most recent workout older than yesterday
// means the streak is broken.
func RecentStreak(entries []Entry, now time.Time) int {
	if len(entries) == 0 {
		return 0
	}

	// Distinct local calendar dates, most recent first.
	seen := make(map[time.Time]bool)
	var dates []time.Time
	for _, entry := range entries {
		day := toLocalDate(entry.DateCompleted, now.Location())
		if !seen[day] {
			seen[day] = true
			dates = append(dates, day)
		}
	}
	slices.SortFunc(dates, func(a, b time.Time) int {
		return b.Compare(a)
	})

	today := toLocalDate(now, now.Location())
	yesterday := today.AddDate(0, 0, -1)
	if !dates[0].Equal(today) && !dates[0].Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(dates); i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, -1)) {
			break
		}
		streak++
	}
	return streak
}

// Improvement compares the first and most recent timed workouts.
type Improvement struct {
	Percentage      float64 `json:"percentage"`
	SecondsImproved int     `json:"secondsImproved"`
	Direction       string  `json:"direction"`
}

// CalculateImprovement reports progress between the oldest and newest timed
// entries. It returns nil when fewer than two entries carry a time.
func CalculateImprovement(entries []Entry) *Improvement {
	var timed []Entry
	for _, entry := range entries {
		if entry.OverallTime > 0 {
			timed = append(timed, entry)
		}
	}
	if len(timed) < 2 {
		return nil
	}

	sorted := sortedByDateAscending(timed)
	first := sorted[0].OverallTime
	last := sorted[len(sorted)-1].OverallTime

	improved := first - last
	direction := "neutral"
	if improved > 0 {
		direction = "improved"
	} else if improved < 0 {
		direction = "declined"
	}

	percentage := math.Abs(float64(improved) / float64(first) * 100)
	if improved < 0 {
		improved = -improved
	}
	return &Improvement{
		Percentage:      percentage,
		SecondsImproved: improved,
		Direction:       direction,
	}
}

// Report bundles everything the analytics endpoint serves.
type Report struct {
	Records     []PersonalRecord `json:"records"`
	Trend       []TrendPoint     `json:"trend"`
	Stats       Stats            `json:"stats"`
	Improvement *Improvement     `json:"improvement,omitempty"`
}

// DefaultTrendLimit is how many recent workouts the trend series covers when
// the caller does not say otherwise.
const DefaultTrendLimit = 10

// ComputeReport runs the full analysis over a log list.
func ComputeReport(entries []Entry, now time.Time) Report {
	return Report{
		Records:     DetectPersonalRecords(entries),
		Trend:       PrepareTrendData(entries, DefaultTrendLimit),
		Stats:       CalculateStats(entries, now),
		Improvement: CalculateImprovement(entries),
	}
}

func sortedByDateAscending(entries []Entry) []Entry {
	sorted := slices.Clone(entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateCompleted.Before(sorted[j].DateCompleted)
	})
	return sorted
}

func toLocalDate(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
