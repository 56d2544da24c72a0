package importer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/meltforce/cadax/internal/models"
	"github.com/meltforce/cadax/internal/timeline"
)

// ParseCSV reads workout records from a CSV stream. Each line is
// "date,group|group|..." with the date in YYYY-MM-DD form. A header line
// starting with "date" is skipped. Malformed lines are counted, not fatal.
func ParseCSV(r io.Reader) ([]models.WorkoutRecord, int, error) {
	var records []models.WorkoutRecord
	skipped := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(strings.ToLower(line), "date") {
			continue
		}

		rec, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return records, skipped, fmt.Errorf("reading csv: %w", err)
	}

	return records, skipped, nil
}

func parseLine(line string) (models.WorkoutRecord, bool) {
	date, groupsRaw, found := strings.Cut(line, ",")
	if !found {
		return models.WorkoutRecord{}, false
	}

	date = strings.TrimSpace(date)
	if _, err := timeline.ParseDate(date); err != nil {
		return models.WorkoutRecord{}, false
	}

	var groups []string
	for _, g := range strings.Split(groupsRaw, "|") {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		if !models.ValidMuscleGroup(g) {
			return models.WorkoutRecord{}, false
		}
		groups = append(groups, g)
	}
	if len(groups) == 0 {
		return models.WorkoutRecord{}, false
	}

	return models.WorkoutRecord{Date: date, MuscleGroups: groups}, true
}

// Merge collapses records sharing a date into one record with the union of
// their muscle groups, sorted by date.
func Merge(records []models.WorkoutRecord) []models.WorkoutRecord {
	byDate := make(map[string]map[string]struct{})
	for _, rec := range records {
		if byDate[rec.Date] == nil {
			byDate[rec.Date] = make(map[string]struct{})
		}
		for _, g := range rec.MuscleGroups {
			byDate[rec.Date][g] = struct{}{}
		}
	}

	merged := make([]models.WorkoutRecord, 0, len(byDate))
	for date, set := range byDate {
		groups := make([]string, 0, len(set))
		for g := range set {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		merged = append(merged, models.WorkoutRecord{Date: date, MuscleGroups: groups})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Date < merged[j].Date })
	return merged
}
