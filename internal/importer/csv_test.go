package importer

import (
	"reflect"
	"strings"
	"testing"

	"github.com/meltforce/cadax/internal/models"
)

// TestParseCSV verifies well-formed lines parse, the header is skipped, and
// malformed lines are counted rather than aborting the file.
func TestParseCSV(t *testing.T) {
	input := strings.Join([]string{
		"date,muscle_groups",
		"2025-03-10,Chest|Triceps",
		"2025-03-11,Back",
		"",
		"not-a-date,Chest",
		"2025-03-12,Chest|Kneecaps",
		"2025-03-12",
		"2025-03-13,|",
		"2025-03-14, Legs | Core ",
	}, "\n")

	records, skipped, err := ParseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}

	want := []models.WorkoutRecord{
		{Date: "2025-03-10", MuscleGroups: []string{"Chest", "Triceps"}},
		{Date: "2025-03-11", MuscleGroups: []string{"Back"}},
		{Date: "2025-03-14", MuscleGroups: []string{"Legs", "Core"}},
	}
	if !reflect.DeepEqual(records, want) {
		t.Errorf("records = %+v, want %+v", records, want)
	}
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}
}

// TestParseCSVNoHeader verifies a file without a header line parses from the
// first line.
func TestParseCSVNoHeader(t *testing.T) {
	records, skipped, err := ParseCSV(strings.NewReader("2025-01-06,Legs\n"))
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(records) != 1 || records[0].Date != "2025-01-06" {
		t.Errorf("records = %+v", records)
	}
}

// TestMerge verifies duplicate dates collapse into one record with the union
// of muscle groups, sorted by date.
func TestMerge(t *testing.T) {
	merged := Merge([]models.WorkoutRecord{
		{Date: "2025-03-11", MuscleGroups: []string{"Back"}},
		{Date: "2025-03-10", MuscleGroups: []string{"Chest"}},
		{Date: "2025-03-10", MuscleGroups: []string{"Triceps", "Chest"}},
	})

	want := []models.WorkoutRecord{
		{Date: "2025-03-10", MuscleGroups: []string{"Chest", "Triceps"}},
		{Date: "2025-03-11", MuscleGroups: []string{"Back"}},
	}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("merged = %+v, want %+v", merged, want)
	}
}

// TestMergeEmpty verifies merging no records yields an empty slice.
func TestMergeEmpty(t *testing.T) {
	if got := Merge(nil); len(got) != 0 {
		t.Errorf("Merge(nil) = %+v, want empty", got)
	}
}
