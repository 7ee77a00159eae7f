package table

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRename(t *testing.T) {
	in := Table{
		Columns: []string{"Date_Time (LST/LDT)", "Event", "Speed (knots)"},
		Rows: [][]string{
			{"2024-01-01 05:00", "Max Flood", "2.0"},
			{"2024-01-01 08:12", "Slack", ""},
		},
	}

	got, err := in.Rename(map[string]string{
		"Date_Time (LST/LDT)": "time",
		"Event":               "stage",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := Table{
		Columns: []string{"time", "stage", "Speed (knots)"},
		Rows:    in.Rows,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("bad rename (-want,+got):\n%s", diff)
	}

	// the input is untouched
	if in.Columns[0] != "Date_Time (LST/LDT)" {
		t.Errorf("rename modified its input: %v", in.Columns)
	}
}

func TestRenameMissingColumn(t *testing.T) {
	in := Table{Columns: []string{"Event", "Speed (knots)"}}

	_, err := in.Rename(map[string]string{
		"Date_Time (LST/LDT)": "time",
		"Event":               "stage",
	})

	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("got %v, wanted a MissingColumnError", err)
	}
	if missing.Column != "Date_Time (LST/LDT)" {
		t.Errorf("got missing column %q", missing.Column)
	}
}

func TestValue(t *testing.T) {
	tbl := Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]string{{"1", "2"}},
	}
	table := []struct {
		col  int
		want string
	}{{0, "1"}, {1, "2"}, {2, ""}, {-1, ""}}

	for _, tc := range table {
		if got := tbl.Value(0, tc.col); got != tc.want {
			t.Errorf("Value(0, %d) = %q, wanted %q", tc.col, got, tc.want)
		}
	}
}
