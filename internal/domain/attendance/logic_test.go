package attendance

import (
	"errors"
	"testing"
	"time"
)

func TestClockInStatus(t *testing.T) {
	cases := []struct {
		name         string
		now          time.Time
		wantStatus   string
		wantRecorded string
	}{
		{name: "early", now: time.Date(2025, 3, 3, 8, 41, 12, 0, time.UTC), wantStatus: StatusNormal, wantRecorded: "09:00:00"},
		{name: "exactly on time", now: time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC), wantStatus: StatusNormal, wantRecorded: "09:00:00"},
		{name: "one second late", now: time.Date(2025, 3, 3, 9, 0, 1, 0, time.UTC), wantStatus: StatusLate, wantRecorded: "09:00:01"},
		{name: "late", now: time.Date(2025, 3, 3, 10, 15, 30, 0, time.UTC), wantStatus: StatusLate, wantRecorded: "10:15:30"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			status, recorded := ClockInStatus(tc.now, DefaultWorkdayStart)
			if status != tc.wantStatus || recorded != tc.wantRecorded {
				t.Fatalf("got %s %s, want %s %s", status, recorded, tc.wantStatus, tc.wantRecorded)
			}
		})
	}
}

func TestClockInStatusCustomStart(t *testing.T) {
	status, recorded := ClockInStatus(time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC), "10:00")
	if status != StatusNormal || recorded != "10:00:00" {
		t.Fatalf("got %s %s", status, recorded)
	}
}

func TestNormalizeClockTime(t *testing.T) {
	got, err := NormalizeClockTime("09:05")
	if err != nil || got != "09:05:00" {
		t.Fatalf("expected 09:05:00, got %q (%v)", got, err)
	}
	got, err = NormalizeClockTime("18:30:15")
	if err != nil || got != "18:30:15" {
		t.Fatalf("expected 18:30:15, got %q (%v)", got, err)
	}
	if _, err := NormalizeClockTime("25:00"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected invalid time, got %v", err)
	}
	if _, err := NormalizeClockTime("nine"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected invalid time, got %v", err)
	}
}

func TestWorkDuration(t *testing.T) {
	cases := []struct {
		in, out string
		want    string
	}{
		{"09:00:00", "18:00:00", "8h 0m"},
		{"09:00:00", "12:59:00", "3h 59m"},
		{"09:00:00", "13:00:00", "3h 0m"},
		{"09:00", "18:30", "8h 30m"},
		{"22:00:00", "06:00:00", "7h 0m"},
	}
	for _, tc := range cases {
		d, ok := WorkDuration(tc.in, tc.out)
		if !ok {
			t.Fatalf("%s-%s: unexpected parse failure", tc.in, tc.out)
		}
		if got := FormatDuration(d); got != tc.want {
			t.Fatalf("%s-%s: got %s want %s", tc.in, tc.out, got, tc.want)
		}
	}
	if _, ok := WorkDuration("bad", "18:00:00"); ok {
		t.Fatal("expected parse failure")
	}
	if durationLabel("09:00:00", "") != "" {
		t.Fatal("open record should have no duration")
	}
}

func TestMonthRange(t *testing.T) {
	from, to, err := MonthRange(2025, 12, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !from.Equal(time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)) || !to.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %v - %v", from, to)
	}
	if _, _, err := MonthRange(2025, 13, time.UTC); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected invalid month, got %v", err)
	}
}

func TestBuildBoard(t *testing.T) {
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	sources := []boardSource{
		{BoardRow: BoardRow{EmployeeID: "25HR0001", ClockIn: "09:00:00", Status: StatusNormal}},
		{BoardRow: BoardRow{EmployeeID: "25HR0002", ClockIn: "09:00:00", ClockOut: "18:00:00", Status: StatusNormal}},
		{BoardRow: BoardRow{EmployeeID: "25DV0001"}, RequestType: "연차"},
		{BoardRow: BoardRow{EmployeeID: "25DV0002"}, RequestType: BoardOutside},
		{BoardRow: BoardRow{EmployeeID: "25DV0003"}, RequestType: BoardTrip},
		{BoardRow: BoardRow{EmployeeID: "25SL0001"}},
	}
	board := BuildBoard(day, sources)
	if board.Total != 6 {
		t.Fatalf("expected 6 rows, got %d", board.Total)
	}
	want := map[string]int{BoardPresent: 2, BoardLeave: 1, BoardOutside: 1, BoardTrip: 1, BoardAbsent: 1}
	for state, n := range want {
		if board.Counts[state] != n {
			t.Fatalf("%s: expected %d, got %d", state, n, board.Counts[state])
		}
	}
	if board.Rows[5].Status != BoardAbsent {
		t.Fatalf("missing record should show absent status, got %q", board.Rows[5].Status)
	}
}
