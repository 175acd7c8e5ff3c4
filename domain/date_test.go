package domain

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2026, time.March, 9)
	data, err := sonic.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-03-09"` {
		t.Fatalf("unexpected encoding: %s", data)
	}
	var back Date
	if err := sonic.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDateUnmarshalNull(t *testing.T) {
	var d Date
	if err := sonic.Unmarshal([]byte("null"), &d); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !d.IsZero() {
		t.Fatalf("expected zero date, got %v", d)
	}
	if err := sonic.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDaysSince(t *testing.T) {
	base := NewDate(2026, time.January, 31)
	cases := []struct {
		other Date
		want  int
	}{
		{NewDate(2026, time.January, 31), 0},
		{NewDate(2026, time.January, 1), 30},
		{NewDate(2025, time.December, 31), 31},
		{NewDate(2026, time.February, 5), -5},
	}
	for _, tc := range cases {
		if got := base.DaysSince(tc.other); got != tc.want {
			t.Fatalf("DaysSince(%v) = %d, want %d", tc.other, got, tc.want)
		}
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	if err := d.Scan("2026-07-04"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2026-07-04" {
		t.Fatalf("unexpected date: %v", d)
	}
	if err := d.Scan(time.Date(2026, time.July, 5, 23, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("scan time: %v", err)
	}
	if d.String() != "2026-07-05" {
		t.Fatalf("unexpected date: %v", d)
	}
	if err := d.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("expected nil to reset the date")
	}
	if err := d.Scan(42); err == nil {
		t.Fatal("expected unsupported type to error")
	}
}
