package codec

import (
	"testing"
	"time"
)

func TestParseTime_Formats(t *testing.T) {
	cases := map[string]time.Time{
		"2025-01-01T00:00:00Z":           time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"2025-01-01T09:00:00+09:00":      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		"2025-01-01T00:00:00.123456789Z": time.Date(2025, 1, 1, 0, 0, 0, 123456789, time.UTC),
		"2025-01-01":                     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for in, want := range cases {
		got, err := ParseTime(in)
		if err != nil {
			t.Fatalf("%q: unexpected err: %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("%q: got %v want %v", in, got, want)
		}
	}
}

func TestParseTime_RejectsAmbiguous(t *testing.T) {
	for _, in := range []string{"", "01/02/2025", "Jan 2 2025", "2025-13-01", "yesterday"} {
		if _, err := ParseTime(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}

func TestFormatTime_RoundTrip(t *testing.T) {
	in := "2025-01-01T00:00:00.5Z"
	got, err := ParseTime(in)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if out := FormatTime(got); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestTimeFromMillis(t *testing.T) {
	got := TimeFromMillis(1500)
	if !got.Equal(time.Unix(1, 500*int64(time.Millisecond))) {
		t.Fatalf("unexpected time: %v", got)
	}
	if !TimeFromMillis(0).Equal(time.Unix(0, 0)) {
		t.Fatalf("epoch mismatch")
	}
}
