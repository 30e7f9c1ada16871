package promapi

import (
	"testing"
	"time"
)

func TestParseTime_Now(t *testing.T) {
	before := time.Now()
	got, err := ParseTime("now")
	if err != nil {
		t.Fatalf("ParseTime(now): %v", err)
	}
	if got.Before(before.Add(-time.Second)) || got.After(before.Add(time.Second)) {
		t.Errorf("expected roughly current time, got %v", got)
	}
}

func TestParseTime_NowMinusDuration(t *testing.T) {
	got, err := ParseTime("now-1h")
	if err != nil {
		t.Fatalf("ParseTime(now-1h): %v", err)
	}
	want := time.Now().Add(-time.Hour)
	if diff := got.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("expected ~1h ago, off by %v", diff)
	}
}

func TestParseTime_NowPlusDuration(t *testing.T) {
	got, err := ParseTime("now+30m")
	if err != nil {
		t.Fatalf("ParseTime(now+30m): %v", err)
	}
	want := time.Now().Add(30 * time.Minute)
	if diff := got.Sub(want); diff < -time.Second || diff > time.Second {
		t.Errorf("expected ~30m ahead, off by %v", diff)
	}
}

func TestParseTime_RFC3339(t *testing.T) {
	got, err := ParseTime("2024-05-01T12:00:00Z")
	if err != nil {
		t.Fatalf("ParseTime(RFC3339): %v", err)
	}
	want := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestParseTime_UnixSeconds(t *testing.T) {
	got, err := ParseTime("1714564800")
	if err != nil {
		t.Fatalf("ParseTime(unix): %v", err)
	}
	if got.Unix() != 1714564800 {
		t.Errorf("expected unix 1714564800, got %d", got.Unix())
	}
}

func TestParseTime_UnixMillis(t *testing.T) {
	got, err := ParseTime("1714564800500")
	if err != nil {
		t.Fatalf("ParseTime(unix ms): %v", err)
	}
	if got.UnixMilli() != 1714564800500 {
		t.Errorf("expected unix ms 1714564800500, got %d", got.UnixMilli())
	}
}

func TestParseTime_Invalid(t *testing.T) {
	for _, tok := range []string{"", "yesterday", "now-", "now~1h", "nowhere"} {
		if _, err := ParseTime(tok); err == nil {
			t.Errorf("ParseTime(%q): expected error", tok)
		}
	}
}
