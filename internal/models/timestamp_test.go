package models

import (
	"testing"
	"time"
)

func TestParseTimestamp_OffsetForms(t *testing.T) {
	withColon, err := ParseTimestamp("2015-04-01T12:34:56.789+09:00")
	if err != nil {
		t.Fatalf("colon form: %v", err)
	}
	without, err := ParseTimestamp("2015-04-01T12:34:56.789+0900")
	if err != nil {
		t.Fatalf("non-colon form: %v", err)
	}
	if !withColon.Equal(without) {
		t.Errorf("%v != %v", withColon, without)
	}
}

func TestParseTimestamp_Variants(t *testing.T) {
	want := time.Date(2015, 4, 1, 3, 34, 56, 0, time.UTC)
	for _, s := range []string{
		"2015-04-01T03:34:56Z",
		"2015-04-01T03:34:56.000Z",
		"2015-04-01T12:34:56+09:00",
		"2015-04-01T12:34:56+0900",
		"2015-03-31T22:34:56.000-05:00",
		"2015-03-31T22:34:56.000-0500",
	} {
		got, err := ParseTimestamp(s)
		if err != nil {
			t.Errorf("ParseTimestamp(%q): %v", s, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, s := range []string{"", "2015-04-01", "2015-04-01 12:34:56", "2015-04-01T12:34:56.789+9"} {
		if _, err := ParseTimestamp(s); err == nil {
			t.Errorf("ParseTimestamp(%q) should fail", s)
		}
	}
}
