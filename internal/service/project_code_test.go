package service

import (
	"errors"
	"testing"
	"time"

	"github.com/themis-api/internal/domain"
)

func date(s string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestFormatProjectCode(t *testing.T) {
	tests := []struct {
		name       string
		initiation *time.Time
		lastCode   string
		want       string
	}{
		{"first in group", date("2024-01-01"), "", "SZ-20240101-001"},
		{"next in group", date("2024-01-01"), "SZ-20240101-001", "SZ-20240101-002"},
		{"no initiation date", nil, "", "SZ-99991231-001"},
		{"no initiation date next", nil, "SZ-99991231-007", "SZ-99991231-008"},
		{"sequence past 999", date("2024-01-01"), "SZ-20240101-999", "SZ-20240101-1000"},
		{"imported code with extra dashes", date("2023-05-06"), "SZ-A-B-20230506-041", "SZ-20230506-042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatProjectCode("SZ", tt.initiation, tt.lastCode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFormatProjectCode_MalformedSuffix(t *testing.T) {
	for _, last := range []string{"SZ-20240101-abc", "SZ-20240101-", "LEGACY", "7", "042"} {
		_, err := FormatProjectCode("SZ", date("2024-01-01"), last)
		if !errors.Is(err, domain.ErrMalformedProjectCode) {
			t.Errorf("%q: expected ErrMalformedProjectCode, got %v", last, err)
		}
	}
}

func TestValidProjectCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"SZ-20240101-001", true},
		{"SZ-99991231-1000", true},
		{"HF-A-20240101-012", true},
		{"SZ-20240101-01", false},
		{"SZ-2024011-001", false},
		{"-20240101-001", false},
		{"ABC", false},
		{"LEGACY-7", false},
		{"SZ-20240101-x01", false},
	}
	for _, tt := range tests {
		if got := ValidProjectCode(tt.code); got != tt.want {
			t.Errorf("ValidProjectCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestDefaultCompletionDate(t *testing.T) {
	if got := DefaultCompletionDate(nil); got != nil {
		t.Errorf("expected nil, got %v", got)
	}

	got := DefaultCompletionDate(date("2024-01-01"))
	if got == nil || !got.Equal(*date("2024-03-31")) {
		t.Errorf("expected 2024-03-31, got %v", got)
	}
}

func TestParseDate(t *testing.T) {
	empty := ""
	if got, err := parseDate(&empty); got != nil || err != nil {
		t.Errorf("empty string: expected nil, nil; got %v, %v", got, err)
	}

	bad := "01/02/2024"
	if _, err := parseDate(&bad); err == nil {
		t.Error("expected error for wrong layout")
	}

	s := "2024-02-29"
	got, err := parseDate(&s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.UTC || *FormatDate(got) != s {
		t.Errorf("expected %s UTC, got %v", s, got)
	}
}
