package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}

	if cfg.HTTPAddr != ":3000" {
		t.Fatalf("HTTPAddr = %q, want :3000", cfg.HTTPAddr)
	}
	if cfg.DataFile != "./leads.json" {
		t.Fatalf("DataFile = %q, want ./leads.json", cfg.DataFile)
	}
	if cfg.BusinessStartHour != 8 || cfg.BusinessEndHour != 17 {
		t.Fatalf("business window = %d-%d, want 8-17", cfg.BusinessStartHour, cfg.BusinessEndHour)
	}
	if cfg.BusinessLocation == nil || cfg.BusinessLocation.String() != "Europe/Amsterdam" {
		t.Fatalf("location = %v, want Europe/Amsterdam", cfg.BusinessLocation)
	}
	if len(cfg.WeekendDays) != 2 || cfg.WeekendDays[0] != time.Saturday || cfg.WeekendDays[1] != time.Sunday {
		t.Fatalf("weekend = %v, want [Saturday Sunday]", cfg.WeekendDays)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("BUSINESS_TIMEZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown timezone")
	}
}

func TestLoadRejectsEmptyBusinessWindow(t *testing.T) {
	t.Setenv("BUSINESS_START_HOUR", "17")
	t.Setenv("BUSINESS_END_HOUR", "17")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted start hour >= end hour")
	}

	t.Setenv("BUSINESS_START_HOUR", "18")
	t.Setenv("BUSINESS_END_HOUR", "9")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an inverted window")
	}
}

func TestLoadRejectsOutOfRangeHours(t *testing.T) {
	t.Setenv("BUSINESS_START_HOUR", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted a negative start hour")
	}

	t.Setenv("BUSINESS_START_HOUR", "8")
	t.Setenv("BUSINESS_END_HOUR", "25")
	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an end hour past 24")
	}
}

func TestLoadRejectsUnknownWeekendDay(t *testing.T) {
	t.Setenv("BUSINESS_WEEKEND_DAYS", "Saturday,Funday")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an unknown weekday name")
	}
}

func TestLoadParsesWeekendDays(t *testing.T) {
	t.Setenv("BUSINESS_WEEKEND_DAYS", "friday, Saturday ,SUNDAY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []time.Weekday{time.Friday, time.Saturday, time.Sunday}
	if len(cfg.WeekendDays) != len(want) {
		t.Fatalf("weekend = %v, want %v", cfg.WeekendDays, want)
	}
	for i, day := range want {
		if cfg.WeekendDays[i] != day {
			t.Fatalf("weekend = %v, want %v", cfg.WeekendDays, want)
		}
	}
}

func TestLoadRejectsCredentialsWithWildcardOrigin(t *testing.T) {
	t.Setenv("CORS_ALLOW_ALL", "true")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted credentials with a wildcard origin")
	}
}
