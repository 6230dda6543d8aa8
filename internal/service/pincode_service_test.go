package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const pincodeTestData = `[
  {"pincode": "110001", "area": "Connaught Place", "city": "New Delhi", "district": "Central Delhi", "state": "Delhi"},
  {"pincode": "110001", "area": "Janpath", "city": "New Delhi", "district": "Central Delhi", "state": "Delhi"},
  {"pincode": "560001", "area": "MG Road", "city": "Bengaluru", "district": "Bengaluru Urban", "state": "Karnataka"},
  {"pincode": "560034", "area": "Koramangala", "city": "Bengaluru", "district": "Bengaluru Urban", "state": "Karnataka"},
  {"pincode": "400050", "area": "Bandra West", "city": "Mumbai", "district": "Mumbai Suburban", "state": "Maharashtra"}
]`

func setupPincodeServiceTest(t *testing.T) *PincodeService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "addressdata.json")
	if err := os.WriteFile(path, []byte(pincodeTestData), 0o644); err != nil {
		t.Fatalf("write dataset failed: %v", err)
	}
	return NewPincodeService(path)
}

func TestPincodeLookupMultipleLocalities(t *testing.T) {
	s := setupPincodeServiceTest(t)
	records, err := s.Lookup(context.Background(), "110001")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 localities, got %d", len(records))
	}
	for _, record := range records {
		if record.State != "Delhi" {
			t.Fatalf("unexpected record: %+v", record)
		}
	}
}

func TestPincodeLookupFormat(t *testing.T) {
	s := setupPincodeServiceTest(t)
	for _, bad := range []string{"", "12345", "1234567", "01234a", "012345"} {
		if _, err := s.Lookup(context.Background(), bad); !errors.Is(err, ErrPincodeFormat) {
			t.Fatalf("expected ErrPincodeFormat for %q, got %v", bad, err)
		}
	}
	if _, err := s.Lookup(context.Background(), "999999"); !errors.Is(err, ErrPincodeNotFound) {
		t.Fatalf("expected ErrPincodeNotFound, got %v", err)
	}
}

func TestPincodeValidateSoftVerdict(t *testing.T) {
	s := setupPincodeServiceTest(t)

	check, err := s.Validate("560001", "Karnataka")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !check.Valid || check.Warning != "" {
		t.Fatalf("expected clean verdict, got %+v", check)
	}

	// A state mismatch warns but never rejects.
	check, err = s.Validate("110001", "Karnataka")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !check.Valid || check.Warning == "" {
		t.Fatalf("expected warning verdict, got %+v", check)
	}

	if _, err := s.Validate("110001", "Atlantis"); !errors.Is(err, ErrStateUnknown) {
		t.Fatalf("expected ErrStateUnknown, got %v", err)
	}
}

func TestAddressCascade(t *testing.T) {
	s := setupPincodeServiceTest(t)

	states := s.States()
	if len(states) != 3 {
		t.Fatalf("expected 3 states, got %v", states)
	}
	if states[0] != "Delhi" || states[1] != "Karnataka" {
		t.Fatalf("expected sorted states, got %v", states)
	}

	districts := s.Districts("karnataka")
	if len(districts) != 1 || districts[0] != "Bengaluru Urban" {
		t.Fatalf("unexpected districts: %v", districts)
	}

	areas := s.Areas("Karnataka", "Bengaluru Urban")
	if len(areas) != 2 || areas[0] != "Koramangala" || areas[1] != "MG Road" {
		t.Fatalf("unexpected areas: %v", areas)
	}

	if got := s.Areas("Delhi", "South Delhi"); len(got) != 0 {
		t.Fatalf("expected no areas for unknown district, got %v", got)
	}
}

func TestPincodeMissingDatasetLeavesServiceEmpty(t *testing.T) {
	s := NewPincodeService(filepath.Join(t.TempDir(), "missing.json"))
	if data := s.RawData(); len(data) != 0 {
		t.Fatalf("expected empty raw data, got %d bytes", len(data))
	}
	if states := s.States(); len(states) != 0 {
		t.Fatalf("expected no states, got %v", states)
	}
}
