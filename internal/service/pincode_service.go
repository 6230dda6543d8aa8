package service

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/giftgalore/api/internal/cache"
	"github.com/giftgalore/api/internal/logger"
)

const pincodeCacheTTL = 12 * time.Hour

// AddressRecord is one row of the serviceable-area dataset. A pincode can
// appear on several rows when it covers multiple localities.
type AddressRecord struct {
	Pincode  string `json:"pincode"`
	Area     string `json:"area"`
	City     string `json:"city"`
	District string `json:"district"`
	State    string `json:"state"`
}

// PincodeCheck is the soft validation verdict for a pincode/state pair.
type PincodeCheck struct {
	Valid   bool   `json:"valid"`
	Warning string `json:"warning,omitempty"`
}

// statePincodePrefixes maps a state to the postal-circle leading digits its
// pincodes fall under. Coarse on purpose: the check only flags pairs that
// cannot possibly match, it never guarantees deliverability.
var statePincodePrefixes = map[string][]string{
	"delhi":             {"11"},
	"haryana":           {"12", "13"},
	"punjab":            {"14", "15", "16"},
	"himachal pradesh":  {"17"},
	"jammu and kashmir": {"18", "19"},
	"uttar pradesh":     {"2"},
	"uttarakhand":       {"24", "26"},
	"rajasthan":         {"3"},
	"gujarat":           {"36", "37", "38", "39"},
	"maharashtra":       {"4"},
	"goa":               {"403"},
	"madhya pradesh":    {"45", "46", "47", "48"},
	"chhattisgarh":      {"49"},
	"telangana":         {"50"},
	"andhra pradesh":    {"51", "52", "53"},
	"karnataka":         {"5"},
	"tamil nadu":        {"6"},
	"kerala":            {"67", "68", "69"},
	"west bengal":       {"7"},
	"odisha":            {"75", "76", "77"},
	"assam":             {"78"},
	"bihar":             {"8"},
	"jharkhand":         {"81", "82", "83"},
}

// PincodeService answers serviceable-area questions from an in-memory copy
// of the address dataset.
type PincodeService struct {
	mu       sync.RWMutex
	records  []AddressRecord
	raw      []byte
	dataPath string
}

// NewPincodeService loads the dataset from dataPath. A missing or broken
// file leaves the service empty rather than failing startup.
func NewPincodeService(dataPath string) *PincodeService {
	s := &PincodeService{dataPath: dataPath}
	if err := s.Reload(); err != nil {
		logger.Warnw("pincode_dataset_load_failed", "path", dataPath, "error", err)
	}
	return s
}

// Reload re-reads the dataset file.
func (s *PincodeService) Reload() error {
	raw, err := os.ReadFile(s.dataPath)
	if err != nil {
		return err
	}
	var records []AddressRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = records
	s.raw = raw
	s.mu.Unlock()
	logger.Infow("pincode_dataset_loaded", "path", s.dataPath, "records", len(records))
	return nil
}

// RawData returns the dataset bytes for the public JSON endpoint.
func (s *PincodeService) RawData() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Lookup finds every locality served under a six-digit pincode. The dataset
// is small enough that a linear scan beats maintaining an index.
func (s *PincodeService) Lookup(ctx context.Context, pincode string) ([]AddressRecord, error) {
	pincode = strings.TrimSpace(pincode)
	if !isSixDigits(pincode) {
		return nil, ErrPincodeFormat
	}

	cacheKey := "pincode:" + pincode
	var cached []AddressRecord
	if hit, err := cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	s.mu.RLock()
	var matches []AddressRecord
	for _, record := range s.records {
		if record.Pincode == pincode {
			matches = append(matches, record)
		}
	}
	s.mu.RUnlock()

	if len(matches) == 0 {
		return nil, ErrPincodeNotFound
	}
	if err := cache.SetJSON(ctx, cacheKey, matches, pincodeCacheTTL); err != nil {
		logger.Warnw("pincode_cache_set_failed", "pincode", pincode, "error", err)
	}
	return matches, nil
}

// Validate checks a pincode/state pair against the postal-circle prefix
// table. A mismatch is a warning, never a hard failure, because the table is
// deliberately coarse.
func (s *PincodeService) Validate(pincode, state string) (*PincodeCheck, error) {
	pincode = strings.TrimSpace(pincode)
	if !isSixDigits(pincode) {
		return nil, ErrPincodeFormat
	}
	prefixes, ok := statePincodePrefixes[strings.ToLower(strings.TrimSpace(state))]
	if !ok {
		return nil, ErrStateUnknown
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(pincode, prefix) {
			return &PincodeCheck{Valid: true}, nil
		}
	}
	// Soft verdict: a well-formed pincode stays valid, the mismatch is only
	// surfaced as a warning.
	return &PincodeCheck{
		Valid:   true,
		Warning: "pincode does not match the usual range for this state",
	}, nil
}

// States lists the states present in the dataset.
func (s *PincodeService) States() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueSorted(s.records, func(r AddressRecord) (string, bool) {
		return r.State, true
	})
}

// Districts lists the districts of one state.
func (s *PincodeService) Districts(state string) []string {
	state = strings.ToLower(strings.TrimSpace(state))
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueSorted(s.records, func(r AddressRecord) (string, bool) {
		return r.District, strings.ToLower(r.State) == state
	})
}

// Areas lists the localities of one district.
func (s *PincodeService) Areas(state, district string) []string {
	state = strings.ToLower(strings.TrimSpace(state))
	district = strings.ToLower(strings.TrimSpace(district))
	s.mu.RLock()
	defer s.mu.RUnlock()
	return uniqueSorted(s.records, func(r AddressRecord) (string, bool) {
		return r.Area, strings.ToLower(r.State) == state && strings.ToLower(r.District) == district
	})
}

func uniqueSorted(records []AddressRecord, pick func(AddressRecord) (string, bool)) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, record := range records {
		value, ok := pick(record)
		if !ok || value == "" {
			continue
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// isSixDigits accepts exactly six digits with a non-zero leading digit, the
// shape of every Indian pincode.
func isSixDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
