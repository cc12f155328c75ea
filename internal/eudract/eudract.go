// Package eudract loads trial records from an EudraCT register export.
//
// The register has shipped two vintages of the same export: an older one
// keyed by protocol section codes ("E.1.1 Medical condition(s) being
// investigated") and a newer one keyed by display labels ("Medical
// condition"). Files in the wild mix both, so every field is looked up under
// all of its known keys.
package eudract

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// MaxRecords caps a load; anything beyond it is ignored.
const MaxRecords = 500

// Record is one EudraCT trial flattened to the fields the dashboard uses.
type Record struct {
	EudractNumber string `json:"eudract_number"`
	Condition     string `json:"condition"`
	Sponsor       string `json:"sponsor"`
	Enrollment    int64  `json:"enrollment"`
	TrialProtocol string `json:"trial_protocol"`
	StartDate     string `json:"start_date"` // date the record was first entered in the register
	EndDate       string `json:"end_date"`   // global end of trial
}

var (
	numberKeys     = []string{"EudraCT Number"}
	conditionKeys  = []string{"E.1.1 Medical condition(s) being investigated", "Medical condition"}
	sponsorKeys    = []string{"B.1.1 Name of Sponsor", "Sponsor Name"}
	enrollmentKeys = []string{"F.4.2.2 In the whole clinical trial", "Enrolment"}
	protocolKeys   = []string{"Trial protocol"}
	startDateKeys  = []string{"Date on which this record was first entered in the EudraCT database"}
	endDateKeys    = []string{"P. Date of the global end of the trial"}
)

// LoadFile reads and parses the export at path. A missing file surfaces as
// fs.ErrNotExist so callers can distinguish it from a malformed one.
func LoadFile(path string, logger *slog.Logger) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, logger)
}

// Parse decodes an export, capping the result at MaxRecords.
func Parse(data []byte, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var entries []map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("invalid EudraCT data format: %w", err)
	}
	if len(entries) > MaxRecords {
		entries = entries[:MaxRecords]
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		number := stringField(entry, numberKeys)
		records = append(records, Record{
			EudractNumber: number,
			Condition:     stringField(entry, conditionKeys),
			Sponsor:       stringField(entry, sponsorKeys),
			Enrollment:    enrollmentField(entry, number, logger),
			TrialProtocol: stringField(entry, protocolKeys),
			StartDate:     stringField(entry, startDateKeys),
			EndDate:       stringField(entry, endDateKeys),
		})
	}
	return records, nil
}

func stringField(entry map[string]any, keys []string) string {
	for _, key := range keys {
		if s, ok := entry[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// enrollmentField accepts plain numbers and digit-only strings. Anything
// else counts as zero.
func enrollmentField(entry map[string]any, number string, logger *slog.Logger) int64 {
	for _, key := range enrollmentKeys {
		value, ok := entry[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case float64:
			if v < 0 {
				return 0
			}
			return int64(v)
		case string:
			if v == "" {
				continue
			}
			if !isDigits(v) {
				logger.Warn("invalid enrollment value, using 0",
					slog.String("value", v),
					slog.String("eudract_number", number))
				return 0
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				logger.Warn("invalid enrollment value, using 0",
					slog.String("value", v),
					slog.String("eudract_number", number))
				return 0
			}
			return n
		}
	}
	return 0
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
