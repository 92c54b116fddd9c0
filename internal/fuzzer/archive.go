package fuzzer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dramsec/forge/internal/dram"
)

// ArchiveFilename is where a fuzzing run persists its findings.
const ArchiveFilename = "raw_data.json"

// PatternRecord is the archived form of one pattern together with every
// address mapping it was probed with. The archive is a JSON array of
// these records; the schema only ever grows fields.
type PatternRecord struct {
	*HammeringPattern

	DIMMID          int               `json:"dimm_id"`
	AddressMappings []*AddressMapping `json:"address_mappings"`
}

// BestMapping returns the record's mapping with the most bit flips, or nil
// for a record without mappings.
func (r *PatternRecord) BestMapping() *AddressMapping {
	var best *AddressMapping

	for _, m := range r.AddressMappings {
		if best == nil || m.CountBitFlips() > best.CountBitFlips() {
			best = m
		}
	}

	return best
}

// CountBitFlips sums the flips over all mappings of the record.
func (r *PatternRecord) CountBitFlips() int {
	total := 0
	for _, m := range r.AddressMappings {
		total += m.CountBitFlips()
	}

	return total
}

// WriteArchive persists the records as a JSON array at path.
func WriteArchive(path string, records []*PatternRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("fuzzer: encode archive: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("fuzzer: write archive: %w", err)
	}

	return nil
}

// LoadArchive reads a JSON archive back. Mappings regain their pattern id;
// everything not serialized (victims, row bounds, execution parameters)
// must be recomputed by the caller.
func LoadArchive(path string) ([]*PatternRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fuzzer: read archive: %w", err)
	}

	var records []*PatternRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("fuzzer: decode archive: %w", err)
	}

	for _, rec := range records {
		for _, m := range rec.AddressMappings {
			m.PatternID = rec.ID
			if m.AggressorToAddr == nil {
				m.AggressorToAddr = make(map[AggressorID]dram.Addr)
			}
		}
	}

	return records, nil
}
