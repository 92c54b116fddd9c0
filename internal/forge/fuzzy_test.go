package forge

import (
	"path/filepath"
	"testing"

	"github.com/dramsec/forge/internal/fuzzer"
)

func TestRunProducesRecords(tt *testing.T) {
	tt.Parallel()

	f, rec := testForge(tt)

	if err := f.Run(); err != nil {
		tt.Fatal(err)
	}

	records := f.Records()
	if len(records) == 0 {
		tt.Fatal("no pattern records after a run")
	}

	if len(rec.firstAddrs) == 0 {
		tt.Error("nothing was hammered")
	}

	for _, record := range records {
		if record.DIMMID != f.DIMMID {
			tt.Errorf("record carries DIMM %d, want %d", record.DIMMID, f.DIMMID)
		}
		if len(record.AddressMappings) != f.ProbesPerPattern {
			tt.Errorf("record has %d mappings, want %d",
				len(record.AddressMappings), f.ProbesPerPattern)
		}

		for i, id := range record.Accesses {
			if id == fuzzer.Placeholder {
				tt.Fatalf("pattern %s slot %d left PLACEHOLDER", record.ID, i)
			}
		}
	}

	// The whole run persists and loads back.
	path := filepath.Join(tt.TempDir(), fuzzer.ArchiveFilename)
	if err := fuzzer.WriteArchive(path, records); err != nil {
		tt.Fatal(err)
	}

	loaded, err := fuzzer.LoadArchive(path)
	if err != nil {
		tt.Fatal(err)
	}
	if len(loaded) != len(records) {
		tt.Errorf("loaded %d records, want %d", len(loaded), len(records))
	}
}

func TestSweepRecordsNothingIntoMapping(tt *testing.T) {
	tt.Parallel()

	f, _ := testForge(tt)

	pattern := archivedPattern("S", []uint64{100}, []int{1})
	mapping := pattern.AddressMappings[0]
	f.rebuildMapping(pattern.HammeringPattern, mapping)

	recorded := len(mapping.BitFlips)

	if err := f.SweepPattern(pattern.HammeringPattern, mapping, 1); err != nil {
		tt.Fatal(err)
	}

	// Sweeping scans in reproducibility mode: whatever it finds is
	// logged, never recorded into the mapping.
	if len(mapping.BitFlips) != recorded {
		tt.Errorf("sweep recorded %d extra flips into the mapping",
			len(mapping.BitFlips)-recorded)
	}
}
