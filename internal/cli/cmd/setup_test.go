package cmd

import (
	"io"
	"testing"

	"github.com/go-test/deep"

	"github.com/dramsec/forge/internal/log"
)

func quietTestLogger() *log.Logger {
	return log.NewFormattedLogger(io.Discard)
}

func TestParseGeometry(tt *testing.T) {
	tt.Parallel()

	tt.Run("triple", func(t *testing.T) {
		rc := runConfig{geometry: "2,4,4"}

		ranks, bankGroups, banks, err := rc.parseGeometry()
		if err != nil {
			t.Fatal(err)
		}

		if ranks != 2 || bankGroups != 4 || banks != 4 {
			t.Errorf("got %d,%d,%d, want 2,4,4", ranks, bankGroups, banks)
		}
	})

	tt.Run("spaces tolerated", func(t *testing.T) {
		rc := runConfig{geometry: "1, 8, 4"}

		ranks, bankGroups, banks, err := rc.parseGeometry()
		if err != nil {
			t.Fatal(err)
		}

		if ranks != 1 || bankGroups != 8 || banks != 4 {
			t.Errorf("got %d,%d,%d, want 1,8,4", ranks, bankGroups, banks)
		}
	})

	for _, bad := range []string{"", "2", "2,4", "2,4,4,4", "a,b,c"} {
		bad := bad
		tt.Run("rejects "+bad, func(t *testing.T) {
			rc := runConfig{geometry: bad}
			if _, _, _, err := rc.parseGeometry(); err == nil {
				t.Errorf("geometry %q accepted", bad)
			}
		})
	}
}

func TestPatternIDs(tt *testing.T) {
	tt.Parallel()

	rc := runConfig{replayPatterns: "abc, def,, ghi"}

	got := rc.patternIDs()
	want := map[string]bool{"abc": true, "def": true, "ghi": true}

	if diff := deep.Equal(got, want); diff != nil {
		tt.Errorf("pattern ids: %v", diff)
	}

	empty := runConfig{}
	if ids := empty.patternIDs(); len(ids) != 0 {
		tt.Errorf("empty flag produced ids: %v", ids)
	}
}

func TestSetupRejectsMissingFlags(tt *testing.T) {
	tt.Parallel()

	for name, rc := range map[string]runConfig{
		"dimm-id":    {dimmID: -1, uarchName: "zen3", geometry: "1,4,4", fenceType: "mfence"},
		"uarch":      {dimmID: 1, geometry: "1,4,4", fenceType: "mfence"},
		"geometry":   {dimmID: 1, uarchName: "zen3", fenceType: "mfence"},
		"fence-type": {dimmID: 1, uarchName: "zen3", geometry: "1,4,4"},
	} {
		rc := rc

		tt.Run(name, func(t *testing.T) {
			if _, err := rc.setup(quietTestLogger()); err == nil {
				t.Errorf("setup accepted a config missing --%s", name)
			}
		})
	}
}
