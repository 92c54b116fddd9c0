package dram

import (
	"fmt"
	"os"
	"strings"
)

// Models the recovered address functions are known to hold on, per
// microarchitecture. A different CPU needs freshly reverse-engineered
// matrices.
var supportedCPUs = map[Microarch][]string{
	CoffeeLake: {
		"i5-8400", "i5-8500", "i5-8600",
		"i5-9400", "i5-9500", "i5-9600",
		"i7-8086", "i7-8700", "i7-9700", "i7-9900",
	},
	Zen1Plus: {"Ryzen 5 2600X"},
	Zen2:     {"Ryzen 5 3600X", "Ryzen 5 3600"},
	Zen3:     {"Ryzen 5 5600G"},
	Zen4:     {"Ryzen 7 7700X"},
}

// CheckCPUModel reads the local CPU model from /proc/cpuinfo and verifies
// it is one the selected microarchitecture's matrices were recovered on.
func CheckCPUModel(uarch Microarch) error {
	model, err := cpuModelString()
	if err != nil {
		return fmt.Errorf("%w: cannot determine CPU model: %v", ErrUnsupportedGeometry, err)
	}

	for _, supported := range supportedCPUs[uarch] {
		if strings.Contains(model, supported) {
			return nil
		}
	}

	return fmt.Errorf("%w: CPU %q is not known to match %v; the address matrices need re-measuring",
		ErrUnsupportedGeometry, model, uarch)
}

func cpuModelString() (string, error) {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "model name") {
			continue
		}

		if _, value, found := strings.Cut(line, ":"); found {
			return strings.TrimSpace(value), nil
		}
	}

	return "", fmt.Errorf("no model name in /proc/cpuinfo")
}
