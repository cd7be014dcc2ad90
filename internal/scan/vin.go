package scan

import (
	"context"
	"fmt"

	"github.com/rvanheerden/go-autoquote/internal/core"
)

// LookupVIN simulates a VIN decode against a vehicle registry. After the
// simulated latency it returns a canned vehicle; a cancelled context aborts
// without a result. The VIN must be the standard 17 characters before the
// lookup even starts.
func (p *Processor) LookupVIN(ctx context.Context, vin string) (map[string]string, error) {
	if len(vin) != 17 {
		return nil, fmt.Errorf("%w: vin must be exactly 17 characters", core.ErrValidation)
	}

	if err := p.wait(ctx); err != nil {
		return nil, err
	}

	return map[string]string{
		"year":             "2023",
		"make":             "Toyota",
		"model":            "Camry",
		"vin":              "4T1B11HK0JU705506",
		"usage":            "commute",
		"annualKilometers": "10000-15000",
	}, nil
}
