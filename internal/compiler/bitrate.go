package compiler

import (
	"fmt"
	"math"

	"github.com/forPelevin/mediactl/internal/domain/operation"
)

// TargetBitrateKbps computes the video bitrate that makes a file of
// durationSec seconds land near targetMB megabytes. The 0.9 factor reserves
// roughly 10% for container and audio overhead so the encode undershoots the
// target rather than overshooting it.
func TargetBitrateKbps(targetMB int, durationSec float64) (int, error) {
	if durationSec <= 0 {
		return 0, fmt.Errorf("%w: %v seconds", operation.ErrInvalidDuration, durationSec)
	}
	if targetMB <= 0 {
		return 0, fmt.Errorf("%w: target size %dMB", operation.ErrInvalidParameter, targetMB)
	}
	return int(math.Floor(float64(targetMB) * 8 * 1024 / durationSec * 0.9)), nil
}

// MaxRateKbps caps transient bitrate spikes at 1.2x the target so they cannot
// blow the size budget.
func MaxRateKbps(targetKbps int) int {
	return int(math.Floor(float64(targetKbps) * 1.2))
}
