// Package subtitles turns transcript segments into SubRip text.
package subtitles

import (
	"fmt"
	"math"
	"strings"

	"github.com/forPelevin/mediactl/internal/types"
)

// Serialize renders segments as sequential SRT blocks: index (from 1), a
// millisecond-precision time range, the trimmed text, and a blank line.
// Segments are emitted in input order; an empty input yields an empty string.
func Serialize(segments []types.Segment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n%s\n\n",
			i+1, srtTime(seg.Start), srtTime(seg.End), strings.TrimSpace(seg.Text))
	}
	return b.String()
}

// srtTime formats seconds as HH:MM:SS,mmm. Hours grow without wrapping and
// milliseconds are truncated, not rounded.
func srtTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	whole := math.Floor(seconds)
	h := int(whole) / 3600
	m := int(whole) % 3600 / 60
	s := int(whole) % 60
	ms := int(math.Floor((seconds - whole) * 1000))
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}
