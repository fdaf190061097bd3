package operation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Timecode is a clock-style position in a media stream. Two-part input is
// minutes:seconds, three-part is hours:minutes:seconds; seconds may carry a
// fractional part.
type Timecode struct {
	Hour   int
	Minute int
	Second float64
}

var reTimecode = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?(?:[.,](\d{1,3}))?$`)

// ParseTimecode parses "HH:MM:SS", "MM:SS" and an optional sub-second suffix.
func ParseTimecode(s string) (Timecode, error) {
	m := reTimecode.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Timecode{}, fmt.Errorf("%w: timecode %q", ErrInvalidParameter, s)
	}
	first, _ := strconv.Atoi(m[1])
	second, _ := strconv.Atoi(m[2])

	var tc Timecode
	if m[3] == "" {
		tc = Timecode{Minute: first, Second: float64(second)}
	} else {
		third, _ := strconv.Atoi(m[3])
		tc = Timecode{Hour: first, Minute: second, Second: float64(third)}
	}
	if m[4] != "" {
		frac, _ := strconv.Atoi(m[4])
		tc.Second += float64(frac) / pow10(len(m[4]))
	}
	if tc.Minute >= 60 || tc.Second >= 60 {
		return Timecode{}, fmt.Errorf("%w: timecode %q out of range", ErrInvalidParameter, s)
	}
	return tc, nil
}

// Seconds returns the timecode as seconds from zero.
func (t Timecode) Seconds() float64 {
	return float64(t.Hour)*3600 + float64(t.Minute)*60 + t.Second
}

// String renders the canonical HH:MM:SS form, keeping any fractional part.
func (t Timecode) String() string {
	whole := int(t.Second)
	s := fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, whole)
	if frac := t.Second - float64(whole); frac > 0 {
		s += strings.TrimPrefix(strconv.FormatFloat(frac, 'f', 3, 64), "0")
	}
	return s
}

func pow10(n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
