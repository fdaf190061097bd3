// Package intent maps a free-text sentence to a structured operation
// descriptor. Resolution is an ordered rule table: rules are tried top to
// bottom and the first match wins, which makes precedence explicit for
// sentences containing overlapping keywords ("compress" and "mb", say).
package intent

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/forPelevin/mediactl/internal/domain/operation"
)

var (
	reTime   = regexp.MustCompile(`\d{1,2}:\d{2}(?::\d{2})?`)
	reDims   = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)
	reSizeMB = regexp.MustCompile(`(\d+)\s*mb`)
	rePos    = regexp.MustCompile(`(?:at|position)\D*(\d+)\s*,\s*(\d+)`)
	reLang   = regexp.MustCompile(`\bin ([a-z]{2})\b`)
)

type rule struct {
	match func(s string) bool
	build func(s string) (operation.Descriptor, error)
}

var rules = []rule{
	{
		match: func(s string) bool { return has(s, "convert") && has(s, "mp3") },
		build: func(string) (operation.Descriptor, error) {
			return operation.Descriptor{Kind: operation.KindConvert, Format: "mp3", Quality: operation.QualityMedium}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "compress") },
		build: func(s string) (operation.Descriptor, error) {
			d := operation.Descriptor{Kind: operation.KindCompress}
			if m := reSizeMB.FindStringSubmatch(s); m != nil {
				d.TargetSizeMB, _ = strconv.Atoi(m[1])
			}
			return d, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "trim") },
		build: func(s string) (operation.Descriptor, error) {
			times := reTime.FindAllString(s, 2)
			if len(times) < 2 {
				return operation.Descriptor{}, fmt.Errorf("%w: trim needs two times, got %q", operation.ErrCommandUnresolvable, s)
			}
			start, err := operation.ParseTimecode(times[0])
			if err != nil {
				return operation.Descriptor{}, err
			}
			end, err := operation.ParseTimecode(times[1])
			if err != nil {
				return operation.Descriptor{}, err
			}
			return operation.Descriptor{Kind: operation.KindTrim, Start: start, End: end}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "extract") && (has(s, "audio") || has(s, "sound")) },
		build: func(string) (operation.Descriptor, error) {
			return operation.Descriptor{Kind: operation.KindExtractAudio}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "noise") || has(s, "denoise") },
		build: func(string) (operation.Descriptor, error) {
			return operation.Descriptor{Kind: operation.KindDenoise}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "resize") },
		build: func(s string) (operation.Descriptor, error) {
			w, h, err := dims(s)
			if err != nil {
				return operation.Descriptor{}, err
			}
			return operation.Descriptor{Kind: operation.KindResize, Width: w, Height: h}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "crop") },
		build: func(s string) (operation.Descriptor, error) {
			w, h, err := dims(s)
			if err != nil {
				return operation.Descriptor{}, err
			}
			r := operation.Rect{Width: w, Height: h}
			if m := rePos.FindStringSubmatch(s); m != nil {
				r.X, _ = strconv.Atoi(m[1])
				r.Y, _ = strconv.Atoi(m[2])
			}
			return operation.Descriptor{Kind: operation.KindCrop, Crop: &r}, nil
		},
	},
	{
		match: func(s string) bool { return has(s, "subtitle") || has(s, "transcribe") },
		build: func(s string) (operation.Descriptor, error) {
			d := operation.Descriptor{Kind: operation.KindSubtitles}
			if m := reLang.FindStringSubmatch(s); m != nil {
				d.Language = m[1]
			}
			return d, nil
		},
	},
}

// Resolve maps one sentence to one descriptor. It never combines multiple
// intents; an unmatched sentence fails with ErrCommandUnresolvable carrying
// the original text.
func Resolve(text string) (operation.Descriptor, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	for _, r := range rules {
		if r.match(s) {
			return r.build(s)
		}
	}
	return operation.Descriptor{}, fmt.Errorf("%w: %q", operation.ErrCommandUnresolvable, text)
}

func has(s, kw string) bool { return strings.Contains(s, kw) }

func dims(s string) (int, int, error) {
	m := reDims.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: no WxH dimensions in %q", operation.ErrCommandUnresolvable, s)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w, h, nil
}
