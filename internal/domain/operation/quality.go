package operation

import "fmt"

// Quality is a closed set of encoder quality labels. Convert and compress use
// high/medium/low; the smart-compression path additionally accepts balanced
// and fast, which share parameters with medium and low.
type Quality string

const (
	QualityHigh     Quality = "high"
	QualityMedium   Quality = "medium"
	QualityLow      Quality = "low"
	QualityBalanced Quality = "balanced"
	QualityFast     Quality = "fast"
)

// Settings are the encoder parameters a quality label maps to: audio bitrate
// for audio containers, CRF plus x264 preset for video.
type Settings struct {
	AudioBitrate string
	CRF          int
	Preset       string
}

var qualityTable = map[Quality]Settings{
	QualityHigh:     {AudioBitrate: "320k", CRF: 18, Preset: "slow"},
	QualityMedium:   {AudioBitrate: "192k", CRF: 23, Preset: "medium"},
	QualityLow:      {AudioBitrate: "128k", CRF: 28, Preset: "fast"},
	QualityBalanced: {AudioBitrate: "192k", CRF: 23, Preset: "medium"},
	QualityFast:     {AudioBitrate: "128k", CRF: 28, Preset: "fast"},
}

// ParseQuality validates a user-supplied quality label.
func ParseQuality(s string) (Quality, error) {
	q := Quality(s)
	if _, ok := qualityTable[q]; !ok {
		return "", fmt.Errorf("%w: quality %q", ErrInvalidParameter, s)
	}
	return q, nil
}

// Params returns the encoder parameters for q, falling back to medium for the
// zero value.
func (q Quality) Params() Settings {
	if s, ok := qualityTable[q]; ok {
		return s
	}
	return qualityTable[QualityMedium]
}
