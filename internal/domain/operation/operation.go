package operation

import "fmt"

// Kind selects the descriptor variant.
type Kind string

const (
	KindConvert      Kind = "convert"
	KindCompress     Kind = "compress"
	KindTrim         Kind = "trim"
	KindExtractAudio Kind = "extract-audio"
	KindDenoise      Kind = "denoise"
	KindResize       Kind = "resize"
	KindCrop         Kind = "crop"
	KindSubtitles    Kind = "subtitles"
)

// Rect is a crop rectangle. Width and height must be positive; the position
// defaults to the top-left corner.
type Rect struct {
	Width  int
	Height int
	X      int
	Y      int
}

func (r Rect) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: crop size %dx%d", ErrInvalidParameter, r.Width, r.Height)
	}
	if r.X < 0 || r.Y < 0 {
		return fmt.Errorf("%w: crop position %d,%d", ErrInvalidParameter, r.X, r.Y)
	}
	return nil
}

// Descriptor is the structured, validated representation of what the user
// wants done, independent of how it was expressed. Kind decides which fields
// are meaningful; Validate enforces the per-variant rules.
type Descriptor struct {
	Kind Kind

	// Convert
	Format  string
	Quality Quality

	// Compress; zero means no size target.
	TargetSizeMB int

	// Trim
	Start Timecode
	End   Timecode

	// Trim (optional) and Crop (required).
	Crop *Rect

	// Resize
	Width  int
	Height int

	// Subtitles; empty means auto-detect.
	Language string
}

var audioFormats = map[string]bool{
	"mp3": true, "wav": true, "flac": true, "aac": true, "ogg": true,
}

var videoFormats = map[string]bool{
	"mp4": true, "avi": true, "mov": true, "mkv": true, "wmv": true, "flv": true,
}

// IsAudioFormat reports whether format names an audio container.
func IsAudioFormat(format string) bool { return audioFormats[format] }

// Validate checks the fields required by the descriptor's variant. It must
// pass before any path allocation or command construction happens.
func (d Descriptor) Validate() error {
	switch d.Kind {
	case KindConvert:
		if !audioFormats[d.Format] && !videoFormats[d.Format] {
			return fmt.Errorf("%w: output format %q", ErrInvalidParameter, d.Format)
		}
		if d.Quality != "" {
			if _, err := ParseQuality(string(d.Quality)); err != nil {
				return err
			}
		}
	case KindCompress:
		if d.TargetSizeMB < 0 {
			return fmt.Errorf("%w: target size %dMB", ErrInvalidParameter, d.TargetSizeMB)
		}
		if d.Quality != "" {
			if _, err := ParseQuality(string(d.Quality)); err != nil {
				return err
			}
		}
	case KindTrim:
		if d.End.Seconds() <= d.Start.Seconds() {
			return fmt.Errorf("%w: trim end %s not after start %s", ErrInvalidParameter, d.End, d.Start)
		}
		if d.Crop != nil {
			return d.Crop.validate()
		}
	case KindExtractAudio, KindDenoise, KindSubtitles:
		// No parameters beyond the input.
	case KindResize:
		if d.Width <= 0 || d.Height <= 0 {
			return fmt.Errorf("%w: resize to %dx%d", ErrInvalidParameter, d.Width, d.Height)
		}
	case KindCrop:
		if d.Crop == nil {
			return fmt.Errorf("%w: crop rectangle is required", ErrInvalidParameter)
		}
		return d.Crop.validate()
	default:
		return fmt.Errorf("%w: unknown operation %q", ErrInvalidParameter, string(d.Kind))
	}
	return nil
}
