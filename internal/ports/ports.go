package ports

import (
	"context"

	"github.com/forPelevin/mediactl/internal/types"
)

// MediaTool executes compiled argument lists and answers media probes.
type MediaTool interface {
	// Run executes a complete ffmpeg argument list. A nonzero exit wraps
	// operation.ErrExecutionFailed with the tool's output.
	Run(ctx context.Context, args []string) error
	// ExtractAudioMono16k produces the mono 16kHz wave the transcription
	// engine expects.
	ExtractAudioMono16k(ctx context.Context, inPath, outWav string) error
	// DurationSeconds probes the container duration.
	DurationSeconds(ctx context.Context, path string) (float64, error)
}

// ASR transcribes a wave file. language is a two-letter code or empty for
// auto-detect.
type ASR interface {
	Transcribe(ctx context.Context, wavPath, language, cacheDir string) (types.Transcript, error)
}
