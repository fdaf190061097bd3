// Package compiler turns a validated operation descriptor into an ffmpeg
// argument list plus a non-colliding output path. Compilation is pure given
// its inputs and the two narrow collaborators: the duration provider (needed
// only by size-targeted compression) and the filesystem existence probe.
package compiler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/forPelevin/mediactl/internal/domain/operation"
)

// DurationProvider reports a media file's duration in seconds.
type DurationProvider interface {
	DurationSeconds(ctx context.Context, path string) (float64, error)
}

// TranscribeSpec directs the caller to the transcription collaborator instead
// of an external-tool invocation.
type TranscribeSpec struct {
	// Language code, empty for auto-detect.
	Language string
}

// Command is a compiled, immutable invocation. Either Args is a complete
// ffmpeg argument list, or Transcribe is set and Args is empty.
type Command struct {
	Args       []string
	OutputPath string
	Transcribe *TranscribeSpec
}

type Compiler struct {
	duration DurationProvider
	exists   ExistsFunc
}

// New builds a compiler over the real filesystem. duration may be nil when no
// size-targeted compression will be compiled.
func New(duration DurationProvider) Compiler {
	return NewWithExists(duration, OSExists)
}

func NewWithExists(duration DurationProvider, exists ExistsFunc) Compiler {
	return Compiler{duration: duration, exists: exists}
}

// Compile validates desc and produces the command for it. Validation fully
// precedes the duration probe, which fully precedes path allocation; a
// descriptor that fails never allocates a path or produces arguments.
func (c Compiler) Compile(ctx context.Context, desc operation.Descriptor, inputPath string) (Command, error) {
	if err := desc.Validate(); err != nil {
		return Command{}, err
	}

	switch desc.Kind {
	case operation.KindConvert:
		return c.convert(desc, inputPath), nil
	case operation.KindCompress:
		return c.compress(ctx, desc, inputPath)
	case operation.KindTrim:
		return c.trim(desc, inputPath), nil
	case operation.KindExtractAudio:
		out := c.allocate(WithSuffix(inputPath, "_audio", "wav"))
		return Command{
			Args:       []string{"-y", "-i", inputPath, "-vn", "-acodec", "pcm_s16le", out},
			OutputPath: out,
		}, nil
	case operation.KindDenoise:
		out := c.allocate(WithSuffix(inputPath, "_denoised", "wav"))
		return Command{
			Args:       []string{"-y", "-i", inputPath, "-af", "afftdn", out},
			OutputPath: out,
		}, nil
	case operation.KindResize:
		out := c.allocate(WithSuffix(inputPath, fmt.Sprintf("_resized_%dx%d", desc.Width, desc.Height), "mp4"))
		return Command{
			Args:       []string{"-y", "-i", inputPath, "-vf", fmt.Sprintf("scale=%d:%d", desc.Width, desc.Height), out},
			OutputPath: out,
		}, nil
	case operation.KindCrop:
		r := *desc.Crop
		out := c.allocate(WithSuffix(inputPath, fmt.Sprintf("_cropped_%dx%d", r.Width, r.Height), "mp4"))
		return Command{
			Args:       []string{"-y", "-i", inputPath, "-vf", cropFilter(r), out},
			OutputPath: out,
		}, nil
	case operation.KindSubtitles:
		out := c.allocate(WithExt(inputPath, "srt"))
		return Command{OutputPath: out, Transcribe: &TranscribeSpec{Language: desc.Language}}, nil
	}
	return Command{}, fmt.Errorf("%w: unknown operation %q", operation.ErrInvalidParameter, string(desc.Kind))
}

func (c Compiler) convert(desc operation.Descriptor, inputPath string) Command {
	params := desc.Quality.Params()
	out := c.allocate(WithExt(inputPath, desc.Format))
	if operation.IsAudioFormat(desc.Format) {
		return Command{
			Args:       []string{"-y", "-i", inputPath, "-b:a", params.AudioBitrate, out},
			OutputPath: out,
		}
	}
	return Command{
		Args:       []string{"-y", "-i", inputPath, "-crf", strconv.Itoa(params.CRF), out},
		OutputPath: out,
	}
}

func (c Compiler) compress(ctx context.Context, desc operation.Descriptor, inputPath string) (Command, error) {
	if desc.TargetSizeMB > 0 {
		if c.duration == nil {
			return Command{}, fmt.Errorf("%w: no duration provider", operation.ErrDurationUnavailable)
		}
		dur, err := c.duration.DurationSeconds(ctx, inputPath)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", operation.ErrDurationUnavailable, err)
		}
		kbps, err := TargetBitrateKbps(desc.TargetSizeMB, dur)
		if err != nil {
			return Command{}, err
		}
		out := c.allocate(WithSuffix(inputPath, fmt.Sprintf("_compressed_%dmb", desc.TargetSizeMB), "mp4"))
		return Command{
			Args: []string{
				"-y", "-i", inputPath,
				"-b:v", fmt.Sprintf("%dk", kbps),
				"-maxrate", fmt.Sprintf("%dk", MaxRateKbps(kbps)),
				out,
			},
			OutputPath: out,
		}, nil
	}

	if desc.Quality != "" {
		params := desc.Quality.Params()
		out := c.allocate(WithSuffix(inputPath, "_smart_compressed", "mp4"))
		return Command{
			Args: []string{
				"-y", "-i", inputPath,
				"-crf", strconv.Itoa(params.CRF),
				"-preset", params.Preset,
				out,
			},
			OutputPath: out,
		}, nil
	}

	out := c.allocate(WithSuffix(inputPath, "_compressed", "mp4"))
	return Command{
		Args:       []string{"-y", "-i", inputPath, "-crf", "23", out},
		OutputPath: out,
	}, nil
}

func (c Compiler) trim(desc operation.Descriptor, inputPath string) Command {
	out := c.allocate(WithSuffix(inputPath, "_trimmed", ""))
	args := []string{"-y", "-i", inputPath, "-ss", desc.Start.String(), "-to", desc.End.String()}
	if desc.Crop != nil {
		// Cropping needs a re-encode, so the stream copy goes away.
		args = append(args, "-vf", cropFilter(*desc.Crop))
	} else {
		args = append(args, "-c", "copy")
	}
	args = append(args, out)
	return Command{Args: args, OutputPath: out}
}

func (c Compiler) allocate(candidate string) string {
	exists := c.exists
	if exists == nil {
		exists = OSExists
	}
	return Allocate(candidate, exists)
}

func cropFilter(r operation.Rect) string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", r.Width, r.Height, r.X, r.Y)
}
