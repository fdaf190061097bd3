package compiler

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/forPelevin/mediactl/internal/domain/operation"
)

type fakeDuration struct {
	sec float64
	err error
}

func (f fakeDuration) DurationSeconds(context.Context, string) (float64, error) {
	return f.sec, f.err
}

func newTestCompiler(dur DurationProvider, taken ...string) Compiler {
	return NewWithExists(dur, existsIn(taken...))
}

func TestCompile_Variants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		desc     operation.Descriptor
		wantArgs []string
		wantOut  string
	}{
		{
			name:     "convert to audio uses audio bitrate",
			desc:     operation.Descriptor{Kind: operation.KindConvert, Format: "mp3", Quality: operation.QualityHigh},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-b:a", "320k", "/m/clip.mp3"},
			wantOut:  "/m/clip.mp3",
		},
		{
			name:     "convert to video uses crf",
			desc:     operation.Descriptor{Kind: operation.KindConvert, Format: "avi", Quality: operation.QualityLow},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-crf", "28", "/m/clip.avi"},
			wantOut:  "/m/clip.avi",
		},
		{
			name:     "compress without target falls back to crf 23",
			desc:     operation.Descriptor{Kind: operation.KindCompress},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-crf", "23", "/m/clip_compressed.mp4"},
			wantOut:  "/m/clip_compressed.mp4",
		},
		{
			name:     "smart compress uses crf and preset",
			desc:     operation.Descriptor{Kind: operation.KindCompress, Quality: operation.QualityBalanced},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-crf", "23", "-preset", "medium", "/m/clip_smart_compressed.mp4"},
			wantOut:  "/m/clip_smart_compressed.mp4",
		},
		{
			name: "trim stream-copies",
			desc: operation.Descriptor{
				Kind:  operation.KindTrim,
				Start: operation.Timecode{Second: 30},
				End:   operation.Timecode{Minute: 1, Second: 30},
			},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-ss", "00:00:30", "-to", "00:01:30", "-c", "copy", "/m/clip_trimmed.mp4"},
			wantOut:  "/m/clip_trimmed.mp4",
		},
		{
			name: "trim with crop drops the stream copy",
			desc: operation.Descriptor{
				Kind:  operation.KindTrim,
				Start: operation.Timecode{Second: 30},
				End:   operation.Timecode{Minute: 1},
				Crop:  &operation.Rect{Width: 640, Height: 480, X: 10, Y: 20},
			},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-ss", "00:00:30", "-to", "00:01:00", "-vf", "crop=640:480:10:20", "/m/clip_trimmed.mp4"},
			wantOut:  "/m/clip_trimmed.mp4",
		},
		{
			name:     "extract audio forces wave output",
			desc:     operation.Descriptor{Kind: operation.KindExtractAudio},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-vn", "-acodec", "pcm_s16le", "/m/clip_audio.wav"},
			wantOut:  "/m/clip_audio.wav",
		},
		{
			name:     "denoise",
			desc:     operation.Descriptor{Kind: operation.KindDenoise},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-af", "afftdn", "/m/clip_denoised.wav"},
			wantOut:  "/m/clip_denoised.wav",
		},
		{
			name:     "resize",
			desc:     operation.Descriptor{Kind: operation.KindResize, Width: 720, Height: 480},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-vf", "scale=720:480", "/m/clip_resized_720x480.mp4"},
			wantOut:  "/m/clip_resized_720x480.mp4",
		},
		{
			name:     "crop defaults position to origin",
			desc:     operation.Descriptor{Kind: operation.KindCrop, Crop: &operation.Rect{Width: 500, Height: 500}},
			wantArgs: []string{"-y", "-i", "/m/clip.mp4", "-vf", "crop=500:500:0:0", "/m/clip_cropped_500x500.mp4"},
			wantOut:  "/m/clip_cropped_500x500.mp4",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestCompiler(nil)
			got, err := c.Compile(context.Background(), tt.desc, "/m/clip.mp4")
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if !reflect.DeepEqual(got.Args, tt.wantArgs) {
				t.Fatalf("Args = %q, want %q", got.Args, tt.wantArgs)
			}
			if got.OutputPath != tt.wantOut {
				t.Fatalf("OutputPath = %q, want %q", got.OutputPath, tt.wantOut)
			}
			if got.Transcribe != nil {
				t.Fatalf("unexpected transcribe marker")
			}
		})
	}
}

func TestCompile_SizeTargetedCompress(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(fakeDuration{sec: 100})
	got, err := c.Compile(context.Background(),
		operation.Descriptor{Kind: operation.KindCompress, TargetSizeMB: 50}, "/m/clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"-y", "-i", "/m/clip.mp4", "-b:v", "3686k", "-maxrate", "4423k", "/m/clip_compressed_50mb.mp4"}
	if !reflect.DeepEqual(got.Args, want) {
		t.Fatalf("Args = %q, want %q", got.Args, want)
	}
}

func TestCompile_SizeTargetedCompress_ProbeFailure(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(fakeDuration{err: errors.New("boom")})
	_, err := c.Compile(context.Background(),
		operation.Descriptor{Kind: operation.KindCompress, TargetSizeMB: 50}, "/m/clip.mp4")
	if !errors.Is(err, operation.ErrDurationUnavailable) {
		t.Fatalf("err = %v, want ErrDurationUnavailable", err)
	}
}

func TestCompile_SizeTargetedCompress_ZeroDuration(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(fakeDuration{sec: 0})
	_, err := c.Compile(context.Background(),
		operation.Descriptor{Kind: operation.KindCompress, TargetSizeMB: 50}, "/m/clip.mp4")
	if !errors.Is(err, operation.ErrInvalidDuration) {
		t.Fatalf("err = %v, want ErrInvalidDuration", err)
	}
}

func TestCompile_SubtitlesMarker(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(nil)
	got, err := c.Compile(context.Background(),
		operation.Descriptor{Kind: operation.KindSubtitles, Language: "en"}, "/m/clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Args) != 0 {
		t.Fatalf("subtitles must not produce argv, got %q", got.Args)
	}
	if got.Transcribe == nil || got.Transcribe.Language != "en" {
		t.Fatalf("Transcribe = %+v", got.Transcribe)
	}
	if got.OutputPath != "/m/clip.srt" {
		t.Fatalf("OutputPath = %q", got.OutputPath)
	}
}

func TestCompile_CollisionCounter(t *testing.T) {
	t.Parallel()

	c := newTestCompiler(nil, "/m/clip_trimmed.mp4", "/m/clip_trimmed_1.mp4")
	got, err := c.Compile(context.Background(), operation.Descriptor{
		Kind: operation.KindTrim,
		End:  operation.Timecode{Minute: 1},
	}, "/m/clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if got.OutputPath != "/m/clip_trimmed_2.mp4" {
		t.Fatalf("OutputPath = %q, want collision counter 2", got.OutputPath)
	}
}

// Compiling the same descriptor twice against the same filesystem state must
// yield identical argument lists apart from the allocated output path.
func TestCompile_Idempotent(t *testing.T) {
	t.Parallel()

	desc := operation.Descriptor{Kind: operation.KindResize, Width: 320, Height: 240}
	first, err := newTestCompiler(nil).Compile(context.Background(), desc, "/m/clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTestCompiler(nil, first.OutputPath).Compile(context.Background(), desc, "/m/clip.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if second.OutputPath != "/m/clip_resized_320x240_1.mp4" {
		t.Fatalf("OutputPath = %q", second.OutputPath)
	}
	if len(first.Args) != len(second.Args) {
		t.Fatalf("arg lists differ in length")
	}
	for i := range first.Args {
		if first.Args[i] == first.OutputPath {
			continue
		}
		if first.Args[i] != second.Args[i] {
			t.Fatalf("arg %d differs: %q vs %q", i, first.Args[i], second.Args[i])
		}
	}
}

// A descriptor that fails validation must never reach the path allocator.
func TestCompile_NoAllocationOnInvalidInput(t *testing.T) {
	t.Parallel()

	probed := false
	c := NewWithExists(nil, func(string) bool {
		probed = true
		return false
	})
	_, err := c.Compile(context.Background(),
		operation.Descriptor{Kind: operation.KindResize, Width: -1, Height: 480}, "/m/clip.mp4")
	if !errors.Is(err, operation.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
	if probed {
		t.Fatal("existence probe ran for an invalid descriptor")
	}
}
