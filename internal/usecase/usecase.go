package usecase

import (
	"context"
	"os"
	"path/filepath"

	"github.com/forPelevin/mediactl/internal/compiler"
	"github.com/forPelevin/mediactl/internal/domain/operation"
	"github.com/forPelevin/mediactl/internal/domain/subtitles"
	"github.com/forPelevin/mediactl/internal/ports"
)

type Deps struct {
	Media ports.MediaTool
	ASR   ports.ASR

	// Exists overrides the filesystem probe used for output allocation.
	// Nil means the real filesystem.
	Exists compiler.ExistsFunc
}

// Usecase compiles one descriptor and carries it to completion. It holds no
// state between calls and is safe to invoke concurrently for independent
// inputs.
type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	InputPath  string
	Descriptor operation.Descriptor
	// CacheDir holds intermediate artifacts (extracted wav, whisper JSON)
	// for transcription runs.
	CacheDir string
}

type Result struct {
	OutputPath string
	// Args is the executed ffmpeg argument list, empty for transcription.
	Args []string
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	exists := u.d.Exists
	if exists == nil {
		exists = compiler.OSExists
	}
	cmd, err := compiler.NewWithExists(u.d.Media, exists).Compile(ctx, in.Descriptor, in.InputPath)
	if err != nil {
		return Result{}, err
	}

	if cmd.Transcribe != nil {
		return u.transcribe(ctx, in, cmd)
	}

	if err := u.d.Media.Run(ctx, cmd.Args); err != nil {
		return Result{}, err
	}
	return Result{OutputPath: cmd.OutputPath, Args: cmd.Args}, nil
}

func (u Usecase) transcribe(ctx context.Context, in Input, cmd compiler.Command) (Result, error) {
	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Media.ExtractAudioMono16k(ctx, in.InputPath, wav); err != nil {
		return Result{}, err
	}
	tr, err := u.d.ASR.Transcribe(ctx, wav, cmd.Transcribe.Language, in.CacheDir)
	if err != nil {
		return Result{}, err
	}
	srt := subtitles.Serialize(tr.Segments)
	if err := os.WriteFile(cmd.OutputPath, []byte(srt), 0o644); err != nil {
		return Result{}, err
	}
	return Result{OutputPath: cmd.OutputPath}, nil
}
