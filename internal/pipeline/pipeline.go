package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forPelevin/mediactl/internal/domain/intent"
	"github.com/forPelevin/mediactl/internal/domain/operation"
	"github.com/forPelevin/mediactl/internal/ports"
	"github.com/forPelevin/mediactl/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/mediactl/internal/ports/adapters/whispercpp"
	"github.com/forPelevin/mediactl/internal/usecase"
)

type Config struct {
	InputPath string

	// Descriptor is the operation to run. When its Kind is empty, Text is
	// resolved into one instead.
	Descriptor operation.Descriptor
	Text       string

	Logf func(format string, args ...any)

	// CacheDir is the base directory for transcription artifacts.
	// If empty, defaults to ".cache".
	CacheDir string

	FFmpegPath  string
	FFprobePath string

	WhisperBin   string
	WhisperModel string

	// Gate, when set, serializes operations: Run fails fast with ErrBusy
	// while another operation holds it.
	Gate *usecase.Gate
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Descriptor.Kind == "" && strings.TrimSpace(c.Text) == "" {
		return errors.New("no operation and no command text")
	}
	if c.needsWhisper() && c.WhisperBin == "" {
		return errors.New("whisper binary path is required for subtitles")
	}
	if c.needsWhisper() && c.WhisperModel == "" {
		return errors.New("whisper model path is required for subtitles")
	}
	return nil
}

func (c Config) needsWhisper() bool {
	return c.Descriptor.Kind == operation.KindSubtitles ||
		strings.Contains(strings.ToLower(c.Text), "subtitle") ||
		strings.Contains(strings.ToLower(c.Text), "transcribe")
}

// Run resolves the operation if needed, wires the adapters, and carries the
// compiled command to completion.
func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	if cfg.Gate != nil {
		if !cfg.Gate.TryAcquire() {
			return operation.ErrBusy
		}
		defer cfg.Gate.Release()
	}

	desc := cfg.Descriptor
	if desc.Kind == "" {
		var err error
		desc, err = intent.Resolve(cfg.Text)
		if err != nil {
			return err
		}
		logf("resolved %q to %s", cfg.Text, desc.Kind)
	}

	media := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	var asr ports.ASR
	if cfg.WhisperBin != "" {
		asr = whispercpp.New(cfg.WhisperBin, cfg.WhisperModel)
	}

	cacheDir, err := prepareCacheDir(cfg.CacheDir, cfg.InputPath)
	if err != nil {
		return err
	}

	uc := usecase.New(usecase.Deps{Media: media, ASR: asr})
	logf("running %s on %s", desc.Kind, filepath.Base(cfg.InputPath))
	res, err := uc.Run(ctx, usecase.Input{
		InputPath:  cfg.InputPath,
		Descriptor: desc,
		CacheDir:   cacheDir,
	})
	if err != nil {
		return err
	}
	logf("done: %s", res.OutputPath)
	return nil
}

func prepareCacheDir(base, inputPath string) (string, error) {
	if base == "" {
		base = ".cache"
	}
	dir := filepath.Join(base, "runs", hash(inputPath))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.MediaTool = (*ffmpeg.Adapter)(nil)
var _ ports.ASR = (*whispercpp.Adapter)(nil)
