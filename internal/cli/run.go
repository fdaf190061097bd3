package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/forPelevin/mediactl/internal/domain/operation"
	"github.com/forPelevin/mediactl/internal/pipeline"
)

func newConvertCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <input>",
		Short: "Convert to another container format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			quality, _ := cmd.Flags().GetString("quality")
			q, err := operation.ParseQuality(quality)
			if err != nil {
				return err
			}
			return runPipeline(cmd, log, args[0], operation.Descriptor{
				Kind:    operation.KindConvert,
				Format:  format,
				Quality: q,
			})
		},
	}
	cmd.Flags().String("format", "mp3", "Output format (mp3, wav, flac, mp4, avi, mov, mkv)")
	cmd.Flags().String("quality", "medium", "Encoding quality (high, medium, low)")
	return cmd
}

func newCompressCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress <input>",
		Short: "Compress, optionally to a target size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetInt("target-size")
			quality, _ := cmd.Flags().GetString("quality")
			desc := operation.Descriptor{Kind: operation.KindCompress, TargetSizeMB: target}
			if quality != "" {
				q, err := operation.ParseQuality(quality)
				if err != nil {
					return err
				}
				desc.Quality = q
			}
			return runPipeline(cmd, log, args[0], desc)
		},
	}
	cmd.Flags().Int("target-size", 0, "Target size in MB (0 disables size targeting)")
	cmd.Flags().String("quality", "", "Smart compression quality (high, balanced, fast)")
	return cmd
}

func newTrimCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim <input>",
		Short: "Cut a time range, optionally cropping",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			start, err := operation.ParseTimecode(from)
			if err != nil {
				return err
			}
			end, err := operation.ParseTimecode(to)
			if err != nil {
				return err
			}
			desc := operation.Descriptor{Kind: operation.KindTrim, Start: start, End: end}
			if crop, _ := cmd.Flags().GetString("crop"); crop != "" {
				r, err := parseRect(crop)
				if err != nil {
					return err
				}
				desc.Crop = &r
			}
			return runPipeline(cmd, log, args[0], desc)
		},
	}
	cmd.Flags().String("from", "00:00:00", "Start time (HH:MM:SS)")
	cmd.Flags().String("to", "00:01:00", "End time (HH:MM:SS)")
	cmd.Flags().String("crop", "", "Crop rectangle WxH[@X,Y]; forces a re-encode")
	return cmd
}

func newExtractAudioCmd(log *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "extract-audio <input>",
		Short: "Extract the audio track as uncompressed wave",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, log, args[0], operation.Descriptor{Kind: operation.KindExtractAudio})
		},
	}
}

func newDenoiseCmd(log *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "denoise <input>",
		Short: "Reduce background noise in the audio track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPipeline(cmd, log, args[0], operation.Descriptor{Kind: operation.KindDenoise})
		},
	}
}

func newResizeCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize <input>",
		Short: "Scale the video to new dimensions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetString("size")
			w, h, err := parseSize(size)
			if err != nil {
				return err
			}
			return runPipeline(cmd, log, args[0], operation.Descriptor{
				Kind:  operation.KindResize,
				Width: w, Height: h,
			})
		},
	}
	cmd.Flags().String("size", "", "Target dimensions WxH, e.g. 720x480")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newCropCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop <input>",
		Short: "Crop the video to a rectangle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, _ := cmd.Flags().GetString("size")
			at, _ := cmd.Flags().GetString("at")
			spec := size
			if at != "" {
				spec += "@" + at
			}
			r, err := parseRect(spec)
			if err != nil {
				return err
			}
			return runPipeline(cmd, log, args[0], operation.Descriptor{
				Kind: operation.KindCrop,
				Crop: &r,
			})
		},
	}
	cmd.Flags().String("size", "", "Crop dimensions WxH, e.g. 640x480")
	cmd.Flags().String("at", "", "Crop position X,Y (default 0,0)")
	_ = cmd.MarkFlagRequired("size")
	return cmd
}

func newSubtitlesCmd(log *logrus.Entry) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtitles <input>",
		Short: "Transcribe speech and write an SRT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("language")
			if lang == "auto" {
				lang = ""
			}
			return runPipeline(cmd, log, args[0], operation.Descriptor{
				Kind:     operation.KindSubtitles,
				Language: lang,
			})
		},
	}
	cmd.Flags().String("language", "auto", "Spoken language code, or auto")
	return cmd
}

func newDoCmd(log *logrus.Entry) *cobra.Command {
	return &cobra.Command{
		Use:   "do <input> <command sentence>",
		Short: "Resolve a free-text sentence into an operation and run it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := baseConfig(log, args[0])
			if err != nil {
				return err
			}
			cfg.Text = args[1]
			return execute(cmd, cfg)
		},
	}
}

func runPipeline(cmd *cobra.Command, log *logrus.Entry, input string, desc operation.Descriptor) error {
	cfg, err := baseConfig(log, input)
	if err != nil {
		return err
	}
	cfg.Descriptor = desc
	return execute(cmd, cfg)
}

func baseConfig(log *logrus.Entry, input string) (pipeline.Config, error) {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		InputPath: absIn,
		Logf:      log.Infof,

		CacheDir: getenvDefault("MEDIACTL_CACHE_DIR", ".cache"),

		FFmpegPath:  getenvDefault("MEDIACTL_FFMPEG", "ffmpeg"),
		FFprobePath: getenvDefault("MEDIACTL_FFPROBE", "ffprobe"),

		WhisperBin:   getenvDefault("MEDIACTL_WHISPER_BIN", ""),
		WhisperModel: getenvDefault("MEDIACTL_WHISPER_MODEL", ""),
	}, nil
}

func execute(cmd *cobra.Command, cfg pipeline.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Hour)
	defer cancel()
	return pipeline.Run(ctx, cfg)
}

var (
	reSize = regexp.MustCompile(`^(\d+)x(\d+)$`)
	reRect = regexp.MustCompile(`^(\d+)x(\d+)(?:@(\d+),(\d+))?$`)
)

func parseSize(s string) (int, int, error) {
	m := reSize.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: dimensions %q, want WxH", operation.ErrInvalidParameter, s)
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	return w, h, nil
}

func parseRect(s string) (operation.Rect, error) {
	m := reRect.FindStringSubmatch(s)
	if m == nil {
		return operation.Rect{}, fmt.Errorf("%w: rectangle %q, want WxH[@X,Y]", operation.ErrInvalidParameter, s)
	}
	var r operation.Rect
	r.Width, _ = strconv.Atoi(m[1])
	r.Height, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		r.X, _ = strconv.Atoi(m[3])
		r.Y, _ = strconv.Atoi(m[4])
	}
	return r, nil
}
