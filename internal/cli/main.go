package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	log := newLogger()

	root := &cobra.Command{
		Use:          "mediactl",
		Short:        "Compile and run media operations with ffmpeg and whisper.cpp",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	root.AddCommand(
		newConvertCmd(log),
		newCompressCmd(log),
		newTrimCmd(log),
		newExtractAudioCmd(log),
		newDenoiseCmd(log),
		newResizeCmd(log),
		newCropCmd(log),
		newSubtitlesCmd(log),
		newDoCmd(log),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
