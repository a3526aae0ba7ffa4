package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-assistant-client/internal/domain/ports"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/backend"
	"github.com/johnquangdev/meeting-assistant-client/internal/infrastructure/sse"
	"github.com/johnquangdev/meeting-assistant-client/internal/usecase/media"
	"github.com/johnquangdev/meeting-assistant-client/pkg/config"
	pkglogger "github.com/johnquangdev/meeting-assistant-client/pkg/logger"
)

var errProcessingFailed = errors.New("processing reported an error")

func newProcessCommand() *cobra.Command {
	var batch bool

	cmd := &cobra.Command{
		Use:   "process <file>",
		Short: "Transcribe a meeting recording through the backend",
		Long: `Uploads an audio or video file to the backend and prints the transcript
as it streams back, one speaker-colored line per utterance, followed by the
extracted action items.

Use --batch to wait for the complete result instead of streaming.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger, err := pkglogger.New(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return runProcess(cmd, cfg, logger, args[0], batch)
		},
	}

	cmd.Flags().BoolVar(&batch, "batch", false, "Wait for the complete result instead of streaming")
	return cmd
}

func runProcess(cmd *cobra.Command, cfg *config.Config, logger *zap.Logger, path string, batch bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	name := filepath.Base(path)
	contentType := media.ContentTypeFor(name)
	if !media.IsSupported(name, contentType) {
		return fmt.Errorf("%s: please upload an audio or video file", name)
	}

	ctx := cmd.Context()
	client := backend.NewClient(&cfg.Backend, nil)
	upload := ports.Upload{Filename: name, ContentType: contentType, Size: info.Size(), Body: f}
	p := newPrinter(cmd.OutOrStdout())

	if batch {
		res, err := client.ProcessMedia(ctx, upload)
		if err != nil {
			return err
		}
		p.result(res)
	} else {
		body, err := client.ProcessMediaStream(ctx, upload)
		if err != nil {
			return err
		}
		defer body.Close()

		dec := sse.NewDecoder(logger, nil)
		if err := dec.Decode(ctx, body, p.event); err != nil {
			return err
		}
		if n := dec.Skipped(); n > 0 {
			logger.Warn("⚠️ malformed stream lines skipped", zap.Int("count", n))
		}
	}

	p.summary()
	if p.failed {
		return errProcessingFailed
	}
	return nil
}
