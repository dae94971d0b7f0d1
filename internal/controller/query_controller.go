package controller

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ai-visionboard-be/internal/config"
	"ai-visionboard-be/internal/dto"
	"ai-visionboard-be/internal/pkg/apperror"
	"ai-visionboard-be/internal/pkg/logger"
	"ai-visionboard-be/internal/pkg/serverutils"
	"ai-visionboard-be/internal/service"
	"ai-visionboard-be/pkg/events"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const streamChunkSize = 1024

type IQueryController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type queryController struct {
	queryService     service.IQueryService
	publisherService service.IPublisherService
	cfg              *config.Config
	logger           logger.ILogger
}

func NewQueryController(
	queryService service.IQueryService,
	publisherService service.IPublisherService,
	cfg *config.Config,
	sysLogger logger.ILogger,
) IQueryController {
	return &queryController{
		queryService:     queryService,
		publisherService: publisherService,
		cfg:              cfg,
		logger:           sysLogger,
	}
}

func (c *queryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/query/v1")
	h.Post("upload", c.Upload)
}

// Upload accepts the device's video (and audio, for rpi-class devices), runs
// the answer pipeline, and streams the spoken reply back as it is
// synthesized. Persistence happens after the stream drains, off the request
// path.
func (c *queryController) Upload(ctx *fiber.Ctx) error {
	req := dto.UploadQueryRequest{
		BoardToken: ctx.Get("X-Token"),
		DeviceType: ctx.Get("X-Device-Type"),
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	deviceType, ok := service.ParseDeviceType(req.DeviceType)
	if !ok {
		return apperror.Validation("unknown device type")
	}

	videoPath, err := c.saveUpload(ctx, "video")
	if err != nil {
		return err
	}

	audioPath := ""
	if deviceType == service.DeviceSeparateAudio {
		audioPath, err = c.saveUpload(ctx, "audio")
		if err != nil {
			// The video is already on disk; it must not outlive the request.
			c.removePath(videoPath)
			return err
		}
	}

	// The pipeline and the answer stream both outlive the handler, so they
	// run on a detached context bounded by the configured deadline.
	pipelineCtx, cancel := context.WithTimeout(context.Background(), c.cfg.App.QueryTimeout)

	result, err := c.queryService.ProcessQuery(pipelineCtx, &service.ProcessQueryRequest{
		BoardToken: req.BoardToken,
		DeviceType: deviceType,
		VideoPath:  videoPath,
		AudioPath:  audioPath,
	})
	if err != nil {
		cancel()
		return err
	}

	ctx.Set(fiber.HeaderContentType, "audio/mpeg")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer result.Audio.Close()

		if err := c.relayAudio(w, result.Audio); err != nil {
			// Bytes already left; all we can do is log and truncate. The
			// answer itself is complete, so persistence still runs and the
			// consumer removes the temp files.
			streamErr := apperror.Streaming("answer stream interrupted", err)
			c.logger.Error("query", "answer stream interrupted", map[string]interface{}{
				"board_token": result.Query.BoardToken,
				"error":       streamErr.Error(),
			})
		}

		c.publishPersist(result.Query)
	})

	return nil
}

func (c *queryController) relayAudio(w *bufio.Writer, audio io.Reader) error {
	chunk := make([]byte, streamChunkSize)
	for {
		n, readErr := audio.Read(chunk)
		if n > 0 {
			if _, writeErr := w.Write(chunk[:n]); writeErr != nil {
				return writeErr
			}
			if flushErr := w.Flush(); flushErr != nil {
				return flushErr
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func (c *queryController) publishPersist(query *service.Query) {
	msg := dto.PersistQueryMessage{
		BoardToken: query.BoardToken,
		Prompt:     query.Transcript,
		Response:   query.ResponseText,
		VideoPath:  query.VideoPath,
		AudioPath:  query.AudioPath,
		FramePath:  query.FramePath,
	}
	msgJson, _ := json.Marshal(msg)

	ev := events.QueryPersistRequested(query.BoardToken)
	if err := c.publisherService.Publish(context.Background(), msgJson); err != nil {
		c.logger.Error("query", "failed to publish persistence message", map[string]interface{}{
			"event":       ev.EventType(),
			"board_token": query.BoardToken,
			"error":       err.Error(),
		})
		// The consumer will never see this query, so the temp files are
		// removed here instead.
		for _, path := range query.TempArtifacts() {
			c.removePath(path)
		}
		return
	}

	c.logger.Info("query", "persistence requested", map[string]interface{}{
		"event":       ev.EventType(),
		"board_token": query.BoardToken,
		"occurred_at": ev.Timestamp(),
	})
}

func (c *queryController) removePath(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		c.logger.Warn("query", "temp file cleanup failed", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

func (c *queryController) saveUpload(ctx *fiber.Ctx, field string) (string, error) {
	fileHeader, err := ctx.FormFile(field)
	if err != nil {
		return "", apperror.Validation(fmt.Sprintf("%s upload is required", field))
	}

	ext := filepath.Ext(fileHeader.Filename)
	dst := filepath.Join(c.cfg.Storage.MediaDir, fmt.Sprintf("%s-%s%s", field, uuid.New().String(), ext))
	if err := ctx.SaveFile(fileHeader, dst); err != nil {
		return "", apperror.Stage(fmt.Sprintf("failed to save %s upload", field), err)
	}

	return dst, nil
}
