package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"

	"ai-visionboard-be/internal/dto"
	"ai-visionboard-be/internal/entity"
	"ai-visionboard-be/internal/pkg/logger"
	"ai-visionboard-be/internal/repository/unitofwork"
	"ai-visionboard-be/pkg/objectstore"
	"ai-visionboard-be/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type IPersistenceService interface {
	Consume(ctx context.Context) error
}

type persistenceService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	store      objectstore.Store
	boardCache *gocache.Cache
	logger     logger.ILogger
}

func NewPersistenceService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	store objectstore.Store,
	workerLogger logger.ILogger,
) IPersistenceService {
	return &persistenceService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		store:      store,
		boardCache: gocache.New(30*time.Minute, 10*time.Minute),
		logger:     workerLogger,
	}
}

func (ps *persistenceService) Consume(ctx context.Context) error {
	messages, err := ps.pubSub.Subscribe(ctx, ps.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			ps.processMessage(ctx, msg)
		}
	}()

	return nil
}

// processMessage runs the detached persistence steps for one finished query.
// Storage and database failures are logged and swallowed; the device already
// has its answer. Temp file cleanup runs no matter what happened before it.
func (ps *persistenceService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PersistQueryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		ps.logger.Error("persistence", "failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	defer ps.cleanupTempFiles(payload)

	imageUrl, err := ps.storeFrame(ctx, payload)
	if err != nil {
		ps.logger.Error("persistence", "failed to store frame", map[string]interface{}{
			"board_token": payload.BoardToken,
			"error":       err.Error(),
		})
		msg.Ack()
		return
	}

	if err := ps.ensureBoard(ctx, payload.BoardToken); err != nil {
		ps.logger.Error("persistence", "failed to ensure board", map[string]interface{}{
			"board_token": payload.BoardToken,
			"error":       err.Error(),
		})
		msg.Ack()
		return
	}

	record := &entity.QueryRecord{
		Id:         utils.NewQueryId(),
		BoardToken: payload.BoardToken,
		Prompt:     payload.Prompt,
		Response:   payload.Response,
		ImageUrl:   imageUrl,
		CreatedAt:  time.Now(),
	}

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	if err := uow.QueryRecordRepository().Create(ctx, record); err != nil {
		ps.logger.Error("persistence", "failed to create query record", map[string]interface{}{
			"board_token": payload.BoardToken,
			"error":       err.Error(),
		})
		msg.Ack()
		return
	}

	ps.logger.Info("persistence", "query persisted", map[string]interface{}{
		"board_token": payload.BoardToken,
		"query_id":    record.Id,
	})
	msg.Ack()
}

func (ps *persistenceService) storeFrame(ctx context.Context, payload dto.PersistQueryMessage) (string, error) {
	if payload.FramePath == "" {
		return "", nil
	}
	objectPath := "boards/" + payload.BoardToken + "/" + uuid.New().String() + ".jpg"
	return ps.store.Put(ctx, payload.FramePath, objectPath)
}

// ensureBoard creates the board row if this is the first query for the
// token. Known tokens are cached so repeat queries skip the write entirely.
func (ps *persistenceService) ensureBoard(ctx context.Context, token string) error {
	if _, found := ps.boardCache.Get(token); found {
		return nil
	}

	uow := ps.uowFactory.NewUnitOfWork(ctx)
	board := &entity.Board{
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := uow.BoardRepository().CreateIfAbsent(ctx, board); err != nil {
		return err
	}

	ps.boardCache.SetDefault(token, true)
	return nil
}

func (ps *persistenceService) cleanupTempFiles(payload dto.PersistQueryMessage) {
	for _, path := range []string{payload.VideoPath, payload.AudioPath, payload.FramePath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			ps.logger.Warn("persistence", "temp file cleanup failed", map[string]interface{}{
				"path":  path,
				"error": err.Error(),
			})
		}
	}
}
