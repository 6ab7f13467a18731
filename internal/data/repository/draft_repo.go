package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"taxi-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DraftStore keeps one booking draft per user. Get returns nil, nil when
// the user has no draft yet.
type DraftStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error)
	Save(ctx context.Context, draft *entity.BookingDraft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// DraftPruner is implemented by stores that must drop expired drafts
// themselves.
type DraftPruner interface {
	PruneExpired(ctx context.Context) int
}

type memoryDraft struct {
	draft     entity.BookingDraft
	expiresAt time.Time
}

// memoryDraftStore expires drafts ttl after their last save, like the Redis
// key TTL. A zero ttl keeps them forever.
type memoryDraftStore struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]memoryDraft
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryDraftStore(ttl time.Duration) DraftStore {
	return &memoryDraftStore{
		drafts: make(map[uuid.UUID]memoryDraft),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *memoryDraftStore) expired(entry memoryDraft, now time.Time) bool {
	return s.ttl > 0 && !now.Before(entry.expiresAt)
}

func (s *memoryDraftStore) Get(_ context.Context, userID uuid.UUID) (*entity.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[userID]
	if !ok {
		return nil, nil
	}
	if s.expired(entry, s.now()) {
		delete(s.drafts, userID)
		return nil, nil
	}
	draft := entry.draft
	return &draft, nil
}

func (s *memoryDraftStore) Save(_ context.Context, draft *entity.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[draft.UserID] = memoryDraft{draft: *draft, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *memoryDraftStore) Delete(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, userID)
	return nil
}

// PruneExpired removes every expired draft and returns how many went.
func (s *memoryDraftStore) PruneExpired(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for userID, entry := range s.drafts {
		if s.expired(entry, now) {
			delete(s.drafts, userID)
			removed++
		}
	}
	return removed
}

type redisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisDraftStore(client *redis.Client, ttl time.Duration, log *zap.Logger) DraftStore {
	return &redisDraftStore{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("repository", "draft")),
	}
}

func draftKey(userID uuid.UUID) string {
	return fmt.Sprintf("booking:draft:%s", userID)
}

func (s *redisDraftStore) Get(ctx context.Context, userID uuid.UUID) (*entity.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		s.log.Error("Failed to read draft",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get draft %s: %w", userID, err)
	}

	var draft entity.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", userID, err)
	}
	return &draft, nil
}

func (s *redisDraftStore) Save(ctx context.Context, draft *entity.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", draft.UserID, err)
	}

	if err := s.client.Set(ctx, draftKey(draft.UserID), data, s.ttl).Err(); err != nil {
		s.log.Error("Failed to save draft",
			zap.Error(err),
			zap.String("user_id", draft.UserID.String()),
		)
		return fmt.Errorf("save draft %s: %w", draft.UserID, err)
	}
	return nil
}

func (s *redisDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete draft %s: %w", userID, err)
	}
	return nil
}
