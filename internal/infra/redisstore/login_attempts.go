package redisstore

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

const (
	fieldAttempts    = "attempts"
	fieldLastAttempt = "last_attempt"
)

// LoginAttemptStore хранит счётчики неудачных входов в Redis hash.
// Ключ живёт ttl после последней записи: по истечении окна запись всё равно не влияет на решение.
type LoginAttemptStore struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

// NewLoginAttemptStore создает хранилище. ttl должен быть больше окна блокировки.
func NewLoginAttemptStore(client redis.UniversalClient, keyPrefix string, ttl time.Duration) *LoginAttemptStore {
	return &LoginAttemptStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

func (s *LoginAttemptStore) key(address string) string {
	return s.keyPrefix + ":" + address
}

// Get получает запись по адресу
func (s *LoginAttemptStore) Get(ctx context.Context, address string) (*domain.LoginAttempt, error) {
	values, err := s.client.HGetAll(ctx, s.key(address)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrRedis, err)
	}
	if len(values) == 0 {
		return nil, ErrNotFound
	}

	attempts, err := strconv.Atoi(values[fieldAttempts])
	if err != nil {
		return nil, fmt.Errorf("%w: attempts %q", ErrCorruptedRecord, values[fieldAttempts])
	}
	lastNano, err := strconv.ParseInt(values[fieldLastAttempt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: last_attempt %q", ErrCorruptedRecord, values[fieldLastAttempt])
	}

	return &domain.LoginAttempt{
		Address:     address,
		Attempts:    attempts,
		LastAttempt: time.Unix(0, lastNano).UTC(),
	}, nil
}

// Insert создает запись
func (s *LoginAttemptStore) Insert(ctx context.Context, attempt *domain.LoginAttempt) error {
	return s.write(ctx, "Insert", attempt)
}

// Update перезаписывает запись
func (s *LoginAttemptStore) Update(ctx context.Context, attempt *domain.LoginAttempt) error {
	return s.write(ctx, "Update", attempt)
}

// Delete удаляет запись. Отсутствие записи не считается ошибкой.
func (s *LoginAttemptStore) Delete(ctx context.Context, address string) error {
	if err := s.client.Del(ctx, s.key(address)).Err(); err != nil {
		return fmt.Errorf("%w: Delete: %v", ErrRedis, err)
	}
	return nil
}

func (s *LoginAttemptStore) write(ctx context.Context, op string, attempt *domain.LoginAttempt) error {
	key := s.key(attempt.Address)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldAttempts, attempt.Attempts,
			fieldLastAttempt, attempt.LastAttempt.UnixNano(),
		)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRedis, op, err)
	}

	return nil
}
