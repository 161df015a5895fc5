package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-AppointmentDesk/internal/domain"
)

const (
	keyPrefix  = "conversation:"
	defaultTTL = 24 * time.Hour
)

// RedisStore хранит окно истории в списке redis, общем для всех реплик сервиса
type RedisStore struct {
	client *redis.Client
	window int
	ttl    time.Duration
}

// NewRedisStore создает хранилище истории в redis
func NewRedisStore(client *redis.Client, window int, ttl time.Duration) *RedisStore {
	if window <= 0 {
		window = domain.ConversationWindow
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, window: window, ttl: ttl}
}

// History возвращает окно истории собеседника
func (s *RedisStore) History(ctx context.Context, identity string) ([]domain.ConversationTurn, error) {
	raw, err := s.client.LRange(ctx, redisKey(identity), int64(-s.window), -1).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: History - lrange: %v", ErrStorage, err)
	}

	return decodeTurns(raw)
}

// Append дописывает реплики, обрезает список до окна и продлевает TTL одной транзакцией
func (s *RedisStore) Append(ctx context.Context, identity string, turns ...domain.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}

	values, err := encodeTurns(turns)
	if err != nil {
		return err
	}

	k := redisKey(identity)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, values...)
		pipe.LTrim(ctx, k, int64(-s.window), -1)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Append - pipeline: %v", ErrStorage, err)
	}

	return nil
}

// Reset удаляет историю собеседника
func (s *RedisStore) Reset(ctx context.Context, identity string) error {
	if err := s.client.Del(ctx, redisKey(identity)).Err(); err != nil {
		return fmt.Errorf("%w: Reset - del: %v", ErrStorage, err)
	}
	return nil
}

func redisKey(identity string) string {
	return keyPrefix + key(identity)
}

func encodeTurns(turns []domain.ConversationTurn) ([]interface{}, error) {
	values := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return nil, fmt.Errorf("%w: encode turn: %v", ErrStorage, err)
		}
		values = append(values, string(b))
	}
	return values, nil
}

func decodeTurns(raw []string) ([]domain.ConversationTurn, error) {
	turns := make([]domain.ConversationTurn, 0, len(raw))
	for _, item := range raw {
		var t domain.ConversationTurn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}
