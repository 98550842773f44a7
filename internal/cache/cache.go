// cache — необязательный Redis-кэш состояния refresh-токенов user-сервиса.
// Источником истины всегда остаётся Postgres; кэш лишь снимает с него
// горячие чтения на refresh. Отзыв удаляет ключ целиком (DEL), поэтому
// следующая проверка уходит в БД и видит revoked = true. Если Redis
// недоступен в момент отзыва, устаревшая запись живёт не дольше своего
// TTL (остаток жизни токена) — это окно best-effort, см. RefreshCache.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RefreshEntry — состояние refresh-токена, достаточное для проверки
// на refresh без похода в Postgres.
type RefreshEntry struct {
	UserID    uuid.UUID
	Revoked   bool
	ExpiresAt time.Time
}

// RefreshCache — контракт кэша refresh-токенов.
// Ошибки кэша не фатальны для бизнес-операций: сервисный слой логирует
// их и продолжает работать через хранилище.
type RefreshCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, hash string) (*RefreshEntry, bool, error)
	// Set сохраняет запись с TTL (остаток жизни токена).
	Set(ctx context.Context, hash string, e *RefreshEntry, ttl time.Duration) error
	// Drop удаляет запись из кэша (вызывается при отзыве токена);
	// при ошибке запись доживает до истечения своего TTL.
	Drop(ctx context.Context, hash string) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение на старте. Пустой prefix заменяется на "rebuilder:rt:".
func NewRedisCache(redisURL, prefix string) (RefreshCache, error) {
	if prefix == "" {
		prefix = "rebuilder:rt:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(hash string) string { return c.prefix + hash }

// Запись хранится как Redis Hash: uid (UUID), rev (0/1), exp (unix-секунды).
func (c *redisCache) Get(ctx context.Context, hash string) (*RefreshEntry, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(hash)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	uid, err := uuid.Parse(m["uid"])
	if err != nil {
		return nil, false, err
	}

	expUnix, err := strconv.ParseInt(m["exp"], 10, 64)
	if err != nil {
		return nil, false, err
	}

	return &RefreshEntry{
		UserID:    uid,
		Revoked:   m["rev"] == "1",
		ExpiresAt: time.Unix(expUnix, 0).UTC(),
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, hash string, e *RefreshEntry, ttl time.Duration) error {
	rev := "0"
	if e.Revoked {
		rev = "1"
	}

	kv := map[string]string{
		"uid": e.UserID.String(),
		"rev": rev,
		"exp": strconv.FormatInt(e.ExpiresAt.Unix(), 10),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(hash), kv)
	pipe.Expire(ctx, c.key(hash), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Drop(ctx context.Context, hash string) error {
	return c.rdb.Del(ctx, c.key(hash)).Err()
}

func (c *redisCache) Close() error { return c.rdb.Close() }
