package clients

import (
	"context"
	"net/http"

	"github.com/go-redis/redis/v8"
)

// RedisClient é o subconjunto de *redis.Client usado pelo receptor de medições.
type RedisClient interface {
	IncrByFloat(ctx context.Context, key string, value float64) *redis.FloatCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	LTrim(ctx context.Context, key string, start, stop int64) *redis.StatusCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Ping(ctx context.Context) *redis.StatusCmd
	PoolStats() *redis.PoolStats
	Close() error
}

// HTTPClient executa uma requisição já montada, respeitando o contexto dela.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
