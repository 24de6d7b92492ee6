package clients

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
)

type redisClient struct {
	client RedisClient
}

type RedisClientOptions func(*redisClient)

// WithCustomRedisClient permite passar um cliente Redis customizado
func WithCustomRedisClient(client RedisClient) RedisClientOptions {
	return func(r *redisClient) {
		r.client = client
	}
}

// Cria um cliente Redis com as opções padrão
// DialTimeout: 5s, ReadTimeout: 3s, WriteTimeout: 3s, PoolSize: 20, MinIdleConns: 2, MaxRetries: 3
func createRedisClient(host, port string, opts ...RedisClientOptions) RedisClient {
	clientCreated := &redisClient{
		client: redis.NewClient(&redis.Options{
			Addr:         host + ":" + port,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     20,
			MinIdleConns: 2,
			MaxRetries:   3,
		}),
	}

	for _, opt := range opts {
		opt(clientCreated)
	}
	return clientCreated.client
}

// InitRedisClient cria o cliente e verifica a conexão com um PING.
// Entra em pânico se o Redis não responder em 5 segundos.
func InitRedisClient(host, port string, opts ...RedisClientOptions) RedisClient {
	client := createRedisClient(host, port, opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Panic().Err(err).Str("addr", host+":"+port).Msg("Erro ao conectar ao Redis")
	}

	log.Debug().Msg("Conexão com Redis estabelecida com sucesso!")
	log.Debug().Msgf("RedisClient PoolStats: %+v", client.PoolStats())
	return client
}
