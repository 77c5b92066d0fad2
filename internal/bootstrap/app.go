package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"knowledgelink/internal/config"
	mongoClient "knowledgelink/internal/platform/mongo"
	rabbitmqClient "knowledgelink/internal/platform/rabbitmq"
	redisClient "knowledgelink/internal/platform/redis"
)

// App holds the long-lived shared clients, built once at process start and
// used concurrently by all in-flight requests. Redis and RabbitMQ are
// optional and stay nil when unconfigured.
type App struct {
	Config *config.Config
	Mongo  *mongo.Client
	Redis  *redis.Client
	MQConn *amqp.Connection

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	mongoCli, err := mongoClient.New(ctx, cfg.Mongo.URI)
	if err != nil {
		return nil, err
	}

	var redisCli *redis.Client
	if cfg.Redis.Addr != "" {
		redisCli, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
	}

	var mqConn *amqp.Connection
	if cfg.RabbitMQ.URL != "" {
		mqConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		Config:    cfg,
		Mongo:     mongoCli,
		Redis:     redisCli,
		MQConn:    mqConn,
		StartedAt: time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Mongo != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.Mongo.Disconnect(disconnectCtx); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
