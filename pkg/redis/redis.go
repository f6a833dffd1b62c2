package redis

import (
	"SecondSonsNLU/pkg/nlp"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const intentKeyPrefix = "nlu:intent:"

type IRedis interface {
	nlp.IntentCache
	Close() error
}

type redisClient struct {
	client *redis.Client
	ttl    time.Duration
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	ttl := 24 * time.Hour
	if minutes, err := strconv.Atoi(os.Getenv("INTENT_CACHE_TTL_MINUTES")); err == nil && minutes > 0 {
		ttl = time.Duration(minutes) * time.Minute
	}

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, ttl: ttl}
}

func (r *redisClient) GetIntent(ctx context.Context, text string) (*nlp.IntentResult, bool) {
	key := intentKey(text)

	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		logrus.Debug(fmt.Sprintf("Intent cache miss for key %s", key))
		return nil, false
	} else if err != nil {
		logrus.Error(fmt.Sprintf("Error reading intent cache key %s: %v", key, err))
		return nil, false
	}

	var result nlp.IntentResult
	if err := jsoniter.UnmarshalFromString(val, &result); err != nil {
		logrus.Warn(fmt.Sprintf("Discarding unreadable intent cache key %s: %v", key, err))
		return nil, false
	}

	return &result, true
}

func (r *redisClient) SetIntent(ctx context.Context, text string, result *nlp.IntentResult) {
	key := intentKey(text)

	payload, err := jsoniter.MarshalToString(result)
	if err != nil {
		logrus.Error(fmt.Sprintf("Error encoding intent for key %s: %v", key, err))
		return
	}

	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error writing intent cache key %s: %v", key, err))
		return
	}
	logrus.Debug(fmt.Sprintf("Cached intent %s for key %s", result.Intent, key))
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

func intentKey(text string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.Join(strings.Fields(text), " "))))
	return intentKeyPrefix + hex.EncodeToString(sum[:])
}
