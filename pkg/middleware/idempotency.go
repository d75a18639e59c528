package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Janushan11/scout-api/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// ContextKeyIdempotencyKey is the context key for idempotency key
	ContextKeyIdempotencyKey = "idempotency_key"
	// Redis key prefix for idempotency records
	IdempotencyKeyPrefix = "idempotency:"
)

// IdempotencyStatus represents the status of an idempotency record
type IdempotencyStatus string

const (
	StatusProcessing IdempotencyStatus = "processing"
	StatusCompleted  IdempotencyStatus = "completed"
)

// IdempotencyRecord stores the state of an idempotent request
type IdempotencyRecord struct {
	Key          string            `json:"key"`
	Status       IdempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// RedisClient is the subset of redis operations the middleware needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for idempotency middleware
type IdempotencyConfig struct {
	// Redis client for storing idempotency records
	Redis RedisClient
	// TTL for completed records (default: 24 hours)
	TTL time.Duration
	// ProcessingTTL bounds how long an in-flight record can block retries (default: 60s)
	ProcessingTTL time.Duration
}

// Idempotency returns a middleware that replays the stored response when a
// request repeats the same X-Idempotency-Key with an identical payload.
// Requests without the header pass through untouched, and redis failures fail
// open: idempotency is best-effort protection for double-submitted forms, not
// a correctness requirement of the API.
func Idempotency(cfg *IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL == 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.ProcessingTTL == 0 {
		cfg.ProcessingTTL = 60 * time.Second
	}

	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" || cfg.Redis == nil {
			c.Next()
			return
		}

		c.Set(ContextKeyIdempotencyKey, key)

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		requestHash := hashRequest(c, bodyBytes)
		redisKey := IdempotencyKeyPrefix + key
		ctx := c.Request.Context()

		existing, err := getRecord(ctx, cfg.Redis, redisKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if existing != nil {
			if existing.RequestHash != requestHash {
				c.AbortWithStatusJSON(http.StatusUnprocessableEntity,
					response.ErrorBody{Message: "Idempotency key already used with a different request"})
				return
			}
			if existing.Status == StatusProcessing {
				c.AbortWithStatusJSON(http.StatusConflict,
					response.ErrorBody{Message: "A request with this idempotency key is already being processed"})
				return
			}
			c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		record := &IdempotencyRecord{
			Key:         key,
			Status:      StatusProcessing,
			RequestHash: requestHash,
			CreatedAt:   time.Now(),
		}

		if !trySetRecord(ctx, cfg.Redis, redisKey, record, cfg.ProcessingTTL) {
			// Lost the SetNX race; the concurrent request owns the key now.
			existing, _ = getRecord(ctx, cfg.Redis, redisKey)
			if existing != nil {
				if existing.Status == StatusProcessing {
					c.AbortWithStatusJSON(http.StatusConflict,
						response.ErrorBody{Message: "A request with this idempotency key is already being processed"})
					return
				}
				c.Data(existing.ResponseCode, "application/json", []byte(existing.ResponseBody))
				c.Abort()
				return
			}
		}

		rw := &captureWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = rw

		c.Next()

		now := time.Now()
		record.Status = StatusCompleted
		record.ResponseCode = rw.status
		record.ResponseBody = rw.body.String()
		record.CompletedAt = &now

		saveRecord(ctx, cfg.Redis, redisKey, record, cfg.TTL)
	}
}

// GetIdempotencyKey extracts the idempotency key from gin context
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	key, exists := c.Get(ContextKeyIdempotencyKey)
	if !exists {
		return "", false
	}
	k, ok := key.(string)
	return k, ok
}

// captureWriter records the response so it can be replayed on retries
type captureWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func hashRequest(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	if userID, ok := c.Get("user_id"); ok {
		if id, ok := userID.(string); ok {
			h.Write([]byte(id))
		}
	}
	if len(body) > 0 {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func getRecord(ctx context.Context, rdb RedisClient, key string) (*IdempotencyRecord, error) {
	result, err := rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var record IdempotencyRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, err
	}

	return &record, nil
}

func trySetRecord(ctx context.Context, rdb RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) bool {
	data, err := json.Marshal(record)
	if err != nil {
		return false
	}

	ok, err := rdb.SetNX(ctx, key, string(data), ttl).Result()
	if err != nil {
		return false
	}
	return ok
}

func saveRecord(ctx context.Context, rdb RedisClient, key string, record *IdempotencyRecord, ttl time.Duration) {
	data, err := json.Marshal(record)
	if err != nil {
		return
	}
	_ = rdb.Set(ctx, key, string(data), ttl).Err()
}
