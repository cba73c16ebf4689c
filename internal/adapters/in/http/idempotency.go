package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderIdempotencyKey      = "Idempotency-Key"
	HeaderIdempotencyReplayed = "X-Idempotency-Replayed"

	processingMarker = "PROCESSING"
)

// StoredResponse is what a completed request left behind for replays.
type StoredResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        []byte `json:"body,omitempty"`
}

var errInProgress = errors.New("a request with this idempotency key is in progress")

// IdempotencyStore keeps one entry per key: first a processing marker, then the response.
type IdempotencyStore interface {
	// Load returns the stored response, errInProgress while the first request runs,
	// or ok == false when the key is unknown.
	Load(ctx context.Context, key string) (resp StoredResponse, ok bool, err error)
	// Reserve places the processing marker unless the key exists.
	Reserve(ctx context.Context, key string) (bool, error)
	Save(ctx context.Context, key string, resp StoredResponse) error
	Release(ctx context.Context, key string) error
}

type RedisIdempotencyStore struct {
	client  redis.UniversalClient
	lockTTL time.Duration
	ttl     time.Duration
}

// NewRedisIdempotencyStore keeps markers for lockTTL and responses for ttl.
func NewRedisIdempotencyStore(client redis.UniversalClient, lockTTL, ttl time.Duration) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, lockTTL: lockTTL, ttl: ttl}
}

func (s *RedisIdempotencyStore) Load(ctx context.Context, key string) (StoredResponse, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return StoredResponse{}, false, nil
	}
	if err != nil {
		return StoredResponse{}, false, err
	}
	if string(val) == processingMarker {
		return StoredResponse{}, true, errInProgress
	}

	var resp StoredResponse
	if err = json.Unmarshal(val, &resp); err != nil {
		return StoredResponse{}, false, fmt.Errorf("decode stored response: %w", err)
	}
	return resp, true, nil
}

func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, key, processingMarker, s.lockTTL).Result()
}

func (s *RedisIdempotencyStore) Save(ctx context.Context, key string, resp StoredResponse) error {
	val, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, val, s.ttl).Err()
}

func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a POST that carries an already seen
// Idempotency-Key. Keys are scoped to the caller. Responses with a 5xx status are
// not stored, so the client may retry them. When the store is unreachable the
// request runs unprotected.
func Idempotency(store IdempotencyStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(HeaderIdempotencyKey)
			if c.Request().Method != http.MethodPost || header == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			key := fmt.Sprintf("idempotency:%s:%s", actorFrom(c).PartyID(), header)

			stored, ok, err := store.Load(ctx, key)
			switch {
			case errors.Is(err, errInProgress):
				return c.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: err.Error()})
			case err != nil:
				c.Logger().Warnf("idempotency store unavailable: %v", err)
				return next(c)
			case ok:
				c.Response().Header().Set(HeaderIdempotencyReplayed, "true")
				if stored.Body == nil {
					return c.NoContent(stored.Status)
				}
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}

			reserved, err := store.Reserve(ctx, key)
			if err != nil {
				c.Logger().Warnf("idempotency store unavailable: %v", err)
				return next(c)
			}
			if !reserved {
				return c.JSON(http.StatusConflict, Error{Code: http.StatusConflict, Message: errInProgress.Error()})
			}

			res := c.Response()
			capture := &captureWriter{ResponseWriter: res.Writer}
			res.Writer = capture
			handlerErr := next(c)
			res.Writer = capture.ResponseWriter
			if handlerErr != nil {
				c.Error(handlerErr)
			}

			// Detached: a disconnected client must not leave the key PROCESSING.
			storeCtx := context.WithoutCancel(ctx)
			if res.Status >= http.StatusInternalServerError || !res.Committed {
				_ = store.Release(storeCtx, key)
				return nil
			}
			resp := StoredResponse{Status: res.Status, ContentType: res.Header().Get(echo.HeaderContentType)}
			if capture.body.Len() > 0 {
				resp.Body = capture.body.Bytes()
			}
			if err = store.Save(storeCtx, key, resp); err != nil {
				c.Logger().Warnf("store idempotent response: %v", err)
			}
			return nil
		}
	}
}
