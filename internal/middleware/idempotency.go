package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/josh-kwaku/pos-ledger/internal/auth"
	"github.com/josh-kwaku/pos-ledger/internal/handler"
	"github.com/josh-kwaku/pos-ledger/internal/logging"
	"github.com/josh-kwaku/pos-ledger/internal/repository"
)

type idempotencyRepository interface {
	Get(ctx context.Context, key string, userID uuid.UUID) (*repository.IdempotencyCacheEntry, error)
	Reserve(ctx context.Context, key string, userID uuid.UUID, requestHash string, lease time.Time) (bool, error)
	Complete(ctx context.Context, key string, userID uuid.UUID, requestHash string, statusCode int, body []byte, expiresAt time.Time) error
	Release(ctx context.Context, key string, userID uuid.UUID) error
}

// reservationLease bounds how long a crashed request can hold a key.
const reservationLease = time.Minute

// Idempotency replays the stored response when a till resubmits a POST with
// the same Idempotency-Key. The key is reserved before the handler runs, so a
// concurrent retry gets IDEMPOTENCY_IN_PROGRESS instead of recording the sale
// or payment a second time. Server errors release the key for a retry.
func Idempotency(repo idempotencyRepository, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				handler.RespondAppError(w, handler.ErrMissingIdempotencyKey, nil)
				return
			}

			userID, ok := auth.UserIDFromContext(r.Context())
			if !ok {
				handler.RespondAppError(w, handler.ErrMissingToken, nil)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				handler.RespondAppError(w, handler.ErrInvalidRequest, nil)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			log := logging.FromContext(ctx).With("idempotency_key", key)
			reqHash := computeHash(r.Method, r.URL.Path, body)

			cached, err := repo.Get(ctx, key, userID)
			if err != nil {
				log.Error("idempotency cache lookup failed", "error", err)
				handler.RespondAppError(w, handler.ErrInternalError, nil)
				return
			}

			if cached == nil {
				reserved, err := repo.Reserve(ctx, key, userID, reqHash, time.Now().UTC().Add(reservationLease))
				if err != nil {
					log.Error("idempotency reservation failed", "error", err)
					handler.RespondAppError(w, handler.ErrInternalError, nil)
					return
				}
				if reserved {
					serveReserved(w, r, next, repo, log, key, userID, reqHash, ttl)
					return
				}

				// Lost the race: answer from whatever the winner left.
				if cached, err = repo.Get(ctx, key, userID); err != nil {
					log.Error("idempotency cache lookup failed", "error", err)
					handler.RespondAppError(w, handler.ErrInternalError, nil)
					return
				}
				if cached == nil {
					handler.RespondAppError(w, handler.ErrIdempotencyInProgress, nil)
					return
				}
			}

			if cached.RequestHash != reqHash {
				handler.RespondAppError(w, handler.ErrIdempotencyConflict, nil)
				return
			}
			if cached.Pending {
				handler.RespondAppError(w, handler.ErrIdempotencyInProgress, nil)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Idempotent-Replayed", "true")
			w.WriteHeader(cached.StatusCode)
			if _, err := w.Write(cached.ResponseBody); err != nil {
				log.Error("failed to write idempotent replay", "error", err)
			}
		})
	}
}

func serveReserved(w http.ResponseWriter, r *http.Request, next http.Handler, repo idempotencyRepository, log *slog.Logger, key string, userID uuid.UUID, reqHash string, ttl time.Duration) {
	// Server errors and panics give the key back.
	settled := false
	defer func() {
		if settled {
			return
		}
		if err := repo.Release(context.WithoutCancel(r.Context()), key, userID); err != nil {
			log.Error("idempotency release failed", "error", err)
		}
	}()

	rec := &responseRecorder{ResponseWriter: w, body: &bytes.Buffer{}, statusCode: http.StatusOK}
	next.ServeHTTP(rec, r)

	if rec.statusCode >= http.StatusInternalServerError {
		return
	}

	settled = true
	expires := time.Now().UTC().Add(ttl)
	if err := repo.Complete(context.WithoutCancel(r.Context()), key, userID, reqHash, rec.statusCode, rec.body.Bytes(), expires); err != nil {
		log.Error("idempotency cache store failed", "error", err)
	}
}

func computeHash(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(path))
	h.Write(body)
	return fmt.Sprintf("%x", h.Sum(nil))
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}
