// Package middleware provides HTTP middleware components for the dispute API.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
	maxIdempotencyKeyLen = 255

	// matches the handlers' body limit; anything larger is rejected downstream
	maxHashedBodyBytes = 64 << 10
)

// submissionPaths are the routes that evaluate and store a dispute. Sending
// the same key twice to one of them returns the first outcome.
var submissionPaths = []string{
	"/api/v1/disputes",
	"/api/v1/disputes/direct",
}

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

// outcomeRecorder tees the dispute response so it can be remembered.
type outcomeRecorder struct {
	http.ResponseWriter
	body        bytes.Buffer
	status      int
	wroteHeader bool
}

func (o *outcomeRecorder) WriteHeader(code int) {
	if o.wroteHeader {
		return
	}
	o.status = code
	o.wroteHeader = true
	o.ResponseWriter.WriteHeader(code)
}

func (o *outcomeRecorder) Write(b []byte) (int, error) {
	if !o.wroteHeader {
		o.WriteHeader(http.StatusOK)
	}
	o.body.Write(b)
	return o.ResponseWriter.Write(b)
}

func (o *outcomeRecorder) Unwrap() http.ResponseWriter {
	return o.ResponseWriter
}

// Idempotency replays the first successful response of a dispute submission
// carrying an Idempotency-Key header. The key is bound to the request body: a
// reuse with a different body is refused with 422 instead of replaying an
// unrelated outcome. Storage errors never block a submission.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path, ok := submissionPath(r)
			key := r.Header.Get(idempotencyKeyHeader)
			if !ok || key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !validIdempotencyKey(key) {
				rejectKey(w)
				return
			}

			log := logger.With("idempotency_key", key, "path", path)

			hash, err := hashBody(r)
			if err != nil {
				log.Warn("failed to read dispute body", "error", err)
				rejectBody(w)
				return
			}

			prior, err := repo.Get(r.Context(), key, path)
			switch {
			case err != nil:
				log.Error("idempotency lookup failed, evaluating dispute", "error", err)
			case prior != nil && prior.RequestHash != "" && prior.RequestHash != hash:
				log.Warn("idempotency key reused with a different body")
				rejectReuse(w)
				return
			case prior != nil:
				log.Info("replaying stored dispute outcome", "status", prior.ResponseStatus)
				replay(w, prior)
				return
			}

			rec := &outcomeRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if rec.status < 200 || rec.status >= 300 {
				return
			}

			// the dispute is already persisted, so remember it even if the client left
			err = repo.Store(context.WithoutCancel(r.Context()), &models.IdempotencyKey{
				Key:            key,
				RequestPath:    path,
				RequestHash:    hash,
				ResponseStatus: rec.status,
				ResponseBody:   rec.body.String(),
				CreatedAt:      time.Now().UTC(),
			})
			if err != nil {
				log.Error("failed to remember dispute outcome", "error", err)
			}
		})
	}
}

func submissionPath(r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		return "", false
	}
	path := strings.TrimSuffix(r.URL.Path, "/")
	return path, slices.Contains(submissionPaths, path)
}

// hashBody fingerprints the submitted body and rewinds it for the handler.
// Bodies over the limit are hashed on their prefix; the handler refuses them.
func hashBody(r *http.Request) (string, error) {
	if r.Body == nil {
		return hex.EncodeToString(sha256.New().Sum(nil)), nil
	}
	head, err := io.ReadAll(io.LimitReader(r.Body, maxHashedBodyBytes+1))
	if err != nil {
		return "", err
	}
	r.Body = readCloser{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

	sum := sha256.Sum256(head)
	return hex.EncodeToString(sum[:]), nil
}

type readCloser struct {
	io.Reader
	io.Closer
}

func validIdempotencyKey(key string) bool {
	if len(key) > maxIdempotencyKeyLen {
		return false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < 0x21 || key[i] > 0x7e {
			return false
		}
	}
	return true
}

func replay(w http.ResponseWriter, prior *models.IdempotencyKey) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(replayedHeader, "true")
	w.WriteHeader(prior.ResponseStatus)
	_, _ = w.Write([]byte(prior.ResponseBody)) //nolint:errcheck // client may be gone
}

func rejectKey(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest,
		"Idempotency-Key must be 1-255 printable ASCII characters")
}

func rejectBody(w http.ResponseWriter) {
	writeError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "failed to read request body")
}

func rejectReuse(w http.ResponseWriter) {
	writeError(w, http.StatusUnprocessableEntity, api.ErrorCodeIdempotencyKeyReused,
		"Idempotency-Key was already used with a different request body")
}

func writeError(w http.ResponseWriter, status int, code api.ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // client may be gone
	json.NewEncoder(w).Encode(api.ErrorResponse{Error: code, Message: message})
}
