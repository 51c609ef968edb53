package middleware

import (
	"crypto/rand"
	"log/slog"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/benx421/payment-gateway/disputes/internal/api"
	"github.com/benx421/payment-gateway/disputes/internal/config"
)

// statusServicePrefixes are the sample bank and merchant services. Dispute
// routes are never disturbed; they see the faults through the status providers.
var statusServicePrefixes = []string{"/bank/", "/merchant/"}

// faults decides, per request, how long to stall and whether to fail.
type faults struct {
	cfg    *config.AppConfig
	random func(n int64) int64
}

// FailureInjection slows down and randomly fails the sample status services so
// the reconciler's UNKNOWN and unavailable paths can be exercised end to end.
func FailureInjection(cfg *config.AppConfig, logger *slog.Logger) func(http.Handler) http.Handler {
	return newFaults(cfg, cryptoRandom).middleware(logger)
}

func newFaults(cfg *config.AppConfig, random func(n int64) int64) *faults {
	return &faults{cfg: cfg, random: random}
}

func (f *faults) middleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isStatusService(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if delay := f.delay(); delay > 0 {
				timer := time.NewTimer(delay)
				select {
				case <-timer.C:
				case <-r.Context().Done():
					timer.Stop()
					return
				}
			}

			if f.fail() {
				logger.Debug("injecting status service failure", "path", r.URL.Path)
				writeUnavailable(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (f *faults) delay() time.Duration {
	minMS, maxMS := f.cfg.MinLatencyMS, f.cfg.MaxLatencyMS
	if maxMS <= 0 {
		return time.Duration(max(minMS, 0)) * time.Millisecond
	}
	ms := minMS
	if spread := maxMS - minMS; spread > 0 {
		ms += int(f.random(int64(spread) + 1))
	}
	return time.Duration(ms) * time.Millisecond
}

func (f *faults) fail() bool {
	rate := f.cfg.FailureRate
	switch {
	case rate <= 0:
		return false
	case rate >= 1:
		return true
	}
	const scale = 1_000_000
	return f.random(scale) < int64(rate*scale)
}

func isStatusService(path string) bool {
	for _, prefix := range statusServicePrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// cryptoRandom returns a value in [0, n); a broken entropy source yields 0.
func cryptoRandom(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return v.Int64()
}

func writeUnavailable(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	writeError(w, http.StatusServiceUnavailable, api.ErrorCodeServiceUnavailable, "status service unavailable")
}
