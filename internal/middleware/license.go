package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apierrors "subpix/internal/errors"
)

// LicenseChecker reports whether the license is currently valid. The license
// manager satisfies this.
type LicenseChecker interface {
	Valid() bool
}

// LicenseGate blocks billing routes while the license is missing or expired.
// License and health routes stay reachable so the user can activate a key.
type LicenseGate struct {
	checker      LicenseChecker
	logger       *slog.Logger
	excludePaths []string
}

// NewLicenseGate creates the gate. excludePaths are path prefixes that skip
// the check.
func NewLicenseGate(checker LicenseChecker, logger *slog.Logger, excludePaths ...string) *LicenseGate {
	return &LicenseGate{
		checker:      checker,
		logger:       logger,
		excludePaths: excludePaths,
	}
}

// Handler enforces the gate.
func (g *LicenseGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, prefix := range g.excludePaths {
			if strings.HasPrefix(r.URL.Path, prefix) {
				next.ServeHTTP(w, r)
				return
			}
		}
		if !g.checker.Valid() {
			g.logger.WarnContext(r.Context(), "request blocked by license gate",
				slog.String("path", r.URL.Path),
			)
			render.Render(w, r, apierrors.LicenseRequired())
			return
		}
		next.ServeHTTP(w, r)
	})
}
