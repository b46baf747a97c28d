package pii

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/V4T54L/access-logger/internal/domain"
)

const RedactedPlaceholder = "[REDACTED]"

// Redactor masks the values of sensitive query parameters before a request
// line reaches the access log.
type Redactor struct {
	fieldsToRedact map[string]struct{} // Use a map for O(1) lookups
	logger         *slog.Logger
}

// NewRedactor creates a new Redactor for the given parameter names. Matching
// is case-insensitive.
func NewRedactor(fields []string, logger *slog.Logger) *Redactor {
	fieldSet := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.ToLower(strings.TrimSpace(field))
		if field != "" {
			fieldSet[field] = struct{}{}
		}
	}
	return &Redactor{
		fieldsToRedact: fieldSet,
		logger:         logger,
	}
}

// RedactQuery replaces the values of sensitive parameters in rawQuery,
// keeping parameter order and separators. It reports whether anything was replaced.
func (r *Redactor) RedactQuery(rawQuery string) (string, bool) {
	if len(r.fieldsToRedact) == 0 || rawQuery == "" {
		return rawQuery, false
	}

	var b strings.Builder
	redacted := false
	rest := rawQuery
	for rest != "" {
		// "&" and ";" both separate pairs for some proxies and frameworks.
		i := strings.IndexAny(rest, "&;")
		pair, sep := rest, ""
		if i >= 0 {
			pair, sep = rest[:i], rest[i:i+1]
			rest = rest[i+1:]
		} else {
			rest = ""
		}

		key, _, hasValue := strings.Cut(pair, "=")
		name, err := url.QueryUnescape(key)
		if err != nil {
			r.logger.Warn("failed to unescape query key for PII redaction", "error", err)
			name = key
		}
		if _, ok := r.fieldsToRedact[strings.ToLower(name)]; ok && hasValue {
			pair = key + "=" + RedactedPlaceholder
			redacted = true
		}
		b.WriteString(pair)
		b.WriteString(sep)
	}

	if !redacted {
		return rawQuery, false
	}
	return b.String(), true
}

// Formatter wraps next so that it only ever sees redacted query strings.
func (r *Redactor) Formatter(next domain.Formatter) domain.Formatter {
	return func(req *http.Request, res domain.Response) string {
		query, changed := r.RedactQuery(req.URL.RawQuery)
		if !changed {
			return next(req, res)
		}

		clone := req.WithContext(req.Context())
		u := *req.URL
		u.RawQuery = query
		clone.URL = &u
		if uri, _, ok := strings.Cut(req.RequestURI, "?"); ok {
			clone.RequestURI = uri + "?" + query
		}
		return next(clone, res)
	}
}
