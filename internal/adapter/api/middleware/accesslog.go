package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/felixge/httpsnoop"

	"github.com/V4T54L/access-logger/internal/domain"
	"github.com/V4T54L/access-logger/internal/pkg/logger"
)

// DefaultLoggerName is the registry channel used when no logger is given.
const DefaultLoggerName = "http.access"

// ErrLoggerUnavailable reports that no access logger could be resolved.
var ErrLoggerUnavailable = errors.New("access logger unavailable")

type accessLogConfig struct {
	logger    domain.Logger
	formatter domain.Formatter
	level     domain.LevelFunc
	registry  *logger.Registry
	name      string
}

// AccessLogOption configures AccessLog.
type AccessLogOption func(*accessLogConfig)

// WithLogger sets the logger records are written to. Without it the logger is
// looked up in the registry on every request.
func WithLogger(l domain.Logger) AccessLogOption {
	return func(c *accessLogConfig) { c.logger = l }
}

// WithFormatter overrides DefaultFormatter.
func WithFormatter(f domain.Formatter) AccessLogOption {
	return func(c *accessLogConfig) {
		if f != nil {
			c.formatter = f
		}
	}
}

// WithLevel overrides the severity selection. A LevelFunc returning nil falls
// back to DefaultLevel.
func WithLevel(f domain.LevelFunc) AccessLogOption {
	return func(c *accessLogConfig) { c.level = f }
}

// WithRegistry sets the registry used for the default logger lookup.
func WithRegistry(r *logger.Registry) AccessLogOption {
	return func(c *accessLogConfig) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithLoggerName sets the registry channel, DefaultLoggerName by default.
func WithLoggerName(name string) AccessLogOption {
	return func(c *accessLogConfig) {
		if name != "" {
			c.name = name
		}
	}
}

// AccessLog returns a middleware that emits exactly one record for every
// request whose response is finalized. Requests that panic, hijack the
// connection, or fail their first write to the client are not logged.
//
// Panics raised by the formatter or level function propagate to the server.
func AccessLog(opts ...AccessLogOption) (func(http.Handler) http.Handler, error) {
	cfg := &accessLogConfig{
		formatter: DefaultFormatter,
		registry:  logger.Default(),
		name:      DefaultLoggerName,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.logger == nil {
		if _, err := cfg.registry.Get(cfg.name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoggerUnavailable, err)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rc := &responseCapture{status: http.StatusOK}
			next.ServeHTTP(rc.wrap(w), r)

			if rc.hijacked || (rc.writeFailed && !rc.wroteHeader) {
				return
			}

			cfg.emit(r, domain.Response{
				StatusCode:   rc.status,
				Header:       w.Header(),
				BytesWritten: rc.bytes,
				Duration:     time.Since(start),
			})
		})
	}, nil
}

// MustAccessLog is like AccessLog but panics on error.
func MustAccessLog(opts ...AccessLogOption) func(http.Handler) http.Handler {
	mw, err := AccessLog(opts...)
	if err != nil {
		panic(err)
	}
	return mw
}

func (c *accessLogConfig) emit(r *http.Request, res domain.Response) {
	msg := c.formatter(r, res)

	l := c.resolve()

	var fn domain.LogFunc
	if c.level != nil {
		fn = c.level(l, r, res)
	}
	if fn == nil {
		fn = DefaultLevel(l, r, res)
	}

	requestID := RequestIDFromContext(r.Context())
	if requestID == "" {
		requestID = res.Header.Get(RequestIDHeader)
	}

	fn(domain.Record{
		ResponseCode: res.StatusCode,
		Message:      msg,
		Method:       r.Method,
		Path:         r.URL.Path,
		Proto:        r.Proto,
		RemoteAddr:   r.RemoteAddr,
		UserAgent:    r.UserAgent(),
		RequestID:    requestID,
		BytesWritten: res.BytesWritten,
		Duration:     res.Duration,
	})
}

func (c *accessLogConfig) resolve() domain.Logger {
	if c.logger != nil {
		return c.logger
	}
	l, err := c.registry.Get(c.name)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrLoggerUnavailable, err))
	}
	return l
}

// DefaultFormatter renders `"<METHOD> <URI> HTTP/<MAJOR>.<MINOR>" <STATUS>`.
func DefaultFormatter(r *http.Request, res domain.Response) string {
	uri := r.RequestURI
	if uri == "" {
		uri = r.URL.RequestURI()
	}
	return fmt.Sprintf(`"%s %s HTTP/%d.%d" %d`, r.Method, uri, r.ProtoMajor, r.ProtoMinor, res.StatusCode)
}

// DefaultLevel maps 5xx to Error, 4xx to Warn and everything else to Info.
func DefaultLevel(l domain.Logger, _ *http.Request, res domain.Response) domain.LogFunc {
	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		return l.Error
	case res.StatusCode >= http.StatusBadRequest:
		return l.Warn
	default:
		return l.Info
	}
}

// responseCapture records the final status and body size without hiding the
// optional interfaces of the wrapped writer.
type responseCapture struct {
	status      int
	wroteHeader bool
	bytes       int64
	hijacked    bool
	writeFailed bool
}

func (rc *responseCapture) wrap(w http.ResponseWriter) http.ResponseWriter {
	return httpsnoop.Wrap(w, httpsnoop.Hooks{
		WriteHeader: func(next httpsnoop.WriteHeaderFunc) httpsnoop.WriteHeaderFunc {
			return func(code int) {
				next(code)
				rc.writeHeader(code)
			}
		},
		Write: func(next httpsnoop.WriteFunc) httpsnoop.WriteFunc {
			return func(b []byte) (int, error) {
				n, err := next(b)
				rc.bytes += int64(n)
				rc.written(err)
				return n, err
			}
		},
		ReadFrom: func(next httpsnoop.ReadFromFunc) httpsnoop.ReadFromFunc {
			return func(src io.Reader) (int64, error) {
				n, err := next(src)
				rc.bytes += n
				rc.written(err)
				return n, err
			}
		},
		Hijack: func(next httpsnoop.HijackFunc) httpsnoop.HijackFunc {
			return func() (net.Conn, *bufio.ReadWriter, error) {
				conn, brw, err := next()
				if err == nil {
					rc.hijacked = true
				}
				return conn, brw, err
			}
		},
	})
}

// written finalizes the implicit 200 after a body write. A write that fails
// before any header reached the client leaves the response unfinalized.
func (rc *responseCapture) written(err error) {
	if err != nil && !rc.wroteHeader {
		rc.writeFailed = true
		return
	}
	rc.writeHeader(http.StatusOK)
}

// writeHeader keeps the first final status. 1xx responses other than 101 are
// informational and do not finalize the status.
func (rc *responseCapture) writeHeader(code int) {
	if rc.wroteHeader {
		return
	}
	if code >= 100 && code < 200 && code != http.StatusSwitchingProtocols {
		return
	}
	rc.status = code
	rc.wroteHeader = true
}
