package middleware

import (
    "time"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
)

// RequestLogger logs every request after completion with method, path, status
// and timing.  Errors returned by handlers are passed to echo's error handler
// before logging so the logged status reflects what the client actually saw.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            start := time.Now()

            err := next(c)
            if err != nil {
                c.Error(err)
            }

            req := c.Request()
            res := c.Response()
            status := res.Status

            var event *zerolog.Event
            switch {
            case status >= 500:
                event = log.Error()
            case status >= 400:
                event = log.Warn()
            default:
                event = log.Info()
            }

            event.
                Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
                Str("method", req.Method).
                Str("path", req.URL.Path).
                Str("query", req.URL.RawQuery).
                Int("status", status).
                Int64("duration_ms", time.Since(start).Milliseconds()).
                Int64("bytes_out", res.Size).
                Str("client_ip", c.RealIP()).
                Msg("http request")

            return nil
        }
    }
}
