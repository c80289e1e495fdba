package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/mzhydenko/airport-api/internal/config"
)

// tokenBucketScript implements a token bucket atomically in Redis.
// KEYS[1] bucket key, ARGV: capacity, refill tokens, refill interval (ms),
// now (ms), ttl (ms).  Returns {allowed, remaining, retry_after_ms}.
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_tokens = tonumber(ARGV[2])
local refill_interval = tonumber(ARGV[3])
local now = tonumber(ARGV[4])
local ttl = tonumber(ARGV[5])

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  ts = now
else
  local elapsed = now - ts
  if elapsed > 0 then
    local refills = math.floor(elapsed / refill_interval)
    if refills > 0 then
      tokens = math.min(capacity, tokens + refills * refill_tokens)
      ts = ts + refills * refill_interval
    end
  end
end

local allowed = 0
local retry_after = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after = refill_interval - (now - ts)
  if retry_after < 0 then retry_after = 0 end
end

redis.call('HSET', key, 'tokens', tokens, 'ts', ts)
redis.call('PEXPIRE', key, ttl)

return {allowed, tokens, retry_after}
`

var bucketScript = redis.NewScript(tokenBucketScript)

// currentUserID reads the authenticated user id set by JWTAuth, if any.
func currentUserID(c echo.Context) (int64, bool) {
    v := c.Get("user_id")
    switch id := v.(type) {
    case int64:
        return id, true
    case int:
        return int64(id), true
    case float64:
        return int64(id), true
    }
    return 0, false
}

// buildRateKey derives the bucket key for a request.  Authenticated traffic is
// keyed per user so one customer cannot starve another behind a shared NAT;
// anonymous traffic falls back to the client IP.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    parts := []string{cfg.Prefix}

    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", c.RealIP())
    case "user":
        if uid, ok := currentUserID(c); ok {
            parts = append(parts, "user", strconv.FormatInt(uid, 10))
        } else {
            parts = append(parts, "ip", c.RealIP())
        }
    case "ip_route":
        parts = append(parts, "ip", c.RealIP(), "route", c.Path())
    default: // "ip_user_route"
        if uid, ok := currentUserID(c); ok {
            parts = append(parts, "user", strconv.FormatInt(uid, 10))
        } else {
            parts = append(parts, "ip", c.RealIP())
        }
        parts = append(parts, "route", c.Path())
    }

    return strings.Join(parts, ":")
}

func asInt64(v interface{}) int64 {
    switch n := v.(type) {
    case int64:
        return n
    case int:
        return int64(n)
    case string:
        i, _ := strconv.ParseInt(n, 10, 64)
        return i
    }
    return 0
}

// NewTokenBucket returns an echo middleware enforcing the configured token
// bucket per key.  On Redis failure the request is allowed through; losing
// rate limiting briefly is preferable to taking the whole API down with it.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            ctx := c.Request().Context()
            key := buildRateKey(cfg, c)
            now := time.Now().UnixMilli()

            res, err := bucketScript.Run(ctx, rdb, []string{key},
                cfg.Capacity,
                cfg.RefillTokens,
                cfg.RefillInterval.Milliseconds(),
                now,
                cfg.TTL.Milliseconds(),
            ).Result()
            if err != nil {
                return next(c)
            }

            vals, ok := res.([]interface{})
            if !ok || len(vals) != 3 {
                return next(c)
            }
            allowed := asInt64(vals[0]) == 1
            remaining := asInt64(vals[1])
            retryAfterMS := asInt64(vals[2])

            c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

            if cfg.Debug {
                c.Response().Header().Set("X-RateLimit-Key", key)
            }

            if !allowed {
                retryAfter := time.Duration(retryAfterMS) * time.Millisecond
                secs := int64(retryAfter.Seconds())
                if secs < 1 {
                    secs = 1
                }
                c.Response().Header().Set("Retry-After", strconv.FormatInt(secs, 10))
                return c.JSON(http.StatusTooManyRequests, echo.Map{
                    "error":       "rate limit exceeded",
                    "retry_after": fmt.Sprintf("%ds", secs),
                })
            }

            return next(c)
        }
    }
}
