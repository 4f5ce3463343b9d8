package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ice-club/storefront/internal/http/response"
	"github.com/ice-club/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 根据请求生成限流键
type RateLimitKeyFunc func(c *gin.Context) (string, bool)

// RateLimitRule 固定窗口限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	Message       string
}

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[2]) > 0 and current > tonumber(ARGV[3]) then
	redis.call("EXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 固定窗口限流中间件，Redis 未启用时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 || keyFunc == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	message := rule.Message
	if message == "" {
		message = "too many requests"
	}

	return func(c *gin.Context) {
		key, ok := keyFunc(c)
		if !ok || key == "" {
			c.Next()
			return
		}
		redisKey := fmt.Sprintf("%s:%s", rule.Prefix, key)

		result, err := rateLimitScript.Run(
			c.Request.Context(),
			client,
			[]string{redisKey},
			rule.WindowSeconds,
			rule.BlockSeconds,
			rule.MaxRequests,
		).Slice()
		if err != nil {
			logger.Warnw("rate_limit_script_failed", "key", redisKey, "error", err)
			c.Next()
			return
		}
		if len(result) != 2 {
			c.Next()
			return
		}

		current := toInt64(result[0])
		if current > int64(rule.MaxRequests) {
			logger.Warnw("rate_limit_blocked",
				"key", redisKey,
				"current", current,
				"max", rule.MaxRequests,
				"client_ip", c.ClientIP(),
			)
			response.Error(c, response.CodeTooManyRequests, message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) (string, bool) {
	ip := c.ClientIP()
	if ip == "" {
		return "", false
	}
	return "ip:" + ip, true
}

// KeyByIPAndJSONField 按 IP 加请求体字段限流，读取后回填请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) (string, bool) {
		ip := c.ClientIP()
		if ip == "" {
			return "", false
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return "ip:" + ip, true
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return "ip:" + ip, true
		}
		value, _ := payload[field].(string)
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			return "ip:" + ip, true
		}
		return fmt.Sprintf("ip:%s:%s:%s", ip, field, value), true
	}
}

func toInt64(value interface{}) int64 {
	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		var parsed int64
		_, _ = fmt.Sscanf(v, "%d", &parsed)
		return parsed
	default:
		return 0
	}
}
