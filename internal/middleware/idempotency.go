package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const idempotencyLockTTL = 30 * time.Second

// Idempotency replays the cached response for a repeated Idempotency-Key and
// rejects a duplicate request that is still in flight. The handler is
// responsible for storing the response under the cache key and releasing the
// lock key once done.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		userID := c.GetString("user_id")

		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.FullPath(), userID, idempKey)
		lockKey := cacheKey + ":lock"

		if val, err := rdb.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var cachedRes any
			_ = json.Unmarshal([]byte(val), &cachedRes)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"status": "success", "data": cachedRes})
			return
		}

		// SetNX: short TTL so a crashed server cannot hold the lock forever
		isNew, _ := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if !isNew {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"code":    "PROCESSING",
				"message": "A request with this idempotency key is already in progress",
			})
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}
