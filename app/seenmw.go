// app/seenmw.go
package app

import (
	"time"

	"campus_equipment_lending/db"
	"campus_equipment_lending/lending"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func TouchLastSeen(repo *db.Repo, rdb *redis.Client, throttle time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := Caller(c)
		if caller.ID == "" || caller.Role != lending.RoleBorrower {
			c.Next()
			return
		}

		key := "borrower:lastseen:" + caller.ID
		if ok, _ := rdb.SetNX(c, key, "1", throttle).Result(); ok {
			_ = repo.TouchBorrowerSeen(c, caller.ID) // 忽略错误，不阻塞请求
		}
		c.Next()
	}
}
