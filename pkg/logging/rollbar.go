package logging

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rollbar/rollbar-go"
	"github.com/rs/zerolog/log"
)

// SetupRollbar 配置 Rollbar 错误上报；token 为空时禁用并返回 false
func SetupRollbar(token, env string) bool {
	if token == "" {
		rollbar.SetEnabled(false)
		return false
	}
	rollbar.SetToken(token)
	rollbar.SetEnvironment(env)
	rollbar.SetEnabled(true)
	log.Info().Str("env", env).Msg("Rollbar error reporting enabled")
	return true
}

// CloseRollbar 等待队列中的上报发送完毕
func CloseRollbar() {
	rollbar.Wait()
}

// ErrorReporter 把 panic 和 5xx 响应上报到 Rollbar。
// panic 上报后继续抛出，由外层的 gin.Recovery 写响应。
func ErrorReporter() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rollbar.Critical(fmt.Errorf("panic: %v", r), c.Request)
				panic(r)
			}
		}()

		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError {
			return
		}
		if last := c.Errors.Last(); last != nil {
			rollbar.Error(last.Err, c.Request)
			return
		}
		rollbar.Error(fmt.Sprintf("%s %s returned %d", c.Request.Method, c.FullPath(), c.Writer.Status()), c.Request)
	}
}
