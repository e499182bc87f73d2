package apperrors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/director74/saga-coordinator/internal/logging"
)

// ErrorMiddleware переводит последнюю ошибку контекста в JSON-ответ.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			code, body := ToHTTPResponse(err)
			c.JSON(code, body)
			c.Abort()
		}
	}
}

// WriteError пишет классифицированную ошибку напрямую в ответ и прерывает цепочку.
func WriteError(c *gin.Context, err error) {
	code, body := ToHTTPResponse(err)
	c.JSON(code, body)
	c.Abort()
}

// BindJSON биндит тело запроса к obj; при ошибке отвечает 400 как KindParse.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		WriteError(c, NewParse(fmt.Sprintf("некорректное тело запроса: %v", err), err))
		return false
	}
	return true
}

func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, HTTPResponse{Error: fmt.Sprintf("путь не найден: %s", c.Request.URL.Path)})
	}
}

func MethodNotAllowedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, HTTPResponse{Error: fmt.Sprintf("метод %s не поддерживается для %s", c.Request.Method, c.Request.URL.Path)})
	}
}

// RecoveryMiddleware восстанавливается после паники в обработчике и логирует её.
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logging.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("восстановление после паники")
				c.JSON(http.StatusInternalServerError, HTTPResponse{Error: "внутренняя ошибка координатора"})
				c.Abort()
			}
		}()
		c.Next()
	}
}
