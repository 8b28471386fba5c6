package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"library-ui/config"
	"library-ui/logger"
	"library-ui/web/entity"
	"library-ui/web/service"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the provided data and title.
func html(c *gin.Context, name string, title string, data gin.H) {
	htmlStatus(c, http.StatusOK, name, title, data)
}

func htmlStatus(c *gin.Context, status int, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["base_path"] = c.GetString("base_path")
	data["cur_ver"] = config.GetVersion()
	c.HTML(status, name, data)
}

// renderError renders the error page matching the status code.
func renderError(c *gin.Context, status int, description string) {
	name := "error.html"
	if status == http.StatusNotFound {
		name = "404.html"
	}
	htmlStatus(c, status, name, http.StatusText(status), gin.H{
		"status":      status,
		"description": description,
	})
	c.Abort()
}

// renderServiceError maps service error classes onto rendered error pages.
func renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		renderError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrBadRequest):
		renderError(c, http.StatusBadRequest, err.Error())
	default:
		logger.Error("unhandled service error:", err)
		renderError(c, http.StatusInternalServerError, "something went wrong")
	}
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
