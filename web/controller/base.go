// Package controller provides the HTTP request handlers of the library panel:
// page rendering, login, and the borrow-record lifecycle.
package controller

import (
	"net/http"

	"library-ui/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the authentication and authorization guards shared
// by all controllers.
type BaseController struct{}

// checkLogin verifies user authentication and redirects anonymous browser
// requests to the login page.
func (a *BaseController) checkLogin(c *gin.Context) {
	if session.IsLogin(c) {
		return
	}
	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, "please log in again")
	} else {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"login")
	}
	c.Abort()
}

// checkAdmin rejects any session whose role is not admin.
func (a *BaseController) checkAdmin(c *gin.Context) {
	a.checkLogin(c)
	if c.IsAborted() {
		return
	}
	if !session.IsAdmin(c) {
		renderError(c, http.StatusForbidden, "administrator privileges required")
	}
}
