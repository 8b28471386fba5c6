package controller

import (
	"html/template"
	"net/http"

	"library-ui/logger"
	"library-ui/web/service"
	"library-ui/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the static pages and login-related routes.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
	serverService  service.ServerService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/about", a.about)
	g.GET("/test", a.test)

	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/logout", a.checkLogin, a.logout)
}

func (a *IndexController) index(c *gin.Context) {
	html(c, "home.html", "HOME", nil)
}

func (a *IndexController) about(c *gin.Context) {
	html(c, "about.html", "ABOUT", nil)
}

// test renders the status page: app version, uptime, host metrics, and for
// admins the recent log buffer.
func (a *IndexController) test(c *gin.Context) {
	data := gin.H{
		"status": a.serverService.GetStatus(),
	}
	if session.IsAdmin(c) {
		data["logs"] = logger.GetLogs(20, "INFO")
	}
	html(c, "test.html", "TEST", data)
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"borrowList")
		return
	}
	html(c, "login.html", "Login", nil)
}

// login authenticates the submitted credentials and establishes the session.
// All failure modes surface the same generic message.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil || form.Username == "" || form.Password == "" {
		html(c, "login.html", "Login", gin.H{"error": "Invalid credentials"})
		return
	}

	user := a.userService.CheckUser(form.Username, form.Password)
	if user == nil {
		safeUser := template.HTMLEscapeString(form.Username)
		logger.Warningf("failed login attempt for %q from %s", safeUser, getRemoteIp(c))
		html(c, "login.html", "Login", gin.H{"error": "Invalid credentials"})
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session max age:", err)
	}
	if sessionMaxAge > 0 {
		if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
			logger.Warning("unable to set session max age:", err)
		}
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("unable to save session:", err)
	}

	logger.Infof("%s logged in successfully from %s", user.Username, getRemoteIp(c))
	c.Redirect(http.StatusFound, c.GetString("base_path")+"borrowList")
}

func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out successfully", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"borrowList")
}
