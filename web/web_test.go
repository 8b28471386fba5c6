package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"library-ui/database"
	"library-ui/logger"

	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *gin.Engine {
	logger.InitLogger(logging.ERROR)
	os.Remove("test.db")
	require.NoError(t, database.InitDB("test.db"))

	s := NewServer()
	engine, err := s.initRouter()
	require.NoError(t, err)
	return engine
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func doGet(engine *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doPostForm(engine *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, engine *gin.Engine, username, password string) *http.Cookie {
	w := doPostForm(engine, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/borrowList", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == sessionName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	return cookie
}

func TestStaticPages(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	for _, path := range []string{"/", "/about", "/test", "/login"} {
		w := doGet(engine, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := doGet(engine, "/no-such-page", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginFlow(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	// wrong password re-renders the login view with a generic message
	w := doPostForm(engine, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	// anonymous /logout is guarded and redirected to the login page
	w = doGet(engine, "/logout", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// unknown username is indistinguishable from a wrong password
	w = doPostForm(engine, "/login", url.Values{
		"username": {"nobody"},
		"password": {"admin123"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	cookie := login(t, engine, "admin", "admin123")

	w = doGet(engine, "/logout", cookie)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
}

func TestBorrowRequiresLogin(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	// anonymous users get the holding view, not an error
	w := doGet(engine, "/borrow", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "log in")

	w = doPostForm(engine, "/borrow", url.Values{
		"book_id":       {"AB1"},
		"category":      {"Programming"},
		"return_period": {"7days"},
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "log in")
}

func TestBorrowSubmission(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	cookie := login(t, engine, "user1", "user123")

	w := doPostForm(engine, "/borrow", url.Values{
		"book_id":       {"AB1"},
		"book_title":    {"First Book"},
		"category":      {"Programming"},
		"return_period": {"7days"},
	}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Borrow Confirmed")
	assert.Contains(t, w.Body.String(), "user1@example.com")

	// short book id renders the not-found page, nothing is stored
	w = doPostForm(engine, "/borrow", url.Values{
		"book_id":       {"A"},
		"category":      {"Programming"},
		"return_period": {"7days"},
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// bad period token is a bad request
	w = doPostForm(engine, "/borrow", url.Values{
		"book_id":       {"AB2"},
		"category":      {"Programming"},
		"return_period": {"1month"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doGet(engine, "/borrowList", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AB1")
	assert.NotContains(t, w.Body.String(), "AB2")
}

func TestAdminGuards(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	// anonymous requests are redirected to the login page
	w := doGet(engine, "/edit_borrow/1", nil)
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// guests get the forbidden page
	guestCookie := login(t, engine, "user1", "user123")
	w = doGet(engine, "/edit_borrow/1", guestCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doPostForm(engine, "/delete_borrow/1", nil, guestCookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// admins reach the handler; a missing record is a 404
	adminCookie := login(t, engine, "admin", "admin123")
	w = doGet(engine, "/edit_borrow/999", adminCookie)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// deleting a missing record still renders the refreshed list
	w = doPostForm(engine, "/delete_borrow/999", nil, adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminEditFlow(t *testing.T) {
	engine := setupEngine(t)
	defer teardown()

	guestCookie := login(t, engine, "user1", "user123")
	w := doPostForm(engine, "/borrow", url.Values{
		"book_id":       {"AB1"},
		"book_title":    {"First Book"},
		"category":      {"Programming"},
		"return_period": {"7days"},
	}, guestCookie)
	require.Equal(t, http.StatusOK, w.Code)

	adminCookie := login(t, engine, "admin", "admin123")

	w = doGet(engine, "/edit_borrow/1", adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First Book")

	w = doPostForm(engine, "/update_borrow/1", url.Values{
		"book_id":        {"AB1"},
		"book_title":     {"Renamed Book"},
		"category":       {"Programming"},
		"borrower_id":    {"user1"},
		"borrower_email": {"user1@example.com"},
		"borrow_date":    {"2024-01-01"},
		"return_period":  {"14days"},
	}, adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed Book")
	assert.Contains(t, w.Body.String(), "2024-01-15")

	w = doPostForm(engine, "/delete_borrow/1", nil, adminCookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Renamed Book")
}
