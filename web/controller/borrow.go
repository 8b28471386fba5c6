package controller

import (
	"net/http"
	"strconv"

	"library-ui/database/model"
	"library-ui/web/service"
	"library-ui/web/session"

	"github.com/gin-gonic/gin"
)

// BorrowForm mirrors the borrow submission and edit forms.
type BorrowForm struct {
	BookId        string `form:"book_id"`
	BookTitle     string `form:"book_title"`
	Category      string `form:"category"`
	BorrowerId    string `form:"borrower_id"`
	BorrowerEmail string `form:"borrower_email"`
	Instructions  string `form:"instructions"`
	ReturnPeriod  string `form:"return_period"`
	BorrowDate    string `form:"borrow_date"`
}

// BorrowController handles the borrow-record lifecycle routes.
type BorrowController struct {
	BaseController

	borrowService service.BorrowService
}

func NewBorrowController(g *gin.RouterGroup) *BorrowController {
	a := &BorrowController{}
	a.initRouter(g)
	return a
}

func (a *BorrowController) initRouter(g *gin.RouterGroup) {
	g.GET("/borrow", a.borrowForm)
	g.POST("/borrow", a.borrow)
	g.GET("/borrowList", a.borrowList)

	g.GET("/edit_borrow/:id", a.checkAdmin, a.editBorrow)
	g.POST("/update_borrow/:id", a.checkAdmin, a.updateBorrow)
	g.POST("/delete_borrow/:id", a.checkAdmin, a.deleteBorrow)
}

func (a *BorrowController) borrowForm(c *gin.Context) {
	if !session.IsLogin(c) {
		html(c, "borrow_unlogged.html", "Borrow", nil)
		return
	}
	html(c, "borrow_form.html", "Borrow", nil)
}

// borrow submits a new borrow request on behalf of the logged-in user.
func (a *BorrowController) borrow(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil {
		html(c, "borrow_unlogged.html", "Borrow", nil)
		return
	}

	var form BorrowForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, http.StatusBadRequest, "malformed borrow form")
		return
	}

	view, err := a.borrowService.CreateBorrow(service.BorrowRequest{
		BookId:        form.BookId,
		BookTitle:     form.BookTitle,
		Category:      form.Category,
		BorrowerId:    user.Username,
		BorrowerEmail: user.Email,
		Instructions:  form.Instructions,
		Period:        model.BorrowPeriod(form.ReturnPeriod),
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	html(c, "confirmation.html", "Borrow Confirmed", gin.H{
		"username":    user.Username,
		"email":       user.Email,
		"borrow_date": view.BorrowDate,
		"return_date": view.ReturnDate,
	})
}

// borrowList renders the role-dependent list view with optional search.
func (a *BorrowController) borrowList(c *gin.Context) {
	searchQuery := c.Query("search")
	user := session.GetLoginUser(c)

	borrows, err := a.borrowService.ListBorrows(user, searchQuery)
	if err != nil {
		renderServiceError(c, err)
		return
	}

	message := ""
	if searchQuery != "" && len(borrows) == 0 {
		message = "The order you are looking for does not exist"
	}

	name := "borrow_list_guest.html"
	if session.IsAdmin(c) {
		name = "borrow_list_admin.html"
	}
	html(c, name, "Borrow List", gin.H{
		"borrows":      borrows,
		"search_query": searchQuery,
		"message":      message,
	})
}

func (a *BorrowController) editBorrow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderError(c, http.StatusNotFound, "invalid borrow record id")
		return
	}

	borrow, err := a.borrowService.GetBorrow(id)
	if err != nil {
		renderServiceError(c, err)
		return
	}
	html(c, "borrow_edit.html", "Edit Borrow", gin.H{"borrow": borrow})
}

func (a *BorrowController) updateBorrow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderError(c, http.StatusNotFound, "invalid borrow record id")
		return
	}

	var form BorrowForm
	if err := c.ShouldBind(&form); err != nil {
		renderError(c, http.StatusBadRequest, "malformed borrow form")
		return
	}

	_, err = a.borrowService.UpdateBorrow(id, service.BorrowRequest{
		BookId:        form.BookId,
		BookTitle:     form.BookTitle,
		Category:      form.Category,
		BorrowerId:    form.BorrowerId,
		BorrowerEmail: form.BorrowerEmail,
		Instructions:  form.Instructions,
		Period:        model.BorrowPeriod(form.ReturnPeriod),
		BorrowDate:    form.BorrowDate,
	})
	if err != nil {
		renderServiceError(c, err)
		return
	}

	a.renderAdminList(c)
}

// deleteBorrow removes a record; deleting a missing id still renders the
// refreshed list.
func (a *BorrowController) deleteBorrow(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		renderError(c, http.StatusNotFound, "invalid borrow record id")
		return
	}

	if err := a.borrowService.DeleteBorrow(id); err != nil {
		renderServiceError(c, err)
		return
	}

	a.renderAdminList(c)
}

func (a *BorrowController) renderAdminList(c *gin.Context) {
	borrows, err := a.borrowService.ListBorrows(session.GetLoginUser(c), "")
	if err != nil {
		renderServiceError(c, err)
		return
	}
	html(c, "borrow_list_admin.html", "Borrow List", gin.H{
		"borrows":      borrows,
		"search_query": "",
		"message":      "",
	})
}
