package service

import (
	"errors"
	"fmt"
	"time"

	"library-ui/database"
	"library-ui/database/model"
	"library-ui/logger"

	"gorm.io/gorm/clause"
)

// Error classes the controllers map onto rendered error pages.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "2006-01-02 15:04:05"

	minIdentifierLen = 3
)

// BorrowRequest carries the fields of a borrow submission or edit.
type BorrowRequest struct {
	BookId        string
	BookTitle     string
	Category      string
	BorrowerId    string
	BorrowerEmail string
	Instructions  string
	Period        model.BorrowPeriod
	BorrowDate    string // empty means today
}

// BorrowView is a borrow record merged with the current display fields of its
// book and borrower.
type BorrowView struct {
	Id            int    `json:"id"`
	BookId        string `json:"bookId"`
	BorrowerId    string `json:"borrowerId"`
	BorrowDate    string `json:"borrowDate"`
	ReturnDate    string `json:"returnDate"`
	Instructions  string `json:"instructions"`
	UpdateTime    string `json:"updateTime"`
	BookTitle     string `json:"bookTitle"`
	Category      string `json:"category"`
	BorrowerEmail string `json:"borrowerEmail"`
}

type BorrowService struct{}

// CalculateReturnDate advances borrowDate by exactly the period's length.
// Unknown period tokens and malformed dates are bad requests, never defaulted.
func (s *BorrowService) CalculateReturnDate(borrowDate string, period model.BorrowPeriod) (string, error) {
	if !period.IsValid() {
		return "", fmt.Errorf("%w: invalid borrow period %q", ErrBadRequest, period)
	}
	borrowDt, err := time.Parse(dateLayout, borrowDate)
	if err != nil {
		return "", fmt.Errorf("%w: invalid borrow date %q", ErrBadRequest, borrowDate)
	}
	return borrowDt.AddDate(0, 0, period.Days()).Format(dateLayout), nil
}

// checkRequest enforces the submission constraints before any write happens.
// Identifier and email violations are not-found-class to match the rendered
// pages; the period token is a bad request.
func (s *BorrowService) checkRequest(req BorrowRequest) error {
	if len(req.BookId) < minIdentifierLen {
		return fmt.Errorf("%w: book id %q is shorter than %d characters", ErrNotFound, req.BookId, minIdentifierLen)
	}
	if len(req.BorrowerId) < minIdentifierLen {
		return fmt.Errorf("%w: borrower id %q is shorter than %d characters", ErrNotFound, req.BorrowerId, minIdentifierLen)
	}
	if req.BorrowerEmail == "" {
		return fmt.Errorf("%w: borrower email is required", ErrNotFound)
	}
	if !req.Period.IsValid() {
		return fmt.Errorf("%w: invalid borrow period %q", ErrBadRequest, req.Period)
	}
	return nil
}

// CreateBorrow validates the request and inserts the borrow record together
// with its book and borrower rows (insert-if-absent) in one transaction.
func (s *BorrowService) CreateBorrow(req BorrowRequest) (*BorrowView, error) {
	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	borrowDate := req.BorrowDate
	if borrowDate == "" {
		borrowDate = time.Now().Format(dateLayout)
	}
	returnDate, err := s.CalculateReturnDate(borrowDate, req.Period)
	if err != nil {
		return nil, err
	}

	borrow := &model.Borrow{
		BookId:       req.BookId,
		BorrowerId:   req.BorrowerId,
		BorrowDate:   borrowDate,
		ReturnDate:   returnDate,
		Instructions: req.Instructions,
		UpdateTime:   time.Now().Format(timeLayout),
	}

	db := database.GetDB()
	tx := db.Begin()
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_id"}},
		DoNothing: true,
	}).Create(&model.Book{
		BookId:   req.BookId,
		Title:    req.BookTitle,
		Category: req.Category,
	}).Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "borrower_id"}},
		DoNothing: true,
	}).Create(&model.Borrower{
		BorrowerId: req.BorrowerId,
		Email:      req.BorrowerEmail,
	}).Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}

	if err = tx.Create(borrow).Error; err != nil {
		return nil, s.wrapWriteErr(err)
	}

	if err = tx.Commit().Error; err != nil {
		return nil, err
	}
	committed = true

	logger.Infof("borrow %d created for book %s by %s", borrow.Id, borrow.BookId, borrow.BorrowerId)
	return s.GetBorrow(borrow.Id)
}

// ListBorrows returns borrow records joined with their display fields, ordered
// by ascending id. A non-empty search filters by substring over book id,
// borrower id, or book title. Guests only see their own records; a nil viewer
// sees nothing.
func (s *BorrowService) ListBorrows(viewer *model.User, search string) ([]*BorrowView, error) {
	if viewer == nil {
		return []*BorrowView{}, nil
	}

	db := database.GetDB()
	q := db.Table("borrows").
		Select("borrows.*, books.title AS book_title, books.category AS category, borrowers.email AS borrower_email").
		Joins("LEFT JOIN books ON books.book_id = borrows.book_id").
		Joins("LEFT JOIN borrowers ON borrowers.borrower_id = borrows.borrower_id")

	if viewer.Role != model.RoleAdmin {
		q = q.Where("borrows.borrower_id = ?", viewer.Username)
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("borrows.book_id LIKE ? OR borrows.borrower_id LIKE ? OR books.title LIKE ?", like, like, like)
	}

	views := make([]*BorrowView, 0)
	err := q.Order("borrows.id ASC").Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// GetBorrow fetches one record merged with display fields.
func (s *BorrowService) GetBorrow(id int) (*BorrowView, error) {
	db := database.GetDB()
	view := &BorrowView{}
	result := db.Table("borrows").
		Select("borrows.*, books.title AS book_title, books.category AS category, borrowers.email AS borrower_email").
		Joins("LEFT JOIN books ON books.book_id = borrows.book_id").
		Joins("LEFT JOIN borrowers ON borrowers.borrower_id = borrows.borrower_id").
		Where("borrows.id = ?", id).
		Limit(1).
		Scan(view)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: borrow record %d", ErrNotFound, id)
	}
	return view, nil
}

// UpdateBorrow replaces a record's fields, recomputes the return date from the
// supplied borrow date and period, and updates the companion book and borrower
// rows in the same transaction.
func (s *BorrowService) UpdateBorrow(id int, req BorrowRequest) (*BorrowView, error) {
	db := database.GetDB()

	borrow := &model.Borrow{}
	err := db.Model(model.Borrow{}).Where("id = ?", id).First(borrow).Error
	if database.IsNotFound(err) {
		return nil, fmt.Errorf("%w: borrow record %d", ErrNotFound, id)
	} else if err != nil {
		return nil, err
	}

	if err := s.checkRequest(req); err != nil {
		return nil, err
	}

	borrowDate := req.BorrowDate
	if borrowDate == "" {
		borrowDate = borrow.BorrowDate
	}
	returnDate, err := s.CalculateReturnDate(borrowDate, req.Period)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "book_id"}},
		DoNothing: true,
	}).Create(&model.Book{BookId: req.BookId}).Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}
	err = tx.Model(model.Book{}).
		Where("book_id = ?", req.BookId).
		Updates(map[string]any{"title": req.BookTitle, "category": req.Category}).
		Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}

	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "borrower_id"}},
		DoNothing: true,
	}).Create(&model.Borrower{BorrowerId: req.BorrowerId}).Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}
	err = tx.Model(model.Borrower{}).
		Where("borrower_id = ?", req.BorrowerId).
		Updates(map[string]any{"email": req.BorrowerEmail}).
		Error
	if err != nil {
		return nil, s.wrapWriteErr(err)
	}

	borrow.BookId = req.BookId
	borrow.BorrowerId = req.BorrowerId
	borrow.BorrowDate = borrowDate
	borrow.ReturnDate = returnDate
	borrow.Instructions = req.Instructions
	borrow.UpdateTime = time.Now().Format(timeLayout)
	if err = tx.Save(borrow).Error; err != nil {
		return nil, s.wrapWriteErr(err)
	}

	if err = tx.Commit().Error; err != nil {
		return nil, err
	}
	committed = true

	return s.GetBorrow(id)
}

// DeleteBorrow removes a record. Deleting an id that does not exist is a
// silent no-op.
func (s *BorrowService) DeleteBorrow(id int) error {
	db := database.GetDB()
	return db.Delete(&model.Borrow{}, id).Error
}

func (s *BorrowService) wrapWriteErr(err error) error {
	if database.IsDuplicate(err) {
		return fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	return err
}
