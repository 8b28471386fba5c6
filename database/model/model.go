// Package model defines the persisted entities of the library panel.
package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
)

// Role is the access level of a user. It is a closed enumeration; the legacy
// integer form (admin=1, guest=0) exists only at the serialization boundary.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleGuest
}

// Int returns the legacy integer representation of the role.
func (r Role) Int() int {
	if r == RoleAdmin {
		return 1
	}
	return 0
}

// ParseRole maps an external role representation (string or legacy integer
// form) onto the enumeration.
func ParseRole(value string) (Role, error) {
	switch value {
	case string(RoleAdmin), "1":
		return RoleAdmin, nil
	case string(RoleGuest), "0":
		return RoleGuest, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}

// Value stores roles in the legacy integer form.
func (r Role) Value() (driver.Value, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("unknown role %q", r)
	}
	return int64(r.Int()), nil
}

// Scan accepts both the legacy integer form and the string form.
func (r *Role) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case int64:
		s = strconv.FormatInt(v, 10)
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("unsupported role type %T", value)
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// BorrowPeriod is the checkout duration selected at submission time. Only the
// two listed tokens are valid; nothing is silently defaulted.
type BorrowPeriod string

const (
	PeriodWeek     BorrowPeriod = "7days"
	PeriodTwoWeeks BorrowPeriod = "14days"
)

func (p BorrowPeriod) IsValid() bool {
	return p == PeriodWeek || p == PeriodTwoWeeks
}

// Days returns the period length in calendar days, 0 for invalid tokens.
func (p BorrowPeriod) Days() int {
	switch p {
	case PeriodWeek:
		return 7
	case PeriodTwoWeeks:
		return 14
	}
	return 0
}

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"column:password;not null"` // bcrypt hash
	RealName string `json:"realName"`
	Email    string `json:"email"`
	Role     Role   `json:"role" gorm:"not null"`
}

type Book struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	BookId   string `json:"bookId" gorm:"uniqueIndex;not null"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

type Borrower struct {
	Id         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	BorrowerId string `json:"borrowerId" gorm:"uniqueIndex;not null"`
	Email      string `json:"email"`
}

// Borrow is one instance of a borrower taking a book for a bounded period.
// Dates are stored in the same text forms the list and edit views render:
// borrow/return dates as 2006-01-02, update time as 2006-01-02 15:04:05.
type Borrow struct {
	Id           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	BookId       string `json:"bookId" gorm:"index;not null"`
	BorrowerId   string `json:"borrowerId" gorm:"index;not null"`
	BorrowDate   string `json:"borrowDate"`
	ReturnDate   string `json:"returnDate"`
	Instructions string `json:"instructions"`
	UpdateTime   string `json:"updateTime"`
}

type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex"`
	Value string `json:"value"`
}
