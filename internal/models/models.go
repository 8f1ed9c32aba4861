package models

import (
	"time"
)

type Role string

const (
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

type Account struct {
	Id         int64
	Username   string
	Password   string
	Role       Role
	Created_at time.Time
}

// Identity is the per-request view of the authenticated account, resolved
// once from the session cookie and carried through the request context.
type Identity struct {
	UserId   int64
	Username string
	Role     Role
}

type Book struct {
	Id         int64     `json:"id"`
	Title      string    `json:"title"`
	Author     string    `json:"author"`
	Cover      string    `json:"cover"`
	Created_at time.Time `json:"created_at"`
}

// BookWithStatus is the catalog listing row: a book joined against its open
// loan, if any. BorrowedBy is nil when the book is available.
type BookWithStatus struct {
	Id         int64   `json:"id"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Cover      string  `json:"cover"`
	Status     string  `json:"status"`
	BorrowedBy *string `json:"borrowedBy"`
}

type LoanRecord struct {
	Id          int64
	Book_id     int64
	Reader_id   int64
	Borrow_date time.Time
	Return_date *time.Time
}

type OutstandingLoan struct {
	Book_id     int64     `json:"book_id"`
	Title       string    `json:"title"`
	BorrowedBy  string    `json:"borrowedBy"`
	Borrow_date time.Time `json:"borrow_date"`
}

type PurchaseRecord struct {
	Id            int64
	Book_id       int64
	Reader_id     int64
	Purchase_date time.Time
}

type HandleLoginParams struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=admin reader"`
}

type HandleLoginResponse struct {
	Success  bool   `json:"success"`
	Redirect string `json:"redirect"`
}

type HandleBookParams struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Cover  string `json:"cover"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
