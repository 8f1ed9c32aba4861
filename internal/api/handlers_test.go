package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/obiora/librarium/internal/config"
	"github.com/obiora/librarium/internal/models"
	"github.com/obiora/librarium/internal/session"
)

type testLogger struct{}

func (l *testLogger) Info(msg string, args ...any)  {}
func (l *testLogger) Warn(msg string, args ...any)  {}
func (l *testLogger) Error(msg string, args ...any) {}

type testStore struct {
	getAccountByUsernameFunc func(ctx context.Context, username string, role models.Role) (*models.Account, error)
	getBooksWithStatusFunc   func(ctx context.Context) ([]models.BookWithStatus, error)
	createBookFunc           func(ctx context.Context, book *models.HandleBookParams) (*models.Book, error)
	updateBookFunc           func(ctx context.Context, id int64, book *models.HandleBookParams) (*models.Book, error)
	deleteBookFunc           func(ctx context.Context, id int64) error
	borrowBookFunc           func(ctx context.Context, bookId int64, readerId int64) error
	returnBookFunc           func(ctx context.Context, bookId int64, readerId int64) error
	purchaseBookFunc         func(ctx context.Context, bookId int64, readerId int64) error
	getOutstandingLoansFunc  func(ctx context.Context) ([]models.OutstandingLoan, error)
}

func (s *testStore) GetAccountByUsername(ctx context.Context, username string, role models.Role) (*models.Account, error) {
	if s.getAccountByUsernameFunc != nil {
		return s.getAccountByUsernameFunc(ctx, username, role)
	}
	return &models.Account{Id: 1, Username: username, Role: role}, nil
}

func (s *testStore) GetBooksWithStatus(ctx context.Context) ([]models.BookWithStatus, error) {
	if s.getBooksWithStatusFunc != nil {
		return s.getBooksWithStatusFunc(ctx)
	}
	return []models.BookWithStatus{}, nil
}

func (s *testStore) CreateBook(ctx context.Context, book *models.HandleBookParams) (*models.Book, error) {
	if s.createBookFunc != nil {
		return s.createBookFunc(ctx, book)
	}
	return &models.Book{Id: 1, Title: book.Title, Author: book.Author, Cover: book.Cover}, nil
}

func (s *testStore) UpdateBook(ctx context.Context, id int64, book *models.HandleBookParams) (*models.Book, error) {
	if s.updateBookFunc != nil {
		return s.updateBookFunc(ctx, id, book)
	}
	return &models.Book{Id: id, Title: book.Title, Author: book.Author, Cover: book.Cover}, nil
}

func (s *testStore) DeleteBook(ctx context.Context, id int64) error {
	if s.deleteBookFunc != nil {
		return s.deleteBookFunc(ctx, id)
	}
	return nil
}

func (s *testStore) BorrowBook(ctx context.Context, bookId int64, readerId int64) error {
	if s.borrowBookFunc != nil {
		return s.borrowBookFunc(ctx, bookId, readerId)
	}
	return nil
}

func (s *testStore) ReturnBook(ctx context.Context, bookId int64, readerId int64) error {
	if s.returnBookFunc != nil {
		return s.returnBookFunc(ctx, bookId, readerId)
	}
	return nil
}

func (s *testStore) PurchaseBook(ctx context.Context, bookId int64, readerId int64) error {
	if s.purchaseBookFunc != nil {
		return s.purchaseBookFunc(ctx, bookId, readerId)
	}
	return nil
}

func (s *testStore) GetOutstandingLoans(ctx context.Context) ([]models.OutstandingLoan, error) {
	if s.getOutstandingLoansFunc != nil {
		return s.getOutstandingLoansFunc(ctx)
	}
	return []models.OutstandingLoan{}, nil
}

type testSessions struct {
	createFunc        func(ctx context.Context, identity *models.Identity) (*session.Session, error)
	getFunc           func(ctx context.Context, token string) (*session.Session, error)
	destroyFunc       func(ctx context.Context, token string) error
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (s *testSessions) Create(ctx context.Context, identity *models.Identity) (*session.Session, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, identity)
	}

	now := time.Now()
	return &session.Session{
		Id:         uuid.New(),
		Token:      "test_token",
		UserId:     identity.UserId,
		Username:   identity.Username,
		Role:       identity.Role,
		Created_at: now,
		Expires_at: now.Add(time.Hour),
	}, nil
}

func (s *testSessions) Get(ctx context.Context, token string) (*session.Session, error) {
	if s.getFunc != nil {
		return s.getFunc(ctx, token)
	}

	now := time.Now()
	return &session.Session{
		Id:         uuid.New(),
		Token:      token,
		UserId:     1,
		Username:   "reader_one",
		Role:       models.RoleReader,
		Created_at: now,
		Expires_at: now.Add(time.Hour),
	}, nil
}

func (s *testSessions) Destroy(ctx context.Context, token string) error {
	if s.destroyFunc != nil {
		return s.destroyFunc(ctx, token)
	}
	return nil
}

func (s *testSessions) DeleteExpired(ctx context.Context) (int64, error) {
	if s.deleteExpiredFunc != nil {
		return s.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

func newTestApi(store *testStore, sessions *testSessions) *Api {
	return &Api{
		logger:   &testLogger{},
		store:    store,
		sessions: sessions,
		config:   &config.Config{Session_cookie: "library_session"},
	}
}
