package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/obiora/librarium/internal/models"
	"github.com/obiora/librarium/internal/store"
)

func bookIdParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)

	if err != nil {
		return 0, fmt.Errorf("invalid book id")
	}

	return id, nil
}

// HandleListBooks serves both the reader and the admin catalog view: every
// book with its computed borrow status.
func (a *Api) HandleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := a.store.GetBooksWithStatus(r.Context())

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleListBooks")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, books)
}

func (a *Api) HandleBorrowBook(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value("identity").(*models.Identity)

	bookId, err := bookIdParam(r, "bookId")

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandleBorrowBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.store.BorrowBook(r.Context(), bookId, identity.UserId); err != nil {
		if err == store.ErrBookAlreadyBorrowed {
			a.logger.Warn("borrow conflict", "service", "HandleBorrowBook")
			respondWithError(w, http.StatusBadRequest, fmt.Errorf("Book is already borrowed."))
			return
		}

		a.logger.Error(err.Error(), "service", "HandleBorrowBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Book borrowed successfully."})
}

func (a *Api) HandleReturnBook(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value("identity").(*models.Identity)

	bookId, err := bookIdParam(r, "bookId")

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandleReturnBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.store.ReturnBook(r.Context(), bookId, identity.UserId); err != nil {
		if err == store.ErrLoanNotFound {
			a.logger.Warn("return without open loan", "service", "HandleReturnBook")
			respondWithError(w, http.StatusBadRequest, fmt.Errorf("You have not borrowed this book."))
			return
		}

		a.logger.Error(err.Error(), "service", "HandleReturnBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Book returned successfully."})
}

func (a *Api) HandlePurchaseBook(w http.ResponseWriter, r *http.Request) {
	identity := r.Context().Value("identity").(*models.Identity)

	bookId, err := bookIdParam(r, "bookId")

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandlePurchaseBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.store.PurchaseBook(r.Context(), bookId, identity.UserId); err != nil {
		a.logger.Error(err.Error(), "service", "HandlePurchaseBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, models.MessageResponse{Success: true, Message: "Book purchased successfully."})
}
