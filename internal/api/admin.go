package api

import (
	"fmt"
	"net/http"

	"github.com/obiora/librarium/internal/models"
	"github.com/obiora/librarium/internal/store"
)

func (a *Api) HandleCreateBook(w http.ResponseWriter, r *http.Request) {
	var params models.HandleBookParams

	if err := decodeJson(r, &params); err != nil {
		a.logger.Warn(err.Error(), "service", "HandleCreateBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("error validating fields: %v", err), "service", "HandleCreateBook")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error validating fields: %v", err))
		return
	}

	book, err := a.store.CreateBook(r.Context(), &params)

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleCreateBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusCreated, book)
}

func (a *Api) HandleUpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIdParam(r, "id")

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandleUpdateBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	var params models.HandleBookParams

	if err := decodeJson(r, &params); err != nil {
		a.logger.Warn(err.Error(), "service", "HandleUpdateBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("error validating fields: %v", err), "service", "HandleUpdateBook")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error validating fields: %v", err))
		return
	}

	book, err := a.store.UpdateBook(r.Context(), id, &params)

	if err != nil {
		if err == store.ErrBookNotFound {
			a.logger.Warn("update of missing book", "service", "HandleUpdateBook")
			respondWithError(w, http.StatusNotFound, fmt.Errorf("Book not found"))
			return
		}

		a.logger.Error(err.Error(), "service", "HandleUpdateBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, book)
}

// HandleDeleteBook always reports 204. Deleting an id that no longer exists
// is indistinguishable from a real deletion.
func (a *Api) HandleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := bookIdParam(r, "id")

	if err != nil {
		a.logger.Warn(err.Error(), "service", "HandleDeleteBook")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := a.store.DeleteBook(r.Context(), id); err != nil {
		a.logger.Error(err.Error(), "service", "HandleDeleteBook")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *Api) HandleOutstandingLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := a.store.GetOutstandingLoans(r.Context())

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleOutstandingLoans")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	respondWithSuccess(w, http.StatusOK, loans)
}
