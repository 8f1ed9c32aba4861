package api

import (
	"fmt"
	"net/http"

	"github.com/obiora/librarium/internal/bcrypt"
	"github.com/obiora/librarium/internal/models"
	"github.com/obiora/librarium/internal/store"
)

// HandleLogin authenticates against the account namespace selected by
// userType. Unknown usernames and wrong passwords get the same response so
// the two cases cannot be told apart from outside.
func (a *Api) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var params models.HandleLoginParams

	if err := decodeJson(r, &params); err != nil {
		a.logger.Warn(err.Error(), "service", "HandleLogin")
		respondWithError(w, http.StatusBadRequest, err)
		return
	}

	if err := validate.Struct(&params); err != nil {
		a.logger.Warn(fmt.Sprintf("error validating fields: %v", err), "service", "HandleLogin")
		respondWithError(w, http.StatusBadRequest, fmt.Errorf("error validating fields: %v", err))
		return
	}

	role := models.RoleReader

	if params.UserType == "admin" {
		role = models.RoleAdmin
	}

	account, err := a.store.GetAccountByUsername(r.Context(), params.Username, role)

	if err != nil {
		if err == store.ErrAccountNotFound {
			a.logger.Warn("unknown username for role", "service", "HandleLogin")
			respondWithError(w, http.StatusUnauthorized, fmt.Errorf("Invalid credentials"))
			return
		}

		a.logger.Error(err.Error(), "service", "HandleLogin")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	if err := bcrypt.ComparePassword(params.Password, account.Password); err != nil {
		a.logger.Warn("password mismatch", "service", "HandleLogin")
		respondWithError(w, http.StatusUnauthorized, fmt.Errorf("Invalid credentials"))
		return
	}

	sess, err := a.sessions.Create(r.Context(), &models.Identity{
		UserId:   account.Id,
		Username: account.Username,
		Role:     account.Role,
	})

	if err != nil {
		a.logger.Error(err.Error(), "service", "HandleLogin")
		respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Internal server error"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.config.Session_cookie,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   a.config.Cookie_secure,
		MaxAge:   int(sess.Expires_at.Sub(sess.Created_at).Seconds()),
	})

	redirect := fmt.Sprintf("/reader.html?user=%s", account.Username)

	if account.Role == models.RoleAdmin {
		redirect = "/admin.html"
	}

	respondWithSuccess(w, http.StatusOK, models.HandleLoginResponse{Success: true, Redirect: redirect})
}

// HandleLogout destroys the session behind the cookie, if any, and always
// points the client back at the login page.
func (a *Api) HandleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(a.config.Session_cookie)

	if err == nil {
		if err := a.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			a.logger.Error(err.Error(), "service", "HandleLogout")
			respondWithError(w, http.StatusInternalServerError, fmt.Errorf("Failed to logout"))
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     a.config.Session_cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   a.config.Cookie_secure,
		MaxAge:   -1,
	})

	respondWithSuccess(w, http.StatusOK, models.HandleLoginResponse{Success: true, Redirect: "/login.html"})
}
