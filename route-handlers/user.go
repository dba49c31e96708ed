package routehandlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/coreybb/daybrief/identity"
	"github.com/coreybb/daybrief/models"
	"github.com/coreybb/daybrief/webutil"
)

// IdentityDeleter removes a user from the authentication subsystem.
type IdentityDeleter interface {
	DeleteIdentity(ctx context.Context, identityID string) error
}

// UserStore deletes user rows from the relational store, returning the rows
// that were removed.
type UserStore interface {
	DeleteUser(ctx context.Context, userID string) ([]models.User, error)
}

type UserHandler struct {
	Identities IdentityDeleter
	Users      UserStore
}

func NewUserHandler(identities IdentityDeleter, users UserStore) *UserHandler {
	return &UserHandler{Identities: identities, Users: users}
}

// HandleDeleteUser removes the user from the auth subsystem, then from the
// users table. The two stores are independent and there is no transaction
// spanning them: an identity missing from auth is non-fatal and the row
// delete still runs, so a row orphaned by an earlier partial failure can be
// cleaned up by retrying the request.
func (h *UserHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "userId")
	if _, err := uuid.Parse(userID); err != nil {
		return webutil.ErrBadRequest("Invalid user ID format")
	}

	err := h.Identities.DeleteIdentity(r.Context(), userID)
	if err != nil && !errors.Is(err, identity.ErrIdentityNotFound) {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError,
			"Failed to delete user from auth: "+err.Error(), err)
	}

	deleted, err := h.Users.DeleteUser(r.Context(), userID)
	if err != nil {
		return webutil.NewHTTPErrorWrap(http.StatusInternalServerError,
			"Failed to delete user record: "+err.Error(), err)
	}
	if len(deleted) == 0 {
		return webutil.ErrNotFound("User not found")
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
	return nil
}
