package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/rogerio-castellano/inventory-console/internal/auth"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	repo "github.com/rogerio-castellano/inventory-console/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// issueTokens answers with a fresh access token and a refresh token stored for the user.
func issueTokens(w http.ResponseWriter, user models.User) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	refresh := auth.NewRefreshToken()
	if err := refreshStore.Save(refresh, user.Username, refreshTTL); err != nil {
		log.Printf("could not store refresh token for %s: %v", user.Username, err)
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, LoginResult{
		Token:        token,
		RefreshToken: refresh,
		ExpiresIn:    int(auth.TokenTTL().Seconds()),
		User:         user,
	})
}

// LoginHandler godoc
// @Summary Authenticate user and return JWT and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "username and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := readJSON(w, r, &credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, credentials) {
		return
	}

	user, err := userRepo.GetByUsername(credentials.Username)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if !user.IsActive {
		http.Error(w, "account disabled", http.StatusUnauthorized)
		return
	}

	at := now()
	if err := userRepo.RecordLogin(user.ID, at); err != nil {
		log.Printf("could not record login of %s: %v", user.Username, err)
	}
	user.LastLogin = &at

	log.Printf("🔑 %s signed in", user.Username)
	issueTokens(w, user)
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for new tokens
// @Description The presented refresh token is revoked and replaced.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid refresh token"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	username, err := refreshStore.Username(req.RefreshToken)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, err := userRepo.GetByUsername(username)
	if err != nil || !user.IsActive {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	if err := refreshStore.Revoke(req.RefreshToken); err != nil {
		log.Printf("could not revoke refresh token of %s: %v", username, err)
	}
	issueTokens(w, user)
}

// LogoutHandler godoc
// @Summary Revoke a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} MessageResult
// @Failure 400 {string} string "Invalid input"
// @Router /logout [post]
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	if err := refreshStore.Revoke(req.RefreshToken); err != nil && !errors.Is(err, auth.ErrRefreshTokenNotFound) {
		log.Printf("could not revoke refresh token: %v", err)
		http.Error(w, "could not log out", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, MessageResult{Message: "logged out"})
}

// MeHandler godoc
// @Summary The authenticated user
// @Tags auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {string} string "Unauthorized"
// @Router /me [get]
// @Security BearerAuth
func MeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := userRepo.GetByID(principal(r).UserID)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not fetch user", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, user)
}

// ListUsersHandler godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {string} string "Forbidden"
// @Router /admin/users [get]
// @Security BearerAuth
func ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userRepo.GetAll()
	if err != nil {
		http.Error(w, "could not fetch users", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, users)
}

// CreateUserHandler godoc
// @Summary Create user with a role
// @Tags admin
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User to create"
// @Success 201 {object} models.User
// @Failure 400 {object} ValidationErrorsResult
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "User exists"
// @Router /admin/users [post]
// @Security BearerAuth
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if rejectInvalid(w, req) {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	created, err := userRepo.CreateUser(models.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         req.Role,
		IsActive:     true,
		Department:   req.Department,
		Permissions:  models.RolePermissions[req.Role],
		PasswordHash: string(hashed),
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "could not create user: username duplicated", http.StatusConflict)
			return
		}
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, created)
}
