package http

import (
	"encoding/json"
	"net/http"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/pkg/httpx"
	"github.com/aussiebroadwan/usersapi/pkg/slogx"
	"github.com/aussiebroadwan/usersapi/pkg/usersdk"
	"github.com/aussiebroadwan/usersapi/pkg/validx"
)

const forgotPasswordMessage = "successfully sent password reset link to user email"

type AuthHandler struct {
	AuthService *service.AuthService
	Validator   *validx.Validator
}

// HandleSignup godoc
//
//	@Summary		Sign Up
//	@Description	Create an account and log in as the new user
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.SignupRequest	true	"email, name, password"
//	@Success		201		{object}	usersdk.SessionResponse	"user, access_token"
//	@Failure		400		{object}	httpx.ErrorResponse		"validation failures"
//	@Failure		409		{object}	httpx.ErrorResponse		"email already in use"
//	@Router			/auth/signup [post].
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req usersdk.SignupRequest
	if err := h.Validator.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.AuthService.Signup(ctx, domain.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleLogin godoc
//
//	@Summary		Log In
//	@Description	Exchange an email and password for an access token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.LoginRequest	true	"email, password"
//	@Success		201		{object}	usersdk.SessionResponse	"user, access_token"
//	@Failure		401		{object}	httpx.ErrorResponse		"missing credentials or incorrect password"
//	@Failure		404		{object}	httpx.ErrorResponse		"user not found"
//	@Failure		429		{object}	httpx.ErrorResponse		"too many attempts"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// Credentials are checked before any validation; anything unusable is a 401.
	var req usersdk.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		writeUnauthorized(w)
		return
	}

	user, err := h.AuthService.ValidateUser(ctx, req.Email, req.Password)
	if err != nil {
		log.Info("login rejected", "err", err)
		writeError(w, r, err)
		return
	}

	session, err := h.AuthService.Login(ctx, user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleForgotPassword godoc
//
//	@Summary		Forgot Password
//	@Description	Email the user a one-time link to reset their password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.ForgotPasswordRequest	true	"email"
//	@Success		201		{object}	usersdk.MessageResponse			"confirmation"
//	@Failure		400		{object}	httpx.ErrorResponse				"validation failures"
//	@Failure		404		{object}	httpx.ErrorResponse				"user not found"
//	@Router			/auth/forgot-password [post].
func (h *AuthHandler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req usersdk.ForgotPasswordRequest
	if err := h.Validator.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.AuthService.ForgotPassword(ctx, req.Email); err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, usersdk.MessageResponse{Message: forgotPasswordMessage})
}

// HandleResetPassword godoc
//
//	@Summary		Reset Password
//	@Description	Set a new password with the id and token from a reset link, then log in
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.ResetPasswordRequest	true	"id, password, access_token"
//	@Success		201		{object}	usersdk.SessionResponse			"user, access_token"
//	@Failure		400		{object}	httpx.ErrorResponse				"validation failures"
//	@Failure		401		{object}	httpx.ErrorResponse				"invalid or used token"
//	@Failure		404		{object}	httpx.ErrorResponse				"user not found"
//	@Router			/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req usersdk.ResetPasswordRequest
	if err := h.Validator.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	session, err := h.AuthService.ResetPassword(ctx, req.ID, req.Password, req.AccessToken)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSessionResponse(session))
}

// HandleProfile godoc
//
//	@Summary		Profile
//	@Description	Return the user the bearer token was issued for
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	usersdk.ProfileResponse	"user"
//	@Failure		401	{object}	httpx.ErrorResponse		"missing or invalid token"
//	@Failure		404	{object}	httpx.ErrorResponse		"user no longer exists"
//	@Router			/auth/profile [get].
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	user, err := h.AuthService.Profile(ctx, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, usersdk.ProfileResponse{User: toUser(user)})
}

func toSessionResponse(s domain.Session) usersdk.SessionResponse {
	return usersdk.SessionResponse{
		User:        toUser(s.User),
		AccessToken: s.AccessToken,
	}
}
