package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/usersapi/internal/users/domain"
	"github.com/aussiebroadwan/usersapi/internal/users/service"
	"github.com/aussiebroadwan/usersapi/pkg/httpx"
	"github.com/aussiebroadwan/usersapi/pkg/usersdk"
	"github.com/aussiebroadwan/usersapi/pkg/validx"
)

type UsersHandler struct {
	UserService *service.UserService
	Validator   *validx.Validator
}

// HandleCreate godoc
//
//	@Summary		Create User
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		usersdk.CreateUserRequest	true	"email, name, password"
//	@Success		201		{object}	usersdk.User				"created user"
//	@Failure		400		{object}	httpx.ErrorResponse			"validation failures"
//	@Failure		409		{object}	httpx.ErrorResponse			"email already in use"
//	@Router			/users [post].
func (h *UsersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req usersdk.CreateUserRequest
	if err := h.Validator.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.UserService.Create(ctx, domain.CreateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUser(user))
}

// HandleList godoc
//
//	@Summary		List Users
//	@Description	Paginated list of live users, most recently updated first
//	@Tags			Users
//	@Produce		json
//	@Param			page	query		int					false	"1-indexed page"	default(1)
//	@Param			perPage	query		int					false	"page size"			default(10)	maximum(100)
//	@Param			search	query		string				false	"case-insensitive match on email or name"
//	@Success		200		{object}	usersdk.UsersPage	"meta, data"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	page := domain.PageQuery{
		Page:    queryInt(q.Get("page"), domain.DefaultPage),
		PerPage: queryInt(q.Get("perPage"), domain.DefaultPerPage),
	}
	filter := domain.UserFilter{Search: q.Get("search")}

	result, err := h.UserService.FindAll(ctx, filter, page)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUsersPage(result))
}

// HandleGet godoc
//
//	@Summary		Get User
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string				true	"user id"
//	@Success		200	{object}	usersdk.User		"user"
//	@Failure		404	{object}	httpx.ErrorResponse	"user not found"
//	@Router			/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.FindOne(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleUpdate godoc
//
//	@Summary		Update User
//	@Description	Partial update; omitted fields are unchanged. A new password is re-hashed.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"user id"
//	@Param			request	body		usersdk.UpdateUserRequest	true	"email?, name?, password?"
//	@Success		200		{object}	usersdk.User				"updated user"
//	@Failure		400		{object}	httpx.ErrorResponse			"validation failures"
//	@Failure		404		{object}	httpx.ErrorResponse			"record not found"
//	@Failure		409		{object}	httpx.ErrorResponse			"email already in use"
//	@Router			/users/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req usersdk.UpdateUserRequest
	if err := h.Validator.Decode(r.Body, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.UserService.Update(ctx, r.PathValue("id"), domain.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// HandleDelete godoc
//
//	@Summary		Delete User
//	@Description	Soft delete; the user disappears from every read
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		string				true	"user id"
//	@Success		200	{object}	usersdk.User		"deleted user"
//	@Failure		404	{object}	httpx.ErrorResponse	"record not found"
//	@Router			/users/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.Remove(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUser(user))
}

// queryInt parses a positive integer, falling back to def.
func queryInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func toUser(u domain.SerializedUser) usersdk.User {
	return usersdk.User{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toUsersPage(p domain.Page[domain.SerializedUser]) usersdk.UsersPage {
	data := make([]usersdk.User, 0, len(p.Data))
	for _, u := range p.Data {
		data = append(data, toUser(u))
	}
	return usersdk.UsersPage{
		Meta: usersdk.PageMeta{
			Total:       p.Meta.Total,
			LastPage:    p.Meta.LastPage,
			CurrentPage: p.Meta.CurrentPage,
			PerPage:     p.Meta.PerPage,
			Prev:        p.Meta.Prev,
			Next:        p.Meta.Next,
		},
		Data: data,
	}
}
