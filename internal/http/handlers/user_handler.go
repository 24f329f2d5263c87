package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker/internal/domain"
	"github.com/tbourn/go-jobtracker/internal/services"
)

// CreateUserRequest is the JSON payload for registering an applicant. The
// password is hashed with bcrypt before it reaches the store.
type CreateUserRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
	Name     string `json:"name" example:"Ann Lee"`
}

// UpdateUserRequest replaces a user's email and name. A blank password keeps
// the current one.
type UpdateUserRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password,omitempty"`
	Name     string `json:"name" example:"Ann Lee"`
}

// ListUsersResponse wraps a page of users.
type ListUsersResponse struct {
	Users []domain.User `json:"users"`
	Page  Page          `json:"page"`
}

// CreateUser godoc
// @ID          createUser
// @Summary     Register an applicant
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string  false  "Makes retries safe"
// @Param       body  body  handlers.CreateUserRequest  true  "New user"
// @Success     201  {object}  handlers.CreatedResponse
// @Header      201  {string}  Idempotency-Replayed  "true when answered from a stored key"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	h.createIdempotent(c, func(ctx context.Context) (string, error) {
		hash, err := services.HashPassword(req.Password)
		if err != nil {
			return "", err
		}
		return h.users.Save(ctx, &domain.User{Email: req.Email, PasswordHash: hash, Name: req.Name})
	})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users (newest first)
// @Tags        Users
// @Produce     json
// @Param       limit   query  int  false  "Page size"  minimum(1)  default(20)
// @Param       offset  query  int  false  "Rows to skip"  minimum(0)  default(0)
// @Success     200  {object}  handlers.ListUsersResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad paging parameters"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	p, good := h.page(c)
	if !good {
		return
	}
	items, err := h.users.List(c.Request.Context(), p.Limit, p.Offset)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListUsersResponse{Users: items, Page: p})
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
// @Param       id  path  string  true  "User ID"
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	u, err := h.users.Get(c.Request.Context(), c.Param("id"))
	found(c, u, err, "user")
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Update a user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "User ID"
// @Param       body  body  handlers.UpdateUserRequest  true  "Replacement fields"
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Email already registered"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()
	u, err := h.users.Get(ctx, c.Param("id"))
	if err != nil || u == nil {
		found(c, u, err, "user")
		return
	}

	u.Email, u.Name = req.Email, req.Name
	if req.Password != "" {
		if u.PasswordHash, err = services.HashPassword(req.Password); err != nil {
			failErr(c, err)
			return
		}
	}
	if _, err := h.users.Save(ctx, u); err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user
// @Description Fails with 409 while the user still has applications.
// @Tags        Users
// @Param       id  path  string  true  "User ID"
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     409  {object}  handlers.ErrorResponse  "User has applications"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// UserEmailExists godoc
// @ID          userEmailExists
// @Summary     Check whether an email is registered (case-insensitive)
// @Tags        Users
// @Produce     json
// @Param       email  path  string  true  "Email address"
// @Success     200  {object}  handlers.ExistsResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Blank email"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users/email/{email}/exists [get]
func (h *Handlers) UserEmailExists(c *gin.Context) {
	yes, err := h.users.EmailExists(c.Request.Context(), c.Param("email"))
	exists(c, yes, err)
}
