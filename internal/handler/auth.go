package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tlucafe/pos/internal/domain/auth"
)

const sessionContextKey = "pos.session"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type staffRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (h *Handler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}
	u, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapDomainError(c, err)
	}
	sess := h.sessions.Issue(u)
	return c.JSON(http.StatusOK, loginResponse{
		Token:    sess.Token,
		UserID:   u.ID,
		Username: u.Username,
		Role:     string(u.Role),
	})
}

func (h *Handler) logout(c echo.Context) error {
	sess := sessionFromContext(c)
	h.carts.Drop(sess.Token)
	h.sessions.Revoke(sess.Token)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) listStaff(c echo.Context) error {
	users, err := h.auth.ListStaff(c.Request().Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{UserID: u.ID, Username: u.Username, Role: string(u.Role)})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) createStaff(c echo.Context) error {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "malformed request body")
	}
	if req.Username == "" || req.Password == "" {
		return fail(c, http.StatusBadRequest, "username and password are required")
	}
	u, err := h.auth.CreateStaff(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, userResponse{UserID: u.ID, Username: u.Username, Role: string(u.Role)})
}

// requireSession authenticates the request from its bearer token and stores
// the session in the echo context for downstream handlers.
func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := bearerToken(c.Request().Header.Get("Authorization"))
		if token == "" {
			return fail(c, http.StatusUnauthorized, "missing bearer token")
		}
		sess, ok := h.sessions.Get(token)
		if !ok {
			return fail(c, http.StatusUnauthorized, "invalid or expired session")
		}
		c.Set(sessionContextKey, sess)
		return next(c)
	}
}

// requireAdmin must run after requireSession.
func (h *Handler) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if sessionFromContext(c).Role != auth.RoleAdmin {
			return fail(c, http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

func sessionFromContext(c echo.Context) auth.Session {
	sess, _ := c.Get(sessionContextKey).(auth.Session)
	return sess
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
