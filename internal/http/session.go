package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayhub/internal/auth"
	"stayhub/internal/domain"
)

const identityKey = "stayhub.identity"

// resolveSession extracts the token from the session cookie and verifies it.
// An absent cookie is the normal anonymous case and yields ErrNoCredential;
// a present but unverifiable token yields the codec's error.
func (h *Handler) resolveSession(c *gin.Context) (domain.Identity, error) {
	token, err := c.Cookie(h.cookieName)
	if err != nil || token == "" {
		return domain.Identity{}, auth.ErrNoCredential
	}
	return auth.VerifyToken(token, h.jwtSecret)
}

// requireAuth rejects any request without a verified identity. Missing,
// malformed, expired and tampered credentials all surface as the same 401.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := h.resolveSession(c)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// optionalAuth resolves an identity when a credential is present but lets
// anonymous requests through. A credential that is present yet invalid is
// still rejected; only its absence means anonymous.
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := h.resolveSession(c)
		if err != nil {
			if errors.Is(err, auth.ErrNoCredential) {
				c.Next()
				return
			}
			writeError(c, http.StatusUnauthorized, "unauthorized", "authentication required")
			c.Abort()
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func identityFrom(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}

// setSessionCookie attaches the token as the session credential. The cookie
// is never readable by page scripts and is same-site restricted.
func (h *Handler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookieName, token, maxAge, "/", h.cookieDomain, h.cookieSecure, true)
}

// clearSessionCookie overwrites the credential with an immediately expired
// value, returning the client to the anonymous state.
func (h *Handler) clearSessionCookie(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
}
