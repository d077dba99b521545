package auth

import (
	"log"
	"net/http"

	dom "github.com/Munnjee/Comp2537-A01/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	contextSessionKey   = "auth.session"
	contextSessionIDKey = "auth.session_id"
)

// Current returns the session loaded by LoadSession, or nil.
func Current(c *gin.Context) *dom.Session {
	v, ok := c.Get(contextSessionKey)
	if !ok {
		return nil
	}
	rec, ok := v.(*dom.Session)
	if !ok {
		return nil
	}
	return rec
}

// SessionID returns the identifier of the loaded session, "" if none.
func SessionID(c *gin.Context) string {
	v, ok := c.Get(contextSessionIDKey)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// LoadSession resolves the session cookie into the request context. It never
// fails the request: an unsigned, expired or unreadable session just means
// the request proceeds anonymous.
func LoadSession(store *Store, codec CookieCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := c.Cookie(CookieName)
		if err != nil || value == "" {
			c.Next()
			return
		}
		id, ok := codec.Decode(value)
		if !ok {
			c.Next()
			return
		}
		rec, err := store.Get(c.Request.Context(), id)
		if err != nil {
			log.Printf("session read: %v", err)
			c.Next()
			return
		}
		if rec == nil {
			c.Next()
			return
		}
		c.Set(contextSessionKey, rec)
		c.Set(contextSessionIDKey, id)
		c.Next()
	}
}

// RequireMember gates protected pages: without a session name the request is
// redirected home.
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		rec := Current(c)
		if rec == nil || rec.Name == "" {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}
