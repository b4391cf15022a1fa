package middleware

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

// CSRFFieldName is the form field carrying the CSRF token.
const CSRFFieldName = "csrf_token"

// CSRF verifies the token of every unsafe request. key must be 32 bytes.
func CSRF(key []byte, secure bool) gin.HandlerFunc {
	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.HttpOnly(true),
		csrf.FieldName(CSRFFieldName),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(c *gin.Context) {
		passed := false
		protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Abort()
		}
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	reason := "invalid CSRF token"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	http.Error(w, "Forbidden - "+reason, http.StatusForbidden)
}

// CSRFField returns the hidden input carrying the request's CSRF token. It
// is empty when the request did not pass through CSRF.
func CSRFField(c *gin.Context) template.HTML {
	return csrf.TemplateField(c.Request)
}
