package handler

import (
	"net/http"
	"strings"

	"github.com/jacketapp/jacketapp/internal/ctxkeys"
	"github.com/jacketapp/jacketapp/internal/model"
)

// currentUser returns the authenticated user from the request context,
// nil for anonymous requests.
func currentUser(r *http.Request) *model.User {
	return ctxkeys.User(r.Context())
}

// clientIP extracts the real client IP, honoring proxy headers.
func clientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}
