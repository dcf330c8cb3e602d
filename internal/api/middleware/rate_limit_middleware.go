package middleware

import (
	"net"
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
	"github.com/RoyceAzure/lab/kitchenhub/internal/ratelimit"
)

/*
RateLimitMiddleware 超過額度回 429
有 token 時以使用者為 key，否則以來源 ip 為 key
需放在 AuthPayloadMiddleware 之後
*/
func RateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("RateLimitMiddleware: limiter cannot be nil")
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(r.Context(), clientKey(r)) {
				response.TooManyRequests(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	if payload := util.GetTokenPayloadFromContext(r.Context()); payload != nil {
		return "sub:" + payload.SubjectID
	}
	return "ip:" + remoteHost(r)
}

// RemoteAddr 只有在信任 proxy 時才會被 RealIP 改寫
func remoteHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
