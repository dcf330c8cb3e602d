package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/api/response"
	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/token"
	"github.com/RoyceAzure/lab/kitchenhub/internal/constants"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
)

// IdentityResolver 由 token payload 取得目前仍存在的帳號
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, payload *token.Payload) (*model.Identity, error)
}

/*
RequireRole 存取檢查
沒有合法 token : 401
token 合法但帳號已刪除 : 404
角色不符 : 403
通過後將 identity 放進 context
*/
func RequireRole(resolver IdentityResolver, roles ...model.Role) func(http.Handler) http.Handler {
	if resolver == nil {
		panic("RequireRole: resolver cannot be nil")
	}
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := util.GetTokenPayloadFromContext(r.Context())
			if payload == nil {
				response.ErrorJSON(w, apperr.New(apperr.Unauthenticated, "RequireRole", "missing or invalid access token"))
				return
			}

			identity, err := resolver.ResolveIdentity(r.Context(), payload)
			if err != nil {
				response.ErrorJSON(w, err)
				return
			}

			if _, ok := allowed[identity.Role]; !ok {
				response.ErrorJSON(w, apperr.New(apperr.Forbidden, "RequireRole", "role not allowed"))
				return
			}

			ctx := context.WithValue(r.Context(), constants.IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
