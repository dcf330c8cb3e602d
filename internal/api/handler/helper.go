package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/apperr"
	"github.com/RoyceAzure/lab/kitchenhub/internal/pkg/util"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false
	}
	return true
}

// 路由都掛在 RequireRole 之後，沒有 identity 代表路由設定錯誤
func mustIdentity(r *http.Request) (*model.Identity, error) {
	identity := util.GetIdentityFromContext(r.Context())
	if identity == nil {
		return nil, apperr.New(apperr.Unauthenticated, "identity", "missing identity")
	}
	return identity, nil
}
