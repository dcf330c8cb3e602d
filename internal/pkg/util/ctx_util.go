package util

import (
	"context"

	"github.com/RoyceAzure/lab/kitchenhub/internal/auth/token"
	"github.com/RoyceAzure/lab/kitchenhub/internal/constants"
	"github.com/RoyceAzure/lab/kitchenhub/internal/domain/model"
)

func GetTokenPayloadFromContext(ctx context.Context) *token.Payload {
	if v, ok := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload); ok {
		return v
	}
	return nil
}

// GetIdentityFromContext 經過 RequireRole 之後才會有值
func GetIdentityFromContext(ctx context.Context) *model.Identity {
	if v, ok := ctx.Value(constants.IdentityKey).(*model.Identity); ok {
		return v
	}
	return nil
}

func GetRequestIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(constants.RequestIDKey).(string); ok {
		return v
	}
	return ""
}
