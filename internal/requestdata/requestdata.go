package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/agrisight/agrisight-backend/internal/types"
)

type contextKey struct{}

var requestDataKey = contextKey{}

type RequestData struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   types.UserRole
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	val := ctx.Value(requestDataKey)
	if rd, ok := val.(*RequestData); ok {
		return rd
	}
	return nil
}
