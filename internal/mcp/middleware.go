package mcp

import (
	"context"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type contextKey int

const requestIDKey contextKey = iota

// getRequestID extracts the request id from context.
func getRequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

// requestIDMiddleware tags each inbound request with an id for log
// correlation. An X-Request-ID header on HTTP transports wins.
func requestIDMiddleware() sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			var id string
			if req != nil {
				if extra := req.GetExtra(); extra != nil && extra.Header != nil {
					id = extra.Header.Get("X-Request-ID")
				}
			}
			if id == "" {
				id = uuid.NewString()
			}
			return next(context.WithValue(ctx, requestIDKey, id), method, req)
		}
	}
}
