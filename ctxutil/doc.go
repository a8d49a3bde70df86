// Package ctxutil provides helpers for request-scoped values.
//
// Values set through SetValue are mirrored into the embedded *gin.Context
// when one is present, so handlers and the code they call see the same
// trace id:
//
//	ctx := ctxutil.WithGinContext(c.Request.Context(), c)
//	ctx, traceID := ctxutil.EnsureTraceID(ctx)
//	logger.Infof(ctx, "searching %v", indexes) // carries trace_id
package ctxutil
