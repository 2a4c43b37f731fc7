package www

import (
	"context"
	"net/http"

	"toolcrib/auth"
)

func withOperator(ctx context.Context, op *auth.Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

func operatorFrom(r *http.Request) *auth.Operator {
	op, _ := r.Context().Value(operatorKey).(*auth.Operator)
	return op
}
