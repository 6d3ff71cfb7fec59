package middleware

import "net/http"

// Middleware is a function that wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws into one Middleware, first entry outermost:
// Chain(a, b)(h) is a(b(h)). Nil entries are dropped, so optional layers
// such as a disabled rate limit can be passed as nil.
func Chain(mws ...Middleware) Middleware {
	active := make([]Middleware, 0, len(mws))
	for _, mw := range mws {
		if mw != nil {
			active = append(active, mw)
		}
	}

	return func(final http.Handler) http.Handler {
		for i := len(active) - 1; i >= 0; i-- {
			final = active[i](final)
		}
		return final
	}
}

// Wrap applies route-level middleware to a single handler func.
func Wrap(h http.HandlerFunc, mws ...Middleware) http.Handler {
	return Chain(mws...)(h)
}
