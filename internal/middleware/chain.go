package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain wraps h so that a request passes through mws in the order given
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := range mws {
		h = mws[len(mws)-1-i](h)
	}
	return h
}
