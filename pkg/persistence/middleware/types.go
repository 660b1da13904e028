package middleware

import "github.com/aretw0/quill/pkg/ports"

// Middleware allows wrapping a LogStore to add behavior.
type Middleware func(ports.LogStore) ports.LogStore

// Chain applies middlewares to store, the first one outermost.
func Chain(store ports.LogStore, mws ...Middleware) ports.LogStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
