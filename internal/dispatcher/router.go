package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/orgmode/internal/dispatcher/handler"
)

// Router routes actions to handlers using namespace prefixes.
// "orgmode.navigate" goes to the handler registered for "orgmode".
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all actions in a namespace.
func (r *Router) RegisterNamespace(namespace string, h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[namespace] = h
}

// UnregisterNamespace removes a namespace handler.
func (r *Router) UnregisterNamespace(namespace string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.namespaces, namespace)
}

// Route finds the namespace handler for an action.
// Returns nil if the namespace is unknown or its handler declines.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.namespaces[extractNamespace(actionName)]
	if !ok || !h.CanHandle(actionName) {
		return nil
	}
	return handler.NewNamespaceAdapter(h)
}

// CanRoute returns true if the router can handle the action.
func (r *Router) CanRoute(actionName string) bool {
	return r.Route(actionName) != nil
}

// Namespaces returns all registered namespace names, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for name := range r.namespaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// extractNamespace extracts the namespace from "namespace.action" format.
// Returns empty string if no namespace separator is found.
func extractNamespace(actionName string) string {
	ns, _, found := strings.Cut(actionName, ".")
	if !found {
		return ""
	}
	return ns
}
