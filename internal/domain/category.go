package domain

import "sync"

// CategoryAll is the filter value that matches every category.
const CategoryAll = "all"

// CategoryRegistry tracks known product categories in first-seen order.
// Categories are registered implicitly when a product enters the catalog.
type CategoryRegistry struct {
	mu         sync.RWMutex
	seen       map[string]bool
	categories []string
}

// NewCategoryRegistry creates an empty CategoryRegistry.
func NewCategoryRegistry() *CategoryRegistry {
	return &CategoryRegistry{
		seen: make(map[string]bool),
	}
}

// Register adds a category if it is not already known. Safe for concurrent use.
func (r *CategoryRegistry) Register(category string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.seen[category] {
		return
	}
	r.seen[category] = true
	r.categories = append(r.categories, category)
}

// Exists returns true if the category has been registered. Safe for concurrent use.
func (r *CategoryRegistry) Exists(category string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.seen[category]
}

// List returns CategoryAll followed by every registered category.
func (r *CategoryRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.categories)+1)
	out = append(out, CategoryAll)
	return append(out, r.categories...)
}
