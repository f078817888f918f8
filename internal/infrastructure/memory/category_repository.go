package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre el Store.
type CategoryRepo struct {
	s *Store
}

// NewCategoryRepository construye el repositorio de categorías.
func NewCategoryRepository(s *Store) *CategoryRepo {
	return &CategoryRepo{s: s}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	if category == nil || category.ID == "" {
		return fmt.Errorf("insert category: %w", domain.ErrInvalidInput)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[category.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *category
	r.s.categories[c.ID] = &c
	return nil
}

// GetByID obtiene una categoría por ID (nil si no existe).
func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

// List lista las categorías ordenadas por nombre.
func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.RLock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		cc := *c
		out = append(out, &cc)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
