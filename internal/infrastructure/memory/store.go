// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa en modo demo (STORE_DRIVER=memory) y como backend de los tests del motor de checkout.
package memory

import (
	"sync"

	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/pkg/lockset"
)

// Store estado compartido por todos los repositorios en memoria.
// mu protege los mapas; locks serializa el stock por producto durante un checkout.
type Store struct {
	mu         sync.RWMutex
	categories map[string]*entity.Category
	products   map[string]*entity.Product
	users      map[string]*entity.User
	sales      []*entity.Sale // orden de commit
	saleIndex  map[string]int

	locks *lockset.LockSet
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		categories: make(map[string]*entity.Category),
		products:   make(map[string]*entity.Product),
		users:      make(map[string]*entity.User),
		saleIndex:  make(map[string]int),
		locks:      lockset.New(),
	}
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	c := *s
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return &c
}
