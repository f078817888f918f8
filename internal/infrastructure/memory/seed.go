package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
)

// SeedOptions credenciales de los usuarios demo.
type SeedOptions struct {
	AdminPassword  string
	SellerPassword string
}

type seedProduct struct {
	category string
	name     string
	price    string
	stock    int64
}

var demoCatalog = []seedProduct{
	{"Bebidas", "Agua 600ml", "1800", 48},
	{"Bebidas", "Gaseosa 400ml", "2500", 36},
	{"Bebidas", "Jugo de naranja 1L", "5200", 12},
	{"Snacks", "Papas fritas 45g", "2200", 40},
	{"Snacks", "Galletas de avena", "3100", 25},
	{"Aseo", "Jabón de baño", "2900", 20},
	{"Aseo", "Crema dental 100ml", "6400", 15},
}

// Seed carga un catálogo demo, un administrador ("admin") y un vendedor ("vendedor").
func Seed(ctx context.Context, s *Store, opts SeedOptions) error {
	if opts.AdminPassword == "" || opts.SellerPassword == "" {
		return fmt.Errorf("seed: SEED_ADMIN_PASSWORD y SEED_SELLER_PASSWORD son obligatorios")
	}
	now := time.Now().UTC()
	categoryRepo := NewCategoryRepository(s)
	productRepo := NewProductRepository(s)
	userRepo := NewUserRepository(s)

	categories := make(map[string]string)
	for _, item := range demoCatalog {
		if _, ok := categories[item.category]; ok {
			continue
		}
		c := &entity.Category{ID: uuid.NewString(), Name: item.category, CreatedAt: now}
		if err := categoryRepo.Create(ctx, c); err != nil {
			return fmt.Errorf("seed category %s: %w", item.category, err)
		}
		categories[item.category] = c.ID
	}
	for _, item := range demoCatalog {
		p := &entity.Product{
			ID:         uuid.NewString(),
			CategoryID: categories[item.category],
			Name:       item.name,
			Price:      decimal.RequireFromString(item.price),
			Stock:      item.stock,
			Active:     true,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", item.name, err)
		}
	}

	users := []struct {
		username, name, role, password string
	}{
		{"admin", "Administrador", entity.RoleAdmin, opts.AdminPassword},
		{"vendedor", "Vendedor demo", entity.RoleVendedor, opts.SellerPassword},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash password: %w", err)
		}
		user := &entity.User{
			ID:           uuid.NewString(),
			Username:     u.username,
			Name:         u.name,
			PasswordHash: string(hash),
			Role:         u.role,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}
	return nil
}
