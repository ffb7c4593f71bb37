package memory

import (
	"context"
	"log"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/store"
)

type Store struct {
	mu              sync.RWMutex
	products        map[string]domain.Product
	usersByUsername map[string]domain.UserAccount
}

// seedUsers builds the initial in-memory user accounts for dev/demo mode.
// Credentials are read from SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD
// environment variables. If unset, hardcoded dev defaults are used with a
// warning.
func seedUsers() map[string]domain.UserAccount {
	adminPwd := envOr("SEED_ADMIN_PASSWORD", "admin123")
	cashierPwd := envOr("SEED_CASHIER_PASSWORD", "cashier123")
	if os.Getenv("SEED_ADMIN_PASSWORD") == "" || os.Getenv("SEED_CASHIER_PASSWORD") == "" {
		log.Println("[memory-store] WARNING: using default dev credentials. Set SEED_ADMIN_PASSWORD and SEED_CASHIER_PASSWORD to override.")
	}

	now := time.Now().UTC()
	users := map[string]domain.UserAccount{}
	for _, u := range []struct {
		username string
		password string
		role     string
	}{
		{"admin", adminPwd, domain.RoleAdmin},
		{"cashier", cashierPwd, domain.RoleCashier},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("[memory-store] failed to hash seed password for %s: %v", u.username, err)
		}
		users[u.username] = domain.UserAccount{
			Username:  u.username,
			Password:  string(hash),
			Role:      u.role,
			Active:    true,
			CreatedAt: now,
		}
	}
	return users
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

const defaultImageURL = "https://images.unsplash.com/photo-1523381210434-271e8be1f52b?auto=format&fit=crop&w=500&q=80"

// SeedProducts is the demo clothing catalog.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{ID: "1", Name: "Classic White Tee", Category: "T-Shirts", PriceCents: 1999, Size: "M", Color: "White", Stock: 25},
		{ID: "2", Name: "Graphic Print Tee", Category: "T-Shirts", PriceCents: 2499, Size: "L", Color: "Black", Stock: 18},
		{ID: "3", Name: "Slim Fit Jeans", Category: "Jeans", PriceCents: 5999, Size: "32", Color: "Blue", Stock: 15},
		{ID: "4", Name: "Relaxed Denim", Category: "Jeans", PriceCents: 6499, Size: "34", Color: "Gray", Stock: 12},
		{ID: "5", Name: "Summer Floral Dress", Category: "Dresses", PriceCents: 7999, Size: "S", Color: "Red", Stock: 10},
		{ID: "6", Name: "Little Black Dress", Category: "Dresses", PriceCents: 8999, Size: "M", Color: "Black", Stock: 8},
		{ID: "7", Name: "Zip Hoodie", Category: "Hoodies", PriceCents: 4999, Size: "L", Color: "Gray", Stock: 20},
		{ID: "8", Name: "Pullover Hoodie", Category: "Hoodies", PriceCents: 4499, Size: "XL", Color: "Blue", Stock: 14},
		{ID: "9", Name: "Denim Jacket", Category: "Jackets", PriceCents: 8999, Size: "M", Color: "Blue", Stock: 9},
		{ID: "10", Name: "Bomber Jacket", Category: "Jackets", PriceCents: 11999, Size: "L", Color: "Black", Stock: 6},
	}
}

func NewSeeded() *Store {
	products := SeedProducts()
	productMap := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if p.ImageURL == "" {
			p.ImageURL = defaultImageURL
		}
		productMap[p.ID] = p
	}

	return &Store{
		products:        productMap,
		usersByUsername: seedUsers(),
	}
}

func (s *Store) ListProducts(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		products = append(products, p)
	}

	slices.SortFunc(products, func(a, b domain.Product) int {
		if a.Category == b.Category {
			return strings.Compare(a.Name, b.Name)
		}
		return strings.Compare(a.Category, b.Category)
	})

	return products, nil
}

func (s *Store) GetProductsByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]domain.Product, len(ids))
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (s *Store) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := strings.ToLower(strings.TrimSpace(user.Username))
	if username == "" || strings.TrimSpace(user.Password) == "" {
		return store.ErrInvalidTransaction
	}
	if _, exists := s.usersByUsername[username]; exists {
		return store.ErrInvalidTransaction
	}
	user.Username = username
	if user.Role == "" {
		user.Role = domain.RoleCashier
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.Active = true
	s.usersByUsername[user.Username] = user
	return nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.UserAccount, 0, len(s.usersByUsername))
	for _, user := range s.usersByUsername {
		users = append(users, user)
	}
	slices.SortFunc(users, func(a, b domain.UserAccount) int {
		return strings.Compare(a.Username, b.Username)
	})
	return users, nil
}

func (s *Store) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || strings.TrimSpace(password) == "" {
		return store.ErrInvalidTransaction
	}
	user, exists := s.usersByUsername[username]
	if !exists {
		return store.ErrNotFound
	}
	user.Password = password
	s.usersByUsername[username] = user
	return nil
}
