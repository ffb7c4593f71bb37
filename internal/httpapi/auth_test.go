package httpapi

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/store"
)

type userStoreStub struct {
	mu      sync.Mutex
	users   map[string]domain.UserAccount
	updates int
}

func (s *userStoreStub) CreateUser(_ context.Context, user domain.UserAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.users == nil {
		s.users = make(map[string]domain.UserAccount)
	}
	s.users[user.Username] = user
	return nil
}

func (s *userStoreStub) ListUsers(_ context.Context) ([]domain.UserAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.UserAccount, 0, len(s.users))
	for _, user := range s.users {
		out = append(out, user)
	}
	return out, nil
}

func (s *userStoreStub) UpdateUserPassword(_ context.Context, username string, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := s.users[username]
	user.Password = password
	s.users[username] = user
	s.updates++
	return nil
}

func legacyAdminStore() *userStoreStub {
	return &userStoreStub{
		users: map[string]domain.UserAccount{
			"admin": {
				Username:  "admin",
				Password:  "admin123",
				Role:      domain.RoleAdmin,
				Active:    true,
				CreatedAt: time.Now().UTC(),
			},
		},
	}
}

func TestAuthManagerUpgradesLegacyPlainPassword(t *testing.T) {
	users := legacyAdminStore()
	manager := NewAuthManager("test-secret", time.Hour, users)

	if _, err := manager.Login(context.Background(), domain.LoginRequest{Username: "admin", Password: "admin123"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	stored, err := users.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("list users failed: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected 1 user, got %d", len(stored))
	}
	if !strings.HasPrefix(stored[0].Password, "$2") {
		t.Fatalf("expected bcrypt password hash, got %s", stored[0].Password)
	}
	if users.updates == 0 {
		t.Fatalf("expected the store to receive the upgraded hash")
	}
}

func TestLoginIsCaseInsensitiveOnUsername(t *testing.T) {
	manager := NewAuthManager("test-secret", time.Hour, legacyAdminStore())

	resp, err := manager.Login(context.Background(), domain.LoginRequest{Username: " ADMIN ", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %s", resp.Role)
	}
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	users := legacyAdminStore()
	admin := users.users["admin"]
	admin.Active = false
	users.users["admin"] = admin
	manager := NewAuthManager("test-secret", time.Hour, users)

	if _, err := manager.Login(context.Background(), domain.LoginRequest{Username: "admin", Password: "admin123"}); err == nil {
		t.Fatalf("expected inactive account to be rejected")
	}
}

func TestCreateCashierStoresPasswordHash(t *testing.T) {
	users := legacyAdminStore()
	manager := NewAuthManager("test-secret", time.Hour, users)
	ctx := context.Background()

	cashier, err := manager.CreateCashier(ctx, domain.CashierCreateRequest{Username: "KasirBaru", Password: "pass1234"})
	if err != nil {
		t.Fatalf("create cashier failed: %v", err)
	}
	if cashier.Username != "kasirbaru" || cashier.Role != domain.RoleCashier {
		t.Fatalf("unexpected cashier %+v", cashier)
	}

	saved := users.users["kasirbaru"]
	if !strings.HasPrefix(saved.Password, "$2") {
		t.Fatalf("expected bcrypt hash prefix, got %s", saved.Password)
	}

	if _, err := manager.Login(ctx, domain.LoginRequest{Username: "kasirbaru", Password: "pass1234"}); err != nil {
		t.Fatalf("login with hashed cashier failed: %v", err)
	}

	listed := manager.ListCashiers(ctx)
	if len(listed) != 1 || listed[0].Username != "kasirbaru" {
		t.Fatalf("expected only the new cashier to be listed, got %+v", listed)
	}
}

func TestCreateCashierValidatesInput(t *testing.T) {
	manager := NewAuthManager("test-secret", time.Hour, legacyAdminStore())
	ctx := context.Background()

	cases := []domain.CashierCreateRequest{
		{Username: "abc", Password: "pass1234"},
		{Username: "kasir baru", Password: "pass1234"},
		{Username: "kasir2", Password: "123"},
		{Username: "admin", Password: "pass1234"},
	}
	for _, req := range cases {
		if _, err := manager.CreateCashier(ctx, req); !errors.Is(err, store.ErrInvalidTransaction) {
			t.Fatalf("expected invalid input for %+v, got %v", req, err)
		}
	}
}

func TestParseTokenRejectsExpiredAndForeignTokens(t *testing.T) {
	users := legacyAdminStore()
	manager := NewAuthManager("test-secret", time.Minute, users)
	ctx := context.Background()

	resp, err := manager.Login(ctx, domain.LoginRequest{Username: "admin", Password: "admin123"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	actor, err := manager.ParseToken(resp.AccessToken)
	if err != nil || actor.Username != "admin" || actor.Role != domain.RoleAdmin {
		t.Fatalf("expected valid admin token, got %+v (%v)", actor, err)
	}

	other := NewAuthManager("another-secret", time.Minute, users)
	if _, err := other.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected token signed with another secret to be rejected")
	}

	manager.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := manager.ParseToken(resp.AccessToken); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}
