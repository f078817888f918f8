package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-pos/internal/application/auth"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
	"github.com/jhoicas/inventario-pos/internal/domain/entity"
	"github.com/jhoicas/inventario-pos/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/inventario-pos/pkg/jwt"
)

const testSecret = "test-secret"

func newAuth(t *testing.T, users ...*entity.User) *auth.AuthUseCase {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewStore())
	for _, u := range users {
		require.NoError(t, repo.Create(context.Background(), u))
	}
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 10, Issuer: "test"})
}

func user(t *testing.T, id, username, password, role string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Username: username, Name: username, PasswordHash: string(hash), Role: role, Active: active}
}

func TestLogin_CredencialesValidasEmiteToken(t *testing.T) {
	uc := newAuth(t, user(t, "u1", "maria", "clave", entity.RoleVendedor, true))

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)

	userID, role, err := pkgjwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, entity.RoleVendedor, role)
}

func TestLogin_PasswordIncorrectoOUsuarioInexistente(t *testing.T) {
	uc := newAuth(t, user(t, "u1", "maria", "clave", entity.RoleVendedor, true))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivoEsForbidden(t *testing.T) {
	uc := newAuth(t, user(t, "u1", "pedro", "clave", entity.RoleVendedor, false))

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "pedro", Password: "clave"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := newAuth(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: " ", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
