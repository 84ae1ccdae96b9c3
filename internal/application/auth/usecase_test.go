package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/auth"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/distribuidora-api/pkg/jwt"
)

const (
	testSecret = "auth-test-secret"
	testIssuer = "distribuidora-test"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	uc := auth.NewAuthUseCase(sqlite.NewUserRepository(db), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     testIssuer,
	})
	return uc, ctx
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc, ctx := newAuth(t)

	cases := map[string]dto.CreateUserRequest{
		"sin usuario":           {Password: "12345678", Role: entity.RoleAdmin},
		"password corta":        {Username: "ana", Password: "123", Role: entity.RoleAdmin},
		"rol inválido":          {Username: "ana", Password: "12345678", Role: "gerente"},
		"vendedor sin vendedor": {Username: "ana", Password: "12345678", Role: entity.RoleVendedor},
		"rol por defecto":       {Username: "ana", Password: "12345678"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.CreateUser(ctx, in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "error: %v", err)
		})
	}
}

func TestCreateUser_Duplicado(t *testing.T) {
	uc, ctx := newAuth(t)

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "luis", Password: "12345678", Role: entity.RoleVendedor, SalespersonID: "sp-9"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendedor, u.Role)
	require.NotNil(t, u.SalespersonID)
	assert.Equal(t, "sp-9", *u.SalespersonID)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Username: "luis", Password: "otra-clave-1", Role: entity.RoleAdmin})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
}

func TestLogin(t *testing.T) {
	uc, ctx := newAuth(t)
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Username: "luis", Password: "12345678", Role: entity.RoleVendedor, SalespersonID: "sp-9"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "luis", Password: "12345678"})
	require.NoError(t, err)
	assert.Equal(t, "luis", resp.User.Username)

	claims, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, entity.RoleVendedor, claims.Role)
	assert.Equal(t, "sp-9", claims.SalespersonID)
	assert.Equal(t, testIssuer, claims.Issuer)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "luis", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "luis"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestEnsureAdmin(t *testing.T) {
	uc, ctx := newAuth(t)

	created, err := uc.EnsureAdmin(ctx, "admin", "")
	require.NoError(t, err)
	assert.False(t, created, "sin password no se crea el admin")

	created, err = uc.EnsureAdmin(ctx, "admin", "admin-password")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "otro-admin", "admin-password")
	require.NoError(t, err)
	assert.False(t, created, "ya existe un admin")

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "admin-password"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.User.Role)
	assert.Nil(t, resp.User.SalespersonID)
}
