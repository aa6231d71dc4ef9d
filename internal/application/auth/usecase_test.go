package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/almacen-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (m *fakeUserRepo) Create(u *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *fakeUserRepo) List() ([]*entity.User, error) { return nil, nil }
func (m *fakeUserRepo) Update(u *entity.User) error   { return nil }
func (m *fakeUserRepo) Delete(id string) error        { return nil }

func newAuthUC() (*auth.AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     "test-secret",
		ExpMinutes: 60,
		Issuer:     "almacen-api-test",
	})
	return uc, repo
}

func TestRegisterUser_RolPorDefectoADMIN(t *testing.T) {
	uc, repo := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "nuevo@almacen.test",
		Password: "secreta123",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleAdmin, out.Role, "sin rol explícito se asigna ADMIN")
	assert.Equal(t, "nuevo@almacen.test", out.Name, "sin nombre se usa el email")

	persisted, err := repo.GetByEmail("nuevo@almacen.test")
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.NotEqual(t, "secreta123", persisted.PasswordHash, "el password nunca se guarda plano")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(persisted.PasswordHash), []byte("secreta123")))
}

func TestRegisterUser_RolExplicitoManager(t *testing.T) {
	uc, _ := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "gerente@almacen.test",
		Password: "secreta123",
		Name:     "Gerente",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, "Gerente", out.Name)
}

func TestRegisterUser_RolDesconocido_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "x@almacen.test",
		Password: "secreta123",
		Role:     "SUPERUSER",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterUser_EmailDuplicado_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "dup@almacen.test", Password: "p1"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "dup@almacen.test", Password: "p2"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterUser_SinEmailOPassword_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Password: "p"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "x@almacen.test"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{
		Email:    "login@almacen.test",
		Password: "secreta123",
		Role:     entity.RoleManager,
	})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "login@almacen.test", Password: "secreta123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.Equal(t, "6 months", out.ExpirationTime)

	_, email, role, err := pkgjwt.Parse("test-secret", out.Token)
	require.NoError(t, err)
	assert.Equal(t, "login@almacen.test", email)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_EmailDesconocido_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@almacen.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogin_PasswordIncorrecto_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "u@almacen.test", Password: "correcta"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "u@almacen.test", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCurrentUser_Inexistente_Falla(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.CurrentUser("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
