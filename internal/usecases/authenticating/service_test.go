package authenticating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/oraculo-comercial-api/infrastructure/repository/mocks"
	"github.com/vfg2006/oraculo-comercial-api/internal/config"
	"github.com/vfg2006/oraculo-comercial-api/internal/domain"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func testConfig() *config.Config {
	return &config.Config{SecretKey: "chave-de-teste"}
}

func activeUser(t *testing.T, password string) *domain.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)

	return &domain.User{
		ID:           10,
		Name:         "Maria",
		Lastname:     "Silva",
		Email:        "maria@oraculo.local",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       2,
	}
}

func TestService_LoginUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockRepo, testConfig())

	t.Run("Credenciais válidas - token assinado com as claims do usuário", func(t *testing.T) {
		user := activeUser(t, "Senha@Forte1")
		mockRepo.EXPECT().GetUserByEmail("maria@oraculo.local").Return(user, nil)

		token, err := service.LoginUser("Maria@Oraculo.local", "Senha@Forte1")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 10, claims.UserID)
		assert.Equal(t, "Maria", claims.UserName)
		assert.Equal(t, 2, claims.UserRoleID)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		user := activeUser(t, "Senha@Forte1")
		mockRepo.EXPECT().GetUserByEmail("maria@oraculo.local").Return(user, nil)

		token, err := service.LoginUser("maria@oraculo.local", "senha-errada")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Usuário desativado", func(t *testing.T) {
		user := activeUser(t, "Senha@Forte1")
		user.Active = false
		mockRepo.EXPECT().GetUserByEmail("maria@oraculo.local").Return(user, nil)

		_, err := service.LoginUser("maria@oraculo.local", "Senha@Forte1")

		assert.ErrorIs(t, err, ErrUserDisabled)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail("ninguem@oraculo.local").Return(nil, nil)

		_, err := service.LoginUser("ninguem@oraculo.local", "qualquer")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Campos obrigatórios ausentes", func(t *testing.T) {
		_, err := service.LoginUser("", "")

		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_ValidateToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockRepo, testConfig())

	t.Run("Token adulterado é rejeitado", func(t *testing.T) {
		claims, err := service.ValidateToken("cabecalho.corpo.assinatura")

		assert.Error(t, err)
		assert.Nil(t, claims)
	})

	t.Run("Token assinado com outra chave é rejeitado", func(t *testing.T) {
		otherService := NewService(mockRepo, &config.Config{SecretKey: "outra-chave"})

		user := activeUser(t, "Senha@Forte1")
		mockRepo.EXPECT().GetUserByEmail("maria@oraculo.local").Return(user, nil)
		token, err := otherService.LoginUser("maria@oraculo.local", "Senha@Forte1")
		assert.NoError(t, err)

		claims, err := service.ValidateToken(token)
		assert.Error(t, err)
		assert.Nil(t, claims)
	})
}

func TestService_CreateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockRepo, testConfig())

	t.Run("Usuário novo - senha com hash e role padrão", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail("joao@oraculo.local").Return(nil, nil)
		mockRepo.EXPECT().
			CreateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) (*domain.User, error) {
				assert.NotEqual(t, "Senha@Forte1", user.PasswordHash)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Senha@Forte1")))
				assert.Equal(t, 3, user.RoleID)
				assert.False(t, user.Active)
				return user, nil
			})

		created, err := service.CreateUser(&domain.User{
			Name:         "João",
			Lastname:     "Souza",
			Email:        " Joao@Oraculo.local ",
			PasswordHash: "Senha@Forte1",
		})

		assert.NoError(t, err)
		assert.Equal(t, "joao@oraculo.local", created.Email)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByEmail("maria@oraculo.local").Return(&domain.User{ID: 10}, nil)

		created, err := service.CreateUser(&domain.User{
			Name:         "Maria",
			Lastname:     "Silva",
			Email:        "maria@oraculo.local",
			PasswordHash: "Senha@Forte1",
		})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		created, err := service.CreateUser(&domain.User{Email: "so-email@oraculo.local"})

		assert.Nil(t, created)
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestService_GenerateStrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockRepo, testConfig())

	t.Run("Administrador gera senha para usuário alvo", func(t *testing.T) {
		admin := &domain.User{ID: 1, RoleID: 1}
		target := activeUser(t, "antiga")

		mockRepo.EXPECT().GetUserByID(1).Return(admin, nil)
		mockRepo.EXPECT().GetUserByID(10).Return(target, nil)
		mockRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.NotEmpty(t, user.PasswordHash)
				return nil
			})

		password, err := service.GenerateStrongPassword(1, 10)

		assert.NoError(t, err)
		assert.Len(t, password, 12)
		assert.NoError(t, service.ValidatePasswordStrength(password))
	})

	t.Run("Solicitante sem perfil de administrador", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(5).Return(&domain.User{ID: 5, RoleID: 3}, nil)

		password, err := service.GenerateStrongPassword(5, 10)

		assert.Empty(t, password)
		assert.Error(t, err)
	})
}

func TestService_ValidatePasswordStrength(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := NewService(mocks.NewMockUserRepository(ctrl), testConfig())

	assert.NoError(t, service.ValidatePasswordStrength("Senha@Forte1"))
	assert.Error(t, service.ValidatePasswordStrength("curta1!"), "senha curta")
	assert.Error(t, service.ValidatePasswordStrength("semmaiuscula@1"), "sem maiúscula")
	assert.Error(t, service.ValidatePasswordStrength("SemNumero@"), "sem dígito")
	assert.Error(t, service.ValidatePasswordStrength("SemEspecial1"), "sem caractere especial")
}

func TestHandleEmail(t *testing.T) {
	assert.Equal(t, "maria@oraculo.local", handleEmail(" Maria@Oraculo.LOCAL "))
	assert.Equal(t, "a@b.c", handleEmail("a @ b.c"))
}

func TestService_UpdateUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockUserRepository(ctrl)
	service := NewService(mockRepo, testConfig())

	t.Run("Atualização parcial preserva os demais campos", func(t *testing.T) {
		existing := activeUser(t, "Senha@Forte1")
		mockRepo.EXPECT().GetUserByID(10).Return(existing, nil)

		name := "Mariana"
		mockRepo.EXPECT().
			UpdateUser(gomock.Any()).
			DoAndReturn(func(user *domain.User) error {
				assert.Equal(t, "Mariana", user.Name)
				assert.Equal(t, "Silva", user.Lastname)
				return nil
			})

		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 10, Name: &name})

		assert.NoError(t, err)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		mockRepo.EXPECT().GetUserByID(99).Return(nil, nil)

		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 99})

		assert.Error(t, err)
	})

	t.Run("Falha do repositório é propagada", func(t *testing.T) {
		repoErr := errors.New("banco indisponível")
		mockRepo.EXPECT().GetUserByID(10).Return(nil, repoErr)

		err := service.UpdateUser(&domain.UpdateUserRequest{ID: 10})

		assert.ErrorIs(t, err, repoErr)
	})
}
