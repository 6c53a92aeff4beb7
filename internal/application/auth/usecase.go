package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sigescola/sigescola-api/internal/application/dto"
	"github.com/sigescola/sigescola-api/internal/domain"
	"github.com/sigescola/sigescola-api/internal/domain/entity"
	"github.com/sigescola/sigescola-api/internal/domain/repository"
	"github.com/sigescola/sigescola-api/pkg/jwt"
)

// JWTConfig configuração para geração de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticação: cadastro, login e perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase constrói o caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser cria um usuário: hasheia a senha com bcrypt e persiste.
// Devolve ErrEmailAlreadyExists quando o e-mail já existe.
func (uc *AuthUseCase) RegisterUser(in dto.RegisterRequest) (*dto.UserResponse, error) {
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	role := in.Role
	if role == "" {
		role = entity.RoleCliente
	}
	user := &entity.User{
		ID:              uuid.New().String(),
		Name:            name,
		Email:           in.Email,
		PasswordHash:    string(hash),
		Role:            role,
		SchoolID:        in.SchoolID,
		AssignedSchools: in.AssignedSchools,
		GEE:             in.GEE,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica e-mail/senha, gera o JWT e devolve token + usuário.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, user.SchoolID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Profile devolve o perfil do usuário autenticado, reivindicando pelo e-mail
// o cadastro pré-criado pela secretaria quando o id do token ainda não existe.
// O vínculo de escola do Diretor é feito antes do primeiro acesso; sem essa
// reivindicação o primeiro login criaria um perfil órfão sem escola.
func (uc *AuthUseCase) Profile(userID, email string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil && email != "" {
		user, err = uc.userRepo.GetByEmail(email)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// User carrega o usuário autenticado, base do cálculo de escopo da sessão.
func (uc *AuthUseCase) User(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Role:            u.Role,
		SchoolID:        u.SchoolID,
		AssignedSchools: u.AssignedSchools,
		GEE:             u.GEE,
		Active:          u.Active,
		AvatarURL:       u.AvatarURL,
	}
}
