package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"
	"github.com/tu-usuario/wms-core/internal/application/dto"
	"github.com/tu-usuario/wms-core/internal/domain"
	"github.com/tu-usuario/wms-core/internal/domain/entity"
	"github.com/tu-usuario/wms-core/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/wms-core/pkg/jwt"
)

// UseCase registra usuarios y emite tokens JWT. La identidad del usuario viaja
// en el token y queda como actor en los movimientos de inventario.
type UseCase struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	jwtIssuer  string
	jwtExpMins int
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, jwtSecret, jwtIssuer string, jwtExpMins int) *UseCase {
	return &UseCase{
		userRepo:   userRepo,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtExpMins: jwtExpMins,
	}
}

// Register da de alta un usuario con la contraseña hasheada (bcrypt) y devuelve
// un token. Email repetido devuelve domain.ErrEmailAlreadyExists.
func (uc *UseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return uc.issueToken(user)
}

// Login verifica credenciales y devuelve un token. Credenciales inválidas
// devuelven domain.ErrUnauthorized sin distinguir usuario inexistente de
// contraseña incorrecta.
func (uc *UseCase) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issueToken(user)
}

func (uc *UseCase) issueToken(user *entity.User) (*dto.AuthResponse, error) {
	token, err := pkgjwt.Generate(uc.jwtSecret, user.ID, user.Name, uc.jwtIssuer, uc.jwtExpMins)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}, nil
}
