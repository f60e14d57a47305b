package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillpath_backend/internal/config"
	"skillpath_backend/internal/model"
	"skillpath_backend/internal/repository"
	"skillpath_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo     *repository.UserRepository
	EmployeeRepo *repository.EmployeeRepository
	Cfg          *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, employeeRepo *repository.EmployeeRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:     userRepo,
		EmployeeRepo: employeeRepo,
		Cfg:          cfg,
	}
}

type RegisterInput struct {
	Username   string `json:"username" binding:"required,min=3,max=150"`
	Password   string `json:"password" binding:"required,min=6"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role"`
	EmployeeID *uint  `json:"employeeId"`
}

type LoginResult struct {
	util.TokenPair
	User *model.User `json:"user"`
}

// Register creates an account. Role defaults to employee; admin accounts never carry an employee link.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	role := model.UserRole(strings.ToLower(strings.TrimSpace(in.Role)))
	if role == "" {
		role = model.RoleEmployee
	}
	if !role.Valid() {
		return nil, util.ErrInvalidRole
	}

	if taken, err := s.UserRepo.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrUsernameTaken
	}
	if taken, err := s.UserRepo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, util.ErrEmailRegistered
	}

	var employeeID *uint
	if role == model.RoleEmployee && in.EmployeeID != nil {
		exists, err := s.EmployeeRepo.Exists(ctx, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: id %d", util.ErrInvalidEmployeeLink, *in.EmployeeID)
		}
		linked, err := s.UserRepo.ExistsByEmployeeID(ctx, *in.EmployeeID)
		if err != nil {
			return nil, err
		}
		if linked {
			return nil, util.ErrEmployeeLinked
		}
		employeeID = in.EmployeeID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:   in.Username,
		Email:      in.Email,
		Password:   string(hashed),
		Role:       role,
		EmployeeID: employeeID,
	}
	if err := s.UserRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	pair, err := util.GenerateTokenPair(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, err
	}
	return &LoginResult{TokenPair: *pair, User: user}, nil
}

// Refresh exchanges a refresh token for a new access token, reloading the account
// so role and employee link changes take effect.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret, util.TokenTypeRefresh)
	if err != nil {
		return "", err
	}
	user, err := s.UserRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrInvalidToken
		}
		return "", err
	}
	return util.GenerateJWT(user, s.Cfg.JWT.Secret, util.TokenTypeAccess, s.Cfg.JWT.ExpireTime)
}

type CurrentUser struct {
	ID           uint           `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	Role         model.UserRole `json:"role"`
	EmployeeID   *uint          `json:"employeeId"`
	EmployeeName *string        `json:"employeeName"`
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*CurrentUser, error) {
	user, err := s.UserRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	me := &CurrentUser{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		Role:       user.Role,
		EmployeeID: user.EmployeeID,
	}
	if user.EmployeeID != nil {
		if emp, err := s.EmployeeRepo.FindByID(ctx, *user.EmployeeID); err == nil {
			me.EmployeeName = &emp.Name
		}
	}
	return me, nil
}
