package services

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/misha4322/ps-server/entity"
	"github.com/misha4322/ps-server/pkg/apperr"
	"github.com/misha4322/ps-server/repository"
	"github.com/misha4322/ps-server/utils"
)

const bcryptCost = 12

type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

// Register creates a user and signs them in.
func (s *AuthService) Register(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, apperr.Validation("email and password are required")
	}
	if len(password) < 8 {
		return "", nil, apperr.Validation("password must be at least 8 characters")
	}

	count, err := s.userRepo.CountByEmail(email)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	if count > 0 {
		return "", nil, apperr.Conflict("user already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}

	user := &entity.User{Email: email, Password: string(hashed), Role: "customer"}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, apperr.Internal(err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

// Login checks credentials and issues a token. Unknown email and wrong
// password fail identically.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperr.Unauthorized("invalid credentials")
		}
		return "", nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Internal(err)
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(userID uint) (*entity.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return user, nil
}

// Refresh re-issues a token for a signature-valid but possibly expired one.
func (s *AuthService) Refresh(tokenStr string) (string, error) {
	claims, err := utils.ParseTokenAllowExpired(tokenStr, s.jwtSecret)
	if err != nil {
		return "", apperr.Unauthorized("invalid refresh token")
	}
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Internal(err)
	}

	token, err := utils.GenerateToken(user.ID, user.Role, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}
	return token, nil
}

// ChangePassword verifies the current password and stores a new hash. The
// new password must differ from the current one.
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return apperr.Validation("current password is incorrect")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(newPassword)) == nil {
		return apperr.Validation("new password must differ from the current one")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.userRepo.UpdatePassword(userID, string(hashed)); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
