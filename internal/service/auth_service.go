package service

import (
	"errors"

	"brandloop/config"
	"brandloop/internal/auth"
	"brandloop/internal/domain"
	"brandloop/internal/models"
	"brandloop/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrInvalidCreds   = errors.New("invalid email or password")
)

type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

func (s *AuthService) Register(email, username, password, fullName, role string) (*models.User, string, string, error) {
	if role != domain.RoleSponsor && role != domain.RoleInfluencer {
		return nil, "", "", errors.New("role must be SPONSOR or INFLUENCER")
	}
	_, err := s.userRepo.GetByEmail(email)
	if err == nil {
		return nil, "", "", ErrEmailExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	_, err = s.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", "", ErrUsernameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", err
	}
	u := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	}
	if err := s.userRepo.Create(u); err != nil {
		return nil, "", "", err
	}
	return s.issueTokens(u)
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", ErrInvalidCreds
	}
	return s.issueTokens(u)
}

func (s *AuthService) Refresh(refreshToken string) (*models.User, string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", "", auth.ErrInvalidToken
	}
	return s.issueTokens(u)
}

func (s *AuthService) issueTokens(u *models.User) (*models.User, string, string, error) {
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return u, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return u, "", "", err
	}
	return u, access, refresh, nil
}
