package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/themis-api/internal/config"
	"github.com/themis-api/internal/domain"
	"github.com/themis-api/internal/dto"
	"github.com/themis-api/internal/repository"
	"github.com/themis-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenType  = "access"
	refreshTokenType = "refresh"
)

// Claims - полезная нагрузка токенов
type Claims struct {
	UserID    int64  `json:"uid"`
	Name      string `json:"name,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// AuthService определяет интерфейс выдачи и проверки токенов
type AuthService interface {
	Login(ctx context.Context, username, password string) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseAccess(token string) (*Claims, error)
}

type authService struct {
	empRepo repository.EmployeeRepository
	store   TokenStore
	cfg     config.JWTConfig
	media   storage.URLResolver
	now     func() time.Time
}

// NewAuthService создаёт сервис токенов. store может быть nil: тогда refresh-токен
// проверяется только по подписи и сроку действия
func NewAuthService(
	empRepo repository.EmployeeRepository,
	store TokenStore,
	cfg config.JWTConfig,
	media storage.URLResolver,
) AuthService {
	return &authService{
		empRepo: empRepo,
		store:   store,
		cfg:     cfg,
		media:   media,
		now:     time.Now,
	}
}

func (s *authService) Login(ctx context.Context, username, password string) (*dto.TokenResponse, error) {
	emp, err := s.empRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if emp.PasswordHash == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.sign(emp, accessTokenType, uuid.NewString(), s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}

	refreshID := uuid.NewString()
	refresh, err := s.sign(emp, refreshTokenType, refreshID, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	if s.store != nil {
		if err := s.store.Save(ctx, refreshID, emp.ID, s.cfg.RefreshTTL); err != nil {
			return nil, err
		}
	}

	return &dto.TokenResponse{
		Access:   access,
		Refresh:  refresh,
		UserInfo: s.userInfo(emp),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := s.parse(refreshToken, refreshTokenType)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		userID, err := s.store.Lookup(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if userID != claims.UserID {
			return nil, domain.ErrInvalidToken
		}
	}

	emp, err := s.empRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrEmployeeNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}

	access, err := s.sign(emp, accessTokenType, uuid.NewString(), s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{Access: access}, nil
}

// Logout отзывает refresh-токен. Без реестра токенов отзывать нечего
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.parse(refreshToken, refreshTokenType)
	if err != nil {
		return err
	}
	if s.store == nil {
		return nil
	}
	return s.store.Revoke(ctx, claims.ID)
}

func (s *authService) ParseAccess(token string) (*Claims, error) {
	return s.parse(token, accessTokenType)
}

func (s *authService) sign(emp *domain.Employee, tokenType, jti string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID:    emp.ID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(emp.ID, 10),
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti,
		},
	}
	if tokenType == accessTokenType {
		claims.Name = emp.Name
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", tokenType, err)
	}
	return signed, nil
}

func (s *authService) parse(token, tokenType string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}
	if claims.TokenType != tokenType {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// userInfo - данные сотрудника в ответе на вход; пустые аватар и должность отдаются как null
func (s *authService) userInfo(emp *domain.Employee) dto.UserInfo {
	info := dto.UserInfo{
		ID:        emp.ID,
		Name:      emp.Name,
		Expertise: emp.Expertise,
		Email:     emp.Email,
	}
	if avatar := s.media.Absolute(emp.Avatar); avatar != "" {
		info.Avatar = &avatar
	}
	if title := emp.PositionTitle(); title != "" {
		info.Position = &title
	}
	return info
}
