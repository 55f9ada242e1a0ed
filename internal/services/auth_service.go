package services

import (
	"fmt"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repository"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	AdminSecret string `json:"adminSecret"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenClaims are carried in every issued token and attached to the request
// context by the auth middleware.
type TokenClaims struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(input RegisterInput) (string, *models.User, error)
	Login(input LoginInput) (string, *models.User, error)
	ParseToken(token string) (*TokenClaims, error)
	CurrentUser(claims *TokenClaims) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	secret      []byte
	expiry      time.Duration
	adminSecret string
}

func NewAuthService(userRepo repository.UserRepository, secret string, expiry time.Duration, adminSecret string) AuthService {
	return &authService{
		userRepo:    userRepo,
		secret:      []byte(secret),
		expiry:      expiry,
		adminSecret: adminSecret,
	}
}

func (s *authService) Register(input RegisterInput) (string, *models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return "", nil, models.NewValidationError("name, email and password are required")
	}

	existing, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if existing != nil {
		return "", nil, ErrEmailTaken
	}

	// Registering as admin requires the configured secret
	role := string(models.RoleUser)
	if input.Role == string(models.RoleAdmin) {
		if input.AdminSecret != s.adminSecret {
			return "", nil, ErrForbidden
		}
		role = string(models.RoleAdmin)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return "", nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) Login(input LoginInput) (string, *models.User, error) {
	if input.Email == "" || input.Password == "" {
		return "", nil, models.NewValidationError("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(input.Email)
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up email: %w", err)
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.signToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *authService) CurrentUser(claims *TokenClaims) (*models.User, error) {
	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return user, nil
}

func (s *authService) signToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &TokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
