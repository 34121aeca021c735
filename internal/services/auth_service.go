package services

import (
	"context"
	"errors"
	"time"

	"content-api/internal/logger"
	"content-api/internal/models"
	"content-api/internal/pkg/apperrors"
	"content-api/internal/repository"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type contextKey string

const UserContextKey contextKey = "user"

const revokedKeyPrefix = "revoked:"

var (
	ErrInvalidToken = errors.New("invalid token")
)

type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	VerifyTokenAdmin(ctx context.Context, token string) (*models.User, error)
	RevokeToken(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

type authService struct {
	userRepo         repository.UserRepository
	subscriptionRepo repository.SubscriptionRepository
	planRepo         repository.PlanRepository
	cache            CacheService
	jwtSecret        string
}

func NewAuthService(
	userRepo repository.UserRepository,
	subscriptionRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	cache CacheService,
	jwtSecret string,
) AuthService {
	return &authService{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		cache:            cache,
		jwtSecret:        jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// New accounts start on the persisted free tier. When the catalog has
	// no such row the quota service falls back to the in-memory default.
	freePlan, err := s.planRepo.GetByName(ctx, "free")
	if err == nil {
		if _, err := s.subscriptionRepo.Assign(ctx, user.ID, freePlan.ID); err != nil {
			logger.Logger.WithError(err).Warn("Failed to assign free subscription on register")
		}
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastSignedIn(ctx, user.ID); err != nil {
		logger.Logger.WithError(err).Warn("Failed to record last sign-in")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID.String(),
		"role":    user.Role,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})

	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) VerifyToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return nil, err
	}

	if s.tokenRevoked(ctx, claims) {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(stringClaim(claims, "user_id"))
	if err != nil {
		return nil, ErrInvalidToken
	}

	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) VerifyTokenAdmin(ctx context.Context, tokenString string) (*models.User, error) {
	user, err := s.VerifyToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// RevokeToken denylists the token's jti until the token would have expired
// anyway, which gives logout real teeth under stateless JWTs.
func (s *authService) RevokeToken(ctx context.Context, tokenString string) error {
	claims, err := s.parseClaims(tokenString)
	if err != nil {
		return err
	}

	jti := stringClaim(claims, "jti")
	if jti == "" {
		return ErrInvalidToken
	}

	ttl := 24 * time.Hour
	if exp, ok := claims["exp"].(float64); ok {
		if until := time.Until(time.Unix(int64(exp), 0)); until > 0 {
			ttl = until
		}
	}

	if err := s.cache.Set(ctx, revokedKeyPrefix+jti, "1", ttl); err != nil {
		return apperrors.ErrStorageUnavailable
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return apperrors.ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.PasswordHash = string(hashedPassword)
	user.UpdatedAt = time.Now()
	return s.userRepo.Update(ctx, user)
}

func (s *authService) parseClaims(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// tokenRevoked checks the denylist. Cache misses mean the token is fine;
// a broken cache fails open so a Redis outage cannot lock everyone out.
func (s *authService) tokenRevoked(ctx context.Context, claims jwt.MapClaims) bool {
	jti := stringClaim(claims, "jti")
	if jti == "" {
		return false
	}

	_, err := s.cache.Get(ctx, revokedKeyPrefix+jti)
	if err == nil {
		return true
	}
	if !errors.Is(err, apperrors.ErrCacheMiss) {
		logger.Logger.WithError(err).Warn("Token revocation check failed")
	}
	return false
}

func stringClaim(claims jwt.MapClaims, key string) string {
	val, _ := claims[key].(string)
	return val
}

// Helper functions to move the authenticated user through request context
func WithUserContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}
