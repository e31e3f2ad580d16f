package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thebagdis/storefront/internal/errors"
	"github.com/thebagdis/storefront/internal/models"
	repository "github.com/thebagdis/storefront/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	repo     repository.UserRepository
	rateRepo repository.RateLimitRepository
	jwtKey   []byte
	tokenTTL time.Duration
}

func NewUserService(repo repository.UserRepository, rateRepo repository.RateLimitRepository, jwtKey []byte) *UserService {
	return &UserService{
		repo:     repo,
		rateRepo: rateRepo,
		jwtKey:   jwtKey,
		tokenTTL: 7 * 24 * time.Hour,
	}
}

func (s *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	existingUser, _ := s.repo.GetUserByEmail(ctx, req.Email)
	if existingUser != nil {
		return nil, errors.DuplicateEntryError("Email already registered")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	allowed, remaining, retryAfter, err := s.rateRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Invalid email or password",
			RemainingTries: remaining,
		}, nil
	}

	claims := &models.Claims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     tokenString,
		ExpiresIn: int(time.Until(claims.ExpiresAt.Time).Seconds()),
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.repo.GetUserById(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}

	if req.Addresses != nil {
		user.Addresses = *req.Addresses
	}

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, errors.DatabaseError("Failed to update user").WithError(err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, page, size int) ([]models.User, int, error) {
	users, total, err := s.repo.ListUsers(ctx, page, size)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users").WithError(err)
	}

	return users, total, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id primitive.ObjectID, role models.Role) error {
	if err := s.repo.UpdateUserRole(ctx, id, role); err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return errors.NotFoundError("User not found").WithError(err)
	}

	return nil
}
