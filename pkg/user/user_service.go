package user

import (
	"MealHive-Backend/domain"
	"MealHive-Backend/entities"
	"MealHive-Backend/internal/utils"
	"MealHive-Backend/internal/utils/mailing"
	"MealHive-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error

		CreateFamily(ctx context.Context, req domain.CreateFamilyRequest, userID string) (domain.FamilyResponse, error)
		JoinFamily(ctx context.Context, req domain.JoinFamilyRequest, userID string) error
		GetFamily(ctx context.Context, userID string) (domain.FamilyResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrWrongCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrWrongCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	res := domain.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		IsVerified: user.IsVerified,
	}

	if family, err := s.userRepository.GetFamilyByUserID(ctx, userID); err == nil {
		familyID := family.ID.String()
		res.FamilyID = &familyID
	}

	return res, nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenVerification(map[string]any{
		"user_id": user.ID.String(),
	}, 24*time.Hour)
	if err != nil {
		return err
	}

	verifyLink := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Confirm your email address by clicking <a href=%q>this link</a>.</p>",
		user.Name, verifyLink,
	)
	return mailing.SendMail(user.Email, "Verify your MealHive account", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenVerification(token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.IsVerified = true
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) CreateFamily(ctx context.Context, req domain.CreateFamilyRequest, userID string) (domain.FamilyResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FamilyResponse{}, domain.ErrParseUUID
	}

	if _, err := s.userRepository.GetFamilyByUserID(ctx, userID); err == nil {
		return domain.FamilyResponse{}, domain.ErrAlreadyInFamily
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.FamilyResponse{}, err
	}

	family := &entities.Family{ID: uuid.New(), Name: req.Name}
	if err := s.userRepository.CreateFamily(ctx, family); err != nil {
		return domain.FamilyResponse{}, err
	}

	member := &entities.FamilyMember{
		ID:       uuid.New(),
		FamilyID: family.ID,
		UserID:   userUUID,
		Role:     "Owner",
	}
	if err := s.userRepository.AddFamilyMember(ctx, member); err != nil {
		return domain.FamilyResponse{}, err
	}

	return s.familyResponse(ctx, family)
}

func (s *userService) JoinFamily(ctx context.Context, req domain.JoinFamilyRequest, userID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	family, err := s.userRepository.GetFamilyByID(ctx, req.FamilyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFamilyNotFound
		}
		return err
	}

	if _, err := s.userRepository.GetFamilyByUserID(ctx, userID); err == nil {
		return domain.ErrAlreadyInFamily
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member := &entities.FamilyMember{
		ID:       uuid.New(),
		FamilyID: family.ID,
		UserID:   userUUID,
		Role:     "Member",
	}
	return s.userRepository.AddFamilyMember(ctx, member)
}

func (s *userService) GetFamily(ctx context.Context, userID string) (domain.FamilyResponse, error) {
	family, err := s.userRepository.GetFamilyByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FamilyResponse{}, domain.ErrFamilyNotFound
		}
		return domain.FamilyResponse{}, err
	}
	return s.familyResponse(ctx, family)
}

func (s *userService) familyResponse(ctx context.Context, family *entities.Family) (domain.FamilyResponse, error) {
	members, err := s.userRepository.GetFamilyMembers(ctx, family.ID.String())
	if err != nil {
		return domain.FamilyResponse{}, err
	}

	res := domain.FamilyResponse{
		ID:   family.ID.String(),
		Name: family.Name,
	}
	for _, m := range members {
		memberRes := domain.FamilyMemberResponse{
			UserID: m.UserID.String(),
			Role:   m.Role,
		}
		if m.User != nil {
			memberRes.Name = m.User.Name
			memberRes.Email = m.User.Email
		}
		res.Members = append(res.Members, memberRes)
	}
	return res, nil
}
