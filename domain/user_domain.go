package domain

import (
	"errors"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "login successful"
	MessageSuccessGetMe        = "user retrieved successfully"
	MessageSuccessVerifyEmail  = "email verified successfully"
	MessageSuccessSendVerify   = "verification email sent"
	MessageSuccessCreateFamily = "family created successfully"
	MessageSuccessJoinFamily   = "joined family successfully"
	MessageSuccessGetFamily    = "family retrieved successfully"

	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login"
	MessageFailedGetMe        = "failed to retrieve user"
	MessageFailedVerifyEmail  = "failed to verify email"
	MessageFailedSendVerify   = "failed to send verification email"
	MessageFailedCreateFamily = "failed to create family"
	MessageFailedJoinFamily   = "failed to join family"
	MessageFailedGetFamily    = "failed to retrieve family"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrWrongCredentials   = errors.New("wrong email or password")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrFamilyNotFound     = errors.New("family not found")
	ErrAlreadyInFamily    = errors.New("user already belongs to a family")
	ErrNotFamilyMember    = errors.New("user is not a member of this family")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		IsVerified bool    `json:"is_verified"`
		FamilyID   *string `json:"family_id,omitempty"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	CreateFamilyRequest struct {
		Name string `json:"name" validate:"required"`
	}

	JoinFamilyRequest struct {
		FamilyID string `json:"family_id" validate:"required,uuid"`
	}

	FamilyMemberResponse struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
		Email  string `json:"email"`
		Role   string `json:"role"`
	}

	FamilyResponse struct {
		ID      string                 `json:"id"`
		Name    string                 `json:"name"`
		Members []FamilyMemberResponse `json:"members"`
	}
)
