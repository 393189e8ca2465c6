package user

import (
	"MealHive-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		CreateFamily(ctx context.Context, family *entities.Family) error
		GetFamilyByID(ctx context.Context, id string) (*entities.Family, error)
		AddFamilyMember(ctx context.Context, member *entities.FamilyMember) error
		GetFamilyMembers(ctx context.Context, familyID string) ([]*entities.FamilyMember, error)
		GetFamilyByUserID(ctx context.Context, userID string) (*entities.Family, error)
		IsFamilyMember(ctx context.Context, familyID, userID string) (bool, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CreateFamily(ctx context.Context, family *entities.Family) error {
	return r.db.WithContext(ctx).Create(family).Error
}

func (r *userRepository) GetFamilyByID(ctx context.Context, id string) (*entities.Family, error) {
	var family entities.Family
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&family).Error; err != nil {
		return nil, err
	}
	return &family, nil
}

func (r *userRepository) AddFamilyMember(ctx context.Context, member *entities.FamilyMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *userRepository) GetFamilyMembers(ctx context.Context, familyID string) ([]*entities.FamilyMember, error) {
	var members []*entities.FamilyMember
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("family_id = ?", familyID).
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// GetFamilyByUserID returns the family a user belongs to, or
// gorm.ErrRecordNotFound when the user has no family membership.
func (r *userRepository) GetFamilyByUserID(ctx context.Context, userID string) (*entities.Family, error) {
	var member entities.FamilyMember
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return r.GetFamilyByID(ctx, member.FamilyID.String())
}

func (r *userRepository) IsFamilyMember(ctx context.Context, familyID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.FamilyMember{}).
		Where("family_id = ? AND user_id = ?", familyID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
