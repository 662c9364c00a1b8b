package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/muhsinkalodi/qmexai-ecom/internal/model"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/jwtutil"
)

// AuthService verifies credentials, issues session tokens and resolves them
// back into identities.
type AuthService struct {
	db     *gorm.DB
	issuer *jwtutil.Issuer
}

// NewAuthService creates an AuthService backed by db and the token issuer
func NewAuthService(db *gorm.DB, issuer *jwtutil.Issuer) *AuthService {
	return &AuthService{db: db, issuer: issuer}
}

// RegisterInput carries the fields accepted at registration
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Phone    *string
}

// ProfileUpdate carries the optional fields of a profile update. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}

// Register creates a new identity. The first user ever registered is granted
// the admin flag. Fails with ErrDuplicateIdentity when the email, or the
// phone when provided, is already taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, storagef("user lookup", err)
	}
	if count > 0 {
		return nil, ErrDuplicateIdentity
	}

	if in.Phone != nil {
		if err := db.Model(&model.User{}).Where("phone = ?", *in.Phone).Count(&count).Error; err != nil {
			return nil, storagef("user lookup", err)
		}
		if count > 0 {
			return nil, ErrDuplicateIdentity
		}
	}

	// First user is admin
	var total int64
	if err := db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, storagef("user count", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, storagef("password hash", err)
	}

	user := model.User{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		HashedPassword: string(hashed),
		IsAdmin:        total == 0,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, storagef("user create", err)
	}
	return &user, nil
}

// Login verifies the credentials and issues a session token encoding the
// subject email and admin flag, expiring after the configured lifetime.
func (s *AuthService) Login(ctx context.Context, email, password string) (token string, isAdmin bool, err error) {
	var user model.User
	result := s.db.WithContext(ctx).Where("email = ?", email).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, ErrInvalidCredentials
		}
		return "", false, storagef("user lookup", result.Error)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return "", false, ErrInvalidCredentials
	}

	token, err = s.issuer.GenerateToken(user.Email, user.IsAdmin, s.issuer.ExpireMinutes())
	if err != nil {
		return "", false, storagef("token signing", err)
	}
	return token, user.IsAdmin, nil
}

// Authenticate decodes a session token and resolves it to a known identity.
// Malformed, expired or unverifiable tokens, and tokens whose subject no
// longer exists, all fail with ErrInvalidToken.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.issuer.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	var user model.User
	result := s.db.WithContext(ctx).Where("email = ?", claims.Subject).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, storagef("user lookup", result.Error)
	}
	return &user, nil
}

// GetUser fetches an identity by id
func (s *AuthService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	result := s.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storagef("user lookup", result.Error)
	}
	return &user, nil
}

// RequireAdmin fails with ErrForbidden unless the identity carries the
// admin flag.
func (s *AuthService) RequireAdmin(user *model.User) error {
	if user == nil || !user.IsAdmin {
		return ErrForbidden
	}
	return nil
}

// UpdateProfile mutates only the supplied fields. A new email or phone that
// collides with another identity fails with ErrDuplicateIdentity.
func (s *AuthService) UpdateProfile(ctx context.Context, user *model.User, update ProfileUpdate) (*model.User, error) {
	db := s.db.WithContext(ctx)

	if update.Email != nil && *update.Email != user.Email {
		var count int64
		if err := db.Model(&model.User{}).Where("email = ? AND id != ?", *update.Email, user.ID).Count(&count).Error; err != nil {
			return nil, storagef("user lookup", err)
		}
		if count > 0 {
			return nil, ErrDuplicateIdentity
		}
		user.Email = *update.Email
	}

	if update.Phone != nil && (user.Phone == nil || *update.Phone != *user.Phone) {
		var count int64
		if err := db.Model(&model.User{}).Where("phone = ? AND id != ?", *update.Phone, user.ID).Count(&count).Error; err != nil {
			return nil, storagef("user lookup", err)
		}
		if count > 0 {
			return nil, ErrDuplicateIdentity
		}
		user.Phone = update.Phone
	}

	if update.Name != nil {
		user.Name = *update.Name
	}

	if err := db.Save(user).Error; err != nil {
		return nil, storagef("user update", err)
	}
	return user, nil
}
