package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gamestudio/website/internal/database"
	"gamestudio/website/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned when an email and password do not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ProfileRepository stores user profiles.
type ProfileRepository struct{ conn }

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{conn{db}}
}

func (r *ProfileRepository) List(ctx context.Context, opts ListOptions) (Set[models.Profile], error) {
	q, err := r.with(ctx)
	if err != nil {
		return Set[models.Profile]{}, err
	}
	if s := strings.TrimSpace(opts.Query); s != "" {
		q = q.Where("email ILIKE ?", "%"+s+"%")
	}
	return list[models.Profile](q, opts, "created_at ASC")
}

func (r *ProfileRepository) Get(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	return get[models.Profile](q, id)
}

func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	var p models.Profile
	if err := q.Where("email = ?", normalizeEmail(email)).First(&p).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &p, nil
}

func (r *ProfileRepository) Create(ctx context.Context, p *models.Profile) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	p.Email = normalizeEmail(p.Email)
	return database.Classify(q.Create(p).Error)
}

// SetAdmin grants or revokes back-office access.
func (r *ProfileRepository) SetAdmin(ctx context.Context, id uuid.UUID, admin bool) error {
	q, err := r.with(ctx)
	if err != nil {
		return err
	}
	return updateColumn[models.Profile](q, id, "is_admin", admin)
}

// AdminUserRepository stores back-office credentials.
type AdminUserRepository struct{ conn }

func NewAdminUserRepository(db *gorm.DB) *AdminUserRepository {
	return &AdminUserRepository{conn{db}}
}

func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	var u models.AdminUser
	if err := q.Where("email = ?", normalizeEmail(email)).First(&u).Error; err != nil {
		return nil, database.Classify(err)
	}
	return &u, nil
}

// Authenticate checks a password against the stored bcrypt hash.
func (r *AdminUserRepository) Authenticate(ctx context.Context, email, password string) (*models.AdminUser, error) {
	u, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Create stores credentials for an existing profile.
func (r *AdminUserRepository) Create(ctx context.Context, profileID uuid.UUID, email, password string) (*models.AdminUser, error) {
	q, err := r.with(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &models.AdminUser{
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		ProfileID:    profileID,
	}
	if err := q.Create(u).Error; err != nil {
		return nil, database.Classify(err)
	}
	return u, nil
}

// EnsureBootstrap creates an admin profile and its credentials when no admin
// user exists for email. It reports whether anything was created.
func (r *AdminUserRepository) EnsureBootstrap(ctx context.Context, email, password string) (bool, error) {
	q, err := r.with(ctx)
	if err != nil {
		return false, err
	}
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	created := false
	err = q.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		profile := models.Profile{Email: email}
		if err := tx.Where(models.Profile{Email: email}).FirstOrCreate(&profile).Error; err != nil {
			return err
		}
		if !profile.IsAdmin {
			if err := tx.Model(&profile).Update("is_admin", true).Error; err != nil {
				return err
			}
		}

		created = true
		return tx.Create(&models.AdminUser{
			Email:        email,
			PasswordHash: string(hash),
			ProfileID:    profile.ID,
		}).Error
	})
	if err != nil {
		return false, database.Classify(err)
	}
	return created, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
