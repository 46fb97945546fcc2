package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sslogistics/logipro/internal/domains/users/domain"
	"github.com/sslogistics/logipro/internal/domains/users/ports"
	"github.com/sslogistics/logipro/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type userRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	Email     string    `gorm:"column:email"`
	FullName  string    `gorm:"column:full_name"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role;type:varchar(16)"`
	Active    bool      `gorm:"column:active"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Repository persists user accounts in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires the PostgreSQL user store.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&userRecord{})
	}
	return repo
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*projection.Projection[*domain.User], error) {
	return r.getBy(ctx, "id = ?", id)
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (*projection.Projection[*domain.User], error) {
	return r.getBy(ctx, "username = ?", username)
}

func (r *Repository) getBy(ctx context.Context, cond string, arg any) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).First(&record, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toProjection(), nil
}

func (r *Repository) Save(ctx context.Context, user *domain.User) (*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":      user.Email,
		"full_name":  user.FullName,
		"phone":      user.Phone,
		"role":       string(user.Role),
		"active":     user.Active,
		"updated_at": gorm.Expr("NOW()"),
	})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.User], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []userRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.User], 0, len(records))
	for i := range records {
		result = append(result, records[i].toProjection())
	}
	return result, nil
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&userRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres users repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		Role:     string(user.Role),
		Active:   user.Active,
	}
}

func (r userRecord) toProjection() *projection.Projection[*domain.User] {
	return projection.New(&domain.User{
		ID:       r.ID,
		Username: r.Username,
		Email:    r.Email,
		FullName: r.FullName,
		Phone:    r.Phone,
		Role:     domain.Role(r.Role),
		Active:   r.Active,
	}, r.CreatedAt, r.UpdatedAt)
}
