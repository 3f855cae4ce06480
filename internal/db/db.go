package db

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/classtrack/classtrack-back/internal/models"
)

var DB *gorm.DB

func InitDB(dsn string) {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// AutoMigrate will create/update tables automatically
	err = DB.AutoMigrate(&models.Assignment{}, &models.Class{}, &models.User{})
	if err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	fmt.Println("✅ Database connected and migrated")
}

func PingDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func SaveOrUpdateUser(ctx context.Context, u models.User) error {
	var existing models.User
	if err := DB.WithContext(ctx).Where("email = ?", u.Email).First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return DB.WithContext(ctx).Create(&u).Error
		}
		return err
	}

	return DB.WithContext(ctx).Model(&existing).Updates(u).Error
}

func GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := DB.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Backend mirrors the in-memory store into the assignments and classes
// tables, one row per entity scoped by owner_email.
type Backend struct {
	db *gorm.DB
}

func NewBackend() *Backend {
	return &Backend{db: DB}
}

func (b *Backend) LoadAssignments(ctx context.Context, email string) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := b.db.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("due_date asc").
		Find(&assignments).Error
	return assignments, err
}

func (b *Backend) LoadClasses(ctx context.Context, email string) ([]models.Class, error) {
	var classes []models.Class
	err := b.db.WithContext(ctx).
		Where("owner_email = ?", email).
		Order("course_code asc").
		Find(&classes).Error
	return classes, err
}

func (b *Backend) SaveAssignment(ctx context.Context, a models.Assignment) error {
	return b.db.WithContext(ctx).Save(&a).Error
}

func (b *Backend) DeleteAssignment(ctx context.Context, email, id string) error {
	return b.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, email).
		Delete(&models.Assignment{}).Error
}

func (b *Backend) SaveClass(ctx context.Context, c models.Class) error {
	return b.db.WithContext(ctx).Save(&c).Error
}

func (b *Backend) DeleteClass(ctx context.Context, email, id string) error {
	return b.db.WithContext(ctx).
		Where("id = ? AND owner_email = ?", id, email).
		Delete(&models.Class{}).Error
}
