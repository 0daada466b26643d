package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Caisio-Cloud/popmath-game/model"
)

type SqliteService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const SQLITE_SVC = "sqlite_svc"

// Id returns Service ID
func (ds SqliteService) Id() string {
	return SQLITE_SVC
}

// Db Access to raw SqliteService db
func (ds SqliteService) Db() *gorm.DB {
	return ds.db
}

// Configure the service
func (ds *SqliteService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DB_DATABASE")
	if ds.database == "" {
		ds.database = "popmath.db"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start the service and open connection to the database
// Migrate any tables that have changed since last runtime
func (ds *SqliteService) Start() (err error) {
	ds.db, err = gorm.Open(sqlite.Open(ds.database), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.Settings{},
		&model.ProgressEntry{},
		&model.RateLimit{},

		&model.Category{},
		&model.Question{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	if err := ds.seedQuestionBank(); err != nil {
		log.Printf("Failed to seed question bank: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *SqliteService) Shutdown() {
}

func (ds *SqliteService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	default:
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

// ==================== USER METHODS ====================

func (ds *SqliteService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := ds.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *SqliteService) GetUser(id string) (*model.User, error) {
	var user model.User
	if err := ds.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *SqliteService) CreateUser(user *model.User) (*model.User, error) {
	if err := ds.db.Create(user).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return user, nil
}

func (ds *SqliteService) UpdateUser(user *model.User) error {
	user.UpdatedAt = time.Now()
	return ds.db.Save(user).Error
}

// ==================== SETTINGS METHODS ====================

func (ds *SqliteService) GetSettings(userID string) (*model.Settings, error) {
	var settings model.Settings
	if err := ds.db.Where("user_id = ?", userID).First(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

func (ds *SqliteService) CreateSettings(settings *model.Settings) (*model.Settings, error) {
	if err := ds.db.Create(settings).Error; err != nil {
		return nil, ds.HandleError(err)
	}
	return settings, nil
}

func (ds *SqliteService) UpdateSettings(settings *model.Settings) error {
	settings.UpdatedAt = time.Now()
	return ds.db.Save(settings).Error
}

// ==================== PROGRESS METHODS ====================

func (ds *SqliteService) CreateProgressEntry(entry *model.ProgressEntry) error {
	return ds.db.Create(entry).Error
}

func (ds *SqliteService) GetProgressEntries(userID string) ([]model.ProgressEntry, error) {
	var entries []model.ProgressEntry
	if err := ds.db.Where("user_id = ?", userID).Order("created_at asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ==================== CONTENT METHODS ====================

func (ds *SqliteService) GetCategories() ([]model.Category, error) {
	var categories []model.Category
	if err := ds.db.Where("is_active = ?", true).Order(`"order" asc`).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (ds *SqliteService) GetCategory(id string) (*model.Category, error) {
	var category model.Category
	if err := ds.db.First(&category, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (ds *SqliteService) GetQuestionsByCategory(categoryID string) ([]model.Question, error) {
	var questions []model.Question
	if err := ds.db.Where("category_id = ?", categoryID).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (ds *SqliteService) CountQuestions() (int64, error) {
	var count int64
	err := ds.db.Model(&model.Question{}).Count(&count).Error
	return count, err
}

// ==================== RATE LIMIT METHODS ====================

func (ds *SqliteService) GetRateLimit(identifier, endpointType string) (*model.RateLimit, error) {
	var rl model.RateLimit
	err := ds.db.Where("identifier = ? AND endpoint_type = ?", identifier, endpointType).First(&rl).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

func (ds *SqliteService) SaveRateLimit(rl *model.RateLimit) error {
	rl.UpdatedAt = time.Now()
	return ds.db.Save(rl).Error
}

func (ds *SqliteService) CleanupOldRateLimits(before time.Time) error {
	return ds.db.Where("updated_at < ? AND (blocked_until IS NULL OR blocked_until < ?)", before, time.Now()).
		Delete(&model.RateLimit{}).Error
}
