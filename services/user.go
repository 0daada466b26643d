// services/user.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/model"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

const (
	startingMoney    = 500
	xpPerCorrect     = 10
	wrongAnswerFine  = 25
	moneyScoreDivide = 10
)

type UserService struct {
	context.DefaultService

	sqlSvc *SqliteService
	jwtSvc *JWTService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *UserService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// ==================== IDENTITY ====================

// Register creates an account for a new handle. Handles are exact-match
// case-sensitive; "Kai" and "kai" are different players.
func (svc *UserService) Register(req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len([]rune(req.Username)) < 3 {
		return nil, shared.NewBadRequestError(fmt.Errorf("username too short"), "Username must be at least 3 characters")
	}

	if _, err := svc.sqlSvc.GetUserByUsername(req.Username); err == nil {
		return nil, shared.NewConflictError(fmt.Errorf("username taken"), "Username already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	userID, _ := uuid.NewV7()
	user := &model.User{
		ID:        userID.String(),
		Username:  req.Username,
		LastLogin: now,
		CreatedAt: now,
		UpdatedAt: now,
		Level:     1,
		Money:     startingMoney,
	}
	if _, err := svc.sqlSvc.CreateUser(user); err != nil {
		return nil, err
	}

	settingsID, _ := uuid.NewV7()
	settings := &model.Settings{
		ID:         settingsID.String(),
		UserID:     user.ID,
		BGMEnabled: true,
		SFXEnabled: true,
		TTSEnabled: false,
		Difficulty: shared.DifficultyNormal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := svc.sqlSvc.CreateSettings(settings); err != nil {
		return nil, err
	}

	log.WithField("username", user.Username).Info("User registered")
	return svc.authResponse(user, settings)
}

// Login looks the handle up and loads that player's persisted settings.
func (svc *UserService) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := svc.sqlSvc.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	settings, err := svc.settingsOrDefaults(user.ID)
	if err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return nil, err
	}

	return svc.authResponse(user, settings)
}

// Logout is an acknowledgement; identity lives in the token, and the account
// record is kept.
func (svc *UserService) Logout(userID string) {
	log.WithField("user_id", userID).Debug("User logged out")
}

func (svc *UserService) authResponse(user *model.User, settings *model.Settings) (*dto.AuthResponse, error) {
	token, err := svc.jwtSvc.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		Token:     *token,
		Settings:  mapSettings(settings),
	}, nil
}

// settingsOrDefaults treats a missing settings row as "no data yet" and
// materializes the defaults.
func (svc *UserService) settingsOrDefaults(userID string) (*model.Settings, error) {
	settings, err := svc.sqlSvc.GetSettings(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	settingsID, _ := uuid.NewV7()
	settings = &model.Settings{
		ID:         settingsID.String(),
		UserID:     userID,
		BGMEnabled: true,
		SFXEnabled: true,
		TTSEnabled: false,
		Difficulty: shared.DifficultyNormal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return svc.sqlSvc.CreateSettings(settings)
}

// ==================== SETTINGS ====================

func (svc *UserService) GetSettings(userID string) (*dto.SettingsResponse, error) {
	settings, err := svc.settingsOrDefaults(userID)
	if err != nil {
		return nil, err
	}
	resp := mapSettings(settings)
	return &resp, nil
}

// UpdateSettings merges only the fields present in the request.
func (svc *UserService) UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings, err := svc.settingsOrDefaults(userID)
	if err != nil {
		return nil, err
	}

	if req.BGMEnabled != nil {
		settings.BGMEnabled = *req.BGMEnabled
	}
	if req.SFXEnabled != nil {
		settings.SFXEnabled = *req.SFXEnabled
	}
	if req.TTSEnabled != nil {
		settings.TTSEnabled = *req.TTSEnabled
	}
	if req.Difficulty != nil {
		settings.Difficulty = *req.Difficulty
	}

	if err := svc.sqlSvc.UpdateSettings(settings); err != nil {
		return nil, err
	}

	resp := mapSettings(settings)
	return &resp, nil
}

// DefaultDifficulty is the player's preferred difficulty, used when a game
// start leaves it unspecified.
func (svc *UserService) DefaultDifficulty(userID string) string {
	settings, err := svc.sqlSvc.GetSettings(userID)
	if err != nil {
		return shared.DifficultyNormal
	}
	return settings.Difficulty
}

func mapSettings(settings *model.Settings) dto.SettingsResponse {
	return dto.SettingsResponse{
		BGMEnabled: settings.BGMEnabled,
		SFXEnabled: settings.SFXEnabled,
		TTSEnabled: settings.TTSEnabled,
		Difficulty: settings.Difficulty,
	}
}

// ==================== PROGRESSION LEDGER ====================

// RecordAnswer converts one answer outcome into permanent account mutations
// and appends to the immutable progress log. Money never goes below zero.
func (svc *UserService) RecordAnswer(userID string, correct bool, category string, scoreEarned int) error {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		return err
	}

	user.TotalQuestions++
	user.TotalScore += scoreEarned

	if correct {
		user.TotalCorrect++
		user.Streak++
		if user.Streak > user.MaxStreak {
			user.MaxStreak = user.Streak
		}
		user.Experience += xpPerCorrect
		user.Level = levelForExperience(user.Experience)
		user.Money += float64(scoreEarned) / moneyScoreDivide
	} else {
		user.Streak = 0
		user.Money = math.Max(0, user.Money-wrongAnswerFine)
	}

	if err := svc.sqlSvc.UpdateUser(user); err != nil {
		return err
	}

	entryID, _ := uuid.NewV7()
	entry := &model.ProgressEntry{
		ID:          entryID.String(),
		UserID:      userID,
		Category:    category,
		Correct:     correct,
		ScoreEarned: scoreEarned,
		CreatedAt:   time.Now(),
	}
	return svc.sqlSvc.CreateProgressEntry(entry)
}

func levelForExperience(experience int) int {
	return int(math.Floor(math.Sqrt(float64(experience)/100))) + 1
}

// ==================== STATS ====================

func (svc *UserService) GetStats(userID string) (*dto.UserStatsResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	accuracy := 0
	if user.TotalQuestions > 0 {
		accuracy = int(math.Round(float64(user.TotalCorrect) / float64(user.TotalQuestions) * 100))
	}

	return &dto.UserStatsResponse{
		Username:       user.Username,
		Level:          user.Level,
		Experience:     user.Experience,
		Accuracy:       accuracy,
		Streak:         user.Streak,
		MaxStreak:      user.MaxStreak,
		TotalQuestions: user.TotalQuestions,
		TotalCorrect:   user.TotalCorrect,
		TotalScore:     user.TotalScore,
		Money:          user.Money,
	}, nil
}

// GetProgressHistory returns the append-only answer log, oldest first.
func (svc *UserService) GetProgressHistory(userID string) (*dto.ProgressHistoryResponse, error) {
	user, err := svc.sqlSvc.GetUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "User not found")
		}
		return nil, err
	}

	entries, err := svc.sqlSvc.GetProgressEntries(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ProgressEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = dto.ProgressEntryResponse{
			Category:    entry.Category,
			Correct:     entry.Correct,
			ScoreEarned: entry.ScoreEarned,
			Timestamp:   entry.CreatedAt,
		}
	}

	return &dto.ProgressHistoryResponse{
		Username: user.Username,
		Entries:  responses,
	}, nil
}
