package handlers

import (
	"github.com/Caisio-Cloud/popmath-game/dto"
)

type UserServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(userID string)
	GetSettings(userID string) (*dto.SettingsResponse, error)
	UpdateSettings(userID string, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error)
	GetStats(userID string) (*dto.UserStatsResponse, error)
	GetProgressHistory(userID string) (*dto.ProgressHistoryResponse, error)
}

type GameServiceInterface interface {
	StartGame(userID, categoryID, difficulty string) (*dto.QuestionResponse, error)
	CurrentQuestion(userID string) (*dto.QuestionResponse, error)
	SubmitAnswer(userID, answer string) *dto.AnswerResultResponse
	UseHint(userID string) *dto.HintResponse
	SkipQuestion(userID string) *dto.SkipResponse
	GameStats(userID string) (*dto.GameStatsResponse, error)
	QuitGame(userID string)
}

type ContentServiceInterface interface {
	GetCategories() (*dto.CategoryCollectionResponse, error)
}

type FlavorServiceInterface interface {
	RandomMeme() dto.MemeResponse
	Story() *dto.StoryResponse
}
