package dto

import "time"

// Settings DTOs

// UpdateSettingsRequest merges only the fields the client actually sent,
// hence the pointers.
type UpdateSettingsRequest struct {
	BGMEnabled *bool   `json:"bgm_enabled,omitempty"`
	SFXEnabled *bool   `json:"sfx_enabled,omitempty"`
	TTSEnabled *bool   `json:"tts_enabled,omitempty"`
	Difficulty *string `json:"difficulty,omitempty" validate:"omitempty,oneof=easy normal hard expert"`
}

func (r UpdateSettingsRequest) Validate() error {
	return GetValidator().Struct(r)
}

type SettingsResponse struct {
	BGMEnabled bool   `json:"bgm_enabled"`
	SFXEnabled bool   `json:"sfx_enabled"`
	TTSEnabled bool   `json:"tts_enabled"`
	Difficulty string `json:"difficulty"`
}

// Stats DTOs

type UserStatsResponse struct {
	Username       string  `json:"username"`
	Level          int     `json:"level"`
	Experience     int     `json:"experience"`
	Accuracy       int     `json:"accuracy"` // percentage, rounded
	Streak         int     `json:"streak"`
	MaxStreak      int     `json:"max_streak"`
	TotalQuestions int     `json:"total_questions"`
	TotalCorrect   int     `json:"total_correct"`
	TotalScore     int     `json:"total_score"`
	Money          float64 `json:"money"`
}

type ProgressEntryResponse struct {
	Category    string    `json:"category"`
	Correct     bool      `json:"correct"`
	ScoreEarned int       `json:"score_earned"`
	Timestamp   time.Time `json:"timestamp"`
}

type ProgressHistoryResponse struct {
	Username string                  `json:"username"`
	Entries  []ProgressEntryResponse `json:"entries"`
}
