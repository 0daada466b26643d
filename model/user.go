package model

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"unique;not null"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Level          int     `json:"level" gorm:"default:1;not null"`
	Experience     int     `json:"experience" gorm:"default:0;not null"`
	TotalCorrect   int     `json:"total_correct" gorm:"default:0;not null"`
	TotalQuestions int     `json:"total_questions" gorm:"default:0;not null"`
	TotalScore     int     `json:"total_score" gorm:"default:0;not null"`
	Streak         int     `json:"streak" gorm:"default:0;not null"`
	MaxStreak      int     `json:"max_streak" gorm:"default:0;not null"`
	Money          float64 `json:"money" gorm:"default:0;not null"`
}

// Settings holds per-user playback and gameplay preferences, one row per user.
type Settings struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"uniqueIndex;not null"`
	BGMEnabled bool      `json:"bgm_enabled" gorm:"default:true;not null"`
	SFXEnabled bool      `json:"sfx_enabled" gorm:"default:true;not null"`
	TTSEnabled bool      `json:"tts_enabled" gorm:"default:false;not null"`
	Difficulty string    `json:"difficulty" gorm:"default:normal;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ProgressEntry is the append-only answer log. Rows are never updated or
// deleted; the aggregates on User are denormalized from these.
type ProgressEntry struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"not null;index"`
	Category    string    `json:"category" gorm:"not null"`
	Correct     bool      `json:"correct" gorm:"not null"`
	ScoreEarned int       `json:"score_earned" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null"`
}

type RateLimit struct {
	ID           string     `json:"id" gorm:"primaryKey;type:text;not null"`
	Identifier   string     `json:"identifier" gorm:"not null;index;size:255"`
	EndpointType string     `json:"endpoint_type" gorm:"not null;size:50"`
	RequestCount int        `json:"request_count" gorm:"default:0;not null"`
	WindowStart  time.Time  `json:"window_start" gorm:"not null"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty" gorm:"index"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null"`
}
