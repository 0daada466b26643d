// model/content.go
package model

import (
	"encoding/json"
	"time"
)

// Category groups the question bank by topic
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	DisplayName string    `json:"display_name" gorm:"not null"`
	Icon        string    `json:"icon"`
	Description string    `json:"description" gorm:"type:text"`
	Order       int       `json:"order" gorm:"not null"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Question is a single multiple-choice question. Options always holds four
// strings, one of which equals Answer.
type Question struct {
	ID         string          `json:"id" gorm:"primaryKey"`
	CategoryID string          `json:"category_id" gorm:"not null;index"`
	Prompt     string          `json:"prompt" gorm:"type:text;not null"`
	Answer     string          `json:"answer" gorm:"not null"`
	Options    json.RawMessage `json:"options" gorm:"type:text;not null"` // JSON array of 4 strings
	Hint       string          `json:"hint" gorm:"type:text"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationship
	Category Category `json:"-" gorm:"foreignKey:CategoryID"`
}
