package dto

// ==================== GAME REQUEST DTOs ====================

type StartGameRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=easy normal hard expert"`
}

func (r StartGameRequest) Validate() error {
	return GetValidator().Struct(r)
}

// SubmitAnswerRequest carries the chosen option. An empty answer is the
// time-up signal and never matches.
type SubmitAnswerRequest struct {
	Answer string `json:"answer"`
}

// ==================== GAME RESPONSE DTOs ====================

type QuestionResponse struct {
	ID       string   `json:"id"`
	Category string   `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
}

type StreakMessageResponse struct {
	Message string `json:"message"`
	Color   string `json:"color"`
}

type AnswerResultResponse struct {
	Correct        bool                   `json:"correct"`
	CorrectAnswer  string                 `json:"correct_answer,omitempty"`
	Hint           string                 `json:"hint,omitempty"`
	Category       string                 `json:"category,omitempty"`
	ScoreEarned    int                    `json:"score_earned,omitempty"`
	Streak         int                    `json:"streak"`
	LivesRemaining int                    `json:"lives_remaining"`
	GameOver       bool                   `json:"game_over,omitempty"`
	Message        string                 `json:"message,omitempty"`
	StreakMessage  *StreakMessageResponse `json:"streak_message,omitempty"`
}

type HintResponse struct {
	Success   bool   `json:"success"`
	Hint      string `json:"hint,omitempty"`
	Message   string `json:"message,omitempty"`
	ScoreCost int    `json:"score_cost"`
}

type SkipResponse struct {
	Success        bool   `json:"success"`
	LivesRemaining int    `json:"lives_remaining,omitempty"`
	Message        string `json:"message,omitempty"`
}

type GameStatsResponse struct {
	Score             int    `json:"score"`
	Lives             int    `json:"lives"`
	Streak            int    `json:"streak"`
	Category          string `json:"category"`
	Difficulty        string `json:"difficulty"`
	QuestionsAnswered int    `json:"questions_answered"`
	TimePerQuestion   int    `json:"time_per_question"`
	TimeRemaining     int    `json:"time_remaining"`
	Active            bool   `json:"active"`
}
