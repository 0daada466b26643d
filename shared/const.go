package shared

const (
	UserID = "user_id"

	DifficultyEasy   = "easy"
	DifficultyNormal = "normal"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"

	EventCorrect   = "correct"
	EventIncorrect = "incorrect"
	EventClick     = "click"
	EventGameOver  = "gameOver"
	EventSpeak     = "speak"
)
