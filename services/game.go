// services/game.go
package services

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

const (
	startingLives   = 3
	baseScore       = 100
	streakBonusStep = 50
	maxStreakBonus  = 500
	hintCost        = 100
)

var timeBudgets = map[string]int{
	shared.DifficultyEasy:   60,
	shared.DifficultyNormal: 45,
	shared.DifficultyHard:   30,
	shared.DifficultyExpert: 20,
}

var difficultyMultipliers = map[string]float64{
	shared.DifficultyEasy:   0.5,
	shared.DifficultyNormal: 1,
	shared.DifficultyHard:   1.5,
	shared.DifficultyExpert: 2,
}

// ledger records answer outcomes against the durable account and supplies
// the player's preferred difficulty.
type ledger interface {
	RecordAnswer(userID string, correct bool, category string, scoreEarned int) error
	DefaultDifficulty(userID string) string
}

// eventSink receives fire-and-forget game events for the audio/speech layer.
type eventSink interface {
	Publish(userID, event, text string)
}

// GameSession is one run through a category. Mutated only while the service
// mutex is held; each player has at most one.
type GameSession struct {
	Category          string
	Difficulty        string
	Score             int
	Lives             int
	Streak            int
	Active            bool
	QuestionsAnswered int
	TimeBudget        int // seconds per question

	queue      []BankQuestion
	queueIndex int
	current    *BankQuestion
	deadline   time.Time
}

type GameService struct {
	context.DefaultService

	contentSvc *ContentService
	flavorSvc  *FlavorService
	ledger     ledger
	events     eventSink

	mu       sync.RWMutex
	sessions map[string]*GameSession
	rng      *rand.Rand
	now      func() time.Time
}

const GAME_SVC = "game_svc"

func (svc *GameService) Id() string {
	return GAME_SVC
}

func (svc *GameService) Configure(ctx *context.Context) error {
	svc.sessions = make(map[string]*GameSession)
	svc.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	svc.now = time.Now
	return svc.DefaultService.Configure(ctx)
}

func (svc *GameService) Start() error {
	svc.contentSvc = svc.Service(CONTENT_SVC).(*ContentService)
	svc.flavorSvc = svc.Service(FLAVOR_SVC).(*FlavorService)
	svc.ledger = svc.Service(USER_SVC).(*UserService)
	svc.events = svc.Service(EVENT_SVC).(*EventService)
	return nil
}

// StartGame begins a fresh session: full lives, zero score and streak, a
// newly shuffled pass over the category. The difficulty falls back to the
// player's settings when the request leaves it empty.
func (svc *GameService) StartGame(userID, categoryID, difficulty string) (*dto.QuestionResponse, error) {
	if !svc.contentSvc.HasCategory(categoryID) {
		return nil, shared.NewBadRequestError(fmt.Errorf("invalid category %q", categoryID), "Unknown category")
	}

	if difficulty == "" && svc.ledger != nil {
		difficulty = svc.ledger.DefaultDifficulty(userID)
	}

	budget, ok := timeBudgets[difficulty]
	if !ok {
		budget = timeBudgets[shared.DifficultyNormal]
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	session := &GameSession{
		Category:   categoryID,
		Difficulty: difficulty,
		Lives:      startingLives,
		Active:     true,
		TimeBudget: budget,
	}
	svc.shuffleQueue(session)
	svc.sessions[userID] = session

	recordGameStarted()
	setActiveSessions(svc.countActive())

	return svc.drawQuestion(userID, session), nil
}

// shuffleQueue deals a fresh full pass of the category. Questions repeat
// across passes; a reshuffle boundary may even repeat the last question.
func (svc *GameService) shuffleQueue(session *GameSession) {
	source := svc.contentSvc.Questions(session.Category)
	queue := make([]BankQuestion, len(source))
	copy(queue, source)
	svc.rng.Shuffle(len(queue), func(i, j int) {
		queue[i], queue[j] = queue[j], queue[i]
	})
	session.queue = queue
	session.queueIndex = 0
}

func (svc *GameService) drawQuestion(userID string, session *GameSession) *dto.QuestionResponse {
	if session.queueIndex >= len(session.queue) {
		svc.shuffleQueue(session)
	}

	session.current = &session.queue[session.queueIndex]
	session.queueIndex++
	session.deadline = svc.now().Add(time.Duration(session.TimeBudget) * time.Second)

	if svc.events != nil {
		svc.events.Publish(userID, shared.EventSpeak, session.current.Prompt)
	}

	return &dto.QuestionResponse{
		ID:       session.current.ID,
		Category: session.Category,
		Prompt:   session.current.Prompt,
		Options:  session.current.Options,
	}
}

// CurrentQuestion draws the next question, reshuffling when the pass is
// exhausted, and resets the countdown.
func (svc *GameService) CurrentQuestion(userID string) (*dto.QuestionResponse, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, ok := svc.sessions[userID]
	if !ok || !session.Active {
		return nil, shared.NewNotFoundError(fmt.Errorf("no active session"), "No active game")
	}

	return svc.drawQuestion(userID, session), nil
}

// SubmitAnswer grades the current question. The empty string is the agreed
// time-up signal; no real answer is empty, so it always misses.
func (svc *GameService) SubmitAnswer(userID, answer string) *dto.AnswerResultResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, ok := svc.sessions[userID]
	if !ok || !session.Active || session.current == nil {
		return &dto.AnswerResultResponse{Correct: false, Message: "Game not active"}
	}

	session.QuestionsAnswered++
	correct := answer == session.current.Answer

	result := &dto.AnswerResultResponse{
		Correct:       correct,
		CorrectAnswer: session.current.Answer,
		Hint:          session.current.Hint,
		Category:      session.Category,
	}

	if correct {
		session.Streak++

		streakBonus := session.Streak * streakBonusStep
		if streakBonus > maxStreakBonus {
			streakBonus = maxStreakBonus
		}
		multiplier, ok := difficultyMultipliers[session.Difficulty]
		if !ok {
			multiplier = 1
		}
		scoreEarned := int(math.Round(float64(baseScore+streakBonus) * multiplier))
		session.Score += scoreEarned

		result.ScoreEarned = scoreEarned
		result.Streak = session.Streak
		result.Message = svc.flavorSvc.RandomReward()
		result.StreakMessage = streakMessagePtr(svc.flavorSvc.StreakMessage(session.Streak))

		svc.publish(userID, shared.EventCorrect, "")
	} else {
		session.Streak = 0
		session.Lives--

		result.Streak = 0
		result.Message = "Wrong answer! Try again."
		result.StreakMessage = &dto.StreakMessageResponse{Message: "STREAK ENDED", Color: "#ff4a4a"}

		if session.Lives <= 0 {
			session.Lives = 0
			session.Active = false
			result.GameOver = true
			svc.publish(userID, shared.EventGameOver, "")
			recordGameOver()
			setActiveSessions(svc.countActive())
		} else {
			svc.publish(userID, shared.EventIncorrect, "")
		}
	}
	result.LivesRemaining = session.Lives

	recordAnswer(correct)

	scoreEarned := result.ScoreEarned
	if svc.ledger != nil {
		if err := svc.ledger.RecordAnswer(userID, correct, session.Category, scoreEarned); err != nil {
			log.WithError(err).WithField("user_id", userID).Error("Failed to record answer")
		}
	}

	return result
}

// UseHint trades 100 points for the current question's hint. Refuses without
// touching the score when the player cannot afford it.
func (svc *GameService) UseHint(userID string) *dto.HintResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, ok := svc.sessions[userID]
	if !ok || !session.Active {
		return &dto.HintResponse{Success: false, Message: "Game not active", ScoreCost: hintCost}
	}

	if session.Score < hintCost {
		return &dto.HintResponse{
			Success:   false,
			Message:   "Not enough points for a hint (need 100)",
			ScoreCost: hintCost,
		}
	}

	session.Score -= hintCost
	hint := "Try your best!"
	if session.current != nil && session.current.Hint != "" {
		hint = session.current.Hint
	}

	recordHintUsed()

	return &dto.HintResponse{Success: true, Hint: hint, ScoreCost: hintCost}
}

// SkipQuestion burns a life to move on, resetting the streak. It refuses on
// the last life so that only an answer can end the game.
func (svc *GameService) SkipQuestion(userID string) *dto.SkipResponse {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	session, ok := svc.sessions[userID]
	if !ok || !session.Active {
		return &dto.SkipResponse{Success: false, Message: "Game not active"}
	}

	if session.Lives <= 1 {
		return &dto.SkipResponse{Success: false, Message: "Can't skip on your last life"}
	}

	session.Lives--
	session.Streak = 0

	svc.publish(userID, shared.EventClick, "")
	recordQuestionSkipped()

	return &dto.SkipResponse{Success: true, LivesRemaining: session.Lives}
}

// GameStats is a read-only projection of the session; no side effects.
func (svc *GameService) GameStats(userID string) (*dto.GameStatsResponse, error) {
	svc.mu.RLock()
	defer svc.mu.RUnlock()

	session, ok := svc.sessions[userID]
	if !ok {
		return nil, shared.NewNotFoundError(fmt.Errorf("no session"), "No active game")
	}

	remaining := 0
	if session.Active {
		if d := session.deadline.Sub(svc.now()); d > 0 {
			remaining = int(d.Seconds())
		}
	}

	return &dto.GameStatsResponse{
		Score:             session.Score,
		Lives:             session.Lives,
		Streak:            session.Streak,
		Category:          session.Category,
		Difficulty:        session.Difficulty,
		QuestionsAnswered: session.QuestionsAnswered,
		TimePerQuestion:   session.TimeBudget,
		TimeRemaining:     remaining,
		Active:            session.Active,
	}, nil
}

// QuitGame discards the session. Answers already recorded stay recorded;
// nothing else is persisted.
func (svc *GameService) QuitGame(userID string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	if _, ok := svc.sessions[userID]; !ok {
		return
	}
	delete(svc.sessions, userID)
	setActiveSessions(svc.countActive())
}

func (svc *GameService) publish(userID, event, text string) {
	if svc.events != nil {
		svc.events.Publish(userID, event, text)
	}
}

func (svc *GameService) countActive() int {
	active := 0
	for _, s := range svc.sessions {
		if s.Active {
			active++
		}
	}
	return active
}

func streakMessagePtr(msg dto.StreakMessageResponse) *dto.StreakMessageResponse {
	return &msg
}
