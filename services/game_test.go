package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Caisio-Cloud/popmath-game/model"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

type stubLedger struct {
	difficulty string
	calls      []ledgerCall
	err        error
}

type ledgerCall struct {
	userID      string
	correct     bool
	category    string
	scoreEarned int
}

func (s *stubLedger) RecordAnswer(userID string, correct bool, category string, scoreEarned int) error {
	s.calls = append(s.calls, ledgerCall{userID, correct, category, scoreEarned})
	return s.err
}

func (s *stubLedger) DefaultDifficulty(string) string {
	if s.difficulty == "" {
		return shared.DifficultyNormal
	}
	return s.difficulty
}

type stubSink struct {
	events []string
}

func (s *stubSink) Publish(_, event, _ string) {
	s.events = append(s.events, event)
}

func testBank() map[string][]BankQuestion {
	return map[string][]BankQuestion{
		"arithmetic": {
			{ID: "q1", CategoryID: "arithmetic", Prompt: "2+2?", Answer: "4", Options: []string{"3", "4", "5", "6"}, Hint: "2+2=4"},
			{ID: "q2", CategoryID: "arithmetic", Prompt: "3+3?", Answer: "6", Options: []string{"4", "5", "6", "7"}, Hint: "3+3=6"},
			{ID: "q3", CategoryID: "arithmetic", Prompt: "5+5?", Answer: "10", Options: []string{"8", "9", "10", "11"}, Hint: "5+5=10"},
		},
	}
}

func newTestGame(seed int64) (*GameService, *stubLedger, *stubSink) {
	content := &ContentService{
		bank:       testBank(),
		categories: []model.Category{{ID: "arithmetic", DisplayName: "Basic Arithmetic"}},
	}
	ledger := &stubLedger{}
	sink := &stubSink{}
	svc := &GameService{
		contentSvc: content,
		flavorSvc:  &FlavorService{rng: rand.New(rand.NewSource(seed))},
		ledger:     ledger,
		events:     sink,
		sessions:   make(map[string]*GameSession),
		rng:        rand.New(rand.NewSource(seed)),
		now:        time.Now,
	}
	return svc, ledger, sink
}

// answerFor resolves a drawn question ID back to its correct answer.
func answerFor(t *testing.T, id string) string {
	t.Helper()
	for _, q := range testBank()["arithmetic"] {
		if q.ID == id {
			return q.Answer
		}
	}
	t.Fatalf("unknown question id %s", id)
	return ""
}

func TestTimeBudgetPerDifficulty(t *testing.T) {
	cases := map[string]int{
		"easy":      60,
		"normal":    45,
		"hard":      30,
		"expert":    20,
		"nightmare": 45, // unknown difficulty falls back
	}

	for difficulty, want := range cases {
		svc, _, _ := newTestGame(1)
		if _, err := svc.StartGame("u1", "arithmetic", difficulty); err != nil {
			t.Fatalf("start %s: %v", difficulty, err)
		}
		stats, err := svc.GameStats("u1")
		if err != nil {
			t.Fatalf("stats %s: %v", difficulty, err)
		}
		if stats.TimePerQuestion != want {
			t.Fatalf("difficulty %s: expected budget %d, got %d", difficulty, want, stats.TimePerQuestion)
		}
	}
}

func TestStartGameInvalidCategory(t *testing.T) {
	svc, _, _ := newTestGame(1)

	_, err := svc.StartGame("u1", "quantum_physics", "normal")
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 400 {
		t.Fatalf("expected 400 app error, got %v", err)
	}
}

func TestScoreAndStreakProgression(t *testing.T) {
	svc, _, _ := newTestGame(1)
	q, err := svc.StartGame("u1", "arithmetic", "normal")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// streak bonus is 50 per consecutive correct answer, capped at 500
	wantEarned := []int{150, 200, 250, 300, 350, 400, 450, 500, 550, 600, 600, 600}

	for i, want := range wantEarned {
		result := svc.SubmitAnswer("u1", answerFor(t, q.ID))
		if !result.Correct {
			t.Fatalf("answer %d: expected correct", i)
		}
		if result.ScoreEarned != want {
			t.Fatalf("answer %d: expected %d earned, got %d", i, want, result.ScoreEarned)
		}
		if result.Streak != i+1 {
			t.Fatalf("answer %d: expected streak %d, got %d", i, i+1, result.Streak)
		}
		q, err = svc.CurrentQuestion("u1")
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
}

func TestDifficultyMultipliers(t *testing.T) {
	cases := map[string]int{
		"easy":   75,  // round(150 * 0.5)
		"normal": 150, // round(150 * 1)
		"hard":   225, // round(150 * 1.5)
		"expert": 300, // round(150 * 2)
	}

	for difficulty, want := range cases {
		svc, _, _ := newTestGame(1)
		q, err := svc.StartGame("u1", "arithmetic", difficulty)
		if err != nil {
			t.Fatalf("start %s: %v", difficulty, err)
		}
		result := svc.SubmitAnswer("u1", answerFor(t, q.ID))
		if result.ScoreEarned != want {
			t.Fatalf("difficulty %s: expected %d earned, got %d", difficulty, want, result.ScoreEarned)
		}
	}
}

func TestDifficultyDefaultsToSettings(t *testing.T) {
	svc, ledger, _ := newTestGame(1)
	ledger.difficulty = "expert"

	if _, err := svc.StartGame("u1", "arithmetic", ""); err != nil {
		t.Fatalf("start: %v", err)
	}
	stats, _ := svc.GameStats("u1")
	if stats.Difficulty != "expert" || stats.TimePerQuestion != 20 {
		t.Fatalf("expected expert/20, got %s/%d", stats.Difficulty, stats.TimePerQuestion)
	}
}

func TestThreeWrongAnswersEndGame(t *testing.T) {
	svc, _, sink := newTestGame(1)
	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}

	for i := 0; i < 2; i++ {
		result := svc.SubmitAnswer("u1", "not an answer")
		if result.Correct || result.GameOver {
			t.Fatalf("wrong answer %d: unexpected %+v", i, result)
		}
		if result.LivesRemaining != 2-i {
			t.Fatalf("wrong answer %d: expected %d lives, got %d", i, 2-i, result.LivesRemaining)
		}
		if result.Streak != 0 {
			t.Fatalf("wrong answer %d: streak should be 0", i)
		}
	}

	result := svc.SubmitAnswer("u1", "not an answer")
	if !result.GameOver || result.LivesRemaining != 0 {
		t.Fatalf("expected game over at 0 lives, got %+v", result)
	}

	stats, err := svc.GameStats("u1")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Active {
		t.Fatal("session should be inactive after game over")
	}

	// one code path past the end: further submissions are refused
	after := svc.SubmitAnswer("u1", "4")
	if after.Message != "Game not active" {
		t.Fatalf("expected inactive message, got %q", after.Message)
	}

	found := false
	for _, e := range sink.events {
		if e == shared.EventGameOver {
			found = true
		}
	}
	if !found {
		t.Fatal("expected gameOver event")
	}
}

func TestEmptyAnswerAlwaysMisses(t *testing.T) {
	svc, _, _ := newTestGame(1)
	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}

	result := svc.SubmitAnswer("u1", "")
	if result.Correct {
		t.Fatal("empty answer must never be correct")
	}
	if result.LivesRemaining != 2 {
		t.Fatalf("expected 2 lives, got %d", result.LivesRemaining)
	}
}

func TestSkipRefusedOnLastLife(t *testing.T) {
	svc, _, _ := newTestGame(1)
	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}

	if resp := svc.SkipQuestion("u1"); !resp.Success || resp.LivesRemaining != 2 {
		t.Fatalf("first skip: %+v", resp)
	}
	if resp := svc.SkipQuestion("u1"); !resp.Success || resp.LivesRemaining != 1 {
		t.Fatalf("second skip: %+v", resp)
	}

	resp := svc.SkipQuestion("u1")
	if resp.Success {
		t.Fatal("skip must refuse on the last life")
	}
	stats, _ := svc.GameStats("u1")
	if stats.Lives != 1 || !stats.Active {
		t.Fatalf("refused skip must not mutate: %+v", stats)
	}
}

func TestSkipResetsStreak(t *testing.T) {
	svc, _, _ := newTestGame(1)
	q, err := svc.StartGame("u1", "arithmetic", "normal")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.SubmitAnswer("u1", answerFor(t, q.ID))
	if stats, _ := svc.GameStats("u1"); stats.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", stats.Streak)
	}

	svc.SkipQuestion("u1")
	if stats, _ := svc.GameStats("u1"); stats.Streak != 0 {
		t.Fatalf("skip should reset streak, got %d", stats.Streak)
	}
}

func TestHintNeedsScore(t *testing.T) {
	svc, _, _ := newTestGame(1)
	q, err := svc.StartGame("u1", "arithmetic", "normal")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	resp := svc.UseHint("u1")
	if resp.Success {
		t.Fatal("hint must refuse with score below 100")
	}
	if resp.ScoreCost != 100 {
		t.Fatalf("expected cost 100, got %d", resp.ScoreCost)
	}

	svc.SubmitAnswer("u1", answerFor(t, q.ID)) // score 150
	q, _ = svc.CurrentQuestion("u1")

	resp = svc.UseHint("u1")
	if !resp.Success || resp.Hint == "" {
		t.Fatalf("hint should succeed: %+v", resp)
	}

	stats, _ := svc.GameStats("u1")
	if stats.Score != 50 {
		t.Fatalf("expected score 50 after hint, got %d", stats.Score)
	}

	if resp := svc.UseHint("u1"); resp.Success {
		t.Fatal("hint must refuse once score drops below 100")
	}
	if stats, _ := svc.GameStats("u1"); stats.Score != 50 {
		t.Fatalf("refused hint must not mutate score, got %d", stats.Score)
	}
}

func TestHintAtExactCost(t *testing.T) {
	svc, _, _ := newTestGame(1)
	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}
	svc.sessions["u1"].Score = hintCost

	resp := svc.UseHint("u1")
	if !resp.Success || resp.Hint == "" {
		t.Fatalf("hint must succeed at exactly %d points: %+v", hintCost, resp)
	}
	if stats, _ := svc.GameStats("u1"); stats.Score != 0 {
		t.Fatalf("expected score 0 after hint, got %d", stats.Score)
	}
}

func TestQueueReshufflesOnExhaustion(t *testing.T) {
	svc, _, _ := newTestGame(7)
	q, err := svc.StartGame("u1", "arithmetic", "normal")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	valid := map[string]bool{"q1": true, "q2": true, "q3": true}
	if !valid[q.ID] {
		t.Fatalf("unexpected question %s", q.ID)
	}

	// three times through the bank without an error or a dead session
	for i := 0; i < 9; i++ {
		q, err = svc.CurrentQuestion("u1")
		if err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
		if !valid[q.ID] {
			t.Fatalf("draw %d: unexpected question %s", i, q.ID)
		}
	}

	if stats, _ := svc.GameStats("u1"); !stats.Active {
		t.Fatal("session must stay active across reshuffles")
	}
}

func TestShuffleDeterministicWithSeed(t *testing.T) {
	drawSequence := func(seed int64) []string {
		svc, _, _ := newTestGame(seed)
		q, err := svc.StartGame("u1", "arithmetic", "normal")
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		ids := []string{q.ID}
		for i := 0; i < 5; i++ {
			q, _ = svc.CurrentQuestion("u1")
			ids = append(ids, q.ID)
		}
		return ids
	}

	first := drawSequence(99)
	second := drawSequence(99)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, first, second)
		}
	}
}

func TestTimeRemainingCountsDown(t *testing.T) {
	svc, _, _ := newTestGame(1)
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return current }

	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}

	stats, _ := svc.GameStats("u1")
	if stats.TimeRemaining != 45 {
		t.Fatalf("expected 45s remaining, got %d", stats.TimeRemaining)
	}

	current = current.Add(10 * time.Second)
	stats, _ = svc.GameStats("u1")
	if stats.TimeRemaining != 35 {
		t.Fatalf("expected 35s remaining, got %d", stats.TimeRemaining)
	}

	current = current.Add(time.Minute)
	stats, _ = svc.GameStats("u1")
	if stats.TimeRemaining != 0 {
		t.Fatalf("remaining must floor at 0, got %d", stats.TimeRemaining)
	}
}

func TestOutcomesReachLedger(t *testing.T) {
	svc, ledger, _ := newTestGame(1)
	q, err := svc.StartGame("u1", "arithmetic", "normal")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.SubmitAnswer("u1", answerFor(t, q.ID))
	svc.SubmitAnswer("u1", "wrong")

	if len(ledger.calls) != 2 {
		t.Fatalf("expected 2 ledger calls, got %d", len(ledger.calls))
	}
	if !ledger.calls[0].correct || ledger.calls[0].scoreEarned != 150 || ledger.calls[0].category != "arithmetic" {
		t.Fatalf("correct call mismatch: %+v", ledger.calls[0])
	}
	if ledger.calls[1].correct || ledger.calls[1].scoreEarned != 0 {
		t.Fatalf("incorrect call mismatch: %+v", ledger.calls[1])
	}
}

func TestQuitDiscardsSession(t *testing.T) {
	svc, _, _ := newTestGame(1)
	if _, err := svc.StartGame("u1", "arithmetic", "normal"); err != nil {
		t.Fatalf("start: %v", err)
	}

	svc.QuitGame("u1")

	if _, err := svc.GameStats("u1"); err == nil {
		t.Fatal("expected no session after quit")
	}
	if _, err := svc.CurrentQuestion("u1"); err == nil {
		t.Fatal("expected no question after quit")
	}
}
