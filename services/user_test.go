package services

import (
	"testing"
	"time"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/shared"
)

func newTestUserService(t *testing.T) *UserService {
	t.Helper()

	ds := &SqliteService{database: ":memory:"}
	if err := ds.Start(); err != nil {
		t.Fatalf("open database: %v", err)
	}

	return &UserService{
		sqlSvc: ds,
		jwtSvc: &JWTService{AccessTokenDuration: 24 * time.Hour, jwtSecretKey: "test-secret"},
	}
}

func registerTestUser(t *testing.T, svc *UserService, username string) *dto.AuthResponse {
	t.Helper()
	resp, err := svc.Register(dto.RegisterRequest{Username: username})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestUserService(t)

	created := registerTestUser(t, svc, "abc")
	if created.Username != "abc" || created.UserID == "" {
		t.Fatalf("unexpected register response: %+v", created)
	}
	if created.Token.AccessToken == "" {
		t.Fatal("expected a token on register")
	}
	if created.Settings.Difficulty != shared.DifficultyNormal || !created.Settings.BGMEnabled {
		t.Fatalf("unexpected default settings: %+v", created.Settings)
	}

	logged, err := svc.Login(dto.LoginRequest{Username: "abc"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.UserID != created.UserID {
		t.Fatalf("login resolved a different account: %s vs %s", logged.UserID, created.UserID)
	}

	stats, err := svc.GetStats(created.UserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Level != 1 || stats.Money != 500 {
		t.Fatalf("expected fresh account level 1 money 500, got %+v", stats)
	}
}

func TestRegisterShortUsername(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Register(dto.RegisterRequest{Username: "ab"})
	if err == nil {
		t.Fatal("expected error for 2-character username")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 400 {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newTestUserService(t)
	registerTestUser(t, svc, "kai")

	_, err := svc.Register(dto.RegisterRequest{Username: "kai"})
	if err == nil {
		t.Fatal("expected error for duplicate username")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 409 {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestUsernamesAreCaseSensitive(t *testing.T) {
	svc := newTestUserService(t)

	first := registerTestUser(t, svc, "Kai")
	second := registerTestUser(t, svc, "kai")
	if first.UserID == second.UserID {
		t.Fatal("distinct handles must be distinct accounts")
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestUserService(t)

	_, err := svc.Login(dto.LoginRequest{Username: "nobody"})
	if err == nil {
		t.Fatal("expected error for unknown user")
	}
	appErr, ok := shared.GetAppError(err)
	if !ok || appErr.StatusCode != 404 {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestRecordAnswerProgression(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "grinder")

	// ten correct answers at 150 points each
	for i := 0; i < 10; i++ {
		if err := svc.RecordAnswer(user.UserID, true, "arithmetic", 150); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	stats, err := svc.GetStats(user.UserID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Experience != 100 {
		t.Fatalf("expected 100 xp, got %d", stats.Experience)
	}
	if stats.Level != 2 {
		t.Fatalf("expected level 2 at 100 xp, got %d", stats.Level)
	}
	if stats.TotalCorrect != 10 || stats.TotalQuestions != 10 || stats.TotalScore != 1500 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.Streak != 10 || stats.MaxStreak != 10 {
		t.Fatalf("unexpected streaks: %+v", stats)
	}
	// 500 starting + 10 * (150 / 10)
	if stats.Money != 650 {
		t.Fatalf("expected 650 money, got %v", stats.Money)
	}
	if stats.Accuracy != 100 {
		t.Fatalf("expected 100%% accuracy, got %d", stats.Accuracy)
	}
}

func TestWrongAnswerResetsStreakAndFines(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "grinder")

	svc.RecordAnswer(user.UserID, true, "arithmetic", 150)
	svc.RecordAnswer(user.UserID, true, "arithmetic", 200)
	svc.RecordAnswer(user.UserID, false, "arithmetic", 0)

	stats, _ := svc.GetStats(user.UserID)
	if stats.Streak != 0 {
		t.Fatalf("expected streak reset, got %d", stats.Streak)
	}
	if stats.MaxStreak != 2 {
		t.Fatalf("expected max streak 2, got %d", stats.MaxStreak)
	}
	// 500 + 15 + 20 - 25
	if stats.Money != 510 {
		t.Fatalf("expected 510 money, got %v", stats.Money)
	}
	if stats.Accuracy != 67 {
		t.Fatalf("expected 67%% accuracy, got %d", stats.Accuracy)
	}
}

func TestMoneyNeverGoesNegative(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "broke")

	// 25 per miss; 30 misses overshoots the 500 starting balance
	for i := 0; i < 30; i++ {
		if err := svc.RecordAnswer(user.UserID, false, "arithmetic", 0); err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	stats, _ := svc.GetStats(user.UserID)
	if stats.Money != 0 {
		t.Fatalf("money must floor at 0, got %v", stats.Money)
	}
}

func TestLevelForExperience(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{399, 2},
		{400, 3},
		{900, 4},
		{2500, 6},
	}
	for _, tc := range cases {
		if got := levelForExperience(tc.xp); got != tc.level {
			t.Fatalf("xp %d: expected level %d, got %d", tc.xp, tc.level, got)
		}
	}
}

func TestUpdateSettingsPartialMerge(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "tuner")

	hard := shared.DifficultyHard
	off := false
	updated, err := svc.UpdateSettings(user.UserID, dto.UpdateSettingsRequest{
		Difficulty: &hard,
		SFXEnabled: &off,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Difficulty != "hard" || updated.SFXEnabled {
		t.Fatalf("unexpected merge result: %+v", updated)
	}
	if !updated.BGMEnabled {
		t.Fatal("untouched fields must keep their values")
	}

	// persisted, not just echoed
	loaded, err := svc.GetSettings(user.UserID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Difficulty != "hard" || loaded.SFXEnabled || !loaded.BGMEnabled {
		t.Fatalf("unexpected persisted settings: %+v", loaded)
	}

	if got := svc.DefaultDifficulty(user.UserID); got != "hard" {
		t.Fatalf("expected default difficulty hard, got %s", got)
	}
}

func TestDefaultDifficultyWithoutSettings(t *testing.T) {
	svc := newTestUserService(t)

	if got := svc.DefaultDifficulty("missing-user"); got != shared.DifficultyNormal {
		t.Fatalf("expected normal fallback, got %s", got)
	}
}

func TestProgressHistoryIsAppendOnly(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "logger")

	svc.RecordAnswer(user.UserID, true, "arithmetic", 150)
	svc.RecordAnswer(user.UserID, false, "fractions", 0)
	svc.RecordAnswer(user.UserID, true, "arithmetic", 200)

	history, err := svc.GetProgressHistory(user.UserID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history.Entries))
	}
	first := history.Entries[0]
	if !first.Correct || first.Category != "arithmetic" || first.ScoreEarned != 150 {
		t.Fatalf("unexpected first entry: %+v", first)
	}
	second := history.Entries[1]
	if second.Correct || second.Category != "fractions" {
		t.Fatalf("unexpected second entry: %+v", second)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestUserService(t)
	user := registerTestUser(t, svc, "bearer")

	userID, err := svc.jwtSvc.VerifyJWTToken(user.Token.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != user.UserID {
		t.Fatalf("token resolved %s, expected %s", userID, user.UserID)
	}
}
