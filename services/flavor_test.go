package services

import (
	"math/rand"
	"testing"
)

func TestStreakMessageTiers(t *testing.T) {
	svc := &FlavorService{}

	cases := []struct {
		streak  int
		message string
		color   string
	}{
		{0, "GETTING STARTED", "#a0a0ff"},
		{1, "GETTING STARTED", "#a0a0ff"},
		{2, "GETTING STARTED", "#a0a0ff"},
		{3, "FIRST BLOOD!", "#4a9fff"},
		{4, "FIRST BLOOD!", "#4a9fff"},
		{5, "ON FIRE!", "#ff4a4a"},
		{6, "ON FIRE!", "#ff4a4a"},
		{7, "KILLING SPREE!", "#4aff4a"},
		{9, "KILLING SPREE!", "#4aff4a"},
		{10, "DOMINATING!", "#ffd700"},
		{14, "DOMINATING!", "#ffd700"},
		{15, "RAMPAGE!", "#ff6b00"},
		{19, "RAMPAGE!", "#ff6b00"},
		{20, "M-M-M-MONSTER KILL!", "#ff0000"},
		{99, "M-M-M-MONSTER KILL!", "#ff0000"},
	}

	for _, tc := range cases {
		got := svc.StreakMessage(tc.streak)
		if got.Message != tc.message || got.Color != tc.color {
			t.Fatalf("streak %d: expected %q/%s, got %q/%s",
				tc.streak, tc.message, tc.color, got.Message, got.Color)
		}
	}
}

func TestRandomRewardFromPool(t *testing.T) {
	svc := &FlavorService{rng: rand.New(rand.NewSource(1))}

	pool := make(map[string]bool, len(rewardMessages))
	for _, msg := range rewardMessages {
		pool[msg] = true
	}

	for i := 0; i < 50; i++ {
		if msg := svc.RandomReward(); !pool[msg] {
			t.Fatalf("reward %q not in the pool", msg)
		}
	}
}

func TestRandomRewardDeterministicWithSeed(t *testing.T) {
	first := &FlavorService{rng: rand.New(rand.NewSource(42))}
	second := &FlavorService{rng: rand.New(rand.NewSource(42))}

	for i := 0; i < 20; i++ {
		a, b := first.RandomReward(), second.RandomReward()
		if a != b {
			t.Fatalf("draw %d: same seed diverged, %q vs %q", i, a, b)
		}
	}
}

func TestRandomMemeFromPool(t *testing.T) {
	svc := &FlavorService{rng: rand.New(rand.NewSource(1))}

	pool := make(map[string]bool, len(memes))
	for _, m := range memes {
		pool[m.Text] = true
	}

	for i := 0; i < 50; i++ {
		meme := svc.RandomMeme()
		if !pool[meme.Text] {
			t.Fatalf("meme %q not in the pool", meme.Text)
		}
		if meme.Emoji == "" || meme.Image == "" {
			t.Fatalf("meme missing fields: %+v", meme)
		}
		if meme.ImageURL != "" {
			t.Fatalf("image URL must stay empty without a media backend, got %q", meme.ImageURL)
		}
	}
}

func TestStoryIsComplete(t *testing.T) {
	svc := &FlavorService{}

	story := svc.Story()
	if len(story.Intro) == 0 {
		t.Fatal("expected intro lines")
	}
	if len(story.Characters) != 3 {
		t.Fatalf("expected 3 characters, got %d", len(story.Characters))
	}
	if story.Characters[0].Name != "KAI" {
		t.Fatalf("expected KAI first, got %s", story.Characters[0].Name)
	}
	for _, c := range story.Characters[1:] {
		if len(c.Dialogs) == 0 {
			t.Fatalf("character %s has no dialogs", c.Name)
		}
	}
}
