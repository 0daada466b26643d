// services/flavor.go
package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/alphabatem/common/context"

	"github.com/Caisio-Cloud/popmath-game/dto"
)

// FlavorService picks display-only feedback: streak tier messages, reward
// lines and memes. Deterministic given a seeded rng.
type FlavorService struct {
	context.DefaultService

	mediaSvc *MediaService

	mu  sync.Mutex
	rng *rand.Rand
}

const FLAVOR_SVC = "flavor_svc"

func (svc *FlavorService) Id() string {
	return FLAVOR_SVC
}

func (svc *FlavorService) Configure(ctx *context.Context) error {
	svc.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return svc.DefaultService.Configure(ctx)
}

func (svc *FlavorService) Start() error {
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	return nil
}

type streakTier struct {
	threshold int
	message   string
	color     string
}

// Tiers are checked top down; first match wins.
var streakTiers = []streakTier{
	{20, "M-M-M-MONSTER KILL!", "#ff0000"},
	{15, "RAMPAGE!", "#ff6b00"},
	{10, "DOMINATING!", "#ffd700"},
	{7, "KILLING SPREE!", "#4aff4a"},
	{5, "ON FIRE!", "#ff4a4a"},
	{3, "FIRST BLOOD!", "#4a9fff"},
}

// StreakMessage maps a streak count onto its fixed tier. Pure.
func (svc *FlavorService) StreakMessage(streak int) dto.StreakMessageResponse {
	for _, tier := range streakTiers {
		if streak >= tier.threshold {
			return dto.StreakMessageResponse{Message: tier.message, Color: tier.color}
		}
	}
	return dto.StreakMessageResponse{Message: "GETTING STARTED", Color: "#a0a0ff"}
}

var rewardMessages = []string{
	"Perfect! The alley respects precision!",
	"Excellent calculation! You're surviving!",
	"Outstanding! Numbers bow to your skill!",
	"Brilliant! You're mastering the urban jungle!",
	"Flawless! Keep this up and you'll own the street!",
}

func (svc *FlavorService) RandomReward() string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	return rewardMessages[svc.rng.Intn(len(rewardMessages))]
}

var memes = []dto.MemeResponse{
	{Text: "WHEN YOU GET THE MATH WRONG", Emoji: "🤦‍♂️", Image: "math-fail.jpg"},
	{Text: "MY BRAIN RIGHT NOW", Emoji: "🧠💥", Image: "brain-explode.gif"},
	{Text: "THE NUMBERS MASON!", Emoji: "😱", Image: "numbers-mason.jpg"},
	{Text: "CALCULATOR BROKE", Emoji: "📱💀", Image: "calculator-broke.gif"},
	{Text: "MATH IS HARD", Emoji: "😭", Image: "math-hard.jpg"},
	{Text: "I USED TO BE GOOD AT THIS", Emoji: "🎓➡️🤡", Image: "used-to-be.jpg"},
	{Text: "GO BACK TO SCHOOL", Emoji: "🏫👈", Image: "back-to-school.jpg"},
	{Text: "EVEN MY DOG KNOWS THIS", Emoji: "🐶➡️📚", Image: "dog-math.jpg"},
}

func (svc *FlavorService) RandomMeme() dto.MemeResponse {
	svc.mu.Lock()
	meme := memes[svc.rng.Intn(len(memes))]
	svc.mu.Unlock()

	if svc.mediaSvc != nil && svc.mediaSvc.Enabled() {
		if url, err := svc.mediaSvc.MemeImageURL(meme.Image); err == nil {
			meme.ImageURL = url
		}
	}
	return meme
}

var storyIntro = []string{
	"In the heart of Metro Manila's toughest district, where dreams are traded for survival...",
	"You are KAI, a 16-year-old with a rare gift: numbers speak to you.",
	"Your family's sari-sari store is failing. Bills pile up like monsoon floodwaters.",
	"School feels like a distant memory, another casualty of the alley's relentless grind.",
	"But you've discovered something: in the chaos of the streets, math becomes your weapon.",
	"Every calculation is a step toward salvation. Every mistake costs you dearly.",
	"The alley doesn't forgive errors, but it respects those who can count under pressure.",
}

var storyCharacters = []dto.StoryCharacterResponse{
	{
		Name:        "KAI",
		Description: "You - a street-smart teen with a gift for numbers",
		Color:       "#4a9fff",
	},
	{
		Name:        "🚬 TITO BEN",
		Description: "Sampaguita supplier, your first employer",
		Color:       "#9d4dff",
		Dialogs: []string{
			"Kid, 30 garlands at ₱15 each. How much you earn if you sell all? Get it wrong, you pay for the unsold ones.",
			"Good. Now what if you add 20 more garlands? Think fast!",
			"Street's getting competitive. Price increase to ₱20. Recalculate!",
			"You're smarter than you look. Want a real challenge?",
			"The alley respects skill. You're earning your place.",
		},
	},
	{
		Name:        "👵 MARIA (Your Mother)",
		Description: "Struggling store owner, your motivation",
		Color:       "#ff4a9d",
		Dialogs: []string{
			"Anak, we need ₱2,000 by Friday or we lose the store...",
			"You're doing well! Keep it up, but don't skip school.",
			"The bill collectors are coming tomorrow...",
			"You saved us... I'm so proud of you, my smart child.",
			"Your father would be proud. He always said you had the numbers gift.",
		},
	},
}

func (svc *FlavorService) Story() *dto.StoryResponse {
	return &dto.StoryResponse{
		Intro:      storyIntro,
		Characters: storyCharacters,
	}
}
