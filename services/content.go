// services/content.go
package services

import (
	"encoding/json"
	"fmt"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/Caisio-Cloud/popmath-game/dto"
	"github.com/Caisio-Cloud/popmath-game/model"
)

// BankQuestion is the in-memory form of a question, options decoded.
type BankQuestion struct {
	ID         string
	CategoryID string
	Prompt     string
	Answer     string
	Options    []string
	Hint       string
}

type ContentService struct {
	context.DefaultService
	sqlSvc   *SqliteService
	mediaSvc *MediaService

	categories []model.Category
	bank       map[string][]BankQuestion
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

// Start loads the question bank into memory and verifies its invariants.
// A malformed bank is a fatal startup error, not a runtime surprise.
func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(SQLITE_SVC).(*SqliteService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)

	return svc.loadBank()
}

func (svc *ContentService) loadBank() error {
	categories, err := svc.sqlSvc.GetCategories()
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(categories))
	bank := make(map[string][]BankQuestion, len(categories))

	for _, category := range categories {
		if seen[category.ID] {
			return fmt.Errorf("duplicate category id %s", category.ID)
		}
		seen[category.ID] = true

		questions, err := svc.sqlSvc.GetQuestionsByCategory(category.ID)
		if err != nil {
			return err
		}

		loaded := make([]BankQuestion, 0, len(questions))
		for _, q := range questions {
			var options []string
			if err := json.Unmarshal(q.Options, &options); err != nil {
				return fmt.Errorf("question %s: bad options: %w", q.ID, err)
			}
			if len(options) != 4 {
				return fmt.Errorf("question %s: expected 4 options, got %d", q.ID, len(options))
			}
			if !contains(options, q.Answer) {
				return fmt.Errorf("question %s: answer not among options", q.ID)
			}
			loaded = append(loaded, BankQuestion{
				ID:         q.ID,
				CategoryID: q.CategoryID,
				Prompt:     q.Prompt,
				Answer:     q.Answer,
				Options:    options,
				Hint:       q.Hint,
			})
		}

		if len(loaded) == 0 {
			log.WithField("category", category.ID).Warn("Category has no questions, skipping")
			continue
		}
		bank[category.ID] = loaded
	}

	svc.categories = categories
	svc.bank = bank

	log.WithFields(log.Fields{
		"categories": len(bank),
	}).Info("Question bank loaded")
	return nil
}

func contains(options []string, answer string) bool {
	for _, o := range options {
		if o == answer {
			return true
		}
	}
	return false
}

// HasCategory reports whether the category exists and has questions.
func (svc *ContentService) HasCategory(id string) bool {
	_, ok := svc.bank[id]
	return ok
}

// Questions returns the full question list for a category. Callers must not
// mutate the returned slice; the session engine copies before shuffling.
func (svc *ContentService) Questions(categoryID string) []BankQuestion {
	return svc.bank[categoryID]
}

func (svc *ContentService) GetCategories() (*dto.CategoryCollectionResponse, error) {
	responses := make([]dto.CategoryResponse, 0, len(svc.categories))
	for _, category := range svc.categories {
		questions, ok := svc.bank[category.ID]
		if !ok {
			continue
		}

		resp := dto.CategoryResponse{
			ID:            category.ID,
			DisplayName:   category.DisplayName,
			Icon:          category.Icon,
			Description:   category.Description,
			QuestionCount: len(questions),
		}
		if svc.mediaSvc != nil && svc.mediaSvc.Enabled() {
			if url, err := svc.mediaSvc.CategoryIconURL(category.ID); err == nil {
				resp.IconURL = url
			}
		}
		responses = append(responses, resp)
	}

	return &dto.CategoryCollectionResponse{Categories: responses}, nil
}
