package dto

type CategoryResponse struct {
	ID            string `json:"id"`
	DisplayName   string `json:"display_name"`
	Icon          string `json:"icon"`
	IconURL       string `json:"icon_url,omitempty"`
	Description   string `json:"description"`
	QuestionCount int    `json:"question_count"`
}

type CategoryCollectionResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// Flavor DTOs

type MemeResponse struct {
	Text     string `json:"text"`
	Emoji    string `json:"emoji"`
	Image    string `json:"image"`
	ImageURL string `json:"image_url,omitempty"`
}

type RewardResponse struct {
	Message string `json:"message"`
}

type StoryCharacterResponse struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Color       string   `json:"color"`
	Dialogs     []string `json:"dialogs,omitempty"`
}

type StoryResponse struct {
	Intro      []string                 `json:"intro"`
	Characters []StoryCharacterResponse `json:"characters"`
}
