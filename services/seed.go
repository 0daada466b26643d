package services

import (
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Caisio-Cloud/popmath-game/model"
)

type seedQuestion struct {
	ID      string
	Prompt  string
	Answer  string
	Options []string
	Hint    string
}

type seedCategory struct {
	ID          string
	DisplayName string
	Icon        string
	Description string
	Questions   []seedQuestion
}

// seedQuestionBank loads the built-in question bank on first start. The bank
// is the static content of the game; rows already present are left alone.
func (ds *SqliteService) seedQuestionBank() error {
	count, err := ds.CountQuestions()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	now := time.Now()
	for order, cat := range questionBank {
		category := model.Category{
			ID:          cat.ID,
			DisplayName: cat.DisplayName,
			Icon:        cat.Icon,
			Description: cat.Description,
			Order:       order,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := ds.db.Create(&category).Error; err != nil {
			return ds.HandleError(err)
		}

		for _, q := range cat.Questions {
			options, err := json.Marshal(q.Options)
			if err != nil {
				return fmt.Errorf("marshal options for %s: %w", q.ID, err)
			}
			question := model.Question{
				ID:         q.ID,
				CategoryID: cat.ID,
				Prompt:     q.Prompt,
				Answer:     q.Answer,
				Options:    options,
				Hint:       q.Hint,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := ds.db.Create(&question).Error; err != nil {
				return ds.HandleError(err)
			}
		}
	}

	log.WithField("categories", len(questionBank)).Info("Question bank seeded")
	return nil
}

var questionBank = []seedCategory{
	{
		ID:          "arithmetic",
		DisplayName: "Basic Arithmetic",
		Icon:        "➕",
		Description: "Addition, subtraction, multiplication and division under pressure",
		Questions: []seedQuestion{
			{ID: "arith_1", Prompt: "What is 15 + 27?", Answer: "42", Options: []string{"40", "42", "45", "38"}, Hint: "15 + 27 = 42"},
			{ID: "arith_2", Prompt: "Multiply 8 by 7", Answer: "56", Options: []string{"54", "56", "58", "60"}, Hint: "8 × 7 = 56"},
			{ID: "arith_3", Prompt: "What is 64 ÷ 8?", Answer: "8", Options: []string{"6", "7", "8", "9"}, Hint: "8 × 8 = 64"},
			{ID: "arith_4", Prompt: "Subtract 89 from 125", Answer: "36", Options: []string{"34", "36", "38", "40"}, Hint: "125 - 89 = 36"},
			{ID: "arith_5", Prompt: "What is 9 × 6?", Answer: "54", Options: []string{"52", "54", "56", "58"}, Hint: "9 × 6 = 54"},
			{ID: "arith_6", Prompt: "What is 132 + 289?", Answer: "421", Options: []string{"411", "421", "431", "441"}, Hint: "132 + 289 = 421"},
			{ID: "arith_7", Prompt: "What is 17 × 3?", Answer: "51", Options: []string{"41", "48", "51", "54"}, Hint: "17 × 3 = 51"},
			{ID: "arith_8", Prompt: "What is 200 - 76?", Answer: "124", Options: []string{"114", "122", "124", "126"}, Hint: "200 - 76 = 124"},
		},
	},
	{
		ID:          "fractions",
		DisplayName: "Fractions",
		Icon:        "½",
		Description: "Parts, wholes and everything between",
		Questions: []seedQuestion{
			{ID: "frac_1", Prompt: "What is 1/2 + 1/4?", Answer: "3/4", Options: []string{"1/4", "1/2", "3/4", "2/3"}, Hint: "1/2 = 2/4, so 2/4 + 1/4 = 3/4"},
			{ID: "frac_2", Prompt: "Simplify 6/8", Answer: "3/4", Options: []string{"2/3", "3/4", "4/5", "5/6"}, Hint: "Divide top and bottom by 2"},
			{ID: "frac_3", Prompt: "What is 2/3 of 18?", Answer: "12", Options: []string{"9", "10", "12", "14"}, Hint: "18 ÷ 3 = 6, then 6 × 2 = 12"},
			{ID: "frac_4", Prompt: "Which is larger: 3/5 or 1/2?", Answer: "3/5", Options: []string{"3/5", "1/2", "They are equal", "Cannot tell"}, Hint: "3/5 = 0.6 and 1/2 = 0.5"},
			{ID: "frac_5", Prompt: "What is 5/6 - 1/3?", Answer: "1/2", Options: []string{"1/3", "1/2", "2/3", "4/6"}, Hint: "1/3 = 2/6, so 5/6 - 2/6 = 3/6 = 1/2"},
			{ID: "frac_6", Prompt: "Convert 0.75 to a fraction", Answer: "3/4", Options: []string{"1/4", "2/3", "3/4", "7/5"}, Hint: "0.75 = 75/100 = 3/4"},
			{ID: "frac_7", Prompt: "What is 1/4 × 8?", Answer: "2", Options: []string{"2", "3", "4", "6"}, Hint: "8 ÷ 4 = 2"},
			{ID: "frac_8", Prompt: "What is 7/10 as a percentage?", Answer: "70%", Options: []string{"7%", "17%", "70%", "75%"}, Hint: "7/10 = 70/100"},
		},
	},
	{
		ID:          "algebra",
		DisplayName: "Algebra",
		Icon:        "𝑥",
		Description: "Find the unknown before it finds you",
		Questions: []seedQuestion{
			{ID: "alg_1", Prompt: "Solve for x: x + 5 = 12", Answer: "7", Options: []string{"5", "6", "7", "8"}, Hint: "12 - 5 = 7"},
			{ID: "alg_2", Prompt: "Solve for x: 3x = 18", Answer: "6", Options: []string{"5", "6", "7", "9"}, Hint: "18 ÷ 3 = 6"},
			{ID: "alg_3", Prompt: "Solve for x: 2x - 4 = 10", Answer: "7", Options: []string{"3", "5", "7", "8"}, Hint: "2x = 14, so x = 7"},
			{ID: "alg_4", Prompt: "If y = 2x and x = 4, what is y?", Answer: "8", Options: []string{"2", "4", "6", "8"}, Hint: "y = 2 × 4"},
			{ID: "alg_5", Prompt: "Solve for x: x/3 = 5", Answer: "15", Options: []string{"8", "12", "15", "18"}, Hint: "x = 5 × 3"},
			{ID: "alg_6", Prompt: "Simplify: 4x + 3x", Answer: "7x", Options: []string{"7", "7x", "12x", "x7"}, Hint: "Add the coefficients: 4 + 3"},
			{ID: "alg_7", Prompt: "Solve for x: x² = 81, x > 0", Answer: "9", Options: []string{"7", "8", "9", "11"}, Hint: "9 × 9 = 81"},
			{ID: "alg_8", Prompt: "If 5x + 2 = 17, what is x?", Answer: "3", Options: []string{"2", "3", "4", "5"}, Hint: "5x = 15, so x = 3"},
		},
	},
	{
		ID:          "geometry",
		DisplayName: "Geometry",
		Icon:        "△",
		Description: "Shapes, angles and areas",
		Questions: []seedQuestion{
			{ID: "geo_1", Prompt: "How many sides does a hexagon have?", Answer: "6", Options: []string{"5", "6", "7", "8"}, Hint: "Hex means six"},
			{ID: "geo_2", Prompt: "What is the area of a 5 × 8 rectangle?", Answer: "40", Options: []string{"13", "26", "40", "45"}, Hint: "Area = length × width"},
			{ID: "geo_3", Prompt: "How many degrees in a right angle?", Answer: "90", Options: []string{"45", "60", "90", "180"}, Hint: "A quarter turn"},
			{ID: "geo_4", Prompt: "What is the perimeter of a square with side 7?", Answer: "28", Options: []string{"14", "21", "28", "49"}, Hint: "4 × 7 = 28"},
			{ID: "geo_5", Prompt: "What is the sum of the interior angles of a triangle?", Answer: "180", Options: []string{"90", "180", "270", "360"}, Hint: "Always 180 degrees"},
			{ID: "geo_6", Prompt: "What is the area of a triangle with base 10 and height 6?", Answer: "30", Options: []string{"16", "30", "36", "60"}, Hint: "Half of base × height"},
			{ID: "geo_7", Prompt: "A circle's diameter is 14. What is its radius?", Answer: "7", Options: []string{"7", "14", "21", "28"}, Hint: "Radius is half the diameter"},
			{ID: "geo_8", Prompt: "How many faces does a cube have?", Answer: "6", Options: []string{"4", "6", "8", "12"}, Hint: "Count a dice's sides"},
		},
	},
	{
		ID:          "word_problems",
		DisplayName: "Street Problems",
		Icon:        "📖",
		Description: "Real problems from the alley",
		Questions: []seedQuestion{
			{ID: "word_1", Prompt: "30 sampaguita garlands at ₱15 each. How much if you sell them all?", Answer: "450", Options: []string{"400", "430", "450", "480"}, Hint: "30 × 15 = 450"},
			{ID: "word_2", Prompt: "You earn ₱120 a day for 5 days. How much in total?", Answer: "600", Options: []string{"500", "550", "600", "650"}, Hint: "120 × 5 = 600"},
			{ID: "word_3", Prompt: "A jeepney fare is ₱13. How much for 4 passengers?", Answer: "52", Options: []string{"42", "48", "52", "56"}, Hint: "13 × 4 = 52"},
			{ID: "word_4", Prompt: "You have ₱500 and spend ₱275 on rice. How much is left?", Answer: "225", Options: []string{"215", "225", "235", "245"}, Hint: "500 - 275 = 225"},
			{ID: "word_5", Prompt: "Tito Ben adds 20 garlands to your 30. At ₱20 each, what is the total value?", Answer: "1000", Options: []string{"600", "800", "1000", "1200"}, Hint: "50 garlands × ₱20"},
			{ID: "word_6", Prompt: "3 kilos of mangoes at ₱85 per kilo. What is the total cost?", Answer: "255", Options: []string{"245", "255", "265", "275"}, Hint: "85 × 3 = 255"},
			{ID: "word_7", Prompt: "You need ₱2,000 by Friday and have ₱1,350. How much more do you need?", Answer: "650", Options: []string{"550", "600", "650", "750"}, Hint: "2000 - 1350 = 650"},
			{ID: "word_8", Prompt: "Split ₱360 equally among 3 siblings. How much does each get?", Answer: "120", Options: []string{"90", "110", "120", "130"}, Hint: "360 ÷ 3 = 120"},
		},
	},
}
