package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
)

const flashcardSystemPrompt = `You are a friendly, focused flashcard generator.
Rules:
- Keep questions short and specific.
- Keep answers short and correct.
- Avoid fluff.
- Use simple language if the user is a beginner.
Return JSON only in this schema:
{"cards":[{"q":"...","a":"..."}]}`

// FlashcardGenerator turns a topic into a set of question/answer cards. Model
// failures of any kind (no credential, API error, unusable output) degrade to
// deterministic placeholder cards; generation never fails.
type FlashcardGenerator struct {
	llm ChatModel // nil when no credential is configured
}

func NewFlashcardGenerator(llm ChatModel) *FlashcardGenerator {
	return &FlashcardGenerator{llm: llm}
}

// Generate produces n cards about topic. n is clamped to [1, 50].
func (g *FlashcardGenerator) Generate(ctx context.Context, topic, difficulty string, n int) []models.Card {
	topic = strings.TrimSpace(topic)
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		difficulty = "Beginner"
	}
	if n < 1 {
		n = 1
	}
	if n > 50 {
		n = 50
	}

	if g.llm == nil {
		return fallbackCards(topic, difficulty, n)
	}

	prompt := fmt.Sprintf("Create %d flashcards about: %s\nDifficulty: %s\nReturn valid JSON only:\n{\"cards\":[{\"q\":\"...\",\"a\":\"...\"}]}", n, topic, difficulty)

	raw, err := g.llm.Chat(ctx, []models.Message{
		{Role: models.RoleSystem, Content: flashcardSystemPrompt},
		{Role: models.RoleUser, Content: prompt},
	})
	if err != nil {
		return fallbackCards(topic, difficulty, n)
	}

	cards, err := parseCards(raw)
	if err != nil || len(cards) == 0 {
		return fallbackCards(topic, difficulty, n)
	}
	if len(cards) > n {
		cards = cards[:n]
	}
	return cards
}

// parseCards extracts {"cards":[...]} from model output, tolerating prose or
// code fences around the JSON object.
func parseCards(text string) ([]models.Card, error) {
	var doc struct {
		Cards []struct {
			Q string `json:"q"`
			A string `json:"a"`
		} `json:"cards"`
	}

	text = strings.TrimSpace(text)
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		start := strings.Index(text, "{")
		end := strings.LastIndex(text, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no JSON object found in model output")
		}
		if err := json.Unmarshal([]byte(text[start:end+1]), &doc); err != nil {
			return nil, fmt.Errorf("model output is not valid JSON: %w", err)
		}
	}

	cards := make([]models.Card, 0, len(doc.Cards))
	for _, c := range doc.Cards {
		q := strings.TrimSpace(c.Q)
		a := strings.TrimSpace(c.A)
		if q != "" && a != "" {
			cards = append(cards, models.Card{Q: q, A: a})
		}
	}
	return cards, nil
}

func fallbackCards(topic, difficulty string, n int) []models.Card {
	if topic == "" {
		topic = "your topic"
	}
	cards := make([]models.Card, 0, n)
	for i := 1; i <= n; i++ {
		cards = append(cards, models.Card{
			Q: fmt.Sprintf("What is %s? (Q%d • %s)", topic, i, difficulty),
			A: fmt.Sprintf("A short definition/idea for %s.", topic),
		})
	}
	return cards
}

// ShuffleCards returns a shuffled copy; the input order is left alone.
func ShuffleCards(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
