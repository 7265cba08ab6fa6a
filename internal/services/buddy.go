package services

import (
	"fmt"
	"strings"

	"github.com/techwithgen-io/beginner-ai-projects/internal/models"
)

// Sentinel prefixes the model uses to carry structured suggestions inline
// with prose. They are parsed out of responses and never shown to the user.
const (
	lastTopicSentinel  = "LAST_TOPIC_SUGGESTION:"
	stuckPointSentinel = "STUCK_POINT_SUGGESTION:"
)

// recapDisplayLimit caps stored session-recap summaries, in runes.
const recapDisplayLimit = 180

var styleAliases = map[string]string{
	"simple":    models.StyleSimpleShort,
	"short":     models.StyleSimpleShort,
	"examples":  models.StyleExamplesHeavy,
	"example":   models.StyleExamplesHeavy,
	"steps":     models.StyleStepByStep,
	"step":      models.StyleStepByStep,
	"mentor":    models.StyleStepByStep,
	"quiz":      models.StyleQuizMe,
	"questions": models.StyleQuizMe,
}

var styleInstructions = map[string]string{
	models.StyleSimpleShort:   "Keep responses short and simple. No jargon unless asked.",
	models.StyleExamplesHeavy: "Use concrete examples and mini demos. Explain like I'm learning.",
	models.StyleStepByStep:    "Explain step-by-step with clear bullets and tiny checkpoints.",
	models.StyleQuizMe:        "Teach briefly, then ask me 1-2 questions to check understanding.",
}

// IsComplete reports whether the profile has everything chat needs: name,
// goal, level and style all non-blank. Whitespace-only counts as blank.
func IsComplete(p models.Profile) bool {
	for _, field := range []string{p.Name, p.LearningGoal, p.ExperienceLevel, p.Style} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// NormalizeStyle maps a free-text style token onto its canonical tag. The
// boolean is false for unrecognized tokens; the caller rejects the input
// rather than adopting an invalid style.
func NormalizeStyle(token string) (string, bool) {
	style, ok := styleAliases[strings.ToLower(strings.TrimSpace(token))]
	return style, ok
}

// AddStuckPoint appends text to the stuck-point list unless an exact duplicate
// is already there (case-sensitive). Returns false on duplicate so the caller
// can tell the user it was already saved.
func AddStuckPoint(p *models.Profile, text string) bool {
	for _, existing := range p.StuckPoints {
		if existing == text {
			return false
		}
	}
	p.StuckPoints = append(p.StuckPoints, text)
	return true
}

// ApplySuggestions scans the model response for sentinel lines, applies them
// to the profile (last topic overwrites, stuck points append-if-absent) and
// returns the response with the sentinel lines stripped for display. When
// several sentinel lines of the same kind appear, the last one wins.
func ApplySuggestions(p *models.Profile, response string) string {
	var topic, stuck string
	var display []string

	for _, line := range strings.Split(response, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, lastTopicSentinel) {
			topic = strings.TrimSpace(strings.TrimPrefix(trimmed, lastTopicSentinel))
			continue
		}
		if strings.HasPrefix(trimmed, stuckPointSentinel) {
			stuck = strings.TrimSpace(strings.TrimPrefix(trimmed, stuckPointSentinel))
			continue
		}
		display = append(display, line)
	}

	if topic != "" {
		p.LastTopic = topic
	}
	if stuck != "" {
		AddStuckPoint(p, stuck)
	}

	return strings.TrimSpace(strings.Join(display, "\n"))
}

// AppendSession adds a recap entry to the append-only session log. Long
// summaries are truncated for display before storing, matching how they are
// shown later.
func AppendSession(p *models.Profile, date, summary string) {
	runes := []rune(summary)
	if len(runes) > recapDisplayLimit {
		summary = string(runes[:recapDisplayLimit]) + "…"
	}
	p.Sessions = append(p.Sessions, models.SessionRecap{Date: date, Summary: summary})
}

// BuildSystemPrompt embeds the profile into the study-buddy system prompt,
// including the sentinel-line contract the suggestion parser relies on.
func BuildSystemPrompt(p models.Profile) string {
	instructions, ok := styleInstructions[p.Style]
	if !ok {
		instructions = "Use clear explanations with examples."
	}

	lastTopic := p.LastTopic
	if lastTopic == "" {
		lastTopic = "None"
	}
	stuck := strings.Join(p.StuckPoints, ", ")
	if stuck == "" {
		stuck = "None"
	}

	return fmt.Sprintf(`You are a context-aware AI Study Buddy.
Your job is to help the user learn efficiently and kindly.

User profile:
- Name: %s
- Learning goal: %s
- Experience level: %s
- Last topic: %s
- Stuck points: %s

Teaching style rules:
- %s

Behavior:
- If the user asks for code, keep it minimal and explain what each part does.
- If the user seems stuck, suggest a smaller step and a quick practice prompt.
- If the user changes topic, update "last_topic" suggestion at the end in a single line like:
  %s <topic>
- If the user mentions a struggle (ex: "I don't get X"), suggest adding it to stuck points like:
  %s <thing>`,
		p.Name, p.LearningGoal, p.ExperienceLevel, lastTopic, stuck,
		instructions, lastTopicSentinel, stuckPointSentinel)
}

// BuildRecapPrompt asks the model for the end-of-session study recap.
func BuildRecapPrompt(p models.Profile) string {
	return fmt.Sprintf(`Make a short study recap for %s.

Include:
1) What we covered today (2-4 bullets)
2) The next best step (1-2 bullets)
3) One quick practice question

Keep it aligned to:
- Goal: %s
- Level: %s
- Style: %s`,
		p.Name, p.LearningGoal, p.ExperienceLevel, p.Style)
}

// FormatProfile renders the profile for the /profile command.
func FormatProfile(p models.Profile) string {
	lastTopic := p.LastTopic
	if lastTopic == "" {
		lastTopic = "None"
	}
	stuck := strings.Join(p.StuckPoints, ", ")
	if stuck == "" {
		stuck = "None"
	}

	return fmt.Sprintf("Name: %s\nGoal: %s\nLevel: %s\nStyle: %s\nLast topic: %s\nStuck points: %s",
		p.Name, p.LearningGoal, p.ExperienceLevel, p.Style, lastTopic, stuck)
}
