package service

import (
	"fmt"
	"strings"

	"github.com/asliddin4/KoYaAsli/internal/domain"

	"go.uber.org/zap"
)

// clarificationPrompts are rotated on NoMatch turns so repeated
// unrecognized input does not produce the same reply twice in a row
var clarificationPrompts = map[domain.Language][]string{
	domain.LanguageKorean: {
		"I didn't quite catch that. Could you try a simpler word or phrase? 🙏",
		"Hmm, that one is new to me. Try something like 안녕하세요 or a word you learned recently!",
		"Let's try again with a shorter sentence. What would you like to say in Korean?",
		"I'm not sure about that one yet. You can also type /test to practice what you know!",
	},
	domain.LanguageJapanese: {
		"I didn't quite catch that. Could you try a simpler word or phrase? 🙏",
		"Hmm, that one is new to me. Try something like こんにちは or a word you learned recently!",
		"Let's try again with a shorter sentence. What would you like to say in Japanese?",
		"I'm not sure about that one yet. You can also type /test to practice what you know!",
	},
}

// followUps keep the conversation going after a matched reply
var followUps = map[domain.Intent][]string{
	domain.IntentGreeting: {
		"How are you today?",
		"Nice to see you again! What would you like to practice?",
	},
	domain.IntentQuestion: {
		"Does that answer your question?",
		"Want another example? Just ask!",
	},
	domain.IntentStatement: {
		"Try using it in a sentence!",
		"Can you make your own sentence with it?",
	},
	domain.IntentCorrectionRequest: {
		"Keep going, you're doing great!",
		"Send me another sentence to check!",
	},
}

// ResponseComposer renders a learner-facing reply from a match result
// and the grammar corrections for the turn
type ResponseComposer struct {
	logger *zap.Logger
}

// NewResponseComposer creates a new composer
func NewResponseComposer(logger *zap.Logger) *ResponseComposer {
	return &ResponseComposer{logger: logger}
}

// Compose builds the reply text. Corrections always come first so the
// learner sees feedback before new material. Entry ids never appear in
// the output.
func (c *ResponseComposer) Compose(match MatchResult, corrections []Correction, ctx *domain.ConversationContext) string {
	if !match.Matched {
		return c.clarify(ctx, match.Intent)
	}

	var b strings.Builder

	for _, correction := range corrections {
		b.WriteString(fmt.Sprintf("✏️ %s\n", correction.Suggestion))
	}
	if len(corrections) > 0 {
		b.WriteString("\n")
	}

	entry := match.Entry
	switch match.Intent {
	case domain.IntentGreeting:
		b.WriteString(fmt.Sprintf("%s! 👋 \"%s\" means \"%s\".", entry.SurfaceForm, entry.SurfaceForm, entry.Translation))
	case domain.IntentQuestion:
		b.WriteString(fmt.Sprintf("\"%s\" means \"%s\" (%s).", entry.SurfaceForm, entry.Translation, entry.PartOfSpeech))
	case domain.IntentCorrectionRequest:
		if len(corrections) == 0 {
			b.WriteString(fmt.Sprintf("Looks good! \"%s\" is used correctly here. ✅", entry.SurfaceForm))
		} else {
			b.WriteString(fmt.Sprintf("Almost there! Check the notes above about \"%s\".", entry.SurfaceForm))
		}
	default:
		b.WriteString(fmt.Sprintf("\"%s\" means \"%s\".", entry.SurfaceForm, entry.Translation))
	}

	if example := pickRotating(entry.UsageExamples, ctx); example != "" {
		b.WriteString(fmt.Sprintf("\n\n📖 Example: %s", example))
	}
	if entry.CulturalNote != "" {
		b.WriteString(fmt.Sprintf("\n💡 %s", entry.CulturalNote))
	}
	if followUp := pickRotating(followUps[match.Intent], ctx); followUp != "" {
		b.WriteString(fmt.Sprintf("\n\n%s", followUp))
	}

	return b.String()
}

// clarify picks a clarification prompt deterministically from the turn
// counter, so consecutive NoMatch turns rotate through the list
func (c *ResponseComposer) clarify(ctx *domain.ConversationContext, intent domain.Intent) string {
	lang := domain.LanguageKorean
	turn := 0
	if ctx != nil {
		lang = ctx.Language
		turn = ctx.TurnCount
	}

	prompts := clarificationPrompts[lang]
	if len(prompts) == 0 {
		prompts = clarificationPrompts[domain.LanguageKorean]
	}

	prompt := prompts[turn%len(prompts)]
	if intent == domain.IntentQuestion {
		prompt = "Good question! " + prompt
	}
	return prompt
}

func pickRotating(options []string, ctx *domain.ConversationContext) string {
	if len(options) == 0 {
		return ""
	}
	turn := 0
	if ctx != nil {
		turn = ctx.TurnCount
	}
	return options[turn%len(options)]
}
