package llm

import (
	"fmt"
	"strings"
)

// maxResponseRunes caps answer length; longer answers are cut back to
// the last complete sentence.
const maxResponseRunes = 800

// requiredSections must all appear for a sectioned answer to pass
// validation unchanged.
var requiredSections = []string{"**Style Overview:**", "**Key Pieces:**", "**Styling Tips:**"}

const stylingFormat = `You MUST provide responses in EXACTLY this format:

**Style Overview:** [1-2 sentences describing the overall style/approach]

**Key Pieces:**
• [Item 1 with specific details]
• [Item 2 with specific details]
• [Item 3 with specific details]

**Styling Tips:** [2-3 sentences with practical advice]

Always end each section completely. Never cut off mid-sentence.`

const trendFormat = `You MUST provide responses in EXACTLY this format:

**Current Trends:** [2-3 sentences about relevant trends]

**What to Look For:**
• [Trend 1 with specific details]
• [Trend 2 with specific details]
• [Trend 3 with specific details]

**Shopping Tips:** [2-3 sentences with practical buying advice]

Always end each section completely. Never cut off mid-sentence.`

const generalFormat = `You MUST provide responses in EXACTLY this format:

**Overview:** [2-3 sentences explaining the main points]

**Key Points:**
• [Point 1 with specific details]
• [Point 2 with specific details]
• [Point 3 with specific details]

**Recommendations:** [2-3 sentences with actionable advice]

Always end each section completely. Never cut off mid-sentence.`

// responseFormat picks the format instruction best suited to the
// question: styling questions get the Style Overview structure, trend
// and shopping questions the Current Trends structure, everything else
// a general structure.
func responseFormat(question string) string {
	q := strings.ToLower(question)
	if containsAny(q, "outfit", "style", "wear", "look", "dress", "match", "combine") {
		return stylingFormat
	}
	if containsAny(q, "trend", "fashion", "buy", "shop", "popular", "current") {
		return trendFormat
	}
	return generalFormat
}

// containsAny reports whether s contains at least one of the substrings.
func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// validateResponseFormat checks a model answer against the required
// section structure. Answers missing a section are restructured into
// it; answers that have the structure get their lines normalized so
// each one ends with proper punctuation.
func validateResponseFormat(text string) string {
	if text == "" {
		return text
	}

	for _, section := range requiredSections {
		if !strings.Contains(text, section) {
			return restructureResponse(text)
		}
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			cleaned = append(cleaned, "")
			continue
		}
		switch {
		case strings.HasPrefix(line, "**") && strings.HasSuffix(line, ":**"):
			cleaned = append(cleaned, line)
		case strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			if !endsWithAny(line, ".", "!", "?", ")") {
				line += "."
			}
			cleaned = append(cleaned, line)
		default:
			if !endsWithAny(line, ".", "!", "?", ":", ")") {
				line += "."
			}
			cleaned = append(cleaned, line)
		}
	}
	return strings.TrimSpace(strings.Join(cleaned, "\n"))
}

// restructureResponse forces free-form text into the sectioned answer
// structure, mapping the first paragraphs onto the overview, key
// pieces, and tips sections.
func restructureResponse(text string) string {
	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	if len(paragraphs) >= 2 {
		overview := terminate(paragraphs[0])
		details := terminate(paragraphs[1])
		tips := "Focus on fit, comfort, and personal expression."
		if len(paragraphs) > 2 {
			tips = terminate(paragraphs[2])
		}
		return fmt.Sprintf("**Style Overview:** %s\n\n**Key Pieces:**\n• %s\n\n**Styling Tips:** %s", overview, details, tips)
	}

	return fmt.Sprintf("**Style Overview:** %s\n\n**Key Pieces:**\n• Focus on well-fitted basics and quality pieces.\n\n**Styling Tips:** Consider your lifestyle and personal preferences when choosing outfits.", terminate(text))
}

// terminate appends a period unless s already ends a sentence.
func terminate(s string) string {
	if endsWithAny(s, ".", "!", "?") {
		return s
	}
	return s + "."
}

// endsWithAny reports whether s ends with one of the suffixes.
func endsWithAny(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// ensureCompleteResponse trims text so it never ends mid-sentence.
// Text within maxLen runes is kept whole when it already ends cleanly,
// otherwise cut back to its last sentence boundary. Longer text is cut
// at the last sentence boundary inside the limit, provided that keeps
// at least 70% of the limit; failing that, at the last whole word.
func ensureCompleteResponse(text string, maxLen int) string {
	if text == "" {
		return text
	}

	runes := []rune(text)
	if len(runes) <= maxLen {
		trimmed := strings.TrimRight(text, " \t\r\n")
		if endsWithAny(trimmed, ".", "!", "?", ":", ")") {
			return trimmed
		}
		if i := strings.LastIndexAny(trimmed, ".!?"); i >= 0 {
			return trimmed[:i+1]
		}
		return trimmed
	}

	cutoff := runes[:maxLen]
	for i := len(cutoff) - 1; i >= 0; i-- {
		if cutoff[i] == '.' || cutoff[i] == '!' || cutoff[i] == '?' {
			remaining := strings.TrimRight(string(cutoff[:i+1]), " \t\r\n")
			if float64(len([]rune(remaining))) > float64(maxLen)*0.7 {
				return remaining
			}
			break
		}
	}

	words := strings.Fields(string(cutoff))
	if len(words) > 1 {
		complete := strings.Join(words[:len(words)-1], " ")
		if endsWithAny(complete, ".", "!", "?") {
			return complete
		}
		return complete + "."
	}

	return strings.TrimRight(string(cutoff), " \t\r\n") + "."
}
