package llm

import (
	"strings"
	"testing"
)

func TestResponseFormat_Routing(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"what outfit should I wear tonight", "**Style Overview:**"},
		{"how to dress for a wedding", "**Style Overview:**"},
		{"what are the current trends", "**Current Trends:**"},
		{"where should I shop this season", "**Current Trends:**"},
		{"tell me about cashmere care", "**Overview:**"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			got := responseFormat(tt.question)
			if !strings.Contains(got, tt.want) {
				t.Errorf("responseFormat(%q) missing %q", tt.question, tt.want)
			}
		})
	}
}

func TestResponseFormat_StylingWinsOverTrend(t *testing.T) {
	// "look" routes to the styling format even when trend words appear.
	got := responseFormat("what trend look is popular")
	if !strings.Contains(got, "**Style Overview:**") {
		t.Errorf("expected styling format, got %q", got)
	}
}

func TestValidateResponseFormat_Empty(t *testing.T) {
	if got := validateResponseFormat(""); got != "" {
		t.Errorf("expected empty passthrough, got %q", got)
	}
}

func TestValidateResponseFormat_NormalizesLineEndings(t *testing.T) {
	input := "**Style Overview:** Clean and modern\n\n**Key Pieces:**\n• A navy blazer\n• White sneakers!\n\n**Styling Tips:** Keep accessories minimal"
	want := "**Style Overview:** Clean and modern.\n\n**Key Pieces:**\n• A navy blazer.\n• White sneakers!\n\n**Styling Tips:** Keep accessories minimal."

	if got := validateResponseFormat(input); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestValidateResponseFormat_KeepsBareSectionHeaders(t *testing.T) {
	input := "**Style Overview:** Fine.\n\n**Key Pieces:**\n• Done.\n\n**Styling Tips:** Ok."
	got := validateResponseFormat(input)
	if !strings.Contains(got, "**Key Pieces:**\n") {
		t.Errorf("bare section header should stay untouched, got %q", got)
	}
	if strings.Contains(got, "**Key Pieces:**.") {
		t.Errorf("section header must not gain punctuation, got %q", got)
	}
}

func TestValidateResponseFormat_RestructuresWhenSectionsMissing(t *testing.T) {
	got := validateResponseFormat("Neutral tones work best\n\nStart with a white shirt\n\nAlways check the fit")
	want := "**Style Overview:** Neutral tones work best.\n\n**Key Pieces:**\n• Start with a white shirt.\n\n**Styling Tips:** Always check the fit."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRestructureResponse_SingleParagraphFallback(t *testing.T) {
	got := restructureResponse("Just pick something comfortable")
	if !strings.HasPrefix(got, "**Style Overview:** Just pick something comfortable.") {
		t.Errorf("expected overview from the text, got %q", got)
	}
	if !strings.Contains(got, "• Focus on well-fitted basics and quality pieces.") {
		t.Errorf("expected default key pieces, got %q", got)
	}
	if !strings.Contains(got, "**Styling Tips:** Consider your lifestyle and personal preferences when choosing outfits.") {
		t.Errorf("expected default styling tips, got %q", got)
	}
}

func TestRestructureResponse_TwoParagraphs(t *testing.T) {
	got := restructureResponse("Go monochrome!\n\nBlack jeans and a black knit")
	want := "**Style Overview:** Go monochrome!\n\n**Key Pieces:**\n• Black jeans and a black knit.\n\n**Styling Tips:** Focus on fit, comfort, and personal expression."
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestEnsureCompleteResponse(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   string
	}{
		{
			name:   "empty",
			text:   "",
			maxLen: 800,
			want:   "",
		},
		{
			name:   "short and complete",
			text:   "Looks good.",
			maxLen: 800,
			want:   "Looks good.",
		},
		{
			name:   "short with trailing whitespace",
			text:   "Looks good.\n  ",
			maxLen: 800,
			want:   "Looks good.",
		},
		{
			name:   "short with trailing fragment",
			text:   "First point. trailing frag",
			maxLen: 800,
			want:   "First point.",
		},
		{
			name:   "short without any sentence end",
			text:   "no punctuation here",
			maxLen: 800,
			want:   "no punctuation here",
		},
		{
			name:   "long cut at late sentence boundary",
			text:   "A reasonably long first sentence sits right here. tail tail tail",
			maxLen: 55,
			want:   "A reasonably long first sentence sits right here.",
		},
		{
			name:   "long with only early sentence falls back to words",
			text:   "This is a full sentence. Another complete one follows here soon",
			maxLen: 40,
			want:   "This is a full sentence. Another.",
		},
		{
			name:   "single long word",
			text:   "Supercalifragilisticexpialidocious",
			maxLen: 10,
			want:   "Supercalif.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ensureCompleteResponse(tt.text, tt.maxLen); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
