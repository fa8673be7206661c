package llm

import (
	"strings"
	"testing"
)

func TestKnowledgeKey_Routing(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"what to wear this autumn", "autumn_fall_trends"},
		{"ideas for cold weather", "winter_trends"},
		{"spring wardrobe refresh", "spring_trends"},
		{"hot day clothing", "summer_trends"},
		{"attire for an office meeting", "work_professional"},
		{"weekend brunch ideas", "casual_weekend"},
		{"dinner with my partner", "date_night"},
		{"how to coordinate colors", "color_coordination"},
		{"which jewelry goes with silk", "accessories"},
		{"flattering cuts for my shape", "body_styling"},
		{"eco friendly brands", "sustainable_fashion"},
		{"affordable capsule wardrobe", "budget_styling"},
		{"tell me something interesting please", ""},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := knowledgeKey(tt.question); got != tt.want {
				t.Errorf("knowledgeKey(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestKnowledgeKey_SeasonsBeforeOccasions(t *testing.T) {
	// "winter office wear" matches both winter and work; seasons win.
	if got := knowledgeKey("winter office wear"); got != "winter_trends" {
		t.Errorf("expected winter_trends, got %q", got)
	}
}

func TestKnowledgeKey_SubstringMatching(t *testing.T) {
	// "fit" inside "outfit" routes to body styling once nothing earlier matches.
	if got := knowledgeKey("outfit ideas"); got != "body_styling" {
		t.Errorf("expected body_styling, got %q", got)
	}
}

func TestKnowledgeOpening(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"what should I wear", "Here's what I recommend for your styling question:\n\n"},
		{"how to style a scarf", "Great styling question! Here's how to approach it:\n\n"},
		{"latest trends in denim", "Let me share the latest fashion insights:\n\n"},
		{"tips for tall people", "Here's my fashion advice for you:\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := knowledgeOpening(tt.question); got != tt.want {
				t.Errorf("knowledgeOpening(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestKnowledgeResponse_TopicWithOpening(t *testing.T) {
	got := knowledgeResponse("what should I wear in winter", "")

	if !strings.HasPrefix(got, "Here's what I recommend for your styling question:\n\n") {
		t.Errorf("expected recommendation opening, got %q", got)
	}
	if !strings.Contains(got, "**Winter Style Essentials:**") {
		t.Errorf("expected winter section, got %q", got)
	}
	if strings.Contains(got, "**Universal Styling Tips:**") {
		t.Error("universal tips should not appear when a topic matched")
	}
}

func TestKnowledgeResponse_UniversalTipsWhenNoTopic(t *testing.T) {
	got := knowledgeResponse("tell me something interesting please", "")

	if !strings.HasPrefix(got, "Here's my fashion advice for you:\n\n") {
		t.Errorf("expected default opening, got %q", got)
	}
	if !strings.Contains(got, "**Universal Styling Tips:**") {
		t.Errorf("expected universal tips, got %q", got)
	}
}

func TestKnowledgeResponse_AppendsLongContext(t *testing.T) {
	context := strings.Repeat("Velvet is having a moment this season. ", 3)
	got := knowledgeResponse("what to wear in autumn", context)

	if !strings.Contains(got, "**Additional Fashion Insights:**") {
		t.Errorf("expected context section, got %q", got)
	}
	if !strings.Contains(got, "Velvet is having a moment") {
		t.Errorf("expected context text, got %q", got)
	}
}

func TestKnowledgeResponse_IgnoresShortContext(t *testing.T) {
	got := knowledgeResponse("what to wear in autumn", "too short")

	if strings.Contains(got, "**Additional Fashion Insights:**") {
		t.Errorf("short context should be ignored, got %q", got)
	}
}

func TestKnowledgeResponse_ClipsContext(t *testing.T) {
	context := strings.Repeat("x", 450)
	got := knowledgeResponse("summer outfit", context)

	if !strings.Contains(got, strings.Repeat("x", 400)+"...") {
		t.Error("expected context clipped to 400 runes with ellipsis")
	}
	if strings.Contains(got, strings.Repeat("x", 401)) {
		t.Error("context should not exceed 400 runes")
	}
}
