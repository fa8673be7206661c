package llm

import (
	"strings"
	"unicode/utf8"
)

// fashionKnowledge holds the built-in stylist topics. These answers
// need no external service, so the chain can always respond.
var fashionKnowledge = map[string]string{
	"autumn_fall_trends": `**Autumn 2025 Fashion Trends:**
• **Colors**: Rich burgundy, forest green, burnt orange, deep navy, camel brown
• **Textures**: Chunky knits, corduroy, leather, suede, faux fur
• **Key Pieces**: Oversized blazers, knee-high boots, cozy cardigans, wide-leg trousers
• **Layering**: Start with fitted base layers, add structured middle pieces, finish with statement outerwear
• **Accessories**: Scarves in plaid or solid colors, structured handbags, statement jewelry`,

	"winter_trends": `**Winter Style Essentials:**
• **Outerwear**: Wool coats, puffer jackets, trench coats with thermal linings
• **Footwear**: Waterproof boots, thermal insoles, knee-high leather boots
• **Layering Strategy**: Moisture-wicking base, insulating middle layer, windproof outer shell
• **Colors**: Deep jewel tones, classic black, cream, rich browns
• **Accessories**: Wool scarves, leather gloves, warm hats that don't flatten hair`,

	"spring_trends": `**Spring Fashion Refresh:**
• **Colors**: Soft pastels, fresh whites, mint green, coral pink, sky blue
• **Fabrics**: Light cotton, linen blends, silk, breathable synthetics
• **Key Pieces**: Midi dresses, light cardigans, white sneakers, cropped jackets
• **Transition**: Layer with pieces you can remove as temperatures rise
• **Footwear**: Ballet flats, low-heeled sandals, clean white sneakers`,

	"summer_trends": `**Summer Style Guide:**
• **Colors**: Bright whites, vibrant coral, sunny yellow, ocean blue, tropical prints
• **Fabrics**: Pure cotton, linen, moisture-wicking blends, lightweight silk
• **Key Pieces**: Sundresses, shorts with 4-6 inch inseams, breathable tops
• **Sun Protection**: Wide-brim hats, UV-protective sunglasses, light cover-ups
• **Footwear**: Sandals with arch support, canvas sneakers, comfortable wedges`,

	"work_professional": `**Professional Wardrobe Essentials:**
• **Foundation**: Well-fitted blazers in navy, black, and neutral tones
• **Bottoms**: Tailored trousers, knee-length skirts, professional dresses
• **Colors**: Navy, charcoal, cream, soft gray - build on neutral foundations
• **Footwear**: Closed-toe pumps 1-3 inches, professional flats, quality leather
• **Guidelines**: Err on conservative side, invest in quality fabrics, ensure proper fit
• **Accessories**: Minimal jewelry, structured handbags, silk scarves for color`,

	"casual_weekend": `**Elevated Casual Style:**
• **Foundation**: Quality jeans in dark wash, comfortable yet polished pieces
• **Tops**: Soft sweaters, fitted t-shirts, button-down shirts
• **Layering**: Cardigans, denim jackets, light blazers for instant polish
• **Footwear**: Clean sneakers, ankle boots, comfortable flats
• **Key Principle**: Choose pieces that look intentional, not thrown together`,

	"date_night": `**Date Night Outfit Ideas:**
• **Dinner Dates**: Midi dresses, elegant separates, heeled sandals or pumps
• **Casual Coffee**: High-waisted jeans, silk blouses, ankle boots
• **Activity Dates**: Comfortable yet stylish - think elevated athleisure
• **Evening Events**: Little black dress with statement accessories
• **Comfort Rule**: Never wear anything that makes you fidget or feel self-conscious`,

	"color_coordination": `**Color Theory Made Simple:**
• **Monochromatic**: Different shades of same color for sophisticated elegance
• **Complementary**: Navy & coral, purple & yellow for vibrant contrast
• **Neutral Base**: Black, white, gray, beige allow colorful accents to shine
• **Earth Tones**: Browns, greens, oranges work harmoniously together
• **Metallics**: Gold and silver add glamour without competing
• **Starting Point**: Limit to 2-3 colors max, build confidence gradually`,

	"accessories": `**Accessorizing Like a Pro:**
• **Statement Rule**: Choose one focal point - bold jewelry OR striking bag OR colorful scarf
• **Metal Mixing**: Pick one dominant metal (70%) with small accents of another (30%)
• **Proportions**: Large accessories with simple outfits, minimal accessories with busy patterns
• **Functionality**: Choose pieces that work with your lifestyle and comfort level
• **Scarves**: Add color and texture, can transform basic outfits instantly`,

	"sustainable_fashion": `**Sustainable Style Choices:**
• **Quality Over Quantity**: Invest in well-made pieces that last multiple seasons
• **Versatility**: Choose items that work for multiple occasions and can be styled differently
• **Natural Fibers**: Organic cotton, linen, wool are more sustainable than synthetics
• **Care**: Proper washing, storing, and maintenance extends garment life significantly
• **Secondhand**: Vintage and consignment shopping for unique, affordable pieces
• **Rental**: For special occasion wear you'll only use once`,

	"body_styling": `**Flattering Fit Guidelines:**
• **Petite**: Vertical lines, high-waisted bottoms, cropped jackets
• **Tall**: Horizontal elements, wide belts, longer tops and jackets
• **Curvy**: Defined waistlines, V-necks, A-line silhouettes
• **Athletic**: Softer fabrics, peplum tops, bootcut or wide-leg pants
• **Universal**: Proper fit is more important than trends - tailor when needed`,

	"budget_styling": `**Budget-Friendly Fashion:**
• **Investment Pieces**: Quality blazer, good jeans, versatile dress, comfortable shoes
• **Trend Shopping**: Buy trendy pieces at lower price points since they're temporary
• **Mix High-Low**: Combine investment pieces with affordable trend items
• **Secondhand Strategy**: Shop consignment for designer pieces at fraction of retail
• **Care**: Proper maintenance makes affordable pieces look more expensive`,
}

// universalStylingTips answers questions that match no topic.
const universalStylingTips = `**Universal Styling Tips:**
• **Fit First**: Proper fit is more important than following every trend
• **Build a Foundation**: Invest in quality basics in neutral colors
• **Personal Style**: Adapt trends to your lifestyle, body type, and preferences
• **Confidence**: The best accessory is confidence in your choices
• **Comfort**: If you don't feel comfortable, it shows - choose what makes you feel great`

// knowledgeTopics maps query keywords to knowledge entries. Checks run
// in order: seasons first, then occasions, then styling techniques.
var knowledgeTopics = []struct {
	key      string
	keywords []string
}{
	{"autumn_fall_trends", []string{"autumn", "fall", "october", "november"}},
	{"winter_trends", []string{"winter", "cold", "december", "january", "february"}},
	{"spring_trends", []string{"spring", "march", "april", "may"}},
	{"summer_trends", []string{"summer", "hot", "june", "july", "august"}},
	{"work_professional", []string{"work", "office", "professional", "business", "meeting"}},
	{"casual_weekend", []string{"casual", "weekend", "everyday", "comfortable"}},
	{"date_night", []string{"date", "dinner", "evening", "romantic"}},
	{"color_coordination", []string{"color", "colours", "match", "coordinate"}},
	{"accessories", []string{"accessory", "accessories", "jewelry", "bag", "scarf"}},
	{"body_styling", []string{"body", "flattering", "fit", "size"}},
	{"sustainable_fashion", []string{"sustainable", "eco", "ethical", "green"}},
	{"budget_styling", []string{"budget", "cheap", "affordable", "save"}},
}

// knowledgeKey returns the slug of the first topic whose keywords match
// the question, or "" when nothing matches.
func knowledgeKey(question string) string {
	q := strings.ToLower(question)
	for _, topic := range knowledgeTopics {
		if containsAny(q, topic.keywords...) {
			return topic.key
		}
	}
	return ""
}

// knowledgeOpening picks a lead-in line matching the question's intent.
func knowledgeOpening(question string) string {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, "what", "should", "wear", "today"):
		return "Here's what I recommend for your styling question:\n\n"
	case containsAny(q, "how", "style", "outfit"):
		return "Great styling question! Here's how to approach it:\n\n"
	case containsAny(q, "trend", "fashion", "latest"):
		return "Let me share the latest fashion insights:\n\n"
	default:
		return "Here's my fashion advice for you:\n\n"
	}
}

// knowledgeResponse assembles the fallback answer: an opening line, the
// matched topic (or universal tips when none matches), and a slice of
// the retrieved context when there is enough of it to be worth showing.
func knowledgeResponse(question, context string) string {
	key := knowledgeKey(question)

	var parts []string
	if key != "" {
		parts = append(parts, fashionKnowledge[key])
	}
	if utf8.RuneCountInString(strings.TrimSpace(context)) > 50 {
		parts = append(parts, "\n**Additional Fashion Insights:**\n"+clipRunes(context, 400)+"...")
	}
	if key == "" {
		parts = append(parts, universalStylingTips)
	}

	return knowledgeOpening(question) + strings.Join(parts, "\n")
}
