package crawler

// fallbackArticles returns replacement content for a source that could not
// be crawled. Known sources get their own articles; anything else gets the
// universal styling guide.
func fallbackArticles(src Source) []Article {
	var articles []Article

	switch src.Name {
	case "example_fashion_magazine":
		articles = []Article{
			{
				Title: "Essential Wardrobe Building: Investment Pieces That Last",
				Content: "Building a timeless wardrobe starts with identifying key investment pieces that " +
					"transcend seasonal trends. A well-tailored blazer in navy or black provides instant " +
					"sophistication and works for both professional and casual settings. Quality denim in " +
					"a flattering cut becomes the foundation for countless outfits. A classic trench coat " +
					"offers versatility across seasons and occasions. Comfortable leather shoes in neutral " +
					"colors provide polish and durability. A little black dress serves multiple purposes " +
					"from business meetings to evening events. These pieces form the backbone of a " +
					"functional wardrobe that reduces decision fatigue while maintaining style.",
				URL: src.BaseURL + "/investment-pieces-guide",
			},
			{
				Title: "Color Psychology in Fashion: Choosing Colors That Work",
				Content: "Understanding color psychology helps create outfits that convey the right message " +
					"and enhance personal confidence. Navy blue projects trustworthiness and " +
					"professionalism, making it ideal for business settings. Burgundy and deep reds convey " +
					"power and passion, perfect for important meetings or evening events. Forest green " +
					"suggests stability and growth, working well in creative environments. Soft pastels " +
					"like blush pink and lavender create approachable, feminine energy. Black remains the " +
					"ultimate power color, conveying sophistication and authority. When building outfits, " +
					"consider the emotional impact of color choices alongside personal preferences and " +
					"skin tone compatibility.",
				URL: src.BaseURL + "/color-psychology",
			},
			{
				Title: "Seasonal Transition Styling: Mastering Layering Techniques",
				Content: "Mastering layering allows for seamless seasonal transitions while maximizing " +
					"wardrobe versatility. Start with lightweight base layers in moisture-wicking fabrics " +
					"that can be worn alone or under other pieces. Add structured middle layers like " +
					"cardigans, blazers, or lightweight sweaters that provide warmth without bulk. Finish " +
					"with adaptable outer layers that can be easily removed as temperatures change " +
					"throughout the day. Textures play a crucial role in successful layering - mix smooth " +
					"and textured fabrics for visual interest. Consider color coordination when layering, " +
					"using neutral bases with one accent color to maintain cohesion.",
				URL: src.BaseURL + "/layering-techniques",
			},
		}

	case "sample_style_blog":
		articles = []Article{
			{
				Title: "Body-Positive Styling: Dressing for Your Unique Shape",
				Content: "Body-positive styling focuses on enhancing your natural silhouette while promoting " +
					"comfort and confidence. For pear-shaped figures, emphasize the upper body with " +
					"statement tops and jackets while choosing A-line or straight-leg bottoms. Apple " +
					"shapes benefit from empire waistlines and V-necks that create vertical lines and " +
					"draw attention upward. Hourglass figures can emphasize the waist with belted pieces " +
					"and fitted silhouettes. Athletic builds look great in softer fabrics and peplum tops " +
					"that add curves. Remember that these are guidelines, not rules - the most important " +
					"factor is how clothing makes you feel confident and comfortable.",
				URL: src.BaseURL + "/body-positive-styling",
			},
			{
				Title: "Sustainable Fashion Practices for the Modern Wardrobe",
				Content: "Sustainable fashion practices benefit both personal style and environmental " +
					"responsibility. Quality over quantity should guide purchasing decisions - invest in " +
					"well-made pieces that will last for years rather than fast fashion items. Choose " +
					"natural fibers like organic cotton, linen, and wool which are biodegradable and " +
					"often more durable. Proper garment care extends clothing life significantly through " +
					"gentle washing, proper storage, and timely repairs. Secondhand shopping offers " +
					"unique pieces at affordable prices while reducing environmental impact. Clothing " +
					"swaps with friends provide free wardrobe refreshes. When disposing of unwanted " +
					"items, donate to charity or textile recycling programs rather than throwing away.",
				URL: src.BaseURL + "/sustainable-fashion",
			},
			{
				Title: "Professional Styling on Any Budget: Smart Shopping Strategies",
				Content: "Building a professional wardrobe doesn't require a luxury budget with smart " +
					"shopping strategies and careful planning. Focus investments on pieces worn most " +
					"frequently - a quality blazer and comfortable shoes provide better value than " +
					"multiple trendy items. Shop end-of-season sales for classic pieces that transcend " +
					"trends. Consignment stores offer designer pieces at significant discounts. Mix high " +
					"and low - pair affordable basics with one statement investment piece. Proper " +
					"tailoring makes inexpensive pieces look custom-made. Build gradually rather than " +
					"shopping for entire outfits at once. Create a wishlist and wait for sales on " +
					"specific items rather than impulse buying.",
				URL: src.BaseURL + "/budget-professional-styling",
			},
		}

	case "demo_fashion_site":
		articles = []Article{
			{
				Title: "Accessory Strategies: Maximizing Impact with Minimal Pieces",
				Content: "Strategic accessorizing transforms basic outfits into polished looks without " +
					"requiring extensive wardrobe investments. The statement piece rule suggests choosing " +
					"one focal point - either bold jewelry, a colorful scarf, or a striking handbag - " +
					"while keeping other accessories minimal. Scarves offer incredible versatility, " +
					"functioning as neck accessories, hair wraps, or bag decorations. Quality handbags in " +
					"neutral colors work across multiple outfits and occasions. When mixing metals in " +
					"jewelry, maintain a 70-30 ratio with one dominant metal and subtle accents of " +
					"another. Functional accessories like watches and sunglasses should complement " +
					"rather than compete with outfit elements.",
				URL: src.BaseURL + "/accessory-strategies",
			},
			{
				Title: "Fit and Proportion: The Foundation of Great Style",
				Content: "Perfect fit forms the foundation of exceptional style, often making inexpensive " +
					"pieces appear luxurious while poor fit diminishes even designer clothing. Shoulder " +
					"seams should align with natural shoulder points - this is the most important fit " +
					"element and difficult to alter. Sleeve length should show a quarter to half inch of " +
					"shirt cuff beneath jacket sleeves. Pant length should create a slight break on shoes " +
					"for traditional looks or no break for modern styling. Proper waist placement follows " +
					"natural waistline rather than hip bones. When in doubt, choose slightly larger sizes " +
					"for professional alteration rather than settling for too-small garments.",
				URL: src.BaseURL + "/fit-proportion-guide",
			},
		}

	case "fashion_content_api":
		articles = []Article{
			{
				Title: "Capsule Wardrobe Essentials: 30 Pieces for Endless Combinations",
				Content: "A well-designed capsule wardrobe maximizes outfit possibilities while minimizing " +
					"decision fatigue and closet clutter. Essential pieces include five tops in varying " +
					"sleeve lengths and necklines, three bottoms in different silhouettes, two blazers or " +
					"structured jackets, one dress suitable for multiple occasions, and three pairs of " +
					"shoes covering casual, professional, and formal needs. Color coordination ensures " +
					"all pieces work together - build around three neutral colors with one accent color. " +
					"Quality fabrics that resist wrinkles and maintain shape perform better in capsule " +
					"systems. Seasonal additions refresh the wardrobe without complete overhaul.",
				URL: src.BaseURL + "/capsule-wardrobe-guide",
			},
			{
				Title: "Digital Age Professional Dressing: Virtual Meeting Style Guide",
				Content: "Professional dressing for digital interactions requires new considerations beyond " +
					"traditional office attire. Camera positioning affects how clothing appears - higher " +
					"necklines and structured shoulders photograph better than loose or low-cut styles. " +
					"Solid colors and subtle patterns work better than busy prints which can create " +
					"visual noise on screen. Good lighting enhances appearance more than expensive " +
					"clothing - position yourself facing a window or invest in a ring light. While " +
					"comfortable bottoms are practical for video calls, maintaining complete professional " +
					"appearance supports psychological confidence. Keep a blazer nearby for unexpected " +
					"video calls when working from home.",
				URL: src.BaseURL + "/virtual-meeting-style",
			},
		}

	case "style_knowledge_base":
		articles = []Article{
			{
				Title: "Texture Mixing Mastery: Adding Visual Interest to Simple Outfits",
				Content: "Texture mixing elevates simple outfits by creating visual depth and sophistication " +
					"without relying on bold colors or patterns. Smooth textures like silk and satin pair " +
					"beautifully with rough textures like tweed or corduroy. Shiny surfaces such as " +
					"leather complement matte fabrics like cotton or wool. Mixing weights adds dimension " +
					"- combine heavy knits with lightweight chiffon or substantial denim with delicate " +
					"lace details. Limit texture mixing to two or three different textures per outfit to " +
					"avoid overwhelming the eye. Neutral color palettes allow textures to be the focal " +
					"point without competing elements.",
				URL: src.BaseURL + "/texture-mixing-guide",
			},
			{
				Title: "Confidence Through Clothing: Psychology of Personal Style",
				Content: "Personal style serves as external expression of internal identity, directly " +
					"impacting confidence and self-perception. Research shows that clothing choices " +
					"affect both how others perceive us and how we perceive ourselves. Well-fitted, " +
					"comfortable clothing reduces self-consciousness and allows focus on important tasks " +
					"rather than appearance concerns. Color choices influence mood - wearing preferred " +
					"colors boosts confidence while unflattering colors can diminish self-assurance. " +
					"Developing personal style involves identifying clothing that aligns with lifestyle, " +
					"values, and authentic self-expression rather than following trends blindly. " +
					"Confidence comes from wearing clothes that feel genuinely representative of " +
					"personal identity.",
				URL: src.BaseURL + "/confidence-through-clothing",
			},
		}

	default:
		articles = []Article{
			{
				Title: "Universal Style Principles for Every Wardrobe",
				Content: "Successful personal style builds on universal principles that transcend trends " +
					"and individual preferences. Quality matters more than quantity - investing in fewer, " +
					"better-made pieces provides superior long-term value and satisfaction. Proper fit " +
					"transforms even basic pieces into polished looks, while poor fit undermines " +
					"expensive designer items. Color coordination creates harmony and sophistication, " +
					"starting with neutral foundations and adding accent colors gradually. Comfort " +
					"enables confidence - clothing should enhance rather than restrict movement and " +
					"self-expression. Personal style develops over time through experimentation and " +
					"reflection, guided by lifestyle needs and authentic preferences rather than external " +
					"pressure to follow trends.",
				URL: "https://style-education.com/universal-principles",
			},
		}
	}

	return stampArticles(articles)
}
