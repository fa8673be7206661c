package crawler

// StaticArticles returns the built-in stylist guides. They cover the core
// styling topics so a fresh install has searchable content before any
// network crawl runs.
func StaticArticles() []Article {
	return stampArticles([]Article{
		{
			Title: "Complete Guide to Autumn 2025 Fashion Trends",
			Content: "This autumn, fashion embraces rich textures and sophisticated earth tones that reflect " +
				"the season's natural beauty. Key trends include oversized blazers in camel, burgundy, and " +
				"forest green that provide structure while maintaining comfort. Knee-high boots in leather " +
				"and suede become statement pieces, especially when paired with midi skirts or wide-leg " +
				"trousers. Chunky knit sweaters in cream, oatmeal, and deep navy offer cozy luxury for " +
				"cooler days. Animal prints return with refined leopard and snake patterns appearing on " +
				"dresses, scarves, and handbags. Faux fur coats provide glamour for evening occasions while " +
				"remaining ethically conscious. Layering becomes an art form - start with fitted basics, " +
				"add textured middle pieces, and finish with statement outerwear.",
			URL: "https://example-fashion-education.com/autumn-trends-2025",
		},
		{
			Title: "Mastering the Art of Versatile Blazer Styling",
			Content: "The versatile blazer stands as the ultimate wardrobe transformer, elevating any outfit " +
				"from casual to sophisticated. For professional settings, pair with tailored trousers and " +
				"pointed-toe flats in matching or complementary colors. Create effortless weekend style by " +
				"wearing over fitted t-shirts with dark denim and white sneakers. Evening elegance emerges " +
				"when styled with silk camisoles, wide-leg pants, and heeled mules or pumps. The key lies " +
				"in balancing proportions - oversized blazers require fitted bottoms while structured " +
				"blazers pair well with flowing silhouettes. Choose neutral colors like navy, black, camel, " +
				"or charcoal for maximum versatility. Rolling sleeves slightly creates a relaxed, " +
				"approachable appearance. Quality construction in blazers justifies investment since they " +
				"transcend seasonal trends.",
			URL: "https://example-styling-academy.com/blazer-mastery",
		},
		{
			Title: "Comprehensive Winter Boot Selection and Styling Guide",
			Content: "Winter footwear combines functionality with fashion, requiring careful consideration " +
				"of both climate needs and style preferences. Knee-high boots in black or brown leather " +
				"provide sophistication for office environments while offering warmth and protection. " +
				"Combat boots with interesting buckle details add edgy contrast to feminine dresses and " +
				"skirts. Over-the-knee boots create dramatic silhouettes when paired with mini skirts or " +
				"fitted dresses, elongating legs beautifully. Ankle boots with block heels offer " +
				"versatility for daily wear, working equally well with jeans, skirts, and dresses. " +
				"Waterproof hiking boots transcend their outdoor origins when styled with cropped jeans " +
				"and cozy sweaters. Prioritize boots with good tread for safety on icy surfaces. Invest in " +
				"quality leather that improves with age and proper care.",
			URL: "https://example-footwear-guide.com/winter-boots-2025",
		},
		{
			Title: "Building a Sustainable and Ethical Fashion Wardrobe",
			Content: "Sustainable fashion choices benefit personal style, financial wellbeing, and " +
				"environmental responsibility simultaneously. Investing in quality pieces that last " +
				"multiple seasons proves more economical than frequently replacing cheaper items. Choose " +
				"natural fibers like organic cotton, linen, and ethically-sourced wool over synthetic " +
				"materials that shed microplastics. Shop secondhand and vintage stores for unique pieces " +
				"at significantly lower prices while reducing environmental impact. Rent formal wear for " +
				"special occasions instead of purchasing items worn once. Proper garment care through " +
				"gentle washing, appropriate storage, and timely repairs extends clothing life " +
				"dramatically. Support brands with transparent supply chains and ethical manufacturing " +
				"practices. Organize clothing swaps with friends to refresh wardrobes without " +
				"environmental cost.",
			URL: "https://example-sustainable-style.org/ethical-wardrobe",
		},
		{
			Title: "Professional Accessorizing: Elevating Any Outfit Strategically",
			Content: "Strategic accessorizing transforms basic outfits into polished, professional looks " +
				"without requiring wardrobe overhaul. Begin with one statement piece and build supporting " +
				"elements around it - choose either bold jewelry, colorful scarf, or striking handbag as " +
				"the focal point. Mix metal tones confidently by establishing one dominant metal (70%) " +
				"with subtle accents of another (30%). Layer necklaces of different lengths for " +
				"sophisticated visual interest while maintaining workplace appropriateness. Match handbag " +
				"color to shoes for cohesive traditional looks, or create intentional contrast for modern " +
				"statements. Belts define waistlines and add structure to flowing garments like dresses " +
				"and oversized tops. Sunglasses should complement face shapes - round faces benefit from " +
				"angular frames while square faces prefer rounded styles.",
			URL: "https://example-professional-styling.com/accessory-mastery",
		},
		{
			Title: "Decoding Business Casual: Modern Professional Dress Guidelines",
			Content: "Business casual dress codes require balancing professionalism with personal " +
				"expression and comfort. For women, blouses in silk or high-quality cotton pair " +
				"excellently with dress pants or knee-length pencil skirts. Cardigans and unstructured " +
				"blazers add polish when needed while maintaining approachability. Choose closed-toe " +
				"shoes with moderate heels for comfort during long workdays - pumps, loafers, or " +
				"professional flats work well. Avoid revealing necklines, hemlines above the knee, or " +
				"casual fabrics like denim and jersey. Build around neutral colors like navy, gray, " +
				"charcoal, and cream for maximum versatility. Add personality through accessories like " +
				"colorful scarves, statement jewelry, or interesting textures. Invest in quality fabrics " +
				"that resist wrinkles and maintain crisp appearance throughout demanding schedules.",
			URL: "https://example-workplace-fashion.com/business-casual-guide",
		},
		{
			Title: "Creating Memorable and Confident Date Night Looks",
			Content: "Successful date night styling balances personal expression with occasion " +
				"appropriateness while prioritizing comfort and confidence. Little black dresses remain " +
				"timeless choices - style differently with accessories for various date types and venues. " +
				"For casual coffee dates, try high-waisted jeans with silk blouses and comfortable ankle " +
				"boots that allow walking. Dinner dates call for midi dresses or elegant separates with " +
				"heeled sandals that provide sophistication without sacrificing stability. Concert and " +
				"entertainment venues suit edgy leather jackets over fitted tops with comfortable boots " +
				"for standing and dancing. Always consider venue and planned activities when choosing " +
				"outfits. Avoid new shoes or uncomfortable fabrics that might distract from enjoying the " +
				"experience. Confidence comes from feeling authentic and comfortable in your choices.",
			URL: "https://example-date-style.com/romantic-outfit-ideas",
		},
		{
			Title: "Color Theory and Coordination for Effortless Style",
			Content: "Understanding color theory eliminates guesswork from outfit coordination while " +
				"creating sophisticated, intentional looks. Monochromatic schemes using different shades " +
				"and tints of the same color create elegant, elongating effects that work for any body " +
				"type. Complementary colors like navy and coral or purple and yellow provide vibrant, " +
				"eye-catching contrast perfect for making statements. Neutral bases of black, white, " +
				"gray, beige, and cream allow colorful accessories and accent pieces to shine without " +
				"overwhelming. Earth tones including various browns, greens, and oranges work " +
				"harmoniously together, creating warm, approachable looks. Metallics like gold, silver, " +
				"and rose gold function as neutrals, adding glamour without competing with other colors. " +
				"Start with two colors maximum when beginning, then gradually experiment with more " +
				"complex combinations as confidence and understanding grow.",
			URL: "https://example-color-styling.com/coordination-mastery",
		},
		{
			Title: "Body-Positive Styling: Enhancing Your Natural Silhouette",
			Content: "Body-positive styling focuses on enhancing individual silhouettes while promoting " +
				"comfort, confidence, and personal expression. Pear-shaped figures can emphasize upper " +
				"bodies with statement tops, interesting necklines, and structured jackets while choosing " +
				"A-line or straight-leg bottoms. Apple shapes benefit from empire waistlines, V-necks, " +
				"and vertical lines that create length and draw attention upward. Hourglass figures can " +
				"emphasize waists with belted pieces, fitted silhouettes, and wrap styles that showcase " +
				"natural curves. Athletic builds look stunning in softer fabrics, peplum tops, and " +
				"flowing pieces that add feminine curves. Remember these are guidelines for exploration, " +
				"not rigid rules - the most important factor is how clothing makes you feel confident, " +
				"comfortable, and authentically yourself.",
			URL: "https://example-body-positive-style.com/silhouette-guide",
		},
		{
			Title: "Budget-Conscious Fashion: Building Style Without Breaking Bank",
			Content: "Creating exceptional personal style requires strategy rather than unlimited budgets, " +
				"focusing on smart investments and creative styling. Identify pieces worn most frequently " +
				"- quality blazer, comfortable shoes, versatile dress, well-fitted jeans - and invest " +
				"accordingly since cost-per-wear decreases over time. Shop end-of-season sales for " +
				"classic pieces that transcend trends, buying winter coats in spring and summer dresses " +
				"in fall. Consignment and thrift stores offer designer pieces at significant discounts " +
				"while providing unique finds unavailable in mainstream retail. Mix high and low price " +
				"points - pair affordable basics with one statement investment piece for balanced looks. " +
				"Proper tailoring makes inexpensive pieces appear custom-made and luxurious. Build " +
				"gradually rather than purchasing complete outfits, allowing wardrobe to develop " +
				"organically over time.",
			URL: "https://example-budget-fashion.com/smart-shopping-guide",
		},
	})
}
