package service

// AdviceItem is one curated piece of financial education content.
type AdviceItem struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

const (
	AdviceArticle = "Article"
	AdviceVideo   = "Video"
)

// FinancialAdvice returns the curated content catalog. The list is static
// editorial content, not derived from user data.
func FinancialAdvice() []AdviceItem {
	return []AdviceItem{
		{
			Title:       "Budget Management 101: A Step-by-Step Guide",
			Type:        AdviceArticle,
			Description: "This comprehensive article walks you through the basics of managing your budget effectively, providing tips to track expenses and save money.",
			URL:         "https://cleverfoxplanner.com/blogs/articles/budgeting-101-how-to-start-budgeting",
		},
		{
			Title:       "Top 5 Money-Saving Tips You Need to Know",
			Type:        AdviceVideo,
			Description: "Watch this engaging video to discover practical money-saving strategies that can help you boost your savings without compromising your lifestyle.",
			URL:         "https://www.youtube.com/watch?v=L1vOty8pUOY",
		},
		{
			Title:       "Investing for Beginners: Where to Start",
			Type:        AdviceArticle,
			Description: "If you're new to investing, this article will guide you through the basics and explain how to build a strong financial portfolio from the ground up.",
			URL:         "https://www.fidelity.com/viewpoints/personal-finance/how-to-start-investing",
		},
		{
			Title:       "Master Your Monthly Budget in 30 Minutes",
			Type:        AdviceVideo,
			Description: "A quick, 30-minute tutorial that teaches you how to create and manage a monthly budget using proven techniques and easy-to-use tools.",
			URL:         "https://www.youtube.com/watch?v=aFLVTJjfTM8",
		},
		{
			Title:       "Emergency Fund: Why It's Crucial and How to Build One",
			Type:        AdviceArticle,
			Description: "This article explains the importance of having an emergency fund and offers tips on how to build one to ensure financial stability.",
			URL:         "https://www.nerdwallet.com/article/banking/emergency-fund-why-it-matters",
		},
		{
			Title:       "Debt Management: Get Out of Debt Faster",
			Type:        AdviceVideo,
			Description: "Learn the top strategies for reducing and managing debt effectively. This video breaks down proven debt management techniques step by step.",
			URL:         "https://www.youtube.com/watch?v=77922HIaDF8",
		},
		{
			Title:       "Smart Ways to Reduce Your Expenses",
			Type:        AdviceArticle,
			Description: "Find out clever ways to cut down on your expenses without sacrificing the things you love.",
			URL:         "https://www.incharge.org/financial-literacy/budgeting-saving/how-to-cut-your-expenses/",
		},
		{
			Title:       "Financial Planning: Set Realistic Goals",
			Type:        AdviceVideo,
			Description: "Setting realistic financial goals is key to achieving financial success. Watch this video for tips on effective financial planning.",
			URL:         "https://www.youtube.com/watch?v=ZhxaSvmc8SM",
		},
	}
}
