package util

import "fmt"

// Helper prints the help message
func Helper() {
	title := titleStyle.Render("🎬 ottfinder - 台灣串流平台搜尋工具")

	usage := helpStyle.Render("📖 Usage:")
	usageExamples := []string{
		"  ottfinder",
		"  ottfinder " + optionStyle.Render("[options]"),
		"  ottfinder " + optionStyle.Render("[options]") + " " + exampleStyle.Render("[title or mood]"),
	}

	note := helpStyle.Render("📝 Note:") + " 也可以直接貼上分享連結 (含 ?q= 參數) 作為查詢"
	example := "  Example: " + exampleStyle.Render("ottfinder \"沙丘：第二部\"")

	options := helpStyle.Render("⚙️  Options:")
	optionsList := []string{
		"  " + optionStyle.Render("-debug") + "      🐛 Enable debug mode with detailed information",
		"  " + optionStyle.Render("-help, -h") + "   📚 Show this help message",
		"  " + optionStyle.Render("-version") + "    ℹ️  Show version information",
		"  " + optionStyle.Render("-history") + "    🕑 Pick a query from recent searches",
		"  " + optionStyle.Render("-watchlist") + "  ⭐ Open a saved title from the watchlist",
	}

	env := helpStyle.Render("🌱 Environment:")
	envList := []string{
		"  " + optionStyle.Render("GEMINI_API_KEY") + "  API key for the search backend (also read from .env)",
		"  " + optionStyle.Render("OTT_MODEL") + "       Override the backend model",
		"  " + optionStyle.Render("OTT_DATA_DIR") + "    Directory for the local watchlist database",
	}

	fmt.Println(title)
	fmt.Println()
	fmt.Println(usage)
	for _, line := range usageExamples {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(note)
	fmt.Println(example)
	fmt.Println()
	fmt.Println(options)
	for _, line := range optionsList {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(env)
	for _, line := range envList {
		fmt.Println(line)
	}
	fmt.Println()
}
