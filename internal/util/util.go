package util

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/manifoldco/promptui"
)

var (
	IsDebug bool

	// Style definitions for prompts and errors
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Underline(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Bold(true)

	optionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#45B7D1")).
			Italic(true)

	exampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4757")).
			Bold(true)

	debugErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FF4757")).
			Padding(1, 2)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA726")).
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF69B4")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)
)

// SetDebugMode sets the debug mode
func SetDebugMode(debug bool) {
	IsDebug = debug
}

// GetQuery gets the search query from command line arguments or user input
func GetQuery() (string, error) {
	if len(flag.Args()) > 0 {
		query := strings.TrimSpace(strings.Join(flag.Args(), " "))
		if query == "" {
			return "", fmt.Errorf("search query must not be empty")
		}
		fmt.Println(titleStyle.Render("🎬 搜尋目標: " + query))
		return query, nil
	}

	fmt.Println(helpStyle.Render("🔍 搜尋電影或影集"))
	return getUserInput("輸入片名或關鍵字（直接 Enter 開啟主畫面）")
}

// ErrorHandler returns a stylized error message
func ErrorHandler(err error) string {
	if IsDebug {
		errorMessage := "🚨 DEBUG ERROR 🔍"
		fullError := fmt.Sprintf("%+v", err)

		styledHeader := errorStyle.Render(errorMessage)
		styledError := debugErrorStyle.Render(fullError)

		return fmt.Sprintf("%s\n%s", styledHeader, styledError)
	}

	baseError := fmt.Sprintf("%v", err)
	hint := "run the program with -debug to see details"

	styledError := errorStyle.Render(fmt.Sprintf("❌ %s", baseError))
	styledHint := warningStyle.Render(fmt.Sprintf("💡 %s", hint))

	return fmt.Sprintf("%s\n%s", styledError, styledHint)
}

// getUserInput prompts the user for a search query and returns it
func getUserInput(label string) (string, error) {
	// Use simpler input method on Windows to avoid readline ANSI issues
	if runtime.GOOS == "windows" {
		return getSimpleInput(label)
	}

	styledLabel := promptStyle.Render("🎮 " + label)

	prompt := promptui.Prompt{
		Label: styledLabel,
	}

	query, err := prompt.Run()
	if err != nil {
		return "", err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		// empty answer opens the dashboard instead of searching
		return "", nil
	}

	fmt.Println(successStyle.Render("✓ 已收到查詢: " + query))
	return query, nil
}

// getSimpleInput provides a fallback input method for Windows
func getSimpleInput(label string) (string, error) {
	fmt.Print(promptStyle.Render("🎮 " + label + ": "))

	reader := bufio.NewReader(os.Stdin)
	query, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", nil
	}

	fmt.Println(successStyle.Render("✓ 已收到查詢: " + query))
	return query, nil
}
