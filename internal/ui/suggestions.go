package ui

// SuggestedTitles seeds the idle screen with popular searches.
var SuggestedTitles = []string{
	"奧本海默", "沙丘：第二部", "蒼鷺與少年", "破墓", "周處除三害",
}

// MoodTags are prompt-style searches for when the user has no title in mind.
var MoodTags = []string{
	"🍿 週末爆米花片", "🧠 燒腦懸疑", "😭 痛哭一場", "🔥 爽度破表", "❤️ 甜甜戀愛",
}
