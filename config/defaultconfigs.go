package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawStoneBackground:      false,
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		FullWidthLetters:         false,
		UseGridLines:             true,
		Colors: ConfigColors{
			BoardColor:        180,
			BoardColorAlt:     180,
			BlackColor:        232,
			BlackColorAlt:     232,
			WhiteColor:        255,
			WhiteColorAlt:     255,
			LineColor:         94,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 2,
			ForbiddenColorBG:  1,
		},
		Symbols: ConfigSymbols{
			BlackStone:  '●',
			WhiteStone:  '●',
			BoardSquare: '┼',
			StarPoint:   '╋',
			Cursor:      '┼',
			LastPlayed:  '┼',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		AI: AIConfig{
			Difficulty: "medium",
			Easy:       AILevel{BudgetMs: 1000, Depth: 1},
			Medium:     AILevel{BudgetMs: 5000, Depth: 2},
			Hard:       AILevel{BudgetMs: 15000, Depth: 4},
		},
		Game: GameSettings{
			Mode:         "hva",
			TurnLimitSec: 15,
			RecordGames:  true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
