package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/rivo/tview"

	"renju-local/engine"
)

var setupModes = []engine.Mode{engine.HumanVsAI, engine.AIVsHuman, engine.HumanVsHuman, engine.AIVsAI}
var setupDifficulties = []engine.Difficulty{engine.Easy, engine.Medium, engine.Hard}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form *tview.Form
	flex *tview.Flex
	cfg  engine.GameConfig
}

// SetupActions are the callbacks behind the setup form's buttons.
type SetupActions struct {
	Start   func(engine.GameConfig)
	History func()
	Colors  func()
	Save    func(engine.GameConfig)
	Quit    func()
}

// NewGameSetup creates a new game setup form preset to initial.
func NewGameSetup(initial engine.GameConfig, actions SetupActions) *GameSetupUI {
	setup := &GameSetupUI{cfg: initial}

	modeLabels := make([]string, len(setupModes))
	modeIdx := 0
	for i, m := range setupModes {
		modeLabels[i] = m.Label()
		if m == initial.Mode {
			modeIdx = i
		}
	}
	levels := []string{"Easy", "Medium", "Hard"}

	form := tview.NewForm()

	form.AddDropDown("Mode", modeLabels, modeIdx, func(option string, index int) {
		if index >= 0 {
			setup.cfg.Mode = setupModes[index]
		}
	})

	form.AddDropDown("AI Strength", levels, int(initial.Difficulty), func(option string, index int) {
		if index >= 0 {
			setup.cfg.Difficulty = setupDifficulties[index]
		}
	})

	form.AddInputField("Turn limit (s)", seconds(initial.TurnLimit), 6, tview.InputFieldInteger, func(text string) {
		setup.cfg.TurnLimit = parseSeconds(text)
	})

	form.AddInputField("Game time (s)", seconds(initial.TotalTime), 6, tview.InputFieldInteger, func(text string) {
		setup.cfg.TotalTime = parseSeconds(text)
	})

	form.AddButton("Start Game", func() {
		actions.Start(setup.cfg)
	})
	if actions.History != nil {
		form.AddButton("History", actions.History)
	}
	if actions.Colors != nil {
		form.AddButton("Colors", actions.Colors)
	}
	if actions.Save != nil {
		form.AddButton("Save Defaults", func() {
			actions.Save(setup.cfg)
		})
	}
	form.AddButton("Quit", actions.Quit)

	form.SetBorder(true)
	form.SetTitle(" New Renju Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetButtonBackgroundColor(Palette.ButtonBG)
	form.SetButtonTextColor(Palette.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(Palette.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// Config returns the settings currently selected in the form.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.cfg
}

func seconds(d time.Duration) string {
	return strconv.Itoa(int(d / time.Second))
}

// parseSeconds treats empty or negative input as zero (no limit).
func parseSeconds(text string) time.Duration {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
