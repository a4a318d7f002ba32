// renju-local is a terminal application to play Gomoku under Renju-like rules offline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"renju-local/config"
	"renju-local/engine"
	"renju-local/engine/local"
	"renju-local/logging"
	"renju-local/rules"
	"renju-local/sgf"
	"renju-local/types"
	"renju-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagConfig     = flag.String("config", "", "Path to a config file (default: XDG config dir)")
	flagMode       = flag.String("mode", "", "Game mode: hva, avh, hvh or ava")
	flagColor      = flag.String("color", "", "Your color against the AI (black or white)")
	flagDifficulty = flag.String("difficulty", "", "AI difficulty (easy, medium, hard)")
	flagQuickStart = flag.Bool("play", false, "Start game immediately with defaults")
	flagFocus      = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var commandLine *tview.InputField
var cfg *config.Config
var logger *zap.SugaredLogger
var ruleSet rules.RuleSet

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("renju-local %s\n", Version)
		return
	}

	var err error
	if *flagConfig != "" {
		cfg, err = config.Load(*flagConfig)
	} else {
		cfg, err = config.InitConfig()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err = logging.New(cfg.LogPath(), cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	initial, err := buildGameConfigFromFlags()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ruleSet = rules.NewRenju()
	quickStart := *flagQuickStart || *flagMode != "" || *flagColor != "" || *flagDifficulty != "" || *flagFocus

	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ● renju ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoardUI(app, cfg, gameHint)

	commandLine = tview.NewInputField().SetLabel(":")
	commandLine.SetDoneFunc(func(key tcell.Key) {
		if key == tcell.KeyEnter && commandLine.GetText() != "" {
			gameBoard.Command(commandLine.GetText())
		}
		commandLine.SetText("")
		app.SetFocus(gameBoard.Box)
	})

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint, commandLine)
	gameBoard.Box.SetInputCapture(handleBoardKey)

	history := ui.NewHistoryBrowser(cfg.HistoryDir(), ruleSet, func() {
		rootPage.SwitchToPage("setup")
	})

	colorConfig := ui.NewColorConfig(cfg, func(err error) {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
		if err != nil {
			logger.Warnw("saving colors failed", "err", err)
			showError(fmt.Sprintf("Could not save colors:\n%s", err.Error()))
		}
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			colorConfig.Cancel()
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	setupUI := ui.NewGameSetup(initial, ui.SetupActions{
		Start: startGame,
		History: func() {
			history.Refresh()
			rootPage.SwitchToPage("history")
		},
		Colors: func() {
			rootPage.SwitchToPage("colors")
		},
		Save: saveDefaults,
		Quit: app.Stop,
	})

	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 64), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("history", history.Flex(), true, false)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(initial)
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	err = app.SetRoot(rootPage, true).Run()
	gameBoard.Close()
	if err != nil {
		logger.Errorw("terminal UI failed", "err", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleBoardKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		gameBoard.MoveSelection(-1, 0)
	case tcell.KeyDown:
		gameBoard.MoveSelection(1, 0)
	case tcell.KeyLeft:
		gameBoard.MoveSelection(0, -1)
	case tcell.KeyRight:
		gameBoard.MoveSelection(0, 1)
	case tcell.KeyEnter:
		gameBoard.PlaceSelected()
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q':
			if _, ok := gameBoard.SelectedTile(); ok && !gameBoard.IsFinished() {
				gameBoard.ResetSelection()
			} else {
				gameBoard.Close()
				rootPage.SwitchToPage("setup")
			}
			return nil
		case 'h':
			gameBoard.MoveSelection(0, -1)
		case 'j':
			gameBoard.MoveSelection(1, 0)
		case 'k':
			gameBoard.MoveSelection(-1, 0)
		case 'l':
			gameBoard.MoveSelection(0, 1)
		case ':':
			app.SetFocus(commandLine)
			return nil
		case 'c':
			gameBoard.Submit(types.NewAction(types.ActionClaimForbidden))
		case 'd':
			gameBoard.Submit(types.NewAction(types.ActionOfferDraw))
		case 'a':
			gameBoard.Submit(types.NewAction(types.ActionAcceptDraw))
		case 'r':
			gameBoard.Submit(types.NewAction(types.ActionRejectDraw))
		case 'u':
			gameBoard.Submit(types.NewAction(types.ActionUndo))
		case 'R':
			gameBoard.Submit(types.NewAction(types.ActionResign))
		case 'x':
			gameBoard.ToggleFouls()
		case 'f':
			if gameBoard.ToggleFocusMode() {
				ui.BuildFocusLayout(gameFrame, gameBoard)
			} else {
				ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint, commandLine)
			}
		}
	}
	return event
}

// startGame starts a game with the given configuration.
func startGame(gameCfg engine.GameConfig) {
	gameBoard.Close()
	gameCfg.AIBudget, gameCfg.AIDepth = cfg.AI.Budget(gameCfg.Difficulty)

	gameID := uuid.NewString()
	log := logger.With("game", gameID)
	black, white := local.NewPlayers(gameCfg, ruleSet, log)

	var rec engine.Recorder
	if cfg.Game.RecordGames {
		r, err := sgf.NewGameRecord(cfg.HistoryDir(), gameID, ruleSet.Name(), black.Name(), white.Name())
		if err != nil {
			log.Warnw("game will not be recorded", "err", err)
		} else {
			rec = r
		}
	}

	session := local.New(gameCfg, ruleSet, black, white, rec, log)
	gameBoard.InfoPanel().SetGame(ruleSet.Name(), black.Name(), white.Name())
	if err := gameBoard.ConnectEngine(session); err != nil {
		session.Close()
		showError(fmt.Sprintf("Failed to start game:\n%s", err.Error()))
		return
	}
	rootPage.SwitchToPage("gameview")
	app.SetFocus(gameBoard.Box)
}

// saveDefaults stores the setup form's choices in the config file.
func saveDefaults(gameCfg engine.GameConfig) {
	cfg.Game.Mode = gameCfg.Mode.String()
	cfg.AI.Difficulty = gameCfg.Difficulty.String()
	cfg.Game.TurnLimitSec = int(gameCfg.TurnLimit.Seconds())
	cfg.Game.TotalTimeSec = int(gameCfg.TotalTime.Seconds())
	if err := cfg.Save(); err != nil {
		logger.Warnw("saving config failed", "err", err)
		showError(fmt.Sprintf("Could not save settings:\n%s", err.Error()))
	}
}

func showError(text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}

// buildGameConfigFromFlags starts from the config file and applies flags.
func buildGameConfigFromFlags() (engine.GameConfig, error) {
	gameCfg, err := cfg.GameConfig()
	if err != nil {
		return gameCfg, err
	}

	if *flagMode != "" {
		if gameCfg.Mode, err = engine.ParseMode(*flagMode); err != nil {
			return gameCfg, err
		}
	}

	switch *flagColor {
	case "":
	case "black", "b":
		gameCfg.Mode = engine.ModeFor(types.Black)
	case "white", "w":
		gameCfg.Mode = engine.ModeFor(types.White)
	default:
		return gameCfg, fmt.Errorf("unknown color %q", *flagColor)
	}

	if *flagDifficulty != "" {
		if gameCfg.Difficulty, err = engine.ParseDifficulty(*flagDifficulty); err != nil {
			return gameCfg, err
		}
	}
	gameCfg.AIBudget, gameCfg.AIDepth = cfg.AI.Budget(gameCfg.Difficulty)
	return gameCfg, nil
}
