package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"renju-local/engine"
)

var (
	appName = "renju-local"
	cfgFile = appName + "/config.json"
)

// EnvPrefix prefixes environment overrides, e.g. RENJU_AI_DIFFICULTY=hard.
const EnvPrefix = "RENJU"

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board" mapstructure:"board"`
	BoardColorAlt     int `json:"board_alt" mapstructure:"board_alt"`
	BlackColor        int `json:"black" mapstructure:"black"`
	BlackColorAlt     int `json:"black_alt" mapstructure:"black_alt"`
	WhiteColor        int `json:"white" mapstructure:"white"`
	WhiteColorAlt     int `json:"white_alt" mapstructure:"white_alt"`
	LineColor         int `json:"line" mapstructure:"line"`
	CursorColorFG     int `json:"cursor_fg" mapstructure:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg" mapstructure:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg" mapstructure:"last_played_bg"`
	ForbiddenColorBG  int `json:"forbidden_bg" mapstructure:"forbidden_bg"`
}

type ConfigSymbols struct {
	BlackStone  rune `json:"black" mapstructure:"black"`
	WhiteStone  rune `json:"white" mapstructure:"white"`
	BoardSquare rune `json:"board" mapstructure:"board"`
	StarPoint   rune `json:"star" mapstructure:"star"`
	Cursor      rune `json:"cursor" mapstructure:"cursor"`
	LastPlayed  rune `json:"last_played" mapstructure:"last_played"`
}

type Theme struct {
	DrawStoneBackground      bool          `json:"draw_stone_bg" mapstructure:"draw_stone_bg"`
	DrawCursorBackground     bool          `json:"draw_cursor_bg" mapstructure:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg" mapstructure:"draw_last_played_bg"`
	FullWidthLetters         bool          `json:"fullwidth_letters" mapstructure:"fullwidth_letters"`
	UseGridLines             bool          `json:"use_grid_lines" mapstructure:"use_grid_lines"`
	Colors                   ConfigColors  `json:"colors" mapstructure:"colors"`
	Symbols                  ConfigSymbols `json:"symbols" mapstructure:"symbols"`
}

// AILevel is the search budget for one difficulty.
type AILevel struct {
	BudgetMs int `json:"budget_ms" mapstructure:"budget_ms"`
	Depth    int `json:"depth" mapstructure:"depth"`
}

// AIConfig holds computer opponent settings.
type AIConfig struct {
	Difficulty string  `json:"difficulty" mapstructure:"difficulty"`
	Easy       AILevel `json:"easy" mapstructure:"easy"`
	Medium     AILevel `json:"medium" mapstructure:"medium"`
	Hard       AILevel `json:"hard" mapstructure:"hard"`
}

// Level returns the settings for d.
func (c AIConfig) Level(d engine.Difficulty) AILevel {
	switch d {
	case engine.Easy:
		return c.Easy
	case engine.Hard:
		return c.Hard
	}
	return c.Medium
}

// Budget returns the time budget and depth cap for d.
func (c AIConfig) Budget(d engine.Difficulty) (time.Duration, int) {
	l := c.Level(d)
	return time.Duration(l.BudgetMs) * time.Millisecond, l.Depth
}

// GameSettings holds defaults for new games.
type GameSettings struct {
	Mode         string `json:"mode" mapstructure:"mode"`
	TurnLimitSec int    `json:"turn_limit_sec" mapstructure:"turn_limit_sec"`
	TotalTimeSec int    `json:"total_time_sec" mapstructure:"total_time_sec"`
	RecordGames  bool   `json:"record_games" mapstructure:"record_games"`
}

type HistoryConfig struct {
	Dir string `json:"dir" mapstructure:"dir"`
}

// LogConfig controls the debug log. Path "off" disables logging.
type LogConfig struct {
	Path  string `json:"path" mapstructure:"path"`
	Level string `json:"level" mapstructure:"level"`
}

type Config struct {
	Theme   Theme         `json:"theme" mapstructure:"theme"`
	AI      AIConfig      `json:"ai" mapstructure:"ai"`
	Game    GameSettings  `json:"game" mapstructure:"game"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Log     LogConfig     `json:"log" mapstructure:"log"`
}

// envKeys can be overridden from the environment even when the config
// file does not mention them.
var envKeys = []string{
	"ai.difficulty",
	"game.mode",
	"game.turn_limit_sec",
	"game.total_time_sec",
	"game.record_games",
	"history.dir",
	"log.path",
	"log.level",
}

// InitConfig loads the XDG config file, if any, and environment overrides
// over DefaultConfig.
func InitConfig() (*Config, error) {
	absPath, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		absPath = ""
	}
	return Load(absPath)
}

// Load reads path (empty for none) plus environment overrides.
func Load(path string) (*Config, error) {
	config := DefaultConfig

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.BlackStone, c.Theme.Symbols.WhiteStone, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.StarPoint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if _, err := engine.ParseDifficulty(c.AI.Difficulty); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if _, err := engine.ParseMode(c.Game.Mode); err != nil {
		return &InvalidConfig{err.Error()}
	}
	for _, l := range []AILevel{c.AI.Easy, c.AI.Medium, c.AI.Hard} {
		if l.BudgetMs <= 0 || l.Depth <= 0 {
			return &InvalidConfig{"AI budget and depth must be positive"}
		}
	}
	if c.Game.TurnLimitSec < 0 || c.Game.TotalTimeSec < 0 {
		return &InvalidConfig{"time limits cannot be negative"}
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.Log.Level)}
	}
	return nil
}

// GameConfig builds the engine settings for a new game.
func (c *Config) GameConfig() (engine.GameConfig, error) {
	mode, err := engine.ParseMode(c.Game.Mode)
	if err != nil {
		return engine.GameConfig{}, err
	}
	d, err := engine.ParseDifficulty(c.AI.Difficulty)
	if err != nil {
		return engine.GameConfig{}, err
	}
	budget, depth := c.AI.Budget(d)
	return engine.GameConfig{
		Mode:       mode,
		Difficulty: d,
		TurnLimit:  time.Duration(c.Game.TurnLimitSec) * time.Second,
		TotalTime:  time.Duration(c.Game.TotalTimeSec) * time.Second,
		AIBudget:   budget,
		AIDepth:    depth,
	}, nil
}

// HistoryDir is where game records are saved.
func (c *Config) HistoryDir() string {
	if c.History.Dir != "" {
		return c.History.Dir
	}
	return filepath.Join(xdg.DataHome, appName, "history")
}

// LogPath is the debug log file, or "off".
func (c *Config) LogPath() string {
	if c.Log.Path != "" {
		return c.Log.Path
	}
	return filepath.Join(xdg.StateHome, appName, "renju.log")
}

func (c *Config) Save() error {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		return err
	}
	return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}
