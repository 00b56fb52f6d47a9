package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type EditorOptions struct {
	TabWidth int `toml:"tab-width"`
}

type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	CommandlineForeground string `toml:"commandline-foreground"`
	CommandlineBackground string `toml:"commandline-background"`
	ErrorForeground       string `toml:"error-foreground"`
	LineNumberForeground  string `toml:"line-number-foreground"`
	SyntaxKeyword         string `toml:"syntax-keyword"`
	SyntaxKeyword2        string `toml:"syntax-keyword2"`
	SyntaxType            string `toml:"syntax-type"`
	SyntaxString          string `toml:"syntax-string"`
	SyntaxComment         string `toml:"syntax-comment"`
	SyntaxPreprocessor    string `toml:"syntax-preprocessor"`
	SyntaxDigit           string `toml:"syntax-digit"`
	SyntaxSymbol          string `toml:"syntax-symbol"`
	SyntaxSymbol2         string `toml:"syntax-symbol2"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			TabWidth: 4,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#B3B1AD",
			StatuslineBackground:  "#0F1419",
			CommandlineForeground: "#B3B1AD",
			CommandlineBackground: "#0F1419",
			ErrorForeground:       "#FF3333",
			LineNumberForeground:  "#3E4B59",
			SyntaxKeyword:         "#FFA759",
			SyntaxKeyword2:        "#FFDD8E",
			SyntaxType:            "#5CCFE6",
			SyntaxString:          "#BAE67E",
			SyntaxComment:         "#5C6773",
			SyntaxPreprocessor:    "#D4BFFF",
			SyntaxDigit:           "#D4BFFF",
			SyntaxSymbol:          "#F29668",
			SyntaxSymbol2:         "#C0C0C0",
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
	if src.ErrorForeground != "" {
		dst.ErrorForeground = src.ErrorForeground
	}
	if src.LineNumberForeground != "" {
		dst.LineNumberForeground = src.LineNumberForeground
	}
	if src.SyntaxKeyword != "" {
		dst.SyntaxKeyword = src.SyntaxKeyword
	}
	if src.SyntaxKeyword2 != "" {
		dst.SyntaxKeyword2 = src.SyntaxKeyword2
	}
	if src.SyntaxType != "" {
		dst.SyntaxType = src.SyntaxType
	}
	if src.SyntaxString != "" {
		dst.SyntaxString = src.SyntaxString
	}
	if src.SyntaxComment != "" {
		dst.SyntaxComment = src.SyntaxComment
	}
	if src.SyntaxPreprocessor != "" {
		dst.SyntaxPreprocessor = src.SyntaxPreprocessor
	}
	if src.SyntaxDigit != "" {
		dst.SyntaxDigit = src.SyntaxDigit
	}
	if src.SyntaxSymbol != "" {
		dst.SyntaxSymbol = src.SyntaxSymbol
	}
	if src.SyntaxSymbol2 != "" {
		dst.SyntaxSymbol2 = src.SyntaxSymbol2
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("VID_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vid"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vid"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
