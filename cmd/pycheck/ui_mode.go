package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode управляет bubbletea-прогрессом при проверке каталога.
type uiMode uint8

const (
	// uiModeAuto включает TUI только когда stdout — терминал.
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

// parseUIMode разбирает значение флага --ui. Пустая строка считается auto.
func parseUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return uiModeAuto, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

func (m uiMode) useTUI() bool {
	switch m {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
