// Term lists sample sections in the terminal.
//
//	go run ./example/term/
//	go run ./example/term/ -sections 20 -rows 50
//
// Keys: ↑/↓ select, ←/→ reveal or hide the row's action, enter runs it,
// pgup/pgdn scroll, r reloads, q quits. The mouse wheel scrolls and rows
// can be swiped with the left button.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-theft-auto/tableview"
	"github.com/go-theft-auto/tableview/backend/term"
	"github.com/go-theft-auto/tableview/internal/demo"
)

func main() {
	verbose := flag.Bool("v", false, "log engine events to -log")
	logPath := flag.String("log", "tableview.log", "log file used with -v")
	sections := flag.Int("sections", 5, "number of sections")
	rows := flag.Int("rows", 12, "rows per section")
	flag.Parse()

	if err := run(*verbose, *logPath, *sections, *rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(verbose bool, logPath string, sections, rows int) error {
	// The terminal belongs to the UI, so logs go to a file.
	var out io.Writer = io.Discard
	if verbose {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	src := demo.New(sections, rows, demo.LinesUnit)
	model, err := term.NewModel(src, src,
		term.WithTableOptions(tableview.WithLogger(logger)),
	)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
