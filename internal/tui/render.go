package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/appshell/internal/apperr"
	"github.com/jask/appshell/internal/lifecycle"
)

// renderState draws the common phases of l and defers to loaded for data.
func renderState[T any](l *lifecycle.Lifecycle[T], width int, empty string, loaded func(T) string) string {
	st := l.State()
	switch st.Phase() {
	case lifecycle.Idle:
		return mutedStyle.Render("Nothing loaded yet.")
	case lifecycle.Loading:
		return mutedStyle.Render("Loading…")
	case lifecycle.Empty:
		return mutedStyle.Render(empty)
	case lifecycle.Failed:
		e, _ := st.Err()
		return renderError(e, width)
	case lifecycle.Loaded:
		v, _ := st.Data()
		return loaded(v)
	}
	return ""
}

// renderError shows the user message; the retry hint appears only for
// recoverable errors.
func renderError(e apperr.AppError, width int) string {
	lines := []string{errorTitleStyle.Render("Something went wrong"), apperr.UserMessage(e)}
	if apperr.IsRecoverable(e) {
		lines = append(lines, "", renderHelp([]key.Binding{keys.Retry}))
	}
	return errorBoxStyle.MaxWidth(max(20, width)).Render(strings.Join(lines, "\n"))
}

// canRetry reports whether l holds a recoverable failure.
func canRetry[T any](l *lifecycle.Lifecycle[T]) bool {
	e, ok := l.State().Err()
	return ok && apperr.IsRecoverable(e)
}

func retryHelp[T any](l *lifecycle.Lifecycle[T], rest ...key.Binding) []key.Binding {
	if canRetry(l) {
		return append([]key.Binding{keys.Retry}, rest...)
	}
	return rest
}

// renderList draws rows with the cursor row highlighted, scrolled to keep
// the cursor visible.
func renderList(rows []string, cursor, width, height int) string {
	if height < 1 {
		height = 1
	}
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(len(rows), start+height)
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		line := ansi.Truncate(rows[i], max(1, width-2), "…")
		if i == cursor {
			out = append(out, cursorStyle.Render("> "+line))
		} else {
			out = append(out, "  "+line)
		}
	}
	return strings.Join(out, "\n")
}

func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor+delta, 0), n-1)
}

func formatCents(currency string, cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, currency, cents/100, cents%100)
}

func field(label, value string) string {
	return labelStyle.Render(label) + " " + value
}

func progressBar(frac float64, width int) string {
	width = max(10, width)
	filled := int(frac * float64(width))
	filled = min(max(filled, 0), width)
	return valueStyle.Render(strings.Repeat("█", filled)) + barStyle.Render(strings.Repeat("░", width-filled))
}
