// Package report renders the per-day time report.
package report

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"tasklog/internal/calendar"
	"tasklog/internal/domain"
)

const (
	minNameWidth = len("Total")
	// " | HH:MM | PPP.P%" is 17 columns wide.
	fixedColumnsWidth = 17
	rowIndent         = "    "
)

// Formatter renders a TaskManager as a fixed-width table.
type Formatter struct {
	running lipgloss.Style
	color   bool
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithColor toggles the emphasis of the running task's row.
func WithColor(enabled bool) Option {
	return func(f *Formatter) {
		f.color = enabled
	}
}

// NewFormatter returns a Formatter with colour enabled.
func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{
		running: lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		color:   true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type row struct {
	name    string
	spent   time.Duration
	running bool
}

// Generate renders the report for date. The running task, if any, is
// measured up to now and listed last.
//
// The output is a header line, one line per task, a separator and a total
// line, each terminated by a newline.
func (f *Formatter) Generate(m *domain.TaskManager, date calendar.Date, now time.Time) string {
	rows := collectRows(m, now)

	var total time.Duration
	width := minNameWidth
	for _, r := range rows {
		total += r.spent
		width = max(width, utf8.RuneCountInString(r.name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s \n", date)
	for _, r := range rows {
		line := formatRow(width, r.name, r.spent, percent(r.spent, total))
		if r.running {
			line = f.emphasize(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(rowIndent + strings.Repeat("=", width+fixedColumnsWidth) + "\n")
	b.WriteString(formatRow(width, "Total", total, 100) + "\n")
	return b.String()
}

func (f *Formatter) emphasize(line string) string {
	if !f.color {
		return line
	}
	return f.running.Render(line)
}

func collectRows(m *domain.TaskManager, now time.Time) []row {
	stopped := m.Stopped()
	rows := make([]row, 0, len(stopped)+1)
	for _, task := range stopped {
		rows = append(rows, row{name: task.Name(), spent: task.TimeSpent(now)})
	}
	if running, ok := m.Running(); ok {
		// A clock that reads earlier than the last start counts the tail as zero.
		until := now
		if until.Before(running.StartTime()) {
			until = running.StartTime()
		}
		rows = append(rows, row{name: running.Name(), spent: running.TimeSpent(until), running: true})
	}
	return rows
}

func formatRow(width int, name string, spent time.Duration, pct float64) string {
	return fmt.Sprintf("%s%-*s | %s | %5.1f%%", rowIndent, width, name, FormatDuration(spent), pct)
}

// percent returns part as a share of total, both taken in whole
// milliseconds. A total under one millisecond yields 0.
func percent(part, total time.Duration) float64 {
	totalMs := total.Milliseconds()
	if totalMs <= 0 {
		return 0
	}
	return float64(part.Milliseconds()) / float64(totalMs) * 100
}

// FormatDuration renders d as HH:MM. Hours do not roll over into days.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
