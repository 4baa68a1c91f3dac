package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const staleThreshold = 30 * 24 * time.Hour

type LipglossRenderer struct {
	width int
	now   func() time.Time
	r     *lipgloss.Renderer

	okStyle         lipgloss.Style
	failStyle       lipgloss.Style
	metaStyle       lipgloss.Style
	reprStyle       lipgloss.Style
	detailStyle     lipgloss.Style
	timeStyle       lipgloss.Style
	staleStyle      lipgloss.Style
	recentTimeStyle lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:           width,
		now:             time.Now,
		r:               r,
		okStyle:         r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		failStyle:       r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		metaStyle:       r.NewStyle().Faint(true),
		reprStyle:       r.NewStyle().Bold(true),
		detailStyle:     r.NewStyle().Faint(true),
		timeStyle:       r.NewStyle().Faint(true),
		recentTimeStyle: r.NewStyle().Foreground(lipgloss.Color("10")),
		staleStyle:      r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) WithClock(now func() time.Time) *LipglossRenderer {
	r.now = now
	return r
}

func (r *LipglossRenderer) RenderCheckReport(view CheckReportView) string {
	label := r.okStyle.Render("ok")
	if !view.Passed() {
		label = r.failStyle.Render("FAIL")
	}
	headline := label + "  " + view.Property
	meta := r.metaStyle.Render(fmt.Sprintf("%d trials, seed %d", view.Trials, view.Seed))

	padding := max(1, r.width-lipgloss.Width(headline)-lipgloss.Width(meta))

	var sb strings.Builder
	sb.WriteString(headline + strings.Repeat(" ", padding) + meta + "\n")
	if view.Passed() {
		return sb.String()
	}

	fmt.Fprintf(&sb, "found %d counter examples, displaying first %d:\n", view.Total, len(view.Examples))
	for _, ex := range view.Examples {
		line, _, more := strings.Cut(ex, "\n")
		if more {
			line += " …"
		}
		sb.WriteString("    -> " + line + "\n")
	}
	return sb.String()
}

func (r *LipglossRenderer) RenderCorpusList(view CorpusListView) string {
	if view.IsEmpty() {
		return "No recorded failures.\n"
	}

	now := r.now()
	var sb strings.Builder
	for i, item := range view.Items {
		last := i == len(view.Items)-1
		sb.WriteString(r.renderItem(item, now, last))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (r *LipglossRenderer) renderItem(item CorpusItem, now time.Time, last bool) string {
	age := now.Sub(item.RecordedAt)
	isStale := age > staleThreshold
	timeStr := r.formatTime(item.RecordedAt, now)

	reprStyle := r.reprStyle
	detailStyle := r.detailStyle
	timeStyle := r.timeStyle
	if isStale {
		reprStyle = r.staleStyle.Bold(true)
		detailStyle = r.staleStyle
		timeStyle = r.staleStyle
	} else if age < 1*time.Hour {
		timeStyle = r.recentTimeStyle
	}

	timeEl := timeStyle.Render(timeStr)
	repr := reprStyle.Render(truncateRepr(item.Repr, r.width-lipgloss.Width(timeEl)-1))

	padding := max(1, r.width-lipgloss.Width(repr)-lipgloss.Width(timeEl))
	headerLine := repr + strings.Repeat(" ", padding) + timeEl

	detail := "  " + describeFailure(item)

	lines := []string{headerLine, detailStyle.Render(detail)}
	if !last {
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

func describeFailure(item CorpusItem) string {
	if item.Panicked {
		return "panicked during evaluation"
	}
	if item.Reductions == 1 {
		return "1 reduction"
	}
	return fmt.Sprintf("%d reductions", item.Reductions)
}

func truncateRepr(s string, maxWidth int) string {
	if maxWidth < 1 {
		maxWidth = 1
	}
	runes := []rune(s)
	if len(runes) <= maxWidth {
		return s
	}
	return string(runes[:maxWidth-1]) + "…"
}

func (r *LipglossRenderer) formatTime(t, now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}

	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	target := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	days := int(today.Sub(target).Hours() / 24)

	timeStr := t.Format("15:04")

	switch {
	case days == 0:
		return timeStr
	case days == 1:
		return "Yesterday " + timeStr
	case days < 7:
		return t.Format("Mon") + " " + timeStr
	case t.Year() == now.Year():
		return t.Format("Jan 2") + " " + timeStr
	default:
		return t.Format("Jan 2 '06") + " " + timeStr
	}
}
