package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/johnquangdev/meeting-assistant-client/internal/adapter/presenter"
	"github.com/johnquangdev/meeting-assistant-client/internal/domain/entities"
)

var (
	colorGray   = lipgloss.Color("#666666")
	colorRed    = lipgloss.Color("#D13438")
	colorYellow = lipgloss.Color("#FFB900")
	colorGreen  = lipgloss.Color("#107C10")

	timeStyle    = lipgloss.NewStyle().Foreground(colorGray)
	statusStyle  = lipgloss.NewStyle().Foreground(colorGray).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
	interimStyle = lipgloss.NewStyle().Foreground(colorYellow)
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
)

// printer writes stream events as speaker-colored terminal lines
type printer struct {
	out    io.Writer
	lines  int
	items  int
	failed bool
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) event(ev entities.StreamEvent) {
	switch ev.Type {
	case entities.StreamStatus:
		p.status(ev.Text())
	case entities.StreamTranscript:
		if line, ok := ev.TranscriptLine(); ok {
			p.line(line)
		}
	case entities.StreamActionItems:
		p.actionItems(ev.Items())
	case entities.StreamComplete:
		msg := ev.Text()
		if msg == "" {
			msg = "Processing complete"
		}
		fmt.Fprintln(p.out, okStyle.Render("✅ "+msg))
	case entities.StreamError:
		p.fail(ev.Text())
	}
}

func (p *printer) status(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(p.out, statusStyle.Render("· "+msg))
}

func (p *printer) fail(msg string) {
	if msg == "" {
		msg = "Processing failed"
	}
	p.failed = true
	fmt.Fprintln(p.out, errorStyle.Render("✖ "+msg))
}

func (p *printer) line(l entities.BackendLine) {
	view := presenter.ToTranscriptLine(l.ToEntry())
	speaker := lipgloss.NewStyle().
		Foreground(lipgloss.Color(view.Color)).
		Bold(true).
		Render(fmt.Sprintf("[%s] %s", view.Initials, view.Speaker))

	text := view.Text
	if !l.Final() {
		text = interimStyle.Render(text + " …")
	}

	var b strings.Builder
	b.WriteString(timeStyle.Render(view.Time))
	b.WriteString(" ")
	b.WriteString(speaker)
	b.WriteString(": ")
	b.WriteString(text)
	if view.Emotion != nil {
		b.WriteString(" ")
		b.WriteString(view.Emotion.Emoji)
	}
	fmt.Fprintln(p.out, b.String())
	p.lines++
}

func (p *printer) actionItems(items []entities.BackendActionItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(p.out, headerStyle.Render("Action items"))
	for _, item := range items {
		fmt.Fprintln(p.out, "  • "+entities.FormatActionItem(entities.NewActionItem(item)))
	}
	p.items += len(items)
}

func (p *printer) insights(insights []string) {
	if len(insights) == 0 {
		return
	}
	fmt.Fprintln(p.out, headerStyle.Render("Insights"))
	for _, text := range insights {
		fmt.Fprintf(p.out, "  [%s] %s\n", entities.CategorizeInsight(text), text)
	}
}

// result prints a complete batch response
func (p *printer) result(res *entities.MediaResult) {
	for _, l := range res.Transcript {
		if l.Body() != "" {
			p.line(l)
		}
	}
	p.actionItems(res.ActionItems)
	p.insights(res.Insights)
	if res.Error != "" {
		p.fail(res.Error)
	}
}

func (p *printer) summary() {
	fmt.Fprintln(p.out, timeStyle.Render(fmt.Sprintf("%d transcript lines, %d action items", p.lines, p.items)))
}
