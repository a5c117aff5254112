// Package render formats analysis results for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tubelens/internal/analyzer"
	"tubelens/internal/core"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Margin(1, 0, 0, 0)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

// Analysis renders one full analysis report.
func Analysis(a *analyzer.Analysis) string {
	var b strings.Builder
	if a.Channel != nil {
		b.WriteString(titleStyle.Render(a.Channel.Title) + "\n")
		fmt.Fprintf(&b, "%s %d   %s %d items\n",
			labelStyle.Render("Subscribers:"), a.Channel.Subscribers,
			labelStyle.Render("Published:"), a.Channel.VideoCount)
	}
	b.WriteString(Metrics(a.Metrics))
	if a.Classification != nil {
		b.WriteString(Classification(a.Classification))
	} else if a.Degraded {
		b.WriteString(mutedStyle.Render("Comment analysis unavailable for this run.") + "\n")
	}
	return b.String()
}

// Metrics renders the aggregated channel metrics.
func Metrics(m *core.ChannelMetrics) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Performance") + "\n")

	summary := fmt.Sprintf("Items %d   Avg views %d   Avg likes %d   Avg engagement %.2f%%",
		m.TotalItems, m.AverageViews, m.AverageLikes, m.AverageEngagementRate)
	b.WriteString(boxStyle.Render(summary) + "\n")

	b.WriteString(sectionStyle.Render("Top by views") + "\n")
	for i, r := range m.TopByViews {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, r.Title,
			mutedStyle.Render(fmt.Sprintf("(%d views, score %.2f)", r.Views, r.PerformanceScore)))
	}
	b.WriteString(sectionStyle.Render("Top by engagement") + "\n")
	for i, r := range m.TopByEngagement {
		fmt.Fprintf(&b, "  %d. %s %s\n", i+1, r.Title,
			mutedStyle.Render(fmt.Sprintf("(%.2f%%)", r.EngagementRate)))
	}

	b.WriteString(sectionStyle.Render("Upload pattern") + "\n")
	fmt.Fprintf(&b, "  Best day %s   Best hour %02d:00\n",
		m.UploadPattern.MostPopularDay, m.UploadPattern.MostPopularHour)
	if len(m.MonthlyTrends) > 0 {
		b.WriteString(sectionStyle.Render("Monthly trends") + "\n")
		for _, t := range m.MonthlyTrends {
			fmt.Fprintf(&b, "  %s  %d items, avg %d views\n", t.Month, t.ItemCount, t.AverageViews)
		}
	}
	return b.String()
}

// Classification renders the classified comment report.
func Classification(c *core.ClassificationResult) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Audience comments") + "\n")
	fmt.Fprintf(&b, "  Strategy %s   Total %d   Avg likes %.1f   Max likes %d\n",
		c.Strategy, c.Stats.TotalComments, c.Stats.AverageLikes, c.Stats.MaxLikes)
	writeComments(&b, "Popular", c.Popular)
	writeComments(&b, "Constructive", c.Constructive)
	writeComments(&b, "Improvement requests", c.Improvement)
	if c.Summary != nil {
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Sentiment:"), c.Summary.OverallSentiment)
		if len(c.Summary.KeyThemes) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Themes:"), strings.Join(c.Summary.KeyThemes, ", "))
		}
	}
	return b.String()
}

// Ideas renders generated content ideas.
func Ideas(list []core.Idea) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Content ideas") + "\n")
	for i, idea := range list {
		title := fmt.Sprintf("%d. %s", i+1, idea.Title)
		if idea.Degraded {
			title += " " + mutedStyle.Render("(template)")
		}
		b.WriteString(titleStyle.Render(title) + "\n")
		fmt.Fprintf(&b, "  %s\n", idea.Concept)
		fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Why:"), idea.Reasoning)
		fmt.Fprintf(&b, "  %s %s   %s %s\n",
			labelStyle.Render("Audience:"), idea.TargetAudience,
			labelStyle.Render("Length:"), idea.RecommendedLength)
		if len(idea.Structure) > 0 {
			fmt.Fprintf(&b, "  %s %s\n", labelStyle.Render("Structure:"), strings.Join(idea.Structure, " -> "))
		}
		for _, tip := range idea.SuccessTips {
			fmt.Fprintf(&b, "    - %s\n", tip)
		}
		if len(idea.Tags) > 0 {
			b.WriteString("  " + mutedStyle.Render("#"+strings.Join(idea.Tags, " #")) + "\n")
		}
	}
	return b.String()
}

func writeComments(b *strings.Builder, label string, batch []core.ClassifiedComment) {
	if len(batch) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s\n", labelStyle.Render(label))
	for i, c := range batch {
		if i == 5 {
			fmt.Fprintf(b, "    %s\n", mutedStyle.Render(fmt.Sprintf("... and %d more", len(batch)-5)))
			break
		}
		text := c.Text
		if len([]rune(text)) > 80 {
			text = string([]rune(text)[:77]) + "..."
		}
		fmt.Fprintf(b, "    %s %s\n", text, mutedStyle.Render(fmt.Sprintf("(%d likes)", c.Likes)))
	}
}
