// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/joels-spie/photonics-trends-app/internal/cache"
	"github.com/joels-spie/photonics-trends-app/pkg/types"
)

// --- Styles ---

var (
	cyan       = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	bold       = lipgloss.NewStyle().Bold(true)
	dim        = lipgloss.NewStyle().Faint(true)
	green      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	yellow     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	labelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
)

// sparkBlocks are the eight block glyphs used to draw count sparklines.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

func newTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
			}
			return lipgloss.NewStyle()
		})
	return t.Render()
}

// pct renders a fraction as a percentage with one decimal.
func pct(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// signedPct renders a growth rate with its sign, green for positive.
func signedPct(f *float64) string {
	if f == nil {
		return dim.Render("n/a")
	}
	s := fmt.Sprintf("%+.1f%%", *f*100)
	if *f > 0 {
		return green.Render(s)
	}
	return s
}

// sparkline draws one block glyph per value, scaled to the series maximum.
func sparkline(counts []int) string {
	max := 0
	for _, c := range counts {
		if c > max {
			max = c
		}
	}
	if max == 0 {
		return strings.Repeat(string(sparkBlocks[0]), len(counts))
	}
	var b strings.Builder
	for _, c := range counts {
		idx := c * (len(sparkBlocks) - 1) / max
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

func writeMeta(w io.Writer, meta types.Meta) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, dim.Render(fmt.Sprintf("cache: %d cached / %d live responses",
		meta.CachedResponses, meta.LiveResponses)))
	for _, warning := range meta.Warnings {
		fmt.Fprintf(w, "%s %s\n", yellow.Render("⚠"), warning)
	}
}

func writeCoverage(w io.Writer, cov types.Coverage) {
	fmt.Fprintf(w, "  %s abstracts %s · affiliations %s · accepted dates %s · issue dates %s\n",
		labelStyle.Render("Coverage:"),
		pct(cov.AbstractRate), pct(cov.AffiliationRate),
		pct(cov.AcceptedDateRate), pct(cov.IssuedDateRate))
}

// --- Topic analysis ---

func formatTopicHuman(w io.Writer, res *types.TopicAnalysis, label string) error {
	if res.RecordCount == 0 {
		fmt.Fprintf(w, "📈 %s: no matched records.\n", bold.Render(label))
		writeMeta(w, res.Meta)
		return nil
	}

	fmt.Fprintf(w, "📈 %s — %s matched records\n", bold.Render(label),
		cyan.Render(fmt.Sprintf("%d", res.RecordCount)))
	writeCoverage(w, res.Coverage)
	if res.Overview.CAGR != nil {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("CAGR:"), signedPct(res.Overview.CAGR))
	}
	fmt.Fprintln(w)

	var rows [][]string
	for _, p := range res.Overview.YearlyGrowth {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Year),
			fmt.Sprintf("%d", p.Count),
			signedPct(p.YoY),
		})
	}
	fmt.Fprintln(w, newTable([]string{"Year", "Count", "YoY"}, rows))

	if len(res.Overview.TopPublishers) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Top publishers"))
		rows = rows[:0]
		for _, p := range res.Overview.TopPublishers {
			rows = append(rows, []string{p.Name, fmt.Sprintf("%d", p.Count), signedPct(p.CAGR)})
		}
		fmt.Fprintln(w, newTable([]string{"Publisher", "Count", "CAGR"}, rows))
	}

	if len(res.Journals.TopJournals) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Top journals"))
		rows = rows[:0]
		for _, j := range res.Journals.TopJournals {
			rows = append(rows, []string{truncate(j.Journal, 48), truncate(j.Publisher, 28), fmt.Sprintf("%d", j.Count)})
		}
		fmt.Fprintln(w, newTable([]string{"Journal", "Publisher", "Count"}, rows))
	}

	writeMeta(w, res.Meta)
	return nil
}

// --- Publisher comparison ---

func formatComparisonHuman(w io.Writer, res *types.PublisherComparison) error {
	fmt.Fprintf(w, "🏛  Publisher comparison — %s records in the matched universe\n\n",
		cyan.Render(fmt.Sprintf("%d", res.RecordCount)))

	names := make([]string, 0, len(res.Comparison.PerPublisherPerYear))
	for name := range res.Comparison.PerPublisherPerYear {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		perYear := res.Comparison.PerPublisherPerYear[name]
		shares := res.Comparison.MarketShare[name]
		years := make([]int, 0, len(perYear))
		for y := range perYear {
			years = append(years, y)
		}
		sort.Ints(years)
		for _, y := range years {
			rows = append(rows, []string{
				name,
				fmt.Sprintf("%d", y),
				fmt.Sprintf("%d", perYear[y]),
				pct(shares[y]),
			})
		}
	}
	fmt.Fprintln(w, newTable([]string{"Publisher", "Year", "Count", "Share"}, rows))

	fmt.Fprintln(w)
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n",
			labelStyle.Render(name+" growth:"),
			signedPct(res.Comparison.Growth[name]))
	}

	writeMeta(w, res.Meta)
	return nil
}

// --- Emerging topics ---

func formatEmergingHuman(w io.Writer, res *types.EmergingTopicsResult) error {
	ranked := res.Result.RankedTopics
	if len(ranked) == 0 {
		fmt.Fprintln(w, "🌱 No topic has enough recent data to rank.")
		writeMeta(w, res.Meta)
		return nil
	}

	fmt.Fprintf(w, "🌱 %s\n\n", bold.Render("Emerging topics by recent growth"))
	var rows [][]string
	for i, t := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			t.TopicName,
			fmt.Sprintf("%d", t.TotalVolume),
			signedPct(t.GrowthRate),
			cyan.Render(sparkline(t.Sparkline)),
		})
	}
	fmt.Fprintln(w, newTable([]string{"#", "Topic", "Volume", "Growth", "Trend"}, rows))

	writeMeta(w, res.Meta)
	return nil
}

// --- Gap analysis ---

func formatGapHuman(w io.Writer, res *types.GapAnalysisResult) error {
	gap := res.Result
	if len(gap.Opportunities) == 0 {
		fmt.Fprintf(w, "🎯 No opportunities surfaced for %s under the current screens.\n",
			bold.Render(gap.TargetPublisher))
		writeMeta(w, res.Meta)
		return nil
	}

	fmt.Fprintf(w, "🎯 %s — %d opportunities\n\n",
		bold.Render("Gap analysis for "+gap.TargetPublisher), len(gap.Opportunities))

	var rows [][]string
	for i, o := range gap.Opportunities {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			o.TopicName,
			fmt.Sprintf("%.3f", o.OpportunityScore),
			green.Render(fmt.Sprintf("%+.1f%%", o.OverallGrowth*100)),
			pct(o.TargetShare),
			fmt.Sprintf("%d", o.TopicVolume),
		})
	}
	fmt.Fprintln(w, newTable([]string{"#", "Topic", "Score", "Growth", "Target share", "Volume"}, rows))

	fmt.Fprintln(w)
	for _, o := range gap.Opportunities {
		fmt.Fprintf(w, "  %s %s\n", cyan.Render("·"), dim.Render(o.Explanation))
	}

	writeMeta(w, res.Meta)
	return nil
}

// --- Institutions ---

func formatInstitutionsHuman(w io.Writer, res *types.InstitutionsResult) error {
	fmt.Fprintf(w, "🏫 Institution activity — %s matched records\n",
		cyan.Render(fmt.Sprintf("%d", res.RecordCount)))
	writeCoverage(w, res.Coverage)
	fmt.Fprintln(w)

	if len(res.Institutions.TopInstitutions) == 0 {
		fmt.Fprintln(w, dim.Render("No affiliation data in the matched set."))
		writeMeta(w, res.Meta)
		return nil
	}

	var rows [][]string
	for i, inst := range res.Institutions.TopInstitutions {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			truncate(inst.Institution, 56),
			fmt.Sprintf("%d", inst.Count),
		})
	}
	fmt.Fprintln(w, newTable([]string{"#", "Institution", "Records"}, rows))

	if len(res.Institutions.CountryRollups) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Country rollups"))
		rows = rows[:0]
		for _, c := range res.Institutions.CountryRollups {
			rows = append(rows, []string{c.Country, fmt.Sprintf("%d", c.Count)})
		}
		fmt.Fprintln(w, newTable([]string{"Country", "Mentions"}, rows))
	}

	writeMeta(w, res.Meta)
	return nil
}

// --- Time to publication ---

func formatTimeToPubHuman(w io.Writer, res *types.TimeToPubResult) error {
	fmt.Fprintf(w, "⏱  Time to publication — %s matched records\n",
		cyan.Render(fmt.Sprintf("%d", res.RecordCount)))
	writeCoverage(w, res.Coverage)
	fmt.Fprintln(w)

	lag := res.TimeToPublication
	fmt.Fprintf(w, "  %s %s  %s\n",
		labelStyle.Render("Created → published:"),
		meanDays(lag.CreatedToPublishedDays),
		dim.Render("coverage "+pct(lag.CreatedToPublishedRate)))
	fmt.Fprintf(w, "  %s %s  %s\n",
		labelStyle.Render("Accepted → published:"),
		meanDays(lag.AcceptedToPublishedDays),
		dim.Render("coverage "+pct(lag.AcceptedToPublishedRate)))

	if len(lag.CreatedTrend) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, labelStyle.Render("Mean lag by publication year (days)"))
		years := make([]int, 0, len(lag.CreatedTrend))
		for y := range lag.CreatedTrend {
			years = append(years, y)
		}
		sort.Ints(years)
		var rows [][]string
		for _, y := range years {
			accepted := dim.Render("n/a")
			if v, ok := lag.AcceptedTrend[y]; ok {
				accepted = fmt.Sprintf("%.0f", v)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", y),
				fmt.Sprintf("%.0f", lag.CreatedTrend[y]),
				accepted,
			})
		}
		fmt.Fprintln(w, newTable([]string{"Year", "Created→pub", "Accepted→pub"}, rows))
	}

	writeMeta(w, res.Meta)
	return nil
}

func meanDays(v *float64) string {
	if v == nil {
		return dim.Render("n/a")
	}
	return fmt.Sprintf("%.0f days", *v)
}

// --- Cache and catalogs ---

func formatCacheStatsHuman(w io.Writer, stats cache.StoreStats) error {
	fmt.Fprintf(w, "💾 %s\n\n", bold.Render("Response cache"))
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Entries:"), stats.Entries)
	fmt.Fprintf(w, "  %s %d\n", labelStyle.Render("Total hits:"), stats.TotalHits)
	if stats.Entries > 0 {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Oldest:"), stats.Oldest.Format("2006-01-02 15:04 MST"))
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Newest:"), stats.Newest.Format("2006-01-02 15:04 MST"))
	}
	return nil
}

func formatCatalogHuman(w io.Writer, topics []types.TopicDefinition, publishers []types.PublisherDefinition) error {
	fmt.Fprintln(w, labelStyle.Render("Topics"))
	var rows [][]string
	for _, t := range topics {
		rows = append(rows, []string{
			cyan.Render(t.Key),
			t.Name,
			fmt.Sprintf("%d", len(t.Keywords)+len(t.Synonyms)),
			fmt.Sprintf("%d", len(t.NegativeKeywords)),
		})
	}
	fmt.Fprintln(w, newTable([]string{"Key", "Name", "Terms", "Negatives"}, rows))

	fmt.Fprintln(w)
	fmt.Fprintln(w, labelStyle.Render("Publishers"))
	rows = rows[:0]
	for _, p := range publishers {
		rows = append(rows, []string{
			p.Name,
			strings.Join(p.Prefixes, ", "),
			truncate(strings.Join(p.Aliases, ", "), 40),
		})
	}
	fmt.Fprintln(w, newTable([]string{"Name", "DOI prefixes", "Aliases"}, rows))
	return nil
}

// truncate cuts a string to maxLen characters, appending "…" if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
