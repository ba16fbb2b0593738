package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dgallion1/broodsire/internal/analysis"
	"github.com/dgallion1/broodsire/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#20B9B4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2C4A54"))
	nickStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
)

func printRanking(w io.Writer, rep report.Report, verbose bool) {
	header := fmt.Sprintf("Broodmare sires %d-%d by %s", rep.From, rep.To, rep.Order)
	if rep.Search != "" {
		header += fmt.Sprintf(" matching %q", rep.Search)
	}
	fmt.Fprintln(w, titleStyle.Render(header))

	if len(rep.Sires) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no elite dams in range"))
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSIRE\tDAMS\tTOTAL\tSCORE\tNICKS")
	for _, row := range rep.Sires {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%.1f\t%s\n",
			row.Rank, row.Sire, row.InRange, row.TotalDams, row.Score, strings.Join(row.NickSires, ", "))
	}
	tw.Flush()

	if !verbose {
		return
	}
	for _, row := range rep.Sires {
		fmt.Fprintln(w)
		printSire(w, row)
	}
}

func printSire(w io.Writer, row report.SireReport) {
	b := row.Breakdown
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%d. %s", row.Rank, row.Sire)))
	fmt.Fprintf(w, "score %.1f  (dams %d, high-grade sons %d, elite daughters %d, productive dams %d)\n",
		row.Score, b.N1, b.S2, b.N2, b.K)
	if len(row.NickSires) > 0 {
		fmt.Fprintln(w, nickStyle.Render("nicks: "+strings.Join(row.NickSires, ", ")))
	}
	for _, dam := range row.Dams {
		fmt.Fprintf(w, "  %s\n", damLine(dam))
		for _, o := range dam.Offspring {
			fmt.Fprintf(w, "    %s\n", offspringLine(o))
		}
	}
}

func damLine(d analysis.DamReport) string {
	line := d.Name
	if d.BirthYear == 0 {
		line += mutedStyle.Render(" (year unknown)")
	}
	if d.Productive {
		line += " *"
	}
	return line
}

func offspringLine(o analysis.Offspring) string {
	line := fmt.Sprintf("- %s  by %s", o.Text, o.Sire)
	switch o.Grade {
	case analysis.GradeHighGradeSon:
		line += "  [G1 son]"
	case analysis.GradeEliteDaughter:
		line += "  [elite daughter]"
	}
	if o.Nick {
		line += "  " + nickStyle.Render("[nick]")
	}
	return line
}

func printGroups(w io.Writer, groups []report.DamGroup) {
	if len(groups) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no matching dams"))
		return
	}
	for _, g := range groups {
		fmt.Fprintln(w, titleStyle.Render(g.Sire))
		for _, d := range g.Dams {
			fmt.Fprintf(w, "  %s\n", damLine(d))
			if len(d.Offspring) == 0 {
				fmt.Fprintf(w, "    %s\n", mutedStyle.Render("no recorded offspring"))
			}
			for _, o := range d.Offspring {
				fmt.Fprintf(w, "    %s\n", offspringLine(o))
			}
		}
	}
}
