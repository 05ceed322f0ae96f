// Package render presents inference results to a terminal and as membership plots.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrhapile/fuzzy-heater/pkg/engine"
	"github.com/mrhapile/fuzzy-heater/pkg/fuzzy"
	"github.com/mrhapile/fuzzy-heater/pkg/rules"
	"github.com/mrhapile/fuzzy-heater/pkg/types"
)

const barWidth = 20

// Printer writes styled text. With color disabled every style renders plain text.
type Printer struct {
	title   lipgloss.Style
	rule    lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	result  lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewPrinter creates a printer.
func NewPrinter(color bool) *Printer {
	if !color {
		plain := lipgloss.NewStyle()
		return &Printer{plain, plain, plain, plain, plain, plain, plain, plain}
	}
	return &Printer{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		rule:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		value:   lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		result:  lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		failure: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// Banner prints the program header.
func (p *Printer) Banner(w io.Writer) {
	line := strings.Repeat("-", 60)
	fmt.Fprintln(w, p.rule.Render(line))
	fmt.Fprintln(w, p.title.Render("Water Heater Fuzzy Control System"))
	fmt.Fprintln(w, p.rule.Render(line))
}

// Result prints the crisp output, or explains why there is none.
func (p *Printer) Result(w io.Writer, res types.InferenceResult, err error) {
	switch {
	case err == nil:
		fmt.Fprintln(w, p.result.Render(fmt.Sprintf("Heater usage (%s method): %.2f%%", res.Method, res.Output)))
	case errors.Is(err, engine.ErrNoRuleFired):
		fmt.Fprintln(w, p.warning.Render("No rule applies to these temperatures; the rule base does not cover this combination."))
	default:
		fmt.Fprintln(w, p.failure.Render(fmt.Sprintf("Evaluation failed: %v", err)))
	}
}

// State prints the memberships of every antecedent term, the rule activations
// and a summary of the aggregated output.
func (p *Printer) State(w io.Writer, rb *fuzzy.RuleBase, res types.InferenceResult) {
	fmt.Fprintln(w, p.title.Render("Antecedents"))
	for _, v := range rb.Antecedents() {
		x, _ := res.Inputs.Value(v.Name())
		note := ""
		if !v.Universe().Contains(x) {
			note = p.warning.Render(" (outside universe)")
		}
		fmt.Fprintf(w, "  %s = %s%s\n", p.label.Render(v.Name()), p.value.Render(fmt.Sprintf("%.2f", x)), note)
		for _, t := range v.Terms() {
			d := res.Memberships[v.Name()][t.Name]
			fmt.Fprintf(w, "    %-26s %s %.4f\n", t.Name, p.bar(d), d)
		}
	}

	fmt.Fprintln(w, p.title.Render("Rules"))
	for _, a := range res.Activations {
		style := p.muted
		if a.Fired {
			style = p.value
		}
		fmt.Fprintf(w, "  %s\n", style.Render(fmt.Sprintf("#%-3d rule %-3d %-48s %.4f  weight %.3g", a.Rank, a.Index+1, a.Label, a.Strength, a.Weight)))
	}

	fmt.Fprintln(w, p.title.Render("Consequent"))
	peak, at := 0.0, 0.0
	for _, pt := range res.Aggregated {
		if pt.Degree > peak {
			peak, at = pt.Degree, pt.X
		}
	}
	fmt.Fprintf(w, "  %s peak %.4f at %.2f (%d samples)\n", p.label.Render(res.Variable), peak, at, len(res.Aggregated))
}

// Presets lists the compiled-in rule bases.
func (p *Printer) Presets(w io.Writer, presets []rules.Preset, active string) {
	for _, preset := range presets {
		marker := " "
		if preset.Name == active {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s  %s\n", marker, p.label.Render(fmt.Sprintf("%-12s", preset.Name)), p.muted.Render(preset.Description))
	}
}

// Error prints a validation message for the user.
func (p *Printer) Error(w io.Writer, msg string) {
	fmt.Fprintln(w, p.failure.Render("Error: "+msg))
}

func (p *Printer) bar(d float64) string {
	n := int(d*barWidth + 0.5)
	if n < 0 {
		n = 0
	}
	if n > barWidth {
		n = barWidth
	}
	return p.rule.Render(strings.Repeat("#", n)) + strings.Repeat(".", barWidth-n)
}
