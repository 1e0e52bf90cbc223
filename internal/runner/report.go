// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const unnamedLabel = "[unnamed]"

type reportStyles struct {
	success lipgloss.Style
	failed  lipgloss.Style
	skipped lipgloss.Style
	detail  lipgloss.Style
	summary lipgloss.Style
}

// newReportStyles binds the styles to the renderer of w, so colour is only emitted
// when w is a capable terminal.
func newReportStyles(w io.Writer) reportStyles {
	r := lipgloss.NewRenderer(w)

	return reportStyles{
		success: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		failed:  r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		skipped: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("8")),
		summary: r.NewStyle().Bold(true),
	}
}

// Write renders one line per result followed by a summary line.
func (r Results) Write(w io.Writer) error {
	styles := newReportStyles(w)

	var sb strings.Builder

	for _, res := range r {
		label := res.Label
		if label == "" {
			label = unnamedLabel
		}

		var symbol string

		style := styles.failed

		switch res.ResultStatus() {
		case ResultStatusSuccess:
			symbol, style = "✓", styles.success
		case ResultStatusFailed, ResultStatusError:
			symbol = "✗"
		case ResultStatusSkipped:
			symbol, style = "~", styles.skipped
		}

		fmt.Fprintf(&sb, "%s %s %s\n",
			style.Render(symbol),
			style.Render(label),
			styles.detail.Render(res.detail()),
		)
	}

	fmt.Fprintln(&sb, styles.summary.Render(fmt.Sprintf(
		"%d succeeded, %d failed, %d skipped",
		r.Count(ResultStatusSuccess),
		r.Count(ResultStatusFailed)+r.Count(ResultStatusError),
		r.Count(ResultStatusSkipped),
	)))

	_, err := io.WriteString(w, sb.String())

	return err //nolint:wrapcheck
}

func (r *Result) detail() string {
	switch r.ResultStatus() {
	case ResultStatusSkipped:
		return "(skipped)"
	case ResultStatusError:
		return fmt.Sprintf("(error: %s)", strings.ReplaceAll(r.Error.Error(), "\n", "; "))
	}

	return fmt.Sprintf("(%s, pid %d, %s)", r.Status, r.Pid, r.Duration.Round(time.Millisecond))
}
