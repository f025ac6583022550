// Package linear renders analysis results as plain line-oriented text or JSON.
package linear

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/archlint/internal/core/domain"
	"go.trai.ch/archlint/internal/core/ports"
	"go.trai.ch/archlint/internal/engine/scoring" //nolint:depguard // Score bars are part of the summary
	"go.trai.ch/archlint/internal/ui/output"
	"go.trai.ch/archlint/internal/ui/style"
)

var (
	_ ports.Renderer = (*Renderer)(nil)
	_ ports.Renderer = (*JSONRenderer)(nil)
)

const scoreBarWidth = 20

// Renderer writes a human-readable report, one finding per line.
type Renderer struct {
	profile func() termenv.Profile
}

// NewRenderer creates a Renderer using ANSI colours unless NO_COLOR is set.
func NewRenderer() *Renderer {
	return &Renderer{profile: output.ColorProfileANSI}
}

// NewPlainRenderer creates a Renderer that never emits colour codes.
func NewPlainRenderer() *Renderer {
	return &Renderer{profile: output.PlainProfile}
}

// report accumulates the text of one Render call.
type report struct {
	out *termenv.Output
	sb  strings.Builder
}

func (r *report) line(format string, args ...any) {
	fmt.Fprintf(&r.sb, format, args...)
	r.sb.WriteByte('\n')
}

func (r *report) color(s string, c lipgloss.Color) string {
	return r.out.String(s).Foreground(r.out.Color(string(c))).String()
}

func (r *report) bold(s string) string {
	return r.out.String(s).Bold().String()
}

func (r *report) faint(s string) string {
	return r.out.String(s).Faint().String()
}

// Render writes result to w.
func (rn *Renderer) Render(w io.Writer, result *domain.AnalysisResult) error {
	r := &report{out: output.NewWithProfile(w, rn.profile)}

	header := r.color("archlint", style.Iris) + " " + r.bold(result.ProjectName)
	if result.Pattern != "" {
		header += r.faint(" (" + result.Pattern + ")")
	}
	r.line("%s", header)
	r.line("%d files analyzed", result.FilesAnalyzed)

	rn.violations(r, result)
	rn.cycles(r, result)
	rn.longFunctions(r, result)
	rn.health(r, result)

	r.line("")
	if result.HasBlockingIssues() {
		r.line("%s %s", r.color(style.Cross, style.Red), result.Summary())
	} else {
		r.line("%s %s", r.color(style.Check, style.Green), result.Summary())
	}

	_, err := io.WriteString(w, r.sb.String())
	return err
}

func (rn *Renderer) violations(r *report, result *domain.AnalysisResult) {
	sections := []struct {
		title    string
		category domain.Category
		icon     string
		color    lipgloss.Color
	}{
		{"Blocked violations", domain.CategoryBlocked, style.Cross, style.Red},
		{"Warnings", domain.CategoryWarning, style.Warning, style.Yellow},
		{"Info", domain.CategoryInfo, style.Tilde, style.Slate},
	}

	for _, s := range sections {
		var matching []domain.CategorizedViolation
		for _, v := range result.Violations {
			if v.Category == s.category {
				matching = append(matching, v)
			}
		}
		if len(matching) == 0 {
			continue
		}

		r.line("")
		r.line("%s", r.bold(fmt.Sprintf("%s (%d)", s.title, len(matching))))
		for _, v := range matching {
			r.line("  %s %s:%d  %s", r.color(s.icon, s.color), v.FilePath, v.Line, v.Rule.String())
			if v.OffensiveImport != "" {
				r.line("      %s", r.faint(v.OffensiveImport))
			}
			if v.Suggestion != "" {
				r.line("      %s", v.Suggestion)
			}
		}
	}
}

func (rn *Renderer) cycles(r *report, result *domain.AnalysisResult) {
	if len(result.CircularDependencies) == 0 {
		return
	}
	r.line("")
	r.line("%s", r.bold(fmt.Sprintf("Circular dependencies (%d)", len(result.CircularDependencies))))
	for _, c := range result.CircularDependencies {
		r.line("  %s %s", r.color(style.Cross, style.Red), strings.Join(c.Cycle, " "+style.Arrow+" "))
	}
}

func (rn *Renderer) longFunctions(r *report, result *domain.AnalysisResult) {
	if len(result.LongFunctions) == 0 {
		return
	}
	r.line("")
	r.line("%s", r.bold(fmt.Sprintf("Long functions (%d)", len(result.LongFunctions))))
	for _, f := range result.LongFunctions {
		r.line("  %s %s:%d  %s (%d lines, max %d)",
			r.color(style.Warning, style.Yellow), f.FilePath, f.StartLine, f.Name, f.Lines, f.Threshold)
	}
}

func (rn *Renderer) health(r *report, result *domain.AnalysisResult) {
	if result.Health == nil {
		return
	}
	h := result.Health
	r.line("")
	r.line("%s", r.bold(fmt.Sprintf("Health score %d/100 (%s)", h.Total, h.Grade)))

	rows := []struct {
		name  string
		score int
	}{
		{"layer isolation", h.Components.LayerIsolation},
		{"circular deps", h.Components.CircularDeps},
		{"complexity", h.Components.Complexity},
		{"violations", h.Components.Violations},
	}
	for _, row := range rows {
		r.line("  %-16s %s %3d", row.name, scoring.ProgressBar(row.score, scoreBarWidth), row.score)
	}
}

// JSONRenderer writes the result as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render writes result to w as a single JSON document.
func (JSONRenderer) Render(w io.Writer, result *domain.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(result)
}
