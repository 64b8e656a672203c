// Package console renders sync and audit results to a terminal and prompts
// the user for input.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/railwayapp/henvdall/internal/audit"
	"github.com/railwayapp/henvdall/internal/envsync"
	"github.com/railwayapp/henvdall/internal/validator"
)

var (
	_ envsync.Renderer = (*Renderer)(nil)
	_ audit.Renderer   = (*Renderer)(nil)
)

// Renderer writes styled sync and audit output to a writer
type Renderer struct {
	out   io.Writer
	style styles
	mask  bool
}

// RendererOption configures a Renderer
type RendererOption func(*rendererOptions)

type rendererOptions struct {
	noColor bool
	mask    bool
}

// WithNoColor disables colors regardless of terminal detection
func WithNoColor(noColor bool) RendererOption {
	return func(o *rendererOptions) {
		o.noColor = noColor
	}
}

// WithMask hides the values of sensitive keys in audit output
func WithMask(mask bool) RendererOption {
	return func(o *rendererOptions) {
		o.mask = mask
	}
}

// NewRenderer creates a Renderer writing to out
func NewRenderer(out io.Writer, opts ...RendererOption) *Renderer {
	options := &rendererOptions{}
	for _, opt := range opts {
		opt(options)
	}

	return &Renderer{
		out:   out,
		style: newStyles(lipgloss.NewRenderer(out), options.noColor),
		mask:  options.mask,
	}
}

func (r *Renderer) println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

func (r *Renderer) panel(style lipgloss.Style, title, body string) {
	r.println(style.Render(r.style.title.Render(title) + "\n" + body))
}

func (r *Renderer) table(title string, headers []string, rows [][]string, column func(col int) lipgloss.Style) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.style.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.style.header
			}
			return column(col).Inherit(r.style.cell)
		})

	r.println(r.style.title.Render(title))
	r.println(t.Render())
}

// Banner prints the logo and tagline
func (r *Renderer) Banner(logo, tagline string) {
	r.println(r.style.key.Render(logo))
	r.println(r.style.dim.Render(tagline))
	r.println()
}

// Mode prints a bold label followed by a description
func (r *Renderer) Mode(label, description string) {
	r.println(r.style.bold.Render(label) + " " + description)
	r.println()
}

// Error prints an error message
func (r *Renderer) Error(err error) {
	r.println(r.style.errorS.Render("Error:") + " " + err.Error())
}

// InSync implements envsync.Renderer
func (r *Renderer) InSync() {
	r.panel(r.style.successPanel, "Sync Complete",
		r.style.success.Render("✓")+" All environment variables are in sync!")
}

// MissingKeys implements envsync.Renderer
func (r *Renderer) MissingKeys(missing []envsync.MissingKey) {
	rows := make([][]string, 0, len(missing))
	for _, key := range missing {
		hint := "-"
		if key.Hint != validator.HintNone {
			hint = "(" + string(key.Hint) + ")"
		}
		rows = append(rows, []string{key.Key, key.Example, hint})
	}

	r.println()
	r.table("Missing Environment Variables", []string{"Key", "Example Value", "Validation"}, rows,
		func(col int) lipgloss.Style {
			switch col {
			case 0:
				return r.style.key
			case 1:
				return r.style.example
			default:
				return r.style.hint
			}
		})
	r.println()
}

// Cancelled implements envsync.Renderer
func (r *Renderer) Cancelled() {
	r.println(r.style.warning.Render("Sync cancelled."))
}

// BackupCreated implements envsync.Renderer
func (r *Renderer) BackupCreated(path string) {
	r.println(r.style.dim.Render("Created backup at " + path))
}

// CollectingValues implements envsync.Renderer
func (r *Renderer) CollectingValues(count int) {
	r.panel(r.style.infoPanel, "Interactive Input",
		fmt.Sprintf("Please provide values for the %d missing environment variable(s)", count))
	r.println()
}

// ValueRejected implements envsync.Renderer
func (r *Renderer) ValueRejected(key string, result validator.Result) {
	r.println(r.style.errorS.Render("✗") + " " + result.Message())
}

// LossyValue implements envsync.Renderer
func (r *Renderer) LossyValue(key string) {
	r.println(r.style.warning.Render("⚠") + " " + key +
		": value contains characters that will not read back exactly as entered")
}

// SyncComplete implements envsync.Renderer
func (r *Renderer) SyncComplete(added int) {
	r.println()
	r.panel(r.style.successPanel, "Sync Complete",
		r.style.success.Render("✓")+fmt.Sprintf(" Successfully added %d environment variable(s)", added))
}

// NotFound implements audit.Renderer
func (r *Renderer) NotFound(path string) {
	r.println(r.style.errorS.Render("Error:") + " .env file not found at " + path)
}

// Empty implements audit.Renderer
func (r *Renderer) Empty(path string) {
	r.panel(r.style.warningPanel, "Audit Result",
		r.style.warning.Render("⚠")+" .env file is empty")
}

// Clean implements audit.Renderer
func (r *Renderer) Clean(path string) {
	r.panel(r.style.successPanel, "Audit Complete",
		r.style.success.Render("✓")+" No placeholder values detected!")
}

// Issues implements audit.Renderer
func (r *Renderer) Issues(issues []audit.Issue) {
	r.println()
	r.panel(r.style.warningPanel, "Audit Results",
		r.style.warning.Render("⚠")+fmt.Sprintf(" Found %d potential issue(s)", len(issues)))
	r.println()

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		rows = append(rows, []string{issue.Key, r.displayValue(issue), string(issue.Reason)})
	}
	r.table("Placeholder Values Detected", []string{"Key", "Current Value", "Issue"}, rows,
		func(col int) lipgloss.Style {
			switch col {
			case 0:
				return r.style.key
			case 1:
				return r.style.example
			default:
				return r.style.errorS
			}
		})

	r.println()
	r.println(r.style.bold.Render("Recommendation:") + " " + audit.Recommendation)
}

func (r *Renderer) displayValue(issue audit.Issue) string {
	if strings.TrimSpace(issue.Value) == "" {
		return r.style.dim.Render("(empty)")
	}
	if r.mask && validator.IsSensitiveKey(issue.Key) {
		return validator.Mask(issue.Value)
	}
	return issue.Value
}

// NopRenderer discards all output. It is used when results are exported
// in a machine-readable format instead.
type NopRenderer struct{}

var (
	_ envsync.Renderer = NopRenderer{}
	_ audit.Renderer   = NopRenderer{}
)

func (NopRenderer) InSync()                                {}
func (NopRenderer) MissingKeys([]envsync.MissingKey)       {}
func (NopRenderer) Cancelled()                             {}
func (NopRenderer) BackupCreated(string)                   {}
func (NopRenderer) CollectingValues(int)                   {}
func (NopRenderer) ValueRejected(string, validator.Result) {}
func (NopRenderer) LossyValue(string)                      {}
func (NopRenderer) SyncComplete(int)                       {}
func (NopRenderer) NotFound(string)                        {}
func (NopRenderer) Empty(string)                           {}
func (NopRenderer) Clean(string)                           {}
func (NopRenderer) Issues([]audit.Issue)                   {}
