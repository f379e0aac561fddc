// Package termui renders upload state and netlist previews for the terminal.
package termui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"netlister/internal/netlist"
	"netlister/internal/upload"
)

var (
	Primary     = lipgloss.Color("#101F38")
	Accent      = lipgloss.Color("#8BC34A")
	Border      = lipgloss.Color("#dce0e5")
	Destructive = lipgloss.Color("#e53935")
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	bannerStyle  = lipgloss.NewStyle().Foreground(Destructive).Bold(true)
	rawStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
	buttonStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
)

// ComponentsHeading is the title above the components table.
func ComponentsHeading(n int) string { return fmt.Sprintf("Components (%d)", n) }

// NetsHeading is the title above the nets table.
func NetsHeading(n int) string { return fmt.Sprintf("Nets (%d)", n) }

// RenderPreview returns the component and net tables followed by the raw JSON.
func RenderPreview(p netlist.Preview) string {
	componentRows := make([][]string, 0, len(p.ComponentRows))
	for _, r := range p.ComponentRows {
		componentRows = append(componentRows, []string{r.ID, r.Name, r.Type, strconv.Itoa(r.PinCount)})
	}
	netRows := make([][]string, 0, len(p.NetRows))
	for _, r := range p.NetRows {
		netRows = append(netRows, []string{r.ID, r.Name, strconv.Itoa(r.ConnectionCount)})
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render(ComponentsHeading(p.ComponentCount)),
		newTable([]string{"ID", "Name", "Type", "Pins"}, componentRows),
		"",
		headingStyle.Render(NetsHeading(p.NetCount)),
		newTable([]string{"ID", "Name", "Connections"}, netRows),
		"",
		headingStyle.Render("JSON Preview"),
		rawStyle.Render(strings.TrimRight(p.Raw, "\n")),
	)
}

// RenderState returns the whole upload page: banner, file, metadata, preview
// and the submit control.
func RenderState(s upload.State) string {
	var parts []string
	if s.Error != "" {
		parts = append(parts, bannerStyle.Render(s.Error))
	}
	file := s.FileName
	if file == "" {
		file = "(none)"
	}
	parts = append(parts,
		"File: "+file,
		"Name: "+s.Metadata.Name,
		"Description: "+s.Metadata.Description,
	)
	if s.Preview != nil {
		parts = append(parts, "", RenderPreview(*s.Preview))
	}
	label := s.SubmitLabel()
	if s.CanSubmit() {
		label = buttonStyle.Render(label)
	}
	parts = append(parts, "", "["+label+"]")
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Fprint writes the rendered state to w.
func Fprint(w io.Writer, s upload.State) error {
	_, err := fmt.Fprintln(w, RenderState(s))
	return err
}

func newTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Render()
}
