package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds the style set for one of the two palettes. The active theme
// name ("dark"/"light") is persisted alongside the tasks.
type Theme struct {
	Name      string
	Title     lipgloss.Style
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Done      lipgloss.Style
	Overdue   lipgloss.Style
	PrioHigh  lipgloss.Style
	PrioMed   lipgloss.Style
	PrioLow   lipgloss.Style
	Status    lipgloss.Style
	Accent    lipgloss.Style
	CalToday  lipgloss.Style
	CalHeader lipgloss.Style
	Bar       lipgloss.Style
}

func darkTheme() Theme {
	return Theme{
		Name:      "dark",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240")),
		Overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		PrioHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		PrioMed:   lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
		PrioLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
		CalToday:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("219")),
		CalHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("243")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("111")),
	}
}

func lightTheme() Theme {
	return Theme{
		Name:      "light",
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("27")),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("91")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
		Done:      lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("249")),
		Overdue:   lipgloss.NewStyle().Foreground(lipgloss.Color("166")),
		PrioHigh:  lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		PrioMed:   lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
		PrioLow:   lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
		CalToday:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("91")),
		CalHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("246")),
		Bar:       lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
	}
}

func themeByName(name string) Theme {
	if name == "light" {
		return lightTheme()
	}
	return darkTheme()
}
