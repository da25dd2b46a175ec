package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	appmodel "lawchat/model"
)

const searchLinesPerResult = 3

// searchVisibleResults is how many results fit in the modal for a terminal height
func searchVisibleResults(height int) int {
	// Border(2) + Padding(2) + Title(1) + Blank(1) + Input(1) + Blank(1) +
	// "Znaleziono"(2) + Blank(1) + Footer(1) + scroll indicators(4)
	const fixedOverhead = 16
	return max((height-fixedOverhead)/searchLinesPerResult, 1)
}

func (a AppView) renderMessageSearch(width, height int) string {
	modalWidth := min(width-4, 100)

	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimColor).
		Padding(1, 2)

	title := TitleStyle.Render("Szukaj w rozmowie")
	results := a.messageSearchResults

	resultsView := ""
	if len(results) == 0 {
		if a.messageSearchInput.Value() == "" {
			resultsView = DimStyle.Render("Wpisz tekst lub numer artykułu...")
		} else {
			resultsView = DimStyle.Render("Brak wyników")
		}
	} else {
		startIdx := a.messageSearchScrollIdx
		endIdx := min(startIdx+searchVisibleResults(height), len(results))

		resultsView = fmt.Sprintf("Znaleziono: %d\n\n", len(results))

		if startIdx > 0 {
			resultsView += DimStyle.Render(fmt.Sprintf("↑ jeszcze %d wyżej", startIdx)) + "\n\n"
		}

		for i := startIdx; i < endIdx; i++ {
			match := results[i]

			roleText := AssistantStyle.Render(expertLabel)
			if match.Role == appmodel.RoleUser {
				roleText = UserStyle.Render(userLabel)
			}

			matchText := fmt.Sprintf("%s #%d\n  %s", roleText, match.MessageIndex+1, match.Preview)
			if i == a.selectedSearchIdx {
				matchText = SelectedStyle.Render("> " + matchText)
			} else {
				matchText = "  " + matchText
			}

			resultsView += matchText + "\n\n"
		}

		if endIdx < len(results) {
			resultsView += DimStyle.Render(fmt.Sprintf("↓ jeszcze %d niżej", len(results)-endIdx))
		}
	}

	footer := FormatFooter(
		a.keys.DisplayActionKey("search_down")+"/"+a.keys.DisplayActionKey("search_up"), "Nawigacja",
		"Enter", "Przejdź",
		"Esc", "Zamknij",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		a.messageSearchInput.View(),
		"",
		resultsView,
		"",
		footer,
	)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		modalStyle.Width(modalWidth).Render(content))
}
