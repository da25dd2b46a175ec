package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (a AppView) renderHelpModal(width, height int) string {
	kb := a.keys

	green := lipgloss.NewStyle().
		Bold(true).
		Foreground(successColor)
	blue := lipgloss.NewStyle().Foreground(accentColor)

	title := green.Render(appTitle + " - skróty klawiszowe")

	chatActions := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Rozmowa"),
		fmt.Sprintf("• %-15s %s", "Enter", submitHint),
		fmt.Sprintf("• %-15s %s", "Alt+Enter", newlineHint),
		fmt.Sprintf("• %-15s Wyczyść pole", kb.DisplayActionKey("clear_input")),
		fmt.Sprintf("• %-15s Szukaj w rozmowie", kb.DisplayActionKey("search_messages")),
		fmt.Sprintf("• %-15s Kopiuj ostatnią odpowiedź", kb.DisplayActionKey("yank_last_answer")),
		fmt.Sprintf("• %-15s Kopiuj całą rozmowę", kb.DisplayActionKey("yank_transcript")),
		fmt.Sprintf("• %-15s Pomoc", kb.DisplayActionKey("help")),
		fmt.Sprintf("• %-15s %s", kb.DisplayActionKey("quit"), quitHint),
	)

	navigation := lipgloss.JoinVertical(
		lipgloss.Left,
		blue.Render("## Przewijanie"),
		fmt.Sprintf("• %-15s Linia w dół", kb.DisplayActionKey("scroll_down")),
		fmt.Sprintf("• %-15s Linia w górę", kb.DisplayActionKey("scroll_up")),
		fmt.Sprintf("• %-15s Pół strony w dół", kb.DisplayActionKey("half_page_down")),
		fmt.Sprintf("• %-15s Pół strony w górę", kb.DisplayActionKey("half_page_up")),
		fmt.Sprintf("• %-15s Strona w dół", kb.DisplayActionKey("page_down")),
		fmt.Sprintf("• %-15s Strona w górę", kb.DisplayActionKey("page_up")),
		fmt.Sprintf("• %-15s Na początek", kb.DisplayActionKey("scroll_to_top")),
		fmt.Sprintf("• %-15s Na koniec", kb.DisplayActionKey("scroll_to_bottom")),
	)

	columnStyle := lipgloss.NewStyle().Width(42).PaddingLeft(4)
	twoColumns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		columnStyle.Render(chatActions),
		"  ",
		columnStyle.Render(navigation),
	)

	footer := DimStyle.Render(fmt.Sprintf("%s lub Esc zamyka pomoc", kb.DisplayActionKey("help")))

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		"",
		twoColumns,
		"",
		footer,
	)

	helpBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, helpBox.Render(content))
}
