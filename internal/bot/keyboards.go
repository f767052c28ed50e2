package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/session"
)

// maxWizardDomains caps the domain picker so the keyboard stays readable.
const maxWizardDomains = 8

func button(label string, cb Callback) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(label, cb.Encode())
}

func keyboardPtr(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}

// suggestionKeyboard offers confirm/edit/reject plus a domain switcher when
// more than one domain is available.
func suggestionKeyboard(availableDomains []string, current string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			button("✅ Confirm", Callback{Action: ActionConfirm}),
			button("✏️ Edit", Callback{Action: ActionEdit}),
			button("❌ Reject", Callback{Action: ActionReject}),
		},
	}

	var domainRow []tgbotapi.InlineKeyboardButton
	for _, d := range availableDomains {
		if d == current {
			continue
		}
		domainRow = append(domainRow, button("🌐 "+d, Callback{Action: ActionSelectDomain, Domain: d}))
		if len(domainRow) == 2 {
			rows = append(rows, domainRow)
			domainRow = nil
		}
	}
	if len(domainRow) > 0 {
		rows = append(rows, domainRow)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// linksPageKeyboard lays out link buttons two per row, then pagination, then
// refresh and close controls.
func linksPageKeyboard(page *domain.LinkPage, shortIDs *session.ShortIDMap) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var row []tgbotapi.InlineKeyboardButton
	for _, link := range page.Links {
		short := shortIDs.Put(link.ID)
		row = append(row, button("🔗 "+link.Key, Callback{Action: ActionLinkDetails, LinkID: short, Page: page.CurrentPage}))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	var nav []tgbotapi.InlineKeyboardButton
	if page.CurrentPage > 1 {
		nav = append(nav, button("⬅️ Prev", Callback{Action: ActionLinksPage, Page: page.CurrentPage - 1}))
	}
	if page.CurrentPage < page.TotalPages {
		nav = append(nav, button("Next ➡️", Callback{Action: ActionLinksPage, Page: page.CurrentPage + 1}))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		button("🔄 Refresh", Callback{Action: ActionLinksPage, Page: page.CurrentPage}),
		button("✖️ Close", Callback{Action: ActionCloseLinks}),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// linkDetailsKeyboard keeps the originating list page on the Delete and Back
// buttons so the whole detail flow returns to where the user came from.
func linkDetailsKeyboard(shortID string, page int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("✏️ Edit slug", Callback{Action: ActionLinkEdit, LinkID: shortID}),
			button("🗑 Delete", Callback{Action: ActionLinkDelete, LinkID: shortID, Page: page}),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("⬅️ Back to list", Callback{Action: ActionLinksPage, Page: page}),
		),
	)
}

func deleteConfirmKeyboard(shortID string, page int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("🗑 Yes, delete", Callback{Action: ActionLinkDeleteConfirm, LinkID: shortID}),
			button("Keep it", Callback{Action: ActionLinkDetails, LinkID: shortID, Page: page}),
		),
	)
}

// setupNavRow is the shared Back/Skip/Cancel footer for wizard steps past
// Welcome. Back and Skip move to the adjacent step through the same
// setup_next action, leaving the stored value for this step untouched.
// Skipping the whole wizard is offered on the Welcome screen only.
func setupNavRow(step domain.SetupStep) []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		button("⬅️ Back", Callback{Action: ActionSetupNext, Step: string(step.Prev())}),
		button("Skip ➡️", Callback{Action: ActionSetupNext, Step: string(step.Next())}),
		button("Cancel", Callback{Action: ActionSetupCancel}),
	)
}

func setupWelcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("Next ➡️", Callback{Action: ActionSetupNext, Step: string(domain.SetupStepDomainSelection)}),
			button("Skip", Callback{Action: ActionSetupSkip}),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("Cancel", Callback{Action: ActionSetupCancel}),
		),
	)
}

// setupDomainKeyboard offers the default domain first, then up to
// maxWizardDomains verified domains from the provider.
func setupDomainKeyboard(availableDomains []string, defaultDomain string) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{button("🌐 "+defaultDomain, Callback{Action: ActionSetupSetDomain, Domain: defaultDomain})},
	}

	shown := 0
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range availableDomains {
		if d == defaultDomain {
			continue
		}
		if shown == maxWizardDomains {
			break
		}
		row = append(row, button(d, Callback{Action: ActionSetupSetDomain, Domain: d}))
		shown++
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, setupNavRow(domain.SetupStepDomainSelection))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func setupStyleKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, style := range domain.AllSlugStyles {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			button(style.Description(), Callback{Action: ActionSetupSetStyle, Style: string(style)}),
		})
	}
	rows = append(rows, setupNavRow(domain.SetupStepSlugStyle))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func setupToggleKeyboard(action Action, step domain.SetupStep) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			button("Yes", Callback{Action: action, Enabled: true}),
			button("No", Callback{Action: action, Enabled: false}),
		),
		setupNavRow(step),
	)
}

func settingsKeyboard(prefs *domain.UserPreferences) tgbotapi.InlineKeyboardMarkup {
	var styleRow []tgbotapi.InlineKeyboardButton
	for _, style := range domain.AllSlugStyles {
		label := string(style)
		if style == prefs.PreferredSlugStyle {
			label = "• " + label
		}
		styleRow = append(styleRow, button(label, Callback{Action: ActionSettingsSetStyle, Style: string(style)}))
	}

	return tgbotapi.NewInlineKeyboardMarkup(
		styleRow,
		tgbotapi.NewInlineKeyboardRow(
			button("Auto-confirm: "+onOff(prefs.AutoConfirm), Callback{Action: ActionSettingsToggleAuto}),
			button("Reasoning: "+onOff(prefs.ShowReasoning), Callback{Action: ActionSettingsToggleReason}),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("🌐 Change domain", Callback{Action: ActionSettingsShowDomains}),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("🔄 Rerun setup", Callback{Action: ActionSettingsRerunSetup}),
			button("♻️ Reset", Callback{Action: ActionSettingsReset}),
		),
		tgbotapi.NewInlineKeyboardRow(
			button("Close", Callback{Action: ActionSettingsClose}),
		),
	)
}

// settingsDomainKeyboard mirrors the wizard's domain picker but commits back
// to the settings view. The current domain is marked, not hidden.
func settingsDomainKeyboard(availableDomains []string, current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	seen := false
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range availableDomains {
		label := d
		if d == current {
			label = "• " + label
			seen = true
		}
		row = append(row, button(label, Callback{Action: ActionSettingsSetDomain, Domain: d}))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	if !seen && current != "" {
		rows = append([][]tgbotapi.InlineKeyboardButton{
			{button("• "+current, Callback{Action: ActionSettingsSetDomain, Domain: current})},
		}, rows...)
	}

	// Re-selecting the current domain is a no-op that lands back on the
	// settings view.
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		button("Back", Callback{Action: ActionSettingsSetDomain, Domain: current}),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
