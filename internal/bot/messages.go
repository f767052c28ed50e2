package bot

import (
	"fmt"
	"strings"

	"github.com/telepathbot/telepath/internal/domain"
	"github.com/telepathbot/telepath/internal/slug"
)

// Message texts use Telegram's Markdown parse mode throughout.

const (
	analyzingMessage = "🔍 Analyzing URL and generating a slug suggestion..."

	helpMessage = `*Telepath Help*

Send me any URL and I'll suggest a short, memorable slug for it.

*Commands*
/start - run the setup wizard
/links - manage your short links
/settings - view and change your preferences
/stats - your link statistics
/about - what this bot is
/help - this message

*Shortening a link*
1. Paste a URL into the chat.
2. Review the suggested slug, or tap ✏️ Edit to type your own.
3. Tap ✅ Confirm to create the short link.`

	aboutMessage = `*Telepath*

A conversational link shortener. URLs in, short links out, with AI-suggested slugs tuned to your style.

Links are created on Dub and mirrored locally so you can browse, edit and delete them right here in the chat.`

	setupWelcomeMessage = `👋 *Welcome to Telepath!*

Let's set up how your short links are made. This takes under a minute, and you can rerun it anytime with /settings.

Tap *Next* to begin, or *Skip* to use the defaults.`

	setupDomainMessage = `🌐 *Step 1 of 4: Default domain*

Which domain should your short links use?`

	setupStyleMessage = `🎨 *Step 2 of 4: Slug style*

How should suggested slugs look?`

	setupAutoConfirmMessage = `⚡ *Step 3 of 4: Auto-confirm*

Create links immediately from the suggestion, without asking first?`

	setupReasoningMessage = `💭 *Step 4 of 4: Show reasoning*

Include a short explanation of why each slug was chosen?`

	setupCompletedMessage = `🎉 *Setup complete!*

Send me any URL and I'll shorten it for you.`

	setupSkippedMessage = `Setup skipped. You're on the defaults: intelligent slugs, confirmation before creating, reasoning shown.

Send me any URL to get started.`

	setupCancelledMessage = "Setup cancelled. Run /start whenever you want to pick it up again."

	setupRequiredMessage = "Please finish setup first. Run /start to configure how your links are made."

	shortURLRejectedMessage = "That's already a short link. Send me the original URL instead."

	noURLFoundMessage = "I couldn't find a URL in that message. Paste a link starting with http:// or https://."

	sessionExpiredMessage = "That suggestion has expired. Send the URL again to get a fresh one."

	linkNotFoundMessage = "Link not found. It may have been deleted already."

	editSlugPromptMessage = "✏️ Send the new slug as a message (letters, digits, hyphens and underscores), or type *cancel* to keep the current one."

	editCancelledMessage = "Edit cancelled."

	customSlugPromptMessage = "✏️ Send your custom slug as a message (letters, digits, hyphens and underscores)."

	noLinksMessage = "You don't have any links yet. Send me a URL to create your first one!"

	nonTextMessage = "I only work with text. Send me a URL as a plain message."

	settingsResetMessage = "♻️ Settings reset to defaults. Run /start to go through setup again."
)

// suggestionMessage renders the confirmation prompt for a pending suggestion.
func suggestionMessage(s domain.Suggestion, showReasoning bool) string {
	var b strings.Builder

	b.WriteString("🔗 *Slug suggestion*\n\n")
	fmt.Fprintf(&b, "URL: %s\n", s.URL)
	fmt.Fprintf(&b, "Short link: `%s`\n", s.ShortLink())
	if showReasoning && s.Reasoning != "" {
		fmt.Fprintf(&b, "\n💭 _%s_\n", s.Reasoning)
	}
	b.WriteString("\nCreate this link?")

	return b.String()
}

// linkCreatedMessage confirms a freshly created short link.
func linkCreatedMessage(link *domain.UserLink) string {
	return fmt.Sprintf("✅ *Short link created!*\n\n`%s`\n→ %s", link.ShortLink, link.URL)
}

// linksPageMessage renders one page of the management list.
func linksPageMessage(page *domain.LinkPage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔗 *Your links* (page %d of %d, %d total)\n\n",
		page.CurrentPage, page.TotalPages, page.TotalLinks)
	for i, link := range page.Links {
		fmt.Fprintf(&b, "%d. `%s`\n   → %s\n", i+1, link.ShortLink, slug.Truncate(link.URL, 60))
	}
	b.WriteString("\nTap a slug below for details.")

	return b.String()
}

// searchResultsMessage renders a flat match list for "/links <query>".
func searchResultsMessage(query string, links []*domain.UserLink) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🔎 *%d match(es) for* %s\n\n", len(links), query)
	for i, link := range links {
		fmt.Fprintf(&b, "%d. `%s`\n   → %s\n", i+1, link.ShortLink, slug.Truncate(link.URL, 60))
	}

	return strings.TrimRight(b.String(), "\n")
}

// linkDetailsMessage renders the detail view for one link.
func linkDetailsMessage(link *domain.UserLink) string {
	var b strings.Builder

	b.WriteString("🔗 *Link details*\n\n")
	fmt.Fprintf(&b, "Short link: `%s`\n", link.ShortLink)
	fmt.Fprintf(&b, "Destination: %s\n", link.URL)
	if link.Title != "" {
		fmt.Fprintf(&b, "Title: %s\n", link.Title)
	}
	fmt.Fprintf(&b, "Clicks: %d\n", link.Clicks)
	fmt.Fprintf(&b, "Created: %s", link.CreatedAt.Format("2006-01-02 15:04"))

	return b.String()
}

func deleteConfirmMessage(link *domain.UserLink) string {
	return fmt.Sprintf("🗑 Delete `%s`?\n\nThis removes the short link permanently. Anyone using it will get an error.", link.ShortLink)
}

// deleteResultMessage reports exactly what the best-effort delete achieved.
func deleteResultMessage(result *domain.DeleteResult) string {
	switch {
	case result.LocalDeleted && result.ProviderErr == nil:
		return "🗑 Link deleted."
	case result.LocalDeleted:
		return "🗑 Link removed from your list, but the provider couldn't be reached. The short link may still resolve for a while."
	default:
		return "The link was already gone."
	}
}

func slugUpdatedMessage(link *domain.UserLink) string {
	return fmt.Sprintf("✏️ Slug updated. Your link is now `%s`.\n\nNote: the previous short link keeps working at the provider.", link.ShortLink)
}

// settingsMessage renders the current preferences.
func settingsMessage(prefs *domain.UserPreferences) string {
	var b strings.Builder

	b.WriteString("⚙️ *Your settings*\n\n")
	dom := prefs.DefaultDomain
	if dom == "" {
		dom = "dub.sh (default)"
	}
	fmt.Fprintf(&b, "Domain: %s\n", dom)
	fmt.Fprintf(&b, "Slug style: %s\n", prefs.PreferredSlugStyle)
	fmt.Fprintf(&b, "Auto-confirm: %s\n", onOff(prefs.AutoConfirm))
	fmt.Fprintf(&b, "Show reasoning: %s", onOff(prefs.ShowReasoning))

	return b.String()
}

// statsMessage renders aggregate link statistics.
func statsMessage(stats *domain.LinkStats) string {
	if stats.TotalLinks == 0 {
		return "📊 No links yet. Send me a URL to create your first one!"
	}

	var b strings.Builder
	b.WriteString("📊 *Your statistics*\n\n")
	fmt.Fprintf(&b, "Links: %d\n", stats.TotalLinks)
	fmt.Fprintf(&b, "Total clicks: %d\n", stats.TotalClicks)
	if stats.MostClickedLink != nil && stats.MostClickedLink.Clicks > 0 {
		fmt.Fprintf(&b, "Most clicked: `%s` (%d)\n", stats.MostClickedLink.ShortLink, stats.MostClickedLink.Clicks)
	}
	if len(stats.RecentLinks) > 0 {
		b.WriteString("\nRecent:\n")
		for _, link := range stats.RecentLinks {
			fmt.Fprintf(&b, "• `%s`\n", link.ShortLink)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
