package i18n

// loadEnglishMessages loads all English translations
func loadEnglishMessages() {
	messages[LangEN] = map[string]string{
		// Common
		"app.name":        "Scout",
		"app.description": "Admin console for your document-indexing backend",
		"app.version":     "Scout v%s",

		// Pagination
		"page.indicator": "Page %d of %d",
		"page.loading":   "Loading...",
		"page.empty":     "No items",
		"page.range":     "Page %d is out of range (valid: 0-%d)",

		// Index attempts
		"attempts.title":       "Index Attempts",
		"attempts.none":        "No index attempts recorded for this connector",
		"attempts.fetch.error": "Failed to load index attempts: %v",
		"errors.title":         "Indexing Errors (attempt %d)",
		"errors.none":          "No errors recorded for this attempt",
		"errors.approx.total":  "Total count is approximate until the last page is reached",

		// Editing
		"edit.unsaved":       "Unsaved changes",
		"edit.clean":         "All changes saved",
		"edit.saved":         "Saved %d row(s)",
		"edit.nothing":       "Nothing to save",
		"edit.cancelled":     "Changes discarded",
		"edit.save.error":    "Save failed: %v",
		"edit.confirm.empty": "This removes every row. Type 'yes' to confirm: ",
		"edit.aborted":       "Aborted",

		// Entity types
		"entities.title":    "Knowledge Graph Entity Types",
		"entities.enabled":  "Enabled %s",
		"entities.disabled": "Disabled %s",
		"entities.unknown":  "Unknown entity type: %s",

		// Discord
		"bot.configured":     "Discord bot is registered (since %s)",
		"bot.unconfigured":   "Discord bot is not registered",
		"bot.registered":     "Discord bot registered",
		"bot.removed":        "Discord bot registration removed",
		"guilds.title":       "Discord Guilds",
		"guilds.none":        "No guilds configured",
		"guild.deleted":      "Guild %s deleted",
		"guild.confirm":      "Deleting guild %q removes all of its channel configs. Type 'yes' to confirm: ",
		"channels.title":     "Channel Configuration (%s)",
		"channels.none":      "No channels configured for this guild",

		// Embedding settings
		"embedding.title":   "Embedding Settings",
		"embedding.updated": "Embedding settings updated; the backend will re-embed documents",

		// Assistant
		"assistant.title": "Assistant %d",
		"assistant.saved": "Assistant updated",

		// Errors
		"error.generic": "Error: %v",
	}
}
