package i18n

// loadChineseMessages loads all Traditional Chinese translations
func loadChineseMessages() {
	messages[LangZhTW] = map[string]string{
		// Common
		"app.name":        "Scout",
		"app.description": "文件索引後端管理主控台",
		"app.version":     "Scout v%s",

		// Pagination
		"page.indicator": "第 %d 頁，共 %d 頁",
		"page.loading":   "載入中...",
		"page.empty":     "沒有項目",
		"page.range":     "第 %d 頁超出範圍（有效範圍：0-%d）",

		// Index attempts
		"attempts.title":       "索引嘗試",
		"attempts.none":        "此連接器尚無索引嘗試記錄",
		"attempts.fetch.error": "載入索引嘗試失敗：%v",
		"errors.title":         "索引錯誤（嘗試 %d）",
		"errors.none":          "此次嘗試沒有錯誤記錄",
		"errors.approx.total":  "在瀏覽到最後一頁之前，總數為估計值",

		// Editing
		"edit.unsaved":       "有未儲存的變更",
		"edit.clean":         "所有變更已儲存",
		"edit.saved":         "已儲存 %d 列",
		"edit.nothing":       "沒有需要儲存的變更",
		"edit.cancelled":     "已放棄變更",
		"edit.save.error":    "儲存失敗：%v",
		"edit.confirm.empty": "這會移除所有列。輸入 'yes' 確認：",
		"edit.aborted":       "已中止",

		// Entity types
		"entities.title":    "知識圖譜實體類型",
		"entities.enabled":  "已啟用 %s",
		"entities.disabled": "已停用 %s",
		"entities.unknown":  "未知的實體類型：%s",

		// Discord
		"bot.configured":     "Discord 機器人已註冊（自 %s 起）",
		"bot.unconfigured":   "Discord 機器人尚未註冊",
		"bot.registered":     "Discord 機器人已註冊",
		"bot.removed":        "已移除 Discord 機器人註冊",
		"guilds.title":       "Discord 伺服器",
		"guilds.none":        "尚未設定任何伺服器",
		"guild.deleted":      "已刪除伺服器 %s",
		"guild.confirm":      "刪除伺服器 %q 會移除其所有頻道設定。輸入 'yes' 確認：",
		"channels.title":     "頻道設定（%s）",
		"channels.none":      "此伺服器尚未設定任何頻道",

		// Embedding settings
		"embedding.title":   "嵌入模型設定",
		"embedding.updated": "嵌入設定已更新；後端將重新嵌入文件",

		// Assistant
		"assistant.title": "助理 %d",
		"assistant.saved": "助理已更新",

		// Errors
		"error.generic": "錯誤：%v",
	}
}
