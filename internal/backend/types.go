package backend

import (
	"time"

	"github.com/google/uuid"
)

// Page is one window of a paginated list endpoint. TotalItems is the
// authoritative collection size used to derive the page count; a server
// that cannot count cheaply reports -1 via the client wrappers.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
}

// IndexAttempt is one indexing run of a connector.
type IndexAttempt struct {
	ID               int        `json:"id"`
	ConnectorID      int        `json:"connector_id"`
	Status           string     `json:"status"` // not_started | in_progress | success | failed | canceled
	NewDocsIndexed   int        `json:"new_docs_indexed"`
	TotalDocsIndexed int        `json:"total_docs_indexed"`
	ErrorMsg         string     `json:"error_msg,omitempty"`
	TimeStarted      *time.Time `json:"time_started,omitempty"`
	TimeUpdated      time.Time  `json:"time_updated"`
}

// AttemptError is one document-level failure within an index attempt.
type AttemptError struct {
	ID             int       `json:"id"`
	IndexAttemptID int       `json:"index_attempt_id"`
	DocumentID     string    `json:"document_id,omitempty"`
	FailureMessage string    `json:"failure_message"`
	IsResolved     bool      `json:"is_resolved"`
	TimeCreated    time.Time `json:"time_created"`
}

// EntityType is one knowledge-graph entity definition. Name is the identity
// key and never changes after creation.
type EntityType struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	SourceName  string `json:"grounded_source_name,omitempty"`
}

// ConnectorFile is one file tracked by a file connector. Selected controls
// whether the file is included in indexing.
type ConnectorFile struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Selected  bool   `json:"selected"`
	SizeBytes int64  `json:"size_bytes"`
}

// BotConfig is the Discord bot registration state.
type BotConfig struct {
	Configured bool       `json:"configured"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// GuildConfig is the per-guild Discord configuration.
type GuildConfig struct {
	ID        uuid.UUID `json:"id"`
	GuildID   string    `json:"guild_id"`
	GuildName string    `json:"guild_name"`
	Enabled   bool      `json:"enabled"`
}

// ChannelConfig is the per-channel Discord bot behavior.
type ChannelConfig struct {
	ID               uuid.UUID `json:"id"`
	GuildID          string    `json:"guild_id"`
	ChannelID        string    `json:"channel_id"`
	ChannelName      string    `json:"channel_name"`
	AnswerEnabled    bool      `json:"answer_enabled"`
	RespondToBots    bool      `json:"respond_to_bots"`
	CitationsEnabled bool      `json:"citations_enabled"`
}

// SearchSettings is the embedding-model configuration of the backend.
type SearchSettings struct {
	ModelName           string `json:"model_name"`
	ModelDim            int    `json:"model_dim"`
	NormalizeEmbeddings bool   `json:"normalize_embeddings"`
	QueryPrefix         string `json:"query_prefix,omitempty"`
	PassagePrefix       string `json:"passage_prefix,omitempty"`
	Provider            string `json:"provider,omitempty"`
}

// AssistantTool is one tool toggle of an assistant.
type AssistantTool struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// Assistant is an editable agent definition: prompt metadata, model
// selection, temperature, and tool toggles.
type Assistant struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ModelName   string          `json:"model_name"`
	Temperature float64         `json:"temperature"`
	Tools       []AssistantTool `json:"tools"`
}
