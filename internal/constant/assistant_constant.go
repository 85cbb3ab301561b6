package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
	ChatRoleTool      = "tool"

	// Metadata keys on the terminal stream event. Downstream consumers render
	// these out-of-band (side panel, CSV export) without re-parsing chat text.
	MetadataKeyKeywordResults   = "keyword_results"
	MetadataKeyRankResult       = "rank_result"
	MetadataKeySiteAudit        = "site_audit"
	MetadataKeyBacklinkOverview = "backlink_overview"
	MetadataKeyProjectStatus    = "project_status"

	AssistantSystemPrompt = `You are an SEO assistant. You help users research keywords, check rankings, audit pages, review backlink profiles, and read project status.

TOOLS
- Call a tool when the user asks for live data (keyword ideas, current rankings, site audits, backlinks, project status).
- Answer directly from knowledge when the question is conceptual (how rankings work, what a canonical tag is).
- Never invent metrics. If a tool failed, say which data is missing and answer with what you have.

STYLE
- Direct, concise, practical. 2-6 sentences unless the user asks for depth.
- No meta-talk about tools or your process. Present results, not mechanics.`

	KnowledgeExcerptHeader = `Reference material relevant to this question (use it, do not quote it verbatim):

`

	// KeywordPresentationInstruction is appended to every keyword-shaped tool
	// result before the second model pass. The answer contract (summary plus a
	// few standout bullets, full data out-of-band) is enforced here, not by
	// post-hoc validation of the model output.
	KeywordPresentationInstruction = `Present these results as follows: summarize in 1-2 sentences, list 3-5 standout keywords as short prose bullets with their volume and difficulty, and state the total count of new keywords found. Do NOT reproduce the full list or format it as a table - the complete result set is attached to your answer for the side panel.`

	ToolFailureNote = `The tool call failed. Tell the user this data is unavailable right now; do not fabricate a substitute and do not claim the call succeeded.`
)
