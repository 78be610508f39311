package classify

// CategoryRule pairs a category label with the keywords that select it.
// Rules are evaluated in declaration order and the first match wins, so
// the order of this table is part of the classification contract:
// reordering silently changes outcomes.
type CategoryRule struct {
	Label    string
	Keywords []string
}

// DefaultCategory is the sentinel returned when no rule matches.
const DefaultCategory = "General Software"

// CategoryRules is the fixed, ordered taxonomy. Domain-specific rules
// come first so that e.g. "CRM tool with AI lead scoring" classifies as
// CRM rather than falling through to the broad AI/ML bucket.
var CategoryRules = []CategoryRule{
	{"CRM/Business Tools", []string{"crm", "sales", "lead", "customer relationship", "pipeline", "business tool"}},
	{"Healthcare", []string{"health", "medical", "patient", "clinic", "wellness", "fitness"}},
	{"Finance/Fintech", []string{"finance", "fintech", "payment", "trading", "banking", "invoice", "budget"}},
	{"Education", []string{"education", "learning platform", "course", "student", "tutor", "quiz"}},
	{"E-commerce", []string{"e-commerce", "ecommerce", "shop", "marketplace", "storefront", "retail"}},
	{"Developer Tools", []string{"developer", "devtool", "code review", "debugging", "sdk", "cli tool", "ide"}},
	{"Productivity", []string{"productivity", "task", "todo", "note-taking", "calendar", "workflow"}},
	{"Social/Community", []string{"social", "community", "messaging", "chat app", "forum", "networking"}},
	{"Data/Analytics", []string{"analytics", "dashboard", "visualization", "data pipeline", "metrics", "reporting"}},
	{"Content/Media", []string{"content", "media", "video", "audio", "podcast", "blog", "streaming"}},
	{"AI/ML Tools", []string{"ai", "machine learning", "llm", "gpt", "neural", "agent", "rag"}},
}

// technologyVocabulary is the fixed list of technology terms extracted
// from idea text via case-insensitive substring checks. A term may fire
// regardless of which category matched.
var technologyVocabulary = []string{
	"react", "next.js", "vue", "angular", "svelte",
	"node", "python", "django", "flask", "go", "typescript",
	"postgres", "mysql", "mongodb", "redis", "sqlite",
	"supabase", "firebase",
	"docker", "kubernetes", "aws", "gcp", "azure",
	"graphql", "rest api", "websocket",
	"openai", "gpt-4", "claude", "gemini", "langchain", "llama",
	"pinecone", "weaviate", "chroma",
	"stripe", "twilio",
}

// featureVocabulary is the fixed list of feature terms, same matching
// rules as technologies.
var featureVocabulary = []string{
	"authentication", "login", "user profile",
	"real-time", "chat", "notification",
	"search", "recommendation", "lead scoring",
	"dashboard", "analytics", "reporting", "visualization",
	"payment", "subscription", "billing",
	"upload", "export", "import",
	"collaboration", "sharing", "comments",
	"api", "integration", "automation", "scheduling",
}
