package extraction

// Preamble instructs the completion backend to answer with the specification
// JSON object only. The raw order text follows it on a new line.
const Preamble = `
You are a strict JSON extractor. Given the following order text, output EXACTLY a JSON object (no explanations) matching schema:
{
  "product_type": "",
  "quantity": 0,
  "size": "",
  "paper_type": "",
  "color": "",
  "finishing": [],
  "turnaround_days": 0,
  "rush": false,
  "missing_fields": []
}
Ensure fields are present; for missing fields, list their names in "missing_fields".
Respond ONLY with JSON (no markdown, backticks or commentary). If you cannot find a field, put null or an empty list and include the field name in "missing_fields".
Use deterministic parsing (temperature=0).
Only output JSON object, nothing else.

Text:
`

// SystemPrompt is the system message used with chat-style backends.
const SystemPrompt = "You are a strict JSON-only extractor. Respond with JSON only."

const decisionSystemPrompt = "You are a decision engine: answer with exactly one of: auto_approved, needs_review, rejected. Do not add explanation."

const decisionUserPrompt = "Spec: %s\nText: %s\n\nReturn one of: auto_approved, needs_review, rejected."

// Prompt builds the extraction prompt for raw order text.
func Prompt(text string) string {
	return Preamble + "\n" + text
}
