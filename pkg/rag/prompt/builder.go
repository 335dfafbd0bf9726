package prompt

import (
	"fmt"
	"strings"

	"ai-recruiting-be/pkg/store"
)

// ContextualBuilder assembles the assistant prompt from retrieved candidate
// documents and long-lived context memories.
type ContextualBuilder struct {
	candidates []store.Document
	memories   []string
	summary    string
	query      string
}

func NewContextualBuilder(candidates []store.Document, memories []string, summary string, query string) *ContextualBuilder {
	return &ContextualBuilder{
		candidates: candidates,
		memories:   memories,
		summary:    summary,
		query:      query,
	}
}

func (b *ContextualBuilder) Build() string {
	var prompt strings.Builder

	b.writeCandidateMaterial(&prompt)
	b.writeMemories(&prompt)
	b.writeSessionSummary(&prompt)
	b.writeTask(&prompt)
	b.writeGuidelines(&prompt)
	b.writeUserQuery(&prompt)

	return prompt.String()
}

func (b *ContextualBuilder) writeCandidateMaterial(prompt *strings.Builder) {
	if len(b.candidates) == 0 {
		return
	}

	prompt.WriteString("<candidate_documents>\n")
	for i, c := range b.candidates {
		name := c.Name
		if name == "" {
			name = "Unnamed candidate"
		}
		prompt.WriteString(fmt.Sprintf("[%d] %s (relevance %.2f)\n", i+1, name, c.Score))
		prompt.WriteString(c.Content)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("</candidate_documents>\n\n")
}

func (b *ContextualBuilder) writeMemories(prompt *strings.Builder) {
	if len(b.memories) == 0 {
		return
	}

	prompt.WriteString("<recruiter_context>\n")
	for _, m := range b.memories {
		prompt.WriteString("- ")
		prompt.WriteString(m)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</recruiter_context>\n\n")
}

func (b *ContextualBuilder) writeSessionSummary(prompt *strings.Builder) {
	if b.summary == "" {
		return
	}

	prompt.WriteString("<conversation_summary>\n")
	prompt.WriteString(b.summary)
	prompt.WriteString("\n</conversation_summary>\n\n")
}

func (b *ContextualBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("<task>\n")
	prompt.WriteString("You are a recruiting assistant helping the user evaluate and compare candidates.\n")
	prompt.WriteString("Your goal is to answer their question using the candidate documents and context provided.\n")
	prompt.WriteString("</task>\n\n")
}

func (b *ContextualBuilder) writeGuidelines(prompt *strings.Builder) {
	prompt.WriteString("<guidelines>\n")
	prompt.WriteString("Understand the user's question semantically:\n")
	prompt.WriteString("- If they ask to compare candidates, contrast their experience side by side\n")
	prompt.WriteString("- If they ask about a skill or requirement, cite which candidates show it and where\n")
	prompt.WriteString("- If they ask for a shortlist or ranking, justify each placement from the documents\n")
	prompt.WriteString("- If they ask for a summary, synthesize the key qualifications\n")
	prompt.WriteString("\n")
	prompt.WriteString("Response principles:\n")
	prompt.WriteString("1. Base your answer strictly on the candidate documents and context provided\n")
	prompt.WriteString("2. Refer to candidates by name, never by document number\n")
	prompt.WriteString("3. Be complete - don't skip candidates that are relevant to the question\n")
	prompt.WriteString("4. If the documents don't contain what's being asked, say so honestly\n")
	prompt.WriteString("</guidelines>\n\n")
}

func (b *ContextualBuilder) writeUserQuery(prompt *strings.Builder) {
	prompt.WriteString("<user_question>\n")
	prompt.WriteString(b.query)
	prompt.WriteString("\n</user_question>\n\n")
	prompt.WriteString("Now provide your complete response:")
}
