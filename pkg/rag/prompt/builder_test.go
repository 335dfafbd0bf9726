package prompt

import (
	"strings"
	"testing"

	"ai-recruiting-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestBuildIncludesAllSections(t *testing.T) {
	candidates := []store.Document{
		{ID: "c1", Name: "Ada Lovelace", Content: "10 years of Go and distributed systems.", Score: 0.91},
		{ID: "c2", Name: "", Content: "Frontend engineer, React and TypeScript.", Score: 0.62},
	}
	memories := []string{"prefers candidates open to relocation"}

	out := NewContextualBuilder(candidates, memories, "Discussed backend roles in Berlin.", "who fits the platform team?").Build()

	assert.Contains(t, out, "<candidate_documents>")
	assert.Contains(t, out, "[1] Ada Lovelace (relevance 0.91)")
	assert.Contains(t, out, "[2] Unnamed candidate (relevance 0.62)")
	assert.Contains(t, out, "10 years of Go and distributed systems.")

	assert.Contains(t, out, "<recruiter_context>")
	assert.Contains(t, out, "- prefers candidates open to relocation")

	assert.Contains(t, out, "<conversation_summary>")
	assert.Contains(t, out, "Discussed backend roles in Berlin.")

	assert.Contains(t, out, "<user_question>\nwho fits the platform team?")
	assert.True(t, strings.HasSuffix(out, "Now provide your complete response:"))
}

func TestBuildOmitsEmptySections(t *testing.T) {
	out := NewContextualBuilder(nil, nil, "", "any pythonistas?").Build()

	assert.NotContains(t, out, "<candidate_documents>")
	assert.NotContains(t, out, "<recruiter_context>")
	assert.NotContains(t, out, "<conversation_summary>")
	assert.Contains(t, out, "<task>")
	assert.Contains(t, out, "<guidelines>")
	assert.Contains(t, out, "any pythonistas?")
}

func TestBuildSectionOrder(t *testing.T) {
	candidates := []store.Document{{ID: "c1", Name: "Grace Hopper", Content: "COBOL pioneer.", Score: 0.8}}
	out := NewContextualBuilder(candidates, []string{"values navy discipline"}, "summary", "question").Build()

	docIdx := strings.Index(out, "<candidate_documents>")
	memIdx := strings.Index(out, "<recruiter_context>")
	sumIdx := strings.Index(out, "<conversation_summary>")
	taskIdx := strings.Index(out, "<task>")
	qIdx := strings.Index(out, "<user_question>")

	assert.True(t, docIdx < memIdx && memIdx < sumIdx && sumIdx < taskIdx && taskIdx < qIdx)
}
