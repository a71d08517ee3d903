package generation

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/xgenie/xgenie-api/internal/domain"
)

//go:embed prompts/system.txt
var systemPrompt string

//go:embed prompts/post.tmpl
var defaultPromptTemplate string

var modeInstructions = map[domain.Mode]string{
	domain.ModeBuzz:  "【バズ・拡散重視】強いパワーワードから開始する。共感、議論、または有益な情報の要約として提示し、リポストを強力に促す。",
	domain.ModeTrust: "【信頼・誠実告知】信頼性を重視。イベントの「背景」「目的」「参加メリット」を整理し、誠実なトーンで作成する。",
	domain.ModeStory: "【共感・ストーリー】「なぜこのイベントをやるのか」という熱量を伝える。個人の体験や想いをベースにした情緒的な文章にする。",
}

// promptData is passed to the prompt template
type promptData struct {
	EventInfo string
}

// PromptBuilder assembles the system instruction and user prompt for a call.
type PromptBuilder struct {
	tmpl *template.Template
}

// NewPromptBuilder parses the prompt template at path, or the built-in
// template when path is empty.
func NewPromptBuilder(path string) (*PromptBuilder, error) {
	text := defaultPromptTemplate
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read prompt template from %s: %v",
				ErrConfiguration, path, err)
		}
		text = string(content)
	}

	tmpl, err := template.New("post").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrConfiguration, err)
	}

	return &PromptBuilder{tmpl: tmpl}, nil
}

// SystemInstruction returns the fixed system prompt followed by the mode instruction.
func (b *PromptBuilder) SystemInstruction(mode domain.Mode) string {
	return strings.TrimSpace(systemPrompt) + "\n\n" + modeInstructions[mode]
}

// Prompt renders the user prompt embedding the event information.
func (b *PromptBuilder) Prompt(eventInfo string) (string, error) {
	var buf bytes.Buffer
	if err := b.tmpl.Execute(&buf, promptData{EventInfo: eventInfo}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}
