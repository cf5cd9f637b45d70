package llm

import (
	"fmt"
	"strings"

	"github.com/tophbot/toph/internal/core"
)

// Default character budgets for the diff section of assembled prompts.
const (
	DefaultReviewPatchBudget  = 30_000
	DefaultCommentPatchBudget = 15_000
)

const (
	reviewSentinel   = "\n[Context budget exhausted, subsequent files omitted.]\n"
	commentSentinel  = "\n[Diff budget exhausted, subsequent files omitted.]\n"
	truncationMarker = "\n... (truncated)\n"
)

// PromptMeta carries the pull request metadata rendered into the prompt
// header.
type PromptMeta struct {
	RepoFullName string
	PRTitle      string
	PRAuthor     string
	HeadRef      string
	BaseRef      string
}

// Builder assembles bounded-size prompts from a pull request's changed files.
type Builder struct {
	prompts  *PromptManager
	provider ModelProvider
}

// NewBuilder creates a prompt builder using the given prompt manager.
func NewBuilder(prompts *PromptManager) *Builder {
	return &Builder{prompts: prompts, provider: DefaultProvider}
}

// ReviewPrompt assembles the full-review prompt: header, budgeted diff
// section, then the review instruction block.
func (b *Builder) ReviewPrompt(meta PromptMeta, files []core.ChangedFile, maxTotalPatchChars int) (string, error) {
	instructions, err := b.prompts.Render(ReviewPrompt, b.provider, nil)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(promptHeader(meta, len(files)))
	sb.WriteString("## Code Changes Context\n")
	writeDiffSection(&sb, files, maxTotalPatchChars, reviewSentinel)
	sb.WriteString(instructions)
	return sb.String(), nil
}

// CommentPrompt assembles the conversational prompt: header, budgeted diff
// section, the conversational instruction block, then the user's question
// verbatim.
func (b *Builder) CommentPrompt(meta PromptMeta, files []core.ChangedFile, userQuery string, maxTotalPatchChars int) (string, error) {
	instructions, err := b.prompts.Render(CommentPrompt, b.provider, nil)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(promptHeader(meta, len(files)))
	sb.WriteString("## Code Diff Context\n")
	writeDiffSection(&sb, files, maxTotalPatchChars, commentSentinel)
	sb.WriteString(instructions)
	if userQuery != "" {
		fmt.Fprintf(&sb, "\n## User Question:\n%s\n", userQuery)
	}
	return sb.String(), nil
}

func promptHeader(meta PromptMeta, fileCount int) string {
	return fmt.Sprintf(
		"Repository: %s\nPR Title: %s\nAuthor: %s\nBranches: %s -> %s\nFiles changed: %d\n\n",
		meta.RepoFullName, meta.PRTitle, meta.PRAuthor, meta.HeadRef, meta.BaseRef, fileCount,
	)
}

// writeDiffSection renders files in the given order under a character budget.
// Files with no patch are skipped. Once the budget is spent, a single
// exhaustion sentinel is appended and iteration stops. A file whose rendered
// block would overflow the remaining budget has its patch truncated to fit,
// which exhausts the budget for any file after it.
func writeDiffSection(sb *strings.Builder, files []core.ChangedFile, maxTotalPatchChars int, sentinel string) {
	accumulated := 0
	for _, file := range files {
		if file.Patch == "" {
			continue
		}

		remaining := maxTotalPatchChars - accumulated
		if remaining <= 0 {
			sb.WriteString(sentinel)
			break
		}

		block := renderFileBlock(file.Filename, file.Patch)
		if len(block) > remaining {
			block = renderFileBlock(file.Filename, truncatePatch(file.Patch, file.Filename, remaining))
			sb.WriteString(block)
			accumulated = maxTotalPatchChars
			continue
		}

		sb.WriteString(block)
		accumulated += len(block)
	}
}

func renderFileBlock(filename, patch string) string {
	return fmt.Sprintf("### File: `%s`\n```diff\n%s\n```\n", filename, patch)
}

// truncatePatch cuts a patch so its rendered block fits within remaining.
func truncatePatch(patch, filename string, remaining int) string {
	overhead := len(renderFileBlock(filename, "")) + len(truncationMarker)
	cut := remaining - overhead
	if cut < 0 {
		cut = 0
	}
	if cut > len(patch) {
		cut = len(patch)
	}
	return patch[:cut] + truncationMarker
}
