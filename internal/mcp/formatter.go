package mcp

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

const defaultMaxTokens = 4000

// ResponseBuilder constructs token-budgeted Markdown responses for MCP tools.
type ResponseBuilder struct {
	buf           strings.Builder
	tokenEstimate int
	maxTokens     int
	truncated     bool
	itemCount     int
}

// NewResponseBuilder creates a builder with the given token budget.
// If maxTokens <= 0, defaultMaxTokens is used.
func NewResponseBuilder(maxTokens int) *ResponseBuilder {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &ResponseBuilder{maxTokens: maxTokens}
}

// AddHeader writes a header line to the response.
func (rb *ResponseBuilder) AddHeader(text string) {
	line := text + "\n\n"
	rb.buf.WriteString(line)
	rb.tokenEstimate += len(line) / 4
}

// AddLine writes a single line to the response, returning false if budget exceeded.
func (rb *ResponseBuilder) AddLine(text string) bool {
	return rb.write(text + "\n")
}

// AddSection writes a section with a heading.
func (rb *ResponseBuilder) AddSection(heading string, content string) bool {
	return rb.write(fmt.Sprintf("### %s\n%s\n\n", heading, content))
}

// AddCodeBlock writes a fenced code block.
func (rb *ResponseBuilder) AddCodeBlock(lang, code string) bool {
	return rb.write("```" + lang + "\n" + code + "\n```\n\n")
}

// AddRawText writes raw text, respecting the budget.
func (rb *ResponseBuilder) AddRawText(text string) bool {
	return rb.write(text)
}

// AddTable renders rows as a Markdown table and returns how many rows fit
// in the budget.
func (rb *ResponseBuilder) AddTable(columns []string, rows []map[string]any) int {
	if len(columns) == 0 {
		return 0
	}
	if !rb.AddLine("| " + strings.Join(columns, " | ") + " |") {
		return 0
	}
	if !rb.AddLine("|" + strings.Repeat(" --- |", len(columns))) {
		return 0
	}
	added := 0
	for _, row := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = formatCell(row[col])
		}
		if !rb.AddLine("| " + strings.Join(cells, " | ") + " |") {
			break
		}
		rb.itemCount++
		added++
	}
	return added
}

func (rb *ResponseBuilder) write(text string) bool {
	cost := len(text) / 4
	if rb.tokenEstimate+cost > rb.maxTokens {
		rb.truncated = true
		return false
	}
	rb.buf.WriteString(text)
	rb.tokenEstimate += cost
	return true
}

// Finalize appends truncation notice and returns the final response text.
func (rb *ResponseBuilder) Finalize(totalCount, returnedCount int) string {
	if rb.truncated || returnedCount < totalCount {
		rb.buf.WriteString(fmt.Sprintf(
			"\n---\n*Showing %d of %d rows (truncated to ~%d tokens). Add `limit`/`skip` operations to page through results.*\n",
			returnedCount, totalCount, rb.maxTokens))
	}
	return rb.buf.String()
}

// TokenEstimate returns the current estimated token count.
func (rb *ResponseBuilder) TokenEstimate() int {
	return rb.tokenEstimate
}

// IsTruncated returns whether the response was truncated.
func (rb *ResponseBuilder) IsTruncated() bool {
	return rb.truncated
}

// ItemCount returns the number of table rows added.
func (rb *ResponseBuilder) ItemCount() int {
	return rb.itemCount
}

// FormatParams renders a parameter map as sorted `- $name = value` lines.
func FormatParams(params map[string]any) string {
	if len(params) == 0 {
		return "(none)"
	}
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)
	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- `$%s` = `%s`", name, formatValue(params[name]))
	}
	return b.String()
}

func formatCell(v any) string {
	return strings.ReplaceAll(formatValue(v), "|", `\|`)
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case map[string]any, []any:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
	return fmt.Sprint(v)
}
