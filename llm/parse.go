package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jrsteele09/now-playing/internal/utils"
)

var (
	codeFence    = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	bulletPrefix = regexp.MustCompile(`^[-*•]\s*`)
)

// StripFence removes a surrounding markdown code fence, if any
func StripFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// ParseList decodes a reply that should be a JSON array of strings, keeping at
// most limit items. ok is false when the reply is not a non-empty JSON array.
func ParseList(text string, limit int) (items []string, ok bool) {
	text = StripFence(text)
	var raw []any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}
	items = utils.ToStringSlice(raw, limit)
	return items, len(items) > 0
}

// ParseLines is the fallback for replies that are not JSON: every line longer
// than minLen, stripped of bullets and quotes, up to limit lines.
func ParseLines(text string, minLen, limit int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if len(strings.TrimSpace(line)) <= minLen {
			continue
		}
		line = bulletPrefix.ReplaceAllString(strings.TrimSpace(line), "")
		line = strings.TrimSpace(strings.Trim(line, `",`))
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}
