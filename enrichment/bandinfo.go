package enrichment

import (
	"regexp"
	"strings"
)

const (
	maxMembers      = 5
	maxNotableFacts = 3
)

var bandLabel = regexp.MustCompile(`(?i)^.*?(members|formed|origin|facts):\s*`)

// parseBandInfo reads the "Members:/Formed:/Origin:/Facts:" reply format.
// ok is false when no members could be read.
func parseBandInfo(reply, artist string) (BandInfo, bool) {
	info := BandInfo{NotableFacts: []string{}, Source: SourceLLM}
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.ReplaceAll(line, "**", ""))
		m := bandLabel.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(line[len(m[0]):])
		switch strings.ToLower(m[1]) {
		case "members":
			if strings.Contains(strings.ToLower(value), "solo artist") {
				info.Members = []string{artist}
				continue
			}
			info.Members = splitTrimmed(value, ",", maxMembers)
		case "formed":
			info.FormationYear = value
		case "origin":
			info.Origin = value
		case "facts":
			info.NotableFacts = splitTrimmed(value, ".", maxNotableFacts)
		}
	}
	return info, len(info.Members) > 0
}

func splitTrimmed(s, sep string, limit int) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		out = append(out, part)
		if len(out) == limit {
			break
		}
	}
	return out
}
