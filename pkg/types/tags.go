package types

import "strings"

// Tag-list serialization. Tags are space-delimited; a tag containing a
// space is wrapped in [[...]] brackets. This is the classic wiki tag
// format and round-trips through ParseTags/FormatTags.

// ParseTags parses a serialized tag list into an ordered tag slice.
// The empty string parses to no tags.
func ParseTags(s string) []string {
	var tags []string
	rest := s
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			break
		}
		if strings.HasPrefix(rest, "[[") {
			if end := strings.Index(rest, "]]"); end >= 0 {
				tags = append(tags, rest[2:end])
				rest = rest[end+2:]
				continue
			}
			// Unterminated bracket: treat the remainder as one bare tag.
		}
		if sp := strings.IndexByte(rest, ' '); sp >= 0 {
			tags = append(tags, rest[:sp])
			rest = rest[sp+1:]
		} else {
			tags = append(tags, rest)
			rest = ""
		}
	}
	return tags
}

// FormatTags serializes an ordered tag slice, bracketing tags that contain
// spaces.
func FormatTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		if strings.ContainsRune(tag, ' ') {
			parts[i] = "[[" + tag + "]]"
		} else {
			parts[i] = tag
		}
	}
	return strings.Join(parts, " ")
}
