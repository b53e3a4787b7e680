package runner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// anySegments matches zero or more path segments.
const anySegments = "**"

// globSet holds compiled slash-separated patterns. A pattern without a
// slash matches any single segment, so "vendor" skips every vendor directory.
type globSet [][]string

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, raw := range patterns {
		pattern := strings.Trim(filepath.ToSlash(raw), "/")
		if pattern == "" {
			continue
		}

		segments := strings.Split(pattern, "/")
		for _, seg := range segments {
			if seg == anySegments {
				continue
			}
			if _, err := path.Match(seg, ""); err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", raw, err)
			}
		}

		if len(segments) == 1 && segments[0] != anySegments {
			segments = []string{anySegments, segments[0], anySegments}
		}
		set = append(set, segments)
	}
	return set, nil
}

// match reports whether the relative path rel matches any pattern.
func (g globSet) match(rel string) bool {
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for _, pattern := range g {
		if matchSegments(pattern, segments) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == anySegments {
			for skip := range len(segments) + 1 {
				if matchSegments(pattern[1:], segments[skip:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], segments[0]); !ok {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}
	return len(segments) == 0
}
