// Package langdetect guesses the language of code block content and maps
// language names to file extensions. It wraps go-enry with a few cheap
// rules that are more reliable than the classifier on short snippets.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// LangText is the tag of content no rule or classifier recognizes.
const LangText = "text"

// classifierCandidates limits the classifier to languages common in docs.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// snippet is code block content prepared once for all rules.
type snippet struct {
	raw   []byte
	text  string
	lines []string
}

func newSnippet(content []byte) *snippet {
	s := &snippet{raw: content, text: string(bytes.TrimSpace(content))}
	for line := range strings.Lines(s.text) {
		if line = strings.TrimSpace(line); line != "" && !strings.HasPrefix(line, "#") {
			s.lines = append(s.lines, line)
		}
	}
	return s
}

func (s *snippet) has(needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s.text, n) {
			return true
		}
	}
	return false
}

// rule tags content it recognizes. Rules run in order; the first match wins.
type rule struct {
	lang  string
	match func(*snippet) bool
}

var rules = []rule{
	{"go", func(s *snippet) bool { return strings.HasPrefix(s.text, "package ") }},
	{"bash", isShellSession},
	{"python", isPython},
	{"html", func(s *snippet) bool {
		lower := strings.ToLower(s.text)
		return strings.Contains(lower, "<!doctype html") || strings.Contains(lower, "<html") ||
			strings.Contains(lower, "<head>") || strings.Contains(lower, "<body>")
	}},
	{"json", func(s *snippet) bool {
		return strings.ContainsAny(s.text[:1], "{[") && strings.Contains(s.text, `"`)
	}},
	{"dockerfile", func(s *snippet) bool {
		return strings.HasPrefix(s.text, "FROM ") ||
			(s.has("\nFROM ") && s.has("\nRUN ")) ||
			(s.has("WORKDIR ") && s.has("COPY "))
	}},
	{"sql", func(s *snippet) bool {
		upper := strings.ToUpper(s.text)
		for _, keyword := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, keyword) {
				return true
			}
		}
		return false
	}},
	{"rust", func(s *snippet) bool { return s.has("fn main()", "println!", "let mut ") }},
	{"javascript", func(s *snippet) bool { return s.has("=>", "const ", "let ", "console.log") }},
	{"yaml", isYAML},
}

// Detect returns a fence tag for code content, or LangText when nothing
// matches with confidence. A shebang decides before any rule.
func Detect(content []byte) string {
	s := newSnippet(content)
	if s.text == "" {
		return LangText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	for _, r := range rules {
		if r.match(s) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return LangText
}

// Extension returns the file extension (with leading dot) for a fence tag
// such as "go", "py" or "shell". Unknown tags map to ".txt".
func Extension(tag string) string {
	if tag == "" || tag == LangText {
		return ".txt"
	}

	lang, ok := enry.GetLanguageByAlias(tag)
	if !ok {
		return ".txt"
	}

	if exts := enry.GetLanguageExtensions(lang); len(exts) > 0 {
		return exts[0]
	}
	return ".txt"
}

// isShellSession matches terminal transcripts that open with a "$ " prompt.
func isShellSession(s *snippet) bool {
	return strings.HasPrefix(s.text, "$ ")
}

func isPython(s *snippet) bool {
	switch {
	case s.has("def ") && s.has("):"):
		return true
	case s.has("__name__", "__main__"):
		return true
	case s.has("import (") || !s.has("import "):
		// Go groups imports; Python never does.
		return false
	}
	return s.has("from ") || strings.HasPrefix(s.text, "import ")
}

// isYAML wants at least two "key: value" lines or list items.
func isYAML(s *snippet) bool {
	count := 0
	for _, line := range s.lines {
		if strings.Contains(line, ": ") && !strings.ContainsAny(line, "({") && !strings.HasPrefix(line, `"`) {
			count++
		}
		if strings.HasPrefix(line, "- ") {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}
