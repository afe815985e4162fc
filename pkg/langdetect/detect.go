// Package langdetect guesses the programming language of fenced code blocks.
// The renderer uses it to tag code blocks whose fence carries no info string,
// so the preview can pick a highlighter and the map table can label raw
// zones. Detection is backed by go-enry with a few cheap pattern checks in
// front of the classifier.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// langText is the fallback when detection fails or confidence is low.
const langText = "text"

// classifierCandidates bounds the enry classifier to languages that commonly
// appear in Markdown code fences.
//
//nolint:gochecknoglobals // Read-only candidate list
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a lowercase language identifier for code content, or "text"
// when nothing is recognized with confidence.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return Normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return Normalize(lang)
	}

	return langText
}

// detectByPattern checks for a handful of highly indicative prefixes before
// paying for the classifier.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)

	switch {
	case bytes.HasPrefix(trimmed, []byte("package ")) && bytes.Contains(trimmed, []byte("func ")):
		return "go"
	case bytes.HasPrefix(trimmed, []byte("#!/")):
		return "bash"
	case bytes.HasPrefix(trimmed, []byte("{")) && bytes.HasSuffix(trimmed, []byte("}")):
		return "json"
	case bytes.HasPrefix(trimmed, []byte("<!DOCTYPE")), bytes.HasPrefix(trimmed, []byte("<html")):
		return "html"
	case bytes.HasPrefix(trimmed, []byte("SELECT ")), bytes.HasPrefix(trimmed, []byte("select ")):
		return "sql"
	case bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("RUN ")):
		return "dockerfile"
	default:
		return ""
	}
}

// Normalize maps an info string or enry language name to a lowercase
// identifier, resolving common aliases.
func Normalize(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch l {
	case "":
		return langText
	case "golang":
		return "go"
	case "shell", "sh", "zsh":
		return "bash"
	case "js", "node":
		return "javascript"
	case "ts":
		return "typescript"
	case "yml":
		return "yaml"
	case "c++":
		return "cpp"
	default:
		return l
	}
}
