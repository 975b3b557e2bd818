// Package textjson extracts JSON payloads from freeform GitHub Actions log
// text, such as the output of `gh run view --log`. Run logs decorate every
// line with an ISO timestamp prefix and may carry ANSI escape codes; both are
// stripped before extraction. Extraction itself tries markdown code fences
// first, then top-level brace/bracket matching.
package textjson

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// maxInputBytes is the maximum number of bytes we will process. Inputs larger
// than this limit are rejected to prevent memory exhaustion; a single run log
// is far below it.
const maxInputBytes = 10 * 1024 * 1024 // 10 MB

// reANSI matches ANSI escape codes (CSI sequences) that tools running inside
// the workflow may embed in their output.
var reANSI = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)

// reLogTimestamp matches the per-line timestamp prefix that `gh run view
// --log` and the Actions UI export put in front of every log line, e.g.
// "2026-03-14T09:21:05.1234567Z ". Stripping it re-joins JSON documents that
// span multiple log lines.
var reLogTimestamp = regexp.MustCompile(`(?m)^\d{4}-\d{2}-\d{2}T[0-9:.]+Z ?`)

// reCodeFence matches a markdown code fence optionally tagged "json". The
// fenced content is captured in subgroup 1. (?s) enables dot-all so the
// non-greedy body spans newlines and stops at the first closing fence.
var reCodeFence = regexp.MustCompile("(?s)```(?:json)?[ \\t]*\n(.*?)\n```")

// sanitize strips the log-line timestamp prefixes, ANSI escape codes, and a
// leading UTF-8 BOM, and enforces the size cap.
func sanitize(text string) (string, error) {
	if len(text) > maxInputBytes {
		return "", fmt.Errorf("textjson: input exceeds maximum size of %d bytes", maxInputBytes)
	}
	text = strings.TrimPrefix(text, "\xef\xbb\xbf")
	text = reLogTimestamp.ReplaceAllString(text, "")
	text = reANSI.ReplaceAllString(text, "")
	return text, nil
}

// Extract returns the first valid JSON object or array found in text.
func Extract(text string) (json.RawMessage, error) {
	all, err := extractAll(text)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("textjson: no valid JSON found in text")
	}
	return all[0], nil
}

// ExtractAll returns all valid top-level JSON objects and arrays found in
// text, in order of appearance.
func ExtractAll(text string) []json.RawMessage {
	all, err := extractAll(text)
	if err != nil {
		return nil
	}
	return all
}

// ExtractInto extracts the first JSON value from text and unmarshals it into
// target.
func ExtractInto(text string, target any) error {
	raw, err := Extract(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("textjson: unmarshal failed: %w", err)
	}
	return nil
}

// fenceSpan records the byte range [start, end) of a code fence match. Any
// brace-matched candidate starting inside this span duplicates the fence
// content and is suppressed.
type fenceSpan struct{ start, end int }

// extractAll sanitizes the text and applies the extraction strategies.
func extractAll(text string) ([]json.RawMessage, error) {
	text, err := sanitize(text)
	if err != nil {
		return nil, err
	}

	var results []json.RawMessage
	var fences []fenceSpan

	// Strategy 1: markdown code fences.
	for _, loc := range reCodeFence.FindAllStringSubmatchIndex(text, -1) {
		if len(loc) < 4 {
			continue
		}
		inner := strings.TrimSpace(text[loc[2]:loc[3]])
		if inner == "" || !json.Valid([]byte(inner)) {
			continue
		}
		fences = append(fences, fenceSpan{loc[0], loc[1]})
		results = append(results, json.RawMessage(inner))
	}

	// Strategy 2: brace/bracket matching for top-level { } and [ ] structures.
	n := len(text)
	for i := 0; i < n; i++ {
		ch := text[i]
		if ch != '{' && ch != '[' {
			continue
		}
		if inAnyFence(i, fences) {
			continue
		}
		end := matchingDelimiter(text, i)
		if end < 0 {
			continue
		}
		candidate := text[i : end+1]
		if !json.Valid([]byte(candidate)) {
			continue
		}
		results = append(results, json.RawMessage(candidate))
		// Resume scanning after this value so nested objects are not also
		// returned as top-level results.
		i = end
	}

	return results, nil
}

// inAnyFence reports whether pos falls within any recorded fence span.
func inAnyFence(pos int, fences []fenceSpan) bool {
	for _, f := range fences {
		if pos >= f.start && pos < f.end {
			return true
		}
	}
	return false
}

// matchingDelimiter returns the index of the closing delimiter matching the
// opener ('{' → '}', '[' → ']') at position start, or -1 when unbalanced.
// Delimiters inside double-quoted strings and escape sequences are ignored.
func matchingDelimiter(text string, start int) int {
	openCh := text[start]
	var closeCh byte
	switch openCh {
	case '{':
		closeCh = '}'
	case '[':
		closeCh = ']'
	default:
		return -1
	}

	depth := 0
	inString := false
	n := len(text)

	for i := start; i < n; i++ {
		ch := text[i]

		if inString {
			switch ch {
			case '\\':
				i++ // skip the escaped character
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
