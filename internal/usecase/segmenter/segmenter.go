package segmenter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ParsedUtterance is one speaker-attributed turn produced from a document.
// Its position in the returned slice becomes the persisted order index.
type ParsedUtterance struct {
	Speaker   string
	Content   string
	StartTime *int
	EndTime   *int
	Metadata  map[string]interface{}
}

// UnsupportedFormatError is returned for file extensions the segmenter does
// not recognize. No extraction is attempted.
type UnsupportedFormatError struct {
	FileType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.FileType)
}

// ParseError wraps an extraction failure on a recognized format.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s file: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Speaker labels use either the ASCII or the full-width colon as separator.
var (
	speakerPattern     = regexp.MustCompile(`^([^:：]+)[:：](.+)$`)
	boldSpeakerPattern = regexp.MustCompile(`^\*\*([^*]+)\*\*[:：](.+)$`)
)

// SegmentFile selects a dialect or extractor from the file extension and
// returns the ordered utterances. txt and md are consumed directly; docx and
// pdf pass through binary text extraction first.
func SegmentFile(fileName string, data []byte) ([]ParsedUtterance, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

	switch ext {
	case "txt":
		return SegmentText(string(data)), nil
	case "md":
		return SegmentMarkdown(string(data)), nil
	case "docx":
		text, err := extractDOCX(data)
		if err != nil {
			return nil, &ParseError{Format: "DOCX", Err: err}
		}
		return SegmentText(text), nil
	case "pdf":
		text, err := extractPDF(data)
		if err != nil {
			return nil, &ParseError{Format: "PDF", Err: err}
		}
		return SegmentText(text), nil
	default:
		return nil, &UnsupportedFormatError{FileType: ext}
	}
}

// SegmentText parses the plain-text dialect. Lines carrying a
// "Label: content" prefix start a new speaker; other lines are attributed to
// the most recently seen speaker, so multi-line turns keep their attribution.
func SegmentText(text string) []ParsedUtterance {
	utterances := []ParsedUtterance{}
	currentSpeaker := defaultSpeaker

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		speaker, content, ok := matchSpeaker(speakerPattern, trimmed)
		if !ok {
			utterances = append(utterances, ParsedUtterance{
				Speaker: currentSpeaker,
				Content: trimmed,
			})
			continue
		}

		currentSpeaker = speaker
		utterances = append(utterances, ParsedUtterance{
			Speaker: currentSpeaker,
			Content: content,
		})
	}

	return utterances
}

// SegmentMarkdown parses the markdown dialect. Heading lines are skipped, a
// bold "**Label**: content" prefix takes precedence, and the generic prefix
// is only accepted on lines without a URL so links are never read as
// speakers.
func SegmentMarkdown(text string) []ParsedUtterance {
	utterances := []ParsedUtterance{}
	currentSpeaker := defaultSpeaker

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if speaker, content, ok := matchSpeaker(boldSpeakerPattern, trimmed); ok {
			currentSpeaker = speaker
			utterances = append(utterances, ParsedUtterance{
				Speaker: currentSpeaker,
				Content: content,
			})
			continue
		}

		if !strings.Contains(line, "http") {
			if speaker, content, ok := matchSpeaker(speakerPattern, trimmed); ok {
				currentSpeaker = speaker
				utterances = append(utterances, ParsedUtterance{
					Speaker: currentSpeaker,
					Content: content,
				})
				continue
			}
		}

		utterances = append(utterances, ParsedUtterance{
			Speaker: currentSpeaker,
			Content: trimmed,
		})
	}

	return utterances
}

const defaultSpeaker = "Speaker"

// matchSpeaker applies a label pattern and trims both captures. A label or
// remainder that is empty after trimming does not count as a match; the
// caller treats the line as carried-over content instead of creating a
// zero-length speaker or an empty utterance.
func matchSpeaker(pattern *regexp.Regexp, line string) (speaker, content string, ok bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	speaker = strings.TrimSpace(m[1])
	content = strings.TrimSpace(m[2])
	if speaker == "" || content == "" {
		return "", "", false
	}
	return speaker, content, true
}
