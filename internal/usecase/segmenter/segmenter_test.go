package segmenter

import (
	"errors"
	"testing"
)

func assertUtterance(t *testing.T, got ParsedUtterance, speaker, content string) {
	t.Helper()
	if got.Speaker != speaker || got.Content != content {
		t.Fatalf("got (%q, %q), want (%q, %q)", got.Speaker, got.Content, speaker, content)
	}
}

func TestSegmentText_SpeakerCarryOver(t *testing.T) {
	input := "Alice: Hello there.\nThis is still Alice talking.\nBob: Hi Alice."

	got := SegmentText(input)

	if len(got) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "Hello there.")
	assertUtterance(t, got[1], "Alice", "This is still Alice talking.")
	assertUtterance(t, got[2], "Bob", "Hi Alice.")
}

func TestSegmentText_DefaultSpeakerBeforeFirstLabel(t *testing.T) {
	input := "An opening remark with no label.\nAlice: Now I speak."

	got := SegmentText(input)

	if len(got) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Speaker", "An opening remark with no label.")
	assertUtterance(t, got[1], "Alice", "Now I speak.")
}

func TestSegmentText_FullWidthColon(t *testing.T) {
	got := SegmentText("田中：こんにちは")

	if len(got) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(got))
	}
	assertUtterance(t, got[0], "田中", "こんにちは")
}

func TestSegmentText_BlankLinesSkipped(t *testing.T) {
	got := SegmentText("Alice: One.\n\n   \nAlice: Two.")

	if len(got) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "One.")
	assertUtterance(t, got[1], "Alice", "Two.")
}

func TestSegmentText_EmptyInput(t *testing.T) {
	if got := SegmentText(""); len(got) != 0 {
		t.Fatalf("expected no utterances, got %d", len(got))
	}
	if got := SegmentText("\n  \n\t\n"); len(got) != 0 {
		t.Fatalf("expected no utterances for whitespace input, got %d", len(got))
	}
}

func TestSegmentText_ColonEdgeCases(t *testing.T) {
	// An empty label or empty remainder is not a speaker line; the text is
	// carried over to the current speaker instead.
	got := SegmentText("Alice: Hello.\n: no label here\nBob:   \nStill Alice's turn.")

	if len(got) != 4 {
		t.Fatalf("expected 4 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "Hello.")
	assertUtterance(t, got[1], "Alice", ": no label here")
	assertUtterance(t, got[2], "Alice", "Bob:")
	assertUtterance(t, got[3], "Alice", "Still Alice's turn.")
}

func TestSegmentText_OnlyFirstColonSplits(t *testing.T) {
	got := SegmentText("Alice: Meet at 10:30 tomorrow.")

	if len(got) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "Meet at 10:30 tomorrow.")
}

func TestSegmentMarkdown_BoldSpeakersAndHeadings(t *testing.T) {
	input := "# Meeting Notes\n\n**Alice**: Let's begin.\nA follow-up line.\n## Agenda\n**Bob**: Sounds good."

	got := SegmentMarkdown(input)

	if len(got) != 3 {
		t.Fatalf("expected 3 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "Let's begin.")
	assertUtterance(t, got[1], "Alice", "A follow-up line.")
	assertUtterance(t, got[2], "Bob", "Sounds good.")
}

func TestSegmentMarkdown_URLNotTreatedAsSpeaker(t *testing.T) {
	input := "**Alice**: Check this out.\nhttps://example.com/doc: the design draft"

	got := SegmentMarkdown(input)

	if len(got) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "Check this out.")
	assertUtterance(t, got[1], "Alice", "https://example.com/doc: the design draft")
}

func TestSegmentMarkdown_PlainLabelStillAccepted(t *testing.T) {
	got := SegmentMarkdown("Alice: unbolded but labeled")

	if len(got) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(got))
	}
	assertUtterance(t, got[0], "Alice", "unbolded but labeled")
}

func TestSegmentMarkdown_FullWidthColonInBoldLabel(t *testing.T) {
	got := SegmentMarkdown("**田中**：了解です")

	if len(got) != 1 {
		t.Fatalf("expected 1 utterance, got %d", len(got))
	}
	assertUtterance(t, got[0], "田中", "了解です")
}

func TestSegmentText_Deterministic(t *testing.T) {
	input := "Alice: Hello.\nSecond line.\nBob: Reply."

	first := SegmentText(input)
	second := SegmentText(input)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Speaker != second[i].Speaker || first[i].Content != second[i].Content {
			t.Fatalf("utterance %d differs between runs", i)
		}
	}
}

func TestSegmentFile_TxtAndMd(t *testing.T) {
	got, err := SegmentFile("notes.txt", []byte("Alice: Hi."))
	if err != nil {
		t.Fatalf("txt: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("txt: expected 1 utterance, got %d", len(got))
	}

	got, err = SegmentFile("Notes.MD", []byte("# Title\n**Bob**: Hello."))
	if err != nil {
		t.Fatalf("md: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("md: expected 1 utterance, got %d", len(got))
	}
	assertUtterance(t, got[0], "Bob", "Hello.")
}

func TestSegmentFile_UnsupportedFormat(t *testing.T) {
	_, err := SegmentFile("audio.mp3", []byte("data"))

	var unsupported *UnsupportedFormatError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
	if unsupported.FileType != "mp3" {
		t.Fatalf("expected file type mp3, got %s", unsupported.FileType)
	}
}

func TestSegmentFile_CorruptDocx(t *testing.T) {
	_, err := SegmentFile("broken.docx", []byte("not a zip archive"))

	var parse *ParseError
	if !errors.As(err, &parse) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if parse.Format != "DOCX" {
		t.Fatalf("expected DOCX parse error, got %s", parse.Format)
	}
}
