package extract

import (
	"testing"

	"github.com/akolanti/MentorAPI/internal/domain/commonModels"
)

func TestDocTypeOf(t *testing.T) {
	tests := []struct {
		filename string
		want     commonModels.DocType
	}{
		{"report.pdf", commonModels.PDF},
		{"Report.PDF", commonModels.PDF},
		{"notes.docx", commonModels.DOCX},
		{"legacy.rtf", commonModels.DOCX},
		{"open.odt", commonModels.DOCX},
		{"plain.txt", commonModels.TXT},
		{"archive.zip", commonModels.ERR},
		{"noextension", commonModels.ERR},
		{"", commonModels.ERR},
	}
	for _, tt := range tests {
		if got := DocTypeOf(tt.filename); got != tt.want {
			t.Errorf("DocTypeOf(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestText_PlainText(t *testing.T) {
	text, err := Text([]byte("a business plan for the startup"), "plan.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "a business plan for the startup" {
		t.Errorf("text = %q", text)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	_, err := Text([]byte("data"), "virus.exe")
	if commonModels.KindOf(err) != commonModels.KindExtraction {
		t.Errorf("kind got %s, want %s", commonModels.KindOf(err), commonModels.KindExtraction)
	}
}

func TestText_EmptyDocument(t *testing.T) {
	_, err := Text([]byte("   \n\t  "), "blank.txt")
	if commonModels.KindOf(err) != commonModels.KindExtraction {
		t.Errorf("kind got %s, want %s", commonModels.KindOf(err), commonModels.KindExtraction)
	}
}

func TestText_BrokenPDF(t *testing.T) {
	_, err := Text([]byte("this is not a pdf"), "broken.pdf")
	if commonModels.KindOf(err) != commonModels.KindExtraction {
		t.Errorf("kind got %s, want %s", commonModels.KindOf(err), commonModels.KindExtraction)
	}
}
