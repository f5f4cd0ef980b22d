package docx2pdf

import (
	"reflect"
	"testing"
)

func TestGuessMetadataFormatBoundaries(t *testing.T) {
	// The 500/3000 thresholds are asymmetric on purpose: both extremes fall
	// back to A4. Kept for compatibility, see Design Notes.
	tests := []struct {
		length int
		want   string
	}{
		{0, FormatA4},
		{499, FormatA4},
		{500, FormatA4},
		{501, FormatLetter},
		{1500, FormatLetter},
		{3000, FormatLetter},
		{3001, FormatA4},
		{100000, FormatA4},
	}

	for _, tt := range tests {
		got := guessMetadata(tt.length, nil)
		if got.SuggestedFormat != tt.want {
			t.Errorf("guessMetadata(length=%d) = %q, want %q", tt.length, got.SuggestedFormat, tt.want)
		}
		if got.ContentLength != tt.length {
			t.Errorf("ContentLength = %d, want %d", got.ContentLength, tt.length)
		}
	}
}

func TestGuessMetadataHeaderFooterFlags(t *testing.T) {
	tests := []struct {
		name        string
		messages    []string
		wantHeaders bool
		wantFooters bool
	}{
		{name: "no messages"},
		{
			name:        "header message only",
			messages:    []string{"document contains header part header1.xml; rendered as a page margin placeholder"},
			wantHeaders: true,
		},
		{
			name:        "footer message only",
			messages:    []string{"document contains footer part footer1.xml; rendered as a page margin placeholder"},
			wantFooters: true,
		},
		{
			name: "both, case-insensitive",
			messages: []string{
				"Header part present",
				"FOOTER part present",
			},
			wantHeaders: true,
			wantFooters: true,
		},
		{
			name:     "unrelated diagnostics",
			messages: []string{"unrecognised paragraph style: Fancy (no style map rule)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := guessMetadata(1000, tt.messages)
			if got.HasHeaders != tt.wantHeaders {
				t.Errorf("HasHeaders = %v, want %v", got.HasHeaders, tt.wantHeaders)
			}
			if got.HasFooters != tt.wantFooters {
				t.Errorf("HasFooters = %v, want %v", got.HasFooters, tt.wantFooters)
			}
		})
	}
}

func TestExtractMetadataNeverFails(t *testing.T) {
	conv := NewConverter()

	tests := []struct {
		name string
		doc  []byte
	}{
		{name: "nil buffer", doc: nil},
		{name: "empty buffer", doc: []byte{}},
		{name: "plain text", doc: []byte("this is not a docx")},
		{name: "zip magic but truncated", doc: []byte("PK\x03\x04")},
		{name: "binary garbage", doc: []byte{0xff, 0xfe, 0x00, 0x01, 0x02}},
	}

	want := defaultMetadata()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := conv.ExtractMetadata(tt.doc)
			if got == nil {
				t.Fatal("ExtractMetadata must never return nil")
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("ExtractMetadata() = %+v, want default guess %+v", got, want)
			}
		})
	}
}

func TestDefaultMetadataShape(t *testing.T) {
	got := defaultMetadata()
	if got.SuggestedFormat != FormatA4 || got.ContentLength != 0 || got.HasHeaders || got.HasFooters {
		t.Errorf("default guess = %+v", got)
	}
	if got.Messages == nil || len(got.Messages) != 0 {
		t.Error("default guess should carry an empty, non-nil message list")
	}
}
