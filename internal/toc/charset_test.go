package toc

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		title string
		enc   Encoding
		want  []int
	}{
		{"ascii in pdfdoc", "Chapter 1: Introduction", EncodingPDFDoc, nil},
		{"latin-1 in pdfdoc", "Café Réunion — №?", EncodingPDFDoc, []int{19}}, // № U+2116
		{"accents in pdfdoc", "Übersicht über die Kapitel", EncodingPDFDoc, nil},
		{"typography in pdfdoc", "“Quotes” and – dashes…", EncodingPDFDoc, nil},
		{"arrow not in pdfdoc", "a → b", EncodingPDFDoc, []int{2}},
		{"cjk not in pdfdoc", "第一章", EncodingPDFDoc, []int{0, 3, 6}},
		{"cjk in utf16", "第一章", EncodingUTF16, nil},
		{"arrow in utf16", "a → b", EncodingUTF16, nil},
		{"replacement char in utf16", "a�b", EncodingUTF16, nil},
		{"invalid byte in utf16", "a\xffb", EncodingUTF16, []int{1}},
		{"invalid byte in pdfdoc", "a\xffb", EncodingPDFDoc, []int{1}},
		{"nul in utf16", "a\x00b", EncodingUTF16, []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.title, tt.enc)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Check(%q, %v) mismatch (-want +got):\n%s", tt.title, tt.enc, diff)
			}
		})
	}
}

func TestPickEncoding(t *testing.T) {
	tests := []struct {
		title string
		want  Encoding
	}{
		{"Chapter 1", EncodingPDFDoc},
		{"Résumé", EncodingPDFDoc},
		{"第一章", EncodingUTF16},
		{"a → b", EncodingUTF16},
	}
	for _, tt := range tests {
		if got := PickEncoding(tt.title); got != tt.want {
			t.Errorf("PickEncoding(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestValidateEntries(t *testing.T) {
	t.Run("all representable", func(t *testing.T) {
		entries := []Entry{
			{Title: "Chapter 1", Level: 1, Page: 1, Offset: NoOffset},
			{Title: "第一章", Level: 1, Page: 2, Offset: NoOffset}, // fine via UTF-16
		}
		if err := ValidateEntries(entries); err != nil {
			t.Errorf("ValidateEntries: %v", err)
		}
	})

	t.Run("problems are collected, not fail-fast", func(t *testing.T) {
		entries := []Entry{
			{Title: "bad\xff", Level: 1, Page: 1, Offset: NoOffset},
			{Title: "fine", Level: 1, Page: 2, Offset: NoOffset},
			{Title: "also\x00bad", Level: 1, Page: 3, Offset: NoOffset},
		}
		err := ValidateEntries(entries)
		var eerr *EncodingError
		if !errors.As(err, &eerr) {
			t.Fatalf("ValidateEntries: got %v, want *EncodingError", err)
		}
		if len(eerr.Problems) != 2 {
			t.Fatalf("got %d problems, want 2: %+v", len(eerr.Problems), eerr.Problems)
		}
		if eerr.Problems[0].Entry != 1 || eerr.Problems[1].Entry != 3 {
			t.Errorf("wrong entries flagged: %+v", eerr.Problems)
		}
	})
}
