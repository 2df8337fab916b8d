package textshape

import "testing"

func TestNormalizeDigits(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"٢٠٢٤", "2024"},
		{"۱۴۰۳", "1403"},
		{"15/٠٣/٢٠٢٤", "15/03/2024"},
		{"رقم ٤٥", "رقم 45"},
		{"2024", "2024"},
		{"", ""},
		{"१२३", "123"},
	}
	for _, tt := range tests {
		got := NormalizeDigits(tt.in)
		if got != tt.want {
			t.Errorf("NormalizeDigits(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := NormalizeDigits(got); again != got {
			t.Errorf("NormalizeDigits is not idempotent on %q: %q", tt.in, again)
		}
	}
}

func TestReshape(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"beh alef", "با", "ﺑﺎ"},
		{"isolated letter", "ب", "ﺏ"},
		{"three joined", "ببب", "ﺑﺒﺐ"},
		{"alef does not join forward", "اب", "ﺍﺏ"},
		{"lam alef ligature", "لا", "ﻻ"},
		{"lam alef after beh", "بلا", "ﺑﻼ"},
		{"hamza breaks joining", "بء", "ﺏﺀ"},
		{"harakat are transparent", "بَب", "ﺑَﺐ"},
		{"latin untouched", "Doctorat", "Doctorat"},
		{"words split by space", "بب بب", "ﺑﺐ ﺑﺐ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reshape(tt.in); got != tt.want {
				t.Errorf("Reshape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestVisual(t *testing.T) {
	tests := []struct {
		name string
		in   string
		dir  Direction
		want string
	}{
		{"latin ltr", "abc 123", LTR, "abc 123"},
		{"arabic rtl", "ابج", RTL, "جبا"},
		{"arabic with number", "ابج 2024", RTL, "2024 جبا"},
		{"numeric date keeps order", "15/03/2024", RTL, "15/03/2024"},
		{"brackets are mirrored", "(ابج)", RTL, "(جبا)"},
		{"empty", "", RTL, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Visual(tt.in, tt.dir); got != tt.want {
				t.Errorf("Visual(%q, %v) = %q, want %q", tt.in, tt.dir, got, tt.want)
			}
		})
	}
}

func TestPrepareNormalizesBeforeOrdering(t *testing.T) {
	got := Prepare("٢٠٢٤", RTL)
	if got != "2024" {
		t.Fatalf("Prepare = %q, want %q", got, "2024")
	}
}

func TestContainsArabic(t *testing.T) {
	if !ContainsArabic("Université باتنة") {
		t.Error("expected Arabic to be detected")
	}
	if ContainsArabic("Université de Batna") {
		t.Error("unexpected Arabic in French text")
	}
}
