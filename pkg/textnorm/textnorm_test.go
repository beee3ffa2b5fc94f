package textnorm_test

import (
	"reflect"
	"testing"

	"support-orchestrator/pkg/textnorm"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Bom Dia", "bom dia"},
		{"collapse whitespace", "  quero   falar\tcom\no suporte ", "quero falar com o suporte"},
		{"keeps accents", "Atendênte", "atendênte"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textnorm.Normalize(tc.in); got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestFold(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"accents removed", "Olá, tudo bem?", "ola, tudo bem?"},
		{"cedilla", "Resolução", "resolucao"},
		{"mixed case and spacing", "  Carga   Horária ", "carga horaria"},
		{"plain ascii untouched", "suporte", "suporte"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textnorm.Fold(tc.in); got != tc.want {
				t.Errorf("Fold(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"paragraph tags", "<p>Bom dia</p>", "Bom dia"},
		{"nested tags", "<div><strong>Qual</strong> a carga horária?</div>", "Qual a carga horária?"},
		{"no markup fast path", "  sem html  ", "sem html"},
		{"tags become separators", "linha1<br>linha2", "linha1 linha2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textnorm.StripHTML(tc.in); got != tc.want {
				t.Errorf("StripHTML(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseCSV(t *testing.T) {
	got := textnorm.ParseCSV(" Suporte, Financeiro ,,Secretaria ")
	want := []string{"Suporte", "Financeiro", "Secretaria"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCSV = %v, want %v", got, want)
	}
	if textnorm.ParseCSV("  ,") != nil {
		t.Errorf("expected nil for blank input")
	}
}
