package expr

import (
	"reflect"
	"testing"
)

func TestSymbols(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "michaelis menten",
			input: "kcat * p0 * s0 / (K_m + s0)",
			want:  []string{"kcat", "p0", "s0", "K_m"},
		},
		{
			name:  "single symbol",
			input: "s0",
			want:  []string{"s0"},
		},
		{
			name:  "numbers only",
			input: "2 * 3.5 + 1e-3",
			want:  nil,
		},
		{
			name:  "power and unary",
			input: "-k1 * s0^2",
			want:  []string{"k1", "s0"},
		},
		{
			name:  "function name excluded",
			input: "exp(-k1 * t) + log(s0)",
			want:  []string{"k1", "t", "s0"},
		},
		{
			name:  "nested calls",
			input: "max(vmax, min(s0, s1))",
			want:  []string{"vmax", "s0", "s1"},
		},
		{
			name:  "duplicate symbol once",
			input: "s0 + s0 * s0",
			want:  []string{"s0"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Symbols(tt.input)
			if err != nil {
				t.Fatalf("Symbols(%q) error = %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Symbols(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"",
		"k1 +",
		"(k1",
		"* s0",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", input)
			}
		})
	}
}

func TestParsePrecedenceShape(t *testing.T) {
	ast, err := Parse("a + b * c")
	if err != nil {
		t.Fatal(err)
	}
	// One additive continuation whose term multiplies b and c.
	if len(ast.Rest) != 1 || ast.Rest[0].Op != "+" {
		t.Fatalf("unexpected additive structure: %+v", ast.Rest)
	}
	if len(ast.Rest[0].Term.Rest) != 1 || ast.Rest[0].Term.Rest[0].Op != "*" {
		t.Errorf("b * c not grouped under the addition")
	}
}
