package units

import (
	stderrors "errors"
	"testing"

	"github.com/enzymeml/enzymeml-go/core/errors"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		name  string
		terms []BaseUnit
		want  string
	}{
		{
			name: "molarity",
			terms: []BaseUnit{
				{Kind: KindMole, Exponent: 1},
				{Kind: KindLitre, Exponent: -1},
			},
			want: "mol / l",
		},
		{
			name: "molarity reordered",
			terms: []BaseUnit{
				{Kind: KindLitre, Exponent: -1},
				{Kind: KindMole, Exponent: 1},
			},
			want: "mol / l",
		},
		{
			name: "millimolar",
			terms: []BaseUnit{
				{Kind: KindMole, Exponent: 1, Scale: -3},
				{Kind: KindLitre, Exponent: -1},
			},
			want: "mmol / l",
		},
		{
			name: "micromolar",
			terms: []BaseUnit{
				{Kind: KindMole, Exponent: 1, Scale: -6},
				{Kind: KindLitre, Exponent: -1},
			},
			want: "umol / l",
		},
		{
			name: "nanomolar",
			terms: []BaseUnit{
				{Kind: KindMole, Exponent: 1, Scale: -9},
				{Kind: KindLitre, Exponent: -1},
			},
			want: "nmol / l",
		},
		{
			name: "kilogram",
			terms: []BaseUnit{
				{Kind: KindGram, Exponent: 1, Scale: 3},
			},
			want: "kg",
		},
		{
			name: "per second",
			terms: []BaseUnit{
				{Kind: KindSecond, Exponent: -1},
			},
			want: "1 / s",
		},
		{
			name: "squared exponent",
			terms: []BaseUnit{
				{Kind: KindMetre, Exponent: 2},
			},
			want: "Metre^2",
		},
		{
			name: "negative exponent magnitude",
			terms: []BaseUnit{
				{Kind: KindMole, Exponent: 1},
				{Kind: KindLitre, Exponent: -1},
				{Kind: KindSecond, Exponent: -2},
			},
			want: "mol / l s^2",
		},
		{
			name:  "empty",
			terms: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(tt.terms...)
			if got := d.CanonicalName(); got != tt.want {
				t.Errorf("CanonicalName() = %q, want %q", got, tt.want)
			}
			if d.Name != tt.want {
				t.Errorf("New() set Name = %q, want %q", d.Name, tt.want)
			}
		})
	}
}

func TestFootprintOrderIndependence(t *testing.T) {
	a := New(
		BaseUnit{Kind: KindMole, Exponent: 1},
		BaseUnit{Kind: KindLitre, Exponent: -1},
	)
	b := New(
		BaseUnit{Kind: KindLitre, Exponent: -1},
		BaseUnit{Kind: KindMole, Exponent: 1},
	)
	if a.Footprint() != b.Footprint() {
		t.Errorf("footprints differ under reordering: %q vs %q", a.Footprint(), b.Footprint())
	}
	if !a.Equal(b) {
		t.Error("Equal() = false for reordered terms")
	}
}

func TestFootprintDistinguishes(t *testing.T) {
	molar := New(
		BaseUnit{Kind: KindMole, Exponent: 1},
		BaseUnit{Kind: KindLitre, Exponent: -1},
	)
	tests := []struct {
		name  string
		other *Definition
	}{
		{"different scale", New(
			BaseUnit{Kind: KindMole, Exponent: 1, Scale: -3},
			BaseUnit{Kind: KindLitre, Exponent: -1},
		)},
		{"different exponent", New(
			BaseUnit{Kind: KindMole, Exponent: 2},
			BaseUnit{Kind: KindLitre, Exponent: -1},
		)},
		{"different kind", New(
			BaseUnit{Kind: KindGram, Exponent: 1},
			BaseUnit{Kind: KindLitre, Exponent: -1},
		)},
		{"extra term", New(
			BaseUnit{Kind: KindMole, Exponent: 1},
			BaseUnit{Kind: KindLitre, Exponent: -1},
			BaseUnit{Kind: KindSecond, Exponent: -1},
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if molar.Equal(tt.other) {
				t.Errorf("Equal() = true for %q", tt.other.CanonicalName())
			}
		})
	}
}

func TestFootprintIgnoresIDAndName(t *testing.T) {
	a := New(BaseUnit{Kind: KindSecond, Exponent: 1})
	b := New(BaseUnit{Kind: KindSecond, Exponent: 1})
	a.ID = "u0"
	b.ID = "u5"
	b.Name = "custom"
	if !a.Equal(b) {
		t.Error("Equal() = false for definitions differing only in id and name")
	}
}

func TestParsePrefix(t *testing.T) {
	tests := []struct {
		prefix string
		scale  int
		ok     bool
	}{
		{"", 0, true},
		{"k", 3, true},
		{"m", -3, true},
		{"u", -6, true},
		{"n", -9, true},
		{"M", 0, false},
		{"da", 0, false},
		{"micro", 0, false},
	}
	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			scale, err := ParsePrefix(tt.prefix)
			if tt.ok {
				if err != nil {
					t.Fatalf("ParsePrefix(%q) error = %v", tt.prefix, err)
				}
				if scale != tt.scale {
					t.Errorf("ParsePrefix(%q) = %d, want %d", tt.prefix, scale, tt.scale)
				}
				return
			}
			if !stderrors.Is(err, errors.ErrUnknownPrefix) {
				t.Errorf("ParsePrefix(%q) error = %v, want ErrUnknownPrefix", tt.prefix, err)
			}
			var pe *errors.UnknownPrefixError
			if !stderrors.As(err, &pe) || pe.Prefix != tt.prefix {
				t.Errorf("error does not carry prefix %q: %v", tt.prefix, err)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("MOLE")
	if err != nil {
		t.Fatalf("ParseKind error = %v", err)
	}
	if k != KindMole {
		t.Errorf("ParseKind(MOLE) = %q, want mole", k)
	}

	if _, err := ParseKind("furlong"); !stderrors.Is(err, errors.ErrUnitKind) {
		t.Errorf("ParseKind(furlong) error = %v, want ErrUnitKind", err)
	}
}

func TestComposition(t *testing.T) {
	rate, err := Molarity("m")
	if err != nil {
		t.Fatal(err)
	}
	perTime := rate.Per(BaseUnit{Kind: KindSecond, Exponent: 1})
	if got := perTime.CanonicalName(); got != "mmol / l s" {
		t.Errorf("CanonicalName() = %q, want %q", got, "mmol / l s")
	}
	// Per must not mutate the receiver.
	if got := rate.CanonicalName(); got != "mmol / l" {
		t.Errorf("receiver mutated, CanonicalName() = %q", got)
	}
	if perTime.ID != "" {
		t.Errorf("composed definition has id %q, want empty", perTime.ID)
	}
}

func TestPredefined(t *testing.T) {
	tests := []struct {
		name string
		def  func() (*Definition, error)
		want string
	}{
		{"mole", func() (*Definition, error) { return Mole("") }, "mol"},
		{"millimole", func() (*Definition, error) { return Mole("m") }, "mmol"},
		{"litre", func() (*Definition, error) { return Litre("") }, "l"},
		{"molarity", func() (*Definition, error) { return Molarity("") }, "mol / l"},
		{"micromolar", func() (*Definition, error) { return Molarity("u") }, "umol / l"},
		{"second", func() (*Definition, error) { return Second(), nil }, "s"},
		{"per second", func() (*Definition, error) { return PerSecond(), nil }, "1 / s"},
		{"kelvin", func() (*Definition, error) { return Kelvin(), nil }, "K"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.def()
			if err != nil {
				t.Fatal(err)
			}
			if d.Name != tt.want {
				t.Errorf("Name = %q, want %q", d.Name, tt.want)
			}
		})
	}

	if _, err := Molarity("x"); !stderrors.Is(err, errors.ErrUnknownPrefix) {
		t.Errorf("Molarity(x) error = %v, want ErrUnknownPrefix", err)
	}

	min := Minute()
	sec := Second()
	if min.Equal(sec) {
		t.Error("minute and second compare equal despite multiplier")
	}
	if min.BaseUnits[0].Multiplier != 60 {
		t.Errorf("minute multiplier = %v, want 60", min.BaseUnits[0].Multiplier)
	}
}

func TestTimeUnitNames(t *testing.T) {
	tests := []struct {
		name string
		def  *Definition
		want string
	}{
		{"second", Second(), "s"},
		{"minute", Minute(), "min"},
		{"hour", Hour(), "h"},
		{"day", Day(), "d"},
		{"per minute", PerMinute(), "1 / min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.def.Name != tt.want {
				t.Errorf("Name = %q, want %q", tt.def.Name, tt.want)
			}
		})
	}
}
