package units

// Predefined constructors for the unit vocabulary that enzyme-kinetics
// documents use most often. Each call returns a fresh, unregistered
// definition.

// Mole returns mol with an optional metric prefix.
func Mole(prefix string) (*Definition, error) {
	scale, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return New(BaseUnit{Kind: KindMole, Exponent: 1, Scale: scale}), nil
}

// Litre returns l with an optional metric prefix.
func Litre(prefix string) (*Definition, error) {
	scale, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return New(BaseUnit{Kind: KindLitre, Exponent: 1, Scale: scale}), nil
}

// Gram returns g with an optional metric prefix.
func Gram(prefix string) (*Definition, error) {
	scale, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return New(BaseUnit{Kind: KindGram, Exponent: 1, Scale: scale}), nil
}

// Molarity returns mol/l with an optional metric prefix on the mole term.
func Molarity(prefix string) (*Definition, error) {
	scale, err := ParsePrefix(prefix)
	if err != nil {
		return nil, err
	}
	return New(
		BaseUnit{Kind: KindMole, Exponent: 1, Scale: scale},
		BaseUnit{Kind: KindLitre, Exponent: -1},
	), nil
}

// Second returns s.
func Second() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: 1})
}

// Minute returns min expressed as 60 seconds.
func Minute() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: 1, Multiplier: 60})
}

// Hour returns h expressed as 3600 seconds.
func Hour() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: 1, Multiplier: 3600})
}

// Day returns d expressed as 86400 seconds.
func Day() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: 1, Multiplier: 86400})
}

// Kelvin returns K.
func Kelvin() *Definition {
	return New(BaseUnit{Kind: KindKelvin, Exponent: 1})
}

// Celsius returns degrees Celsius.
func Celsius() *Definition {
	return New(BaseUnit{Kind: KindCelsius, Exponent: 1})
}

// Dimensionless returns the dimensionless unit.
func Dimensionless() *Definition {
	return New(BaseUnit{Kind: KindDimensionless, Exponent: 1})
}

// PerSecond returns 1/s.
func PerSecond() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: -1})
}

// PerMinute returns 1/min.
func PerMinute() *Definition {
	return New(BaseUnit{Kind: KindSecond, Exponent: -1, Multiplier: 60})
}
