package domain

// Symbol is a single tape cell value.
type Symbol byte

// DefaultBlank is the blank symbol used when a machine does not configure one.
const DefaultBlank Symbol = 'B'

// String returns the symbol as a one-character string.
func (s Symbol) String() string {
	return string([]byte{byte(s)})
}

// Symbols converts a string into tape symbols, one per byte.
func Symbols(s string) []Symbol {
	out := make([]Symbol, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = Symbol(s[i])
	}
	return out
}

// SymbolString converts tape symbols back into a string.
func SymbolString(syms []Symbol) string {
	b := make([]byte, len(syms))
	for i, s := range syms {
		b[i] = byte(s)
	}
	return string(b)
}
