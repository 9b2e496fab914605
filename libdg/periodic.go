package libdg

// Element symbols for the atomic numbers the engine commonly sees.
var elementSymbols = map[int]string{
	1: "H", 2: "He",
	3: "Li", 4: "Be", 5: "B", 6: "C", 7: "N", 8: "O", 9: "F", 10: "Ne",
	11: "Na", 12: "Mg", 13: "Al", 14: "Si", 15: "P", 16: "S", 17: "Cl", 18: "Ar",
	19: "K", 20: "Ca", 26: "Fe", 29: "Cu", 30: "Zn", 33: "As", 34: "Se",
	35: "Br", 53: "I",
}

var atomicNumbers = func() map[string]int {
	m := make(map[string]int, len(elementSymbols))
	for z, sym := range elementSymbols {
		m[sym] = z
	}
	return m
}()

// rvdwTable holds Bondi van der Waals radii (Angstroms) indexed by atomic
// number; zero entries fall back to defaultRvdw.
var rvdwTable = [55]float64{
	1:  1.20,
	2:  1.40,
	3:  1.82,
	5:  1.92,
	6:  1.70,
	7:  1.55,
	8:  1.52,
	9:  1.47,
	10: 1.54,
	11: 2.27,
	12: 1.73,
	14: 2.10,
	15: 1.80,
	16: 1.80,
	17: 1.75,
	18: 1.88,
	19: 2.75,
	29: 1.40,
	30: 1.39,
	33: 1.85,
	34: 1.90,
	35: 1.85,
	53: 1.98,
}

const defaultRvdw = 2.0

// Rvdw returns the van der Waals radius for an atomic number.
func Rvdw(atomicNum int) float64 {
	if atomicNum > 0 && atomicNum < len(rvdwTable) {
		if r := rvdwTable[atomicNum]; r > 0 {
			return r
		}
	}
	return defaultRvdw
}

// AtomicNumber resolves an element symbol.
func AtomicNumber(symbol string) (int, bool) {
	z, ok := atomicNumbers[symbol]
	return z, ok
}

// DefaultValence returns the element's lowest normal valence, or 0 when the
// element is outside the organic subset.
func DefaultValence(atomicNum int) int {
	return defaultValences[atomicNum]
}

// defaultValences gives the lowest normal valence per element for the organic
// subset; used to infer implicit hydrogen counts when reading SMILES.
var defaultValences = map[int]int{
	5:  3, // B
	6:  4, // C
	7:  3, // N
	8:  2, // O
	9:  1, // F
	15: 3, // P
	16: 2, // S
	17: 1, // Cl
	35: 1, // Br
	53: 1, // I
}
