package libdg

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/distgeom-systems/godg/godg"
)

// Atom is one node of a molecular graph. Hydrogens may be explicit graph
// atoms or folded into NumHs.
type Atom struct {
	Num        int  // atomic number
	Charge     int  // formal charge
	NumHs      int  // hydrogens not present as graph atoms
	Aromatic   bool // member of an aromatic ring
	Hyb        godg.Hybridization
	Chiral     godg.ChiralTag
	ChiralPerm int // coordination permutation; 0 denotes unassigned
}

// Bond joins two atoms by index. Beg and End preserve the input order, which
// anchors directional stereo parsed from SMILES.
type Bond struct {
	Beg, End       int
	Type           godg.BondType
	Stereo         godg.BondStereo
	StereoAtoms    [2]int
	HasStereoAtoms bool
	Conjugated     bool
}

// Mol is the concrete molecule. Build it with AddAtom/AddBond (or the smiles
// package), then call Finish before handing it to the bounds engine.
//
// Ring perception and the bond-distance matrix fill lazily, at most once, so
// a finished Mol is safe for concurrent readers.
type Mol struct {
	atoms []Atom
	bonds []Bond
	adj   [][]int // bond indices incident to each atom

	ringOnce sync.Once
	rings    *ringInfo

	dmatOnce sync.Once
	dmat     []float64
}

// NewMol returns an empty molecule.
func NewMol() *Mol {
	return &Mol{}
}

// AddAtom appends an atom and returns its index.
func (m *Mol) AddAtom(a Atom) int {
	m.atoms = append(m.atoms, a)
	m.adj = append(m.adj, nil)
	return len(m.atoms) - 1
}

// AddBond appends a bond and returns its index.
func (m *Mol) AddBond(b Bond) int {
	bid := len(m.bonds)
	m.bonds = append(m.bonds, b)
	m.adj[b.Beg] = append(m.adj[b.Beg], bid)
	m.adj[b.End] = append(m.adj[b.End], bid)
	return bid
}

// AtomAt returns a mutable view of an atom, for builders.
func (m *Mol) AtomAt(aid int) *Atom { return &m.atoms[aid] }

// BondAt returns a mutable view of a bond, for builders.
func (m *Mol) BondAt(bid int) *Bond { return &m.bonds[bid] }

// Finish derives hybridization and conjugation for atoms and bonds that were
// not explicitly assigned. Call it once after the graph is complete.
func (m *Mol) Finish() {
	m.perceiveHybridization()
	m.perceiveConjugation()
}

func (m *Mol) NumAtoms() int { return len(m.atoms) }
func (m *Mol) NumBonds() int { return len(m.bonds) }

func (m *Mol) AtomicNumber(aid int) int                 { return m.atoms[aid].Num }
func (m *Mol) Hybridization(aid int) godg.Hybridization { return m.atoms[aid].Hyb }
func (m *Mol) Degree(aid int) int                       { return len(m.adj[aid]) }
func (m *Mol) ChiralTag(aid int) godg.ChiralTag         { return m.atoms[aid].Chiral }
func (m *Mol) HasChiralPermutation(aid int) bool        { return m.atoms[aid].ChiralPerm != 0 }
func (m *Mol) AtomBonds(aid int) []int                  { return m.adj[aid] }

// TotalNumHs counts the atom's hydrogens, both folded-in and explicit
// neighbor H atoms.
func (m *Mol) TotalNumHs(aid int) int {
	n := m.atoms[aid].NumHs
	for _, bid := range m.adj[aid] {
		if m.atoms[m.OtherBondAtom(bid, aid)].Num == 1 {
			n++
		}
	}
	return n
}

func (m *Mol) BondEnds(bid int) (int, int)        { return m.bonds[bid].Beg, m.bonds[bid].End }
func (m *Mol) BondType(bid int) godg.BondType     { return m.bonds[bid].Type }
func (m *Mol) BondOrder(bid int) float64          { return m.bonds[bid].Type.Order() }
func (m *Mol) IsConjugated(bid int) bool          { return m.bonds[bid].Conjugated }
func (m *Mol) BondStereo(bid int) godg.BondStereo { return m.bonds[bid].Stereo }

func (m *Mol) StereoAtoms(bid int) (int, int, bool) {
	b := &m.bonds[bid]
	return b.StereoAtoms[0], b.StereoAtoms[1], b.HasStereoAtoms
}

func (m *Mol) OtherBondAtom(bid, aid int) int {
	b := &m.bonds[bid]
	if b.Beg == aid {
		return b.End
	}
	return b.Beg
}

func (m *Mol) BondBetween(aid1, aid2 int) (int, bool) {
	for _, bid := range m.adj[aid1] {
		if m.OtherBondAtom(bid, aid1) == aid2 {
			return bid, true
		}
	}
	return 0, false
}

// Neighbors returns the atoms bonded to aid, in bond order.
func (m *Mol) Neighbors(aid int) []int {
	nbrs := make([]int, 0, len(m.adj[aid]))
	for _, bid := range m.adj[aid] {
		nbrs = append(nbrs, m.OtherBondAtom(bid, aid))
	}
	return nbrs
}

// IdealAngleBetweenLigands returns the idealized inter-ligand angle in
// degrees for atoms with a non-tetrahedral chiral tag. Ligand sites are taken
// in bond order against the reference arrangement; the atom's coordination
// permutation (ChiralPerm) is not consulted.
func (m *Mol) IdealAngleBetweenLigands(aid, lig1, lig2 int) float64 {
	pos1 := m.ligandSite(aid, lig1)
	pos2 := m.ligandSite(aid, lig2)
	d := pos1 - pos2
	if d < 0 {
		d = -d
	}
	switch m.atoms[aid].Chiral {
	case godg.ChiralSquarePlanar:
		if d == 2 {
			return 180
		}
		return 90
	case godg.ChiralTrigonalBipyramidal:
		// sites 0 and 4 are axial under the reference permutation
		ax1 := pos1 == 0 || pos1 == 4
		ax2 := pos2 == 0 || pos2 == 4
		switch {
		case ax1 && ax2:
			return 180
		case ax1 != ax2:
			return 90
		default:
			return 120
		}
	case godg.ChiralOctahedral:
		if d == 3 {
			return 180
		}
		return 90
	}
	return 90
}

func (m *Mol) ligandSite(aid, lig int) int {
	for i, bid := range m.adj[aid] {
		if m.OtherBondAtom(bid, aid) == lig {
			return i
		}
	}
	return -1
}

// perceiveHybridization assigns sp/sp2/sp3 (and the extended-coordination
// states) for atoms that still carry HybridOther.
func (m *Mol) perceiveHybridization() {
	for aid := range m.atoms {
		a := &m.atoms[aid]
		if a.Hyb != godg.HybridOther {
			continue
		}
		nDouble, nTriple, nArom := 0, 0, 0
		for _, bid := range m.adj[aid] {
			switch m.bonds[bid].Type {
			case godg.BondDouble:
				nDouble++
			case godg.BondTriple:
				nTriple++
			case godg.BondAromatic:
				nArom++
			}
		}
		deg := len(m.adj[aid])
		switch {
		case nTriple > 0 || nDouble >= 2:
			a.Hyb = godg.HybridSP
		case nDouble > 0 || nArom > 0 || a.Aromatic:
			a.Hyb = godg.HybridSP2
		case deg+a.NumHs >= 6:
			a.Hyb = godg.HybridSP3D2
		case deg+a.NumHs == 5:
			a.Hyb = godg.HybridSP3D
		default:
			a.Hyb = godg.HybridSP3
		}
	}
}

// perceiveConjugation marks aromatic bonds and single/double bonds whose both
// end atoms take part in a multiple bond.
func (m *Mol) perceiveConjugation() {
	multiple := make([]bool, len(m.atoms))
	for _, b := range m.bonds {
		if b.Type == godg.BondDouble || b.Type == godg.BondTriple || b.Type == godg.BondAromatic {
			multiple[b.Beg] = true
			multiple[b.End] = true
		}
	}
	for bid := range m.bonds {
		b := &m.bonds[bid]
		if b.Type == godg.BondAromatic {
			b.Conjugated = true
		} else if multiple[b.Beg] && multiple[b.End] {
			b.Conjugated = true
		}
	}
}

// DistanceMatrix returns the topological (bond count) distance matrix,
// filling it on first use via one BFS per atom.
func (m *Mol) DistanceMatrix() []float64 {
	m.dmatOnce.Do(func() {
		na := len(m.atoms)
		dmat := make([]float64, na*na)
		for i := range dmat {
			dmat[i] = godg.MaxUpper
		}
		queue := make([]int, 0, na)
		for src := 0; src < na; src++ {
			row := dmat[src*na : (src+1)*na]
			row[src] = 0
			queue = append(queue[:0], src)
			for len(queue) > 0 {
				at := queue[0]
				queue = queue[1:]
				for _, bid := range m.adj[at] {
					nbr := m.OtherBondAtom(bid, at)
					if row[nbr] >= godg.MaxUpper {
						row[nbr] = row[at] + 1
						queue = append(queue, nbr)
					}
				}
			}
		}
		m.dmat = dmat
	})
	return m.dmat
}

// AppendEncodingTo appends a binary encoding of the molecular graph:
//
//	NumAtoms, NumBonds
//	<1..NumAtoms>  Z, charge+16, numHs, hyb
//	<1..NumBonds>  beg, end, type, stereo
//
// All fields uvarint. The encoding is order-preserving, not canonical: two
// graphs are equal only when built in the same atom order.
func (m *Mol) AppendEncodingTo(out []byte) []byte {
	var scrap [binary.MaxVarintLen64]byte
	put := func(v uint64) {
		n := binary.PutUvarint(scrap[:], v)
		out = append(out, scrap[:n]...)
	}
	put(uint64(len(m.atoms)))
	put(uint64(len(m.bonds)))
	for _, a := range m.atoms {
		put(uint64(a.Num))
		put(uint64(a.Charge + 16))
		put(uint64(a.NumHs))
		put(uint64(a.Hyb))
	}
	for _, b := range m.bonds {
		put(uint64(b.Beg))
		put(uint64(b.End))
		put(uint64(b.Type))
		put(uint64(b.Stereo))
	}
	return out
}

// WriteAsString prints a one-line summary: atom list then bond list.
func (m *Mol) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "a=%d,b=%d,\"", len(m.atoms), len(m.bonds))
	for aid, a := range m.atoms {
		if aid > 0 {
			fmt.Fprint(out, " ")
		}
		sym := elementSymbols[a.Num]
		if sym == "" {
			sym = fmt.Sprintf("#%d", a.Num)
		}
		fmt.Fprintf(out, "%s", sym)
	}
	fmt.Fprint(out, "\",\"")
	for bid, b := range m.bonds {
		if bid > 0 {
			fmt.Fprint(out, " ")
		}
		fmt.Fprintf(out, "%d%s%d", b.Beg, b.Type.String(), b.End)
	}
	fmt.Fprint(out, "\"\n")
}
