package smiles

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
)

// Parse reads a SMILES string and returns a finished molecule.
func Parse(smi string) (*libdg.Mol, error) {
	expr, err := parseSmilesExpr.ParseString("", smi)
	if err != nil {
		return nil, errors.Wrap(godg.ErrBadSmiles, err.Error())
	}

	mb := &molBuilder{
		mol:       libdg.NewMol(),
		openRings: make(map[int]ringOpening),
	}
	if err := mb.applyChain(expr.Chain, -1, ""); err != nil {
		return nil, err
	}
	if len(mb.openRings) != 0 {
		return nil, errors.Wrap(godg.ErrBadSmiles, "unclosed ring bond")
	}

	mb.assignImplicitHs()
	mb.mol.Finish()
	mb.assignBondStereo()
	return mb.mol, nil
}

// MustParse is Parse for tests and examples; it panics on bad input.
func MustParse(smi string) *libdg.Mol {
	mol, err := Parse(smi)
	if err != nil {
		panic(err)
	}
	return mol
}

type ringOpening struct {
	aid  int
	bond string
}

// dirBond remembers a directional single bond in written order; up means '/'.
type dirBond struct {
	bid      int
	beg, end int
	up       bool
}

type molBuilder struct {
	mol       *libdg.Mol
	openRings map[int]ringOpening
	dirBonds  []dirBond
	// explicitH marks bracket atoms, whose hydrogen counts are taken as
	// written instead of inferred from valence
	explicitH map[int]bool
}

func (mb *molBuilder) applyChain(c *chainExpr, from int, viaBond string) error {
	cur, err := mb.applyAtom(c.First, from, viaBond)
	if err != nil {
		return err
	}
	for _, unit := range c.Units {
		if unit.Branch != nil {
			if err := mb.applyChain(unit.Branch.Chain, cur, unit.Branch.Bond); err != nil {
				return err
			}
			continue
		}
		link := unit.Link
		prev := cur
		if link.Dot {
			prev = -1
		}
		cur, err = mb.applyAtom(link.Atom, prev, link.Bond)
		if err != nil {
			return err
		}
	}
	return nil
}

func (mb *molBuilder) applyAtom(ax *atomExpr, from int, viaBond string) (int, error) {
	var atom libdg.Atom
	explicitH := false
	if ax.Bracket != "" {
		var err error
		atom, err = parseBracketAtom(ax.Bracket)
		if err != nil {
			return -1, err
		}
		explicitH = true
	} else {
		sym := ax.Organic
		aromatic := sym[0] >= 'a' && sym[0] <= 'z'
		if aromatic {
			sym = strings.ToUpper(sym[:1]) + sym[1:]
		}
		z, ok := libdg.AtomicNumber(sym)
		if !ok {
			return -1, errors.Wrapf(godg.ErrBadSmiles, "unknown element %q", sym)
		}
		atom = libdg.Atom{Num: z, NumHs: -1, Aromatic: aromatic}
	}

	aid := mb.mol.AddAtom(atom)
	if explicitH {
		if mb.explicitH == nil {
			mb.explicitH = make(map[int]bool)
		}
		mb.explicitH[aid] = true
	}
	if from >= 0 {
		if err := mb.addBond(from, aid, viaBond); err != nil {
			return -1, err
		}
	}

	for _, rx := range ax.Rings {
		num := ringNumber(rx.Num)
		if open, ok := mb.openRings[num]; ok {
			delete(mb.openRings, num)
			bond := rx.Bond
			if bond == "" {
				bond = open.bond
			}
			if err := mb.addBond(open.aid, aid, bond); err != nil {
				return -1, err
			}
		} else {
			mb.openRings[num] = ringOpening{aid: aid, bond: rx.Bond}
		}
	}
	return aid, nil
}

func ringNumber(tok string) int {
	if tok[0] == '%' {
		n, _ := strconv.Atoi(tok[1:])
		return n
	}
	return int(tok[0] - '0')
}

func (mb *molBuilder) addBond(a1, a2 int, sym string) error {
	bt := godg.BondSingle
	switch sym {
	case "":
		if mb.mol.AtomAt(a1).Aromatic && mb.mol.AtomAt(a2).Aromatic {
			bt = godg.BondAromatic
		}
	case "-", "/", "\\":
	case "=":
		bt = godg.BondDouble
	case "#":
		bt = godg.BondTriple
	case ":":
		bt = godg.BondAromatic
	default:
		return errors.Wrapf(godg.ErrBadSmiles, "bad bond symbol %q", sym)
	}
	bid := mb.mol.AddBond(libdg.Bond{Beg: a1, End: a2, Type: bt})
	if sym == "/" || sym == "\\" {
		mb.dirBonds = append(mb.dirBonds, dirBond{bid: bid, beg: a1, end: a2, up: sym == "/"})
	}
	return nil
}

// parseBracketAtom scans the inside of [...]: isotope, symbol, chirality,
// hydrogen count, charge. Atom class tags are accepted and dropped.
func parseBracketAtom(tok string) (libdg.Atom, error) {
	body := tok[1 : len(tok)-1]
	var atom libdg.Atom
	i := 0

	for i < len(body) && body[i] >= '0' && body[i] <= '9' {
		i++ // isotope: read and ignored
	}

	if i >= len(body) {
		return atom, errors.Wrapf(godg.ErrBadSmiles, "empty bracket atom %q", tok)
	}
	start := i
	if body[i] >= 'A' && body[i] <= 'Z' {
		i++
		if i < len(body) && body[i] >= 'a' && body[i] <= 'z' {
			if _, ok := libdg.AtomicNumber(body[start : i+1]); ok {
				i++
			}
		}
	} else if body[i] >= 'a' && body[i] <= 'z' {
		atom.Aromatic = true
		i++
	} else {
		return atom, errors.Wrapf(godg.ErrBadSmiles, "bad bracket atom %q", tok)
	}
	sym := body[start:i]
	if atom.Aromatic {
		sym = strings.ToUpper(sym)
	}
	z, ok := libdg.AtomicNumber(sym)
	if !ok {
		return atom, errors.Wrapf(godg.ErrBadSmiles, "unknown element %q", sym)
	}
	atom.Num = z

	for i < len(body) {
		switch {
		case body[i] == '@':
			j := i + 1
			for j < len(body) && body[j] == '@' {
				j++
			}
			// named tags: @SP1, @TB1..20, @OC1..30
			tag, perm, n := parseChiralTag(body[i:])
			if n > 0 {
				atom.Chiral = tag
				atom.ChiralPerm = perm
				i += n
			} else {
				if j-i >= 2 {
					atom.Chiral = godg.ChiralTetCW
				} else {
					atom.Chiral = godg.ChiralTetCCW
				}
				i = j
			}
		case body[i] == 'H':
			i++
			count := 1
			if i < len(body) && body[i] >= '0' && body[i] <= '9' {
				count = int(body[i] - '0')
				i++
			}
			atom.NumHs = count
		case body[i] == '+' || body[i] == '-':
			sign := 1
			if body[i] == '-' {
				sign = -1
			}
			count := 0
			for i < len(body) && (body[i] == '+' || body[i] == '-') {
				count++
				i++
			}
			if i < len(body) && body[i] >= '0' && body[i] <= '9' {
				count = int(body[i] - '0')
				i++
			}
			atom.Charge = sign * count
		case body[i] == ':':
			i = len(body) // atom class: ignore the rest
		default:
			return atom, errors.Wrapf(godg.ErrBadSmiles, "bad bracket atom %q", tok)
		}
	}
	return atom, nil
}

// parseChiralTag recognizes the extended chirality tags. Returns n=0 when the
// text is a plain @/@@ marker.
func parseChiralTag(body string) (godg.ChiralTag, int, int) {
	type named struct {
		prefix string
		tag    godg.ChiralTag
	}
	for _, nt := range []named{
		{"@SP", godg.ChiralSquarePlanar},
		{"@TB", godg.ChiralTrigonalBipyramidal},
		{"@OC", godg.ChiralOctahedral},
	} {
		if strings.HasPrefix(body, nt.prefix) {
			j := len(nt.prefix)
			perm := 0
			for j < len(body) && body[j] >= '0' && body[j] <= '9' {
				perm = perm*10 + int(body[j]-'0')
				j++
			}
			if perm > 0 {
				return nt.tag, perm, j
			}
		}
	}
	return godg.ChiralNone, 0, 0
}

// assignImplicitHs fills in hydrogen counts for organic-subset atoms from the
// element's normal valence and the bond order sum.
func (mb *molBuilder) assignImplicitHs() {
	m := mb.mol
	for aid := 0; aid < m.NumAtoms(); aid++ {
		atom := m.AtomAt(aid)
		if mb.explicitH[aid] {
			if atom.NumHs < 0 {
				atom.NumHs = 0
			}
			continue
		}
		orderSum := 0.0
		for _, bid := range m.AtomBonds(aid) {
			orderSum += m.BondOrder(bid)
		}
		target := libdg.DefaultValence(atom.Num) + atom.Charge
		hs := target - int(orderSum+0.5)
		if hs < 0 {
			hs = 0
		}
		atom.NumHs = hs
	}
}

// assignBondStereo turns directional single bonds into cis/trans assignments
// on the double bonds between them.
func (mb *molBuilder) assignBondStereo() {
	m := mb.mol
	for bid := 0; bid < m.NumBonds(); bid++ {
		if m.BondType(bid) != godg.BondDouble {
			continue
		}
		beg, end := m.BondEnds(bid)
		db1, ok1 := mb.dirBondAt(beg, bid)
		db2, ok2 := mb.dirBondAt(end, bid)
		if !ok1 || !ok2 {
			continue
		}
		n1 := otherDirAtom(db1, beg)
		n2 := otherDirAtom(db2, end)
		bond := m.BondAt(bid)
		bond.StereoAtoms = [2]int{n1, n2}
		bond.HasStereoAtoms = true
		if sideOf(db1, beg) == sideOf(db2, end) {
			bond.Stereo = godg.StereoCis
		} else {
			bond.Stereo = godg.StereoTrans
		}
	}
}

func (mb *molBuilder) dirBondAt(aid, notBid int) (dirBond, bool) {
	for _, db := range mb.dirBonds {
		if db.bid != notBid && (db.beg == aid || db.end == aid) {
			return db, true
		}
	}
	return dirBond{}, false
}

func otherDirAtom(db dirBond, aid int) int {
	if db.beg == aid {
		return db.end
	}
	return db.beg
}

// sideOf resolves which side of the double-bond axis the directional bond
// puts its far atom on, as +1 or -1. A '/' written toward the stereo center
// (n/a=...) puts n below; written away (...=a/n) it puts n above.
func sideOf(db dirBond, center int) int {
	if db.beg == center {
		if db.up {
			return +1
		}
		return -1
	}
	if db.up {
		return -1
	}
	return +1
}
