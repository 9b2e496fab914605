package libdg

import (
	"sort"

	"github.com/distgeom-systems/godg/godg"
)

// ringInfo is the molecule's ring perception: a smallest-set-of-smallest-rings
// style decomposition of the cycle space, plus membership indexes.
type ringInfo struct {
	atomRings [][]int // ordered cyclic atom walks
	bondRings [][]int // aligned: bondRings[r][i] joins atomRings[r][i] and [i+1]

	atomRingCount []int
	bondRingCount []int
	atomRingSizes []uint32 // bitmask of ring sizes per atom
	bondRingSizes []uint32
}

func (ri *ringInfo) IsInitialized() bool      { return ri != nil }
func (ri *ringInfo) NumRings() int            { return len(ri.atomRings) }
func (ri *ringInfo) NumAtomRings(aid int) int { return ri.atomRingCount[aid] }
func (ri *ringInfo) NumBondRings(bid int) int { return ri.bondRingCount[bid] }
func (ri *ringInfo) AtomRings() [][]int       { return ri.atomRings }
func (ri *ringInfo) BondRings() [][]int       { return ri.bondRings }

func (ri *ringInfo) IsAtomInRingOfSize(aid, size int) bool {
	return size < 32 && ri.atomRingSizes[aid]&(1<<uint(size)) != 0
}

func (ri *ringInfo) IsBondInRingOfSize(bid, size int) bool {
	return size < 32 && ri.bondRingSizes[bid]&(1<<uint(size)) != 0
}

// Rings returns the ring perception, computing it on first use.
func (m *Mol) Rings() godg.RingInfo {
	m.ringOnce.Do(func() {
		m.rings = m.perceiveRings()
	})
	return m.rings
}

// perceiveRings finds the smallest ring through every bond, then keeps rings
// smallest-first while they still contribute uncovered bonds, topping up to
// the cycle rank. Fused and bridged systems come out as their simple rings.
func (m *Mol) perceiveRings() *ringInfo {
	na := len(m.atoms)
	nb := len(m.bonds)
	ri := &ringInfo{
		atomRingCount: make([]int, na),
		bondRingCount: make([]int, nb),
		atomRingSizes: make([]uint32, na),
		bondRingSizes: make([]uint32, nb),
	}

	cycleRank := nb - na + m.countComponents()
	if cycleRank <= 0 {
		return ri
	}

	type ringRec struct {
		atoms []int
		bonds []int
	}
	var candidates []ringRec
	haveKey := make(map[string]bool)

	for bid := 0; bid < nb; bid++ {
		walk := m.shortestPathAvoiding(m.bonds[bid].Beg, m.bonds[bid].End, bid)
		if walk == nil {
			continue
		}
		key := ringKey(walk)
		if haveKey[key] {
			continue
		}
		rSize := len(walk)
		bring := make([]int, rSize)
		ok := true
		for i := 0; i < rSize; i++ {
			b, found := m.BondBetween(walk[i], walk[(i+1)%rSize])
			if !found {
				ok = false
				break
			}
			bring[i] = b
		}
		if !ok {
			continue
		}
		haveKey[key] = true
		candidates = append(candidates, ringRec{atoms: walk, bonds: bring})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i].atoms) < len(candidates[j].atoms)
	})

	covered := make([]bool, nb)
	chosen := make([]bool, len(candidates))
	numChosen := 0
	for ci, rec := range candidates {
		fresh := false
		for _, bid := range rec.bonds {
			if !covered[bid] {
				fresh = true
				break
			}
		}
		if !fresh {
			continue
		}
		chosen[ci] = true
		numChosen++
		for _, bid := range rec.bonds {
			covered[bid] = true
		}
	}
	// bridged systems can need rings beyond the covering set
	for ci := range candidates {
		if numChosen >= cycleRank {
			break
		}
		if !chosen[ci] {
			chosen[ci] = true
			numChosen++
		}
	}

	for ci, rec := range candidates {
		if !chosen[ci] {
			continue
		}
		rSize := len(rec.atoms)
		ri.atomRings = append(ri.atomRings, rec.atoms)
		ri.bondRings = append(ri.bondRings, rec.bonds)
		for _, aid := range rec.atoms {
			ri.atomRingCount[aid]++
			if rSize < 32 {
				ri.atomRingSizes[aid] |= 1 << uint(rSize)
			}
		}
		for _, bid := range rec.bonds {
			ri.bondRingCount[bid]++
			if rSize < 32 {
				ri.bondRingSizes[bid] |= 1 << uint(rSize)
			}
		}
	}
	return ri
}

func (m *Mol) countComponents() int {
	seen := make([]bool, len(m.atoms))
	queue := make([]int, 0, len(m.atoms))
	count := 0
	for src := range m.atoms {
		if seen[src] {
			continue
		}
		count++
		seen[src] = true
		queue = append(queue[:0], src)
		for len(queue) > 0 {
			at := queue[0]
			queue = queue[1:]
			for _, bid := range m.adj[at] {
				nbr := m.OtherBondAtom(bid, at)
				if !seen[nbr] {
					seen[nbr] = true
					queue = append(queue, nbr)
				}
			}
		}
	}
	return count
}

// shortestPathAvoiding returns the atom walk from src to dst that skips the
// given bond, or nil when dst is unreachable without it.
func (m *Mol) shortestPathAvoiding(src, dst, skipBond int) []int {
	na := len(m.atoms)
	prev := make([]int, na)
	for i := range prev {
		prev[i] = -1
	}
	prev[src] = src
	queue := []int{src}
	for len(queue) > 0 {
		at := queue[0]
		queue = queue[1:]
		if at == dst {
			break
		}
		for _, bid := range m.adj[at] {
			if bid == skipBond {
				continue
			}
			nbr := m.OtherBondAtom(bid, at)
			if prev[nbr] < 0 {
				prev[nbr] = at
				queue = append(queue, nbr)
			}
		}
	}
	if prev[dst] < 0 {
		return nil
	}
	var walk []int
	for at := dst; at != src; at = prev[at] {
		walk = append(walk, at)
	}
	walk = append(walk, src)
	return walk
}

// ringKey builds an order-independent identity for a ring's atom set.
func ringKey(atoms []int) string {
	sorted := append([]int(nil), atoms...)
	sort.Ints(sorted)
	key := make([]byte, 0, len(sorted)*3)
	for _, aid := range sorted {
		key = append(key, byte(aid>>16), byte(aid>>8), byte(aid))
	}
	return string(key)
}
