// Package smiles reads SMILES strings into libdg molecules: enough of the
// language for organic-subset atoms, bracket atoms, branches, ring closures,
// aromatic rings, and directional double-bond stereo.
package smiles

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var smilesLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Bracket", Pattern: `\[[^\]]*\]`},
	{Name: "Organic", Pattern: `Cl|Br|[BCNOSPFI]|[bcnosp]`},
	{Name: "Ring", Pattern: `%\d\d|\d`},
	{Name: "Bond", Pattern: `[-=#:/\\]`},
	{Name: "Dot", Pattern: `\.`},
	{Name: "Open", Pattern: `\(`},
	{Name: "Close", Pattern: `\)`},
})

// The grammar mirrors how SMILES reads: an atom, then any mix of branches,
// ring-closure digits, and further links.

type smilesExpr struct {
	Chain *chainExpr `parser:"@@"`
}

type chainExpr struct {
	First *atomExpr   `parser:"@@"`
	Units []*unitExpr `parser:"@@*"`
}

type unitExpr struct {
	Branch *branchExpr `parser:"  @@"`
	Link   *linkExpr   `parser:"| @@"`
}

type branchExpr struct {
	Bond  string     `parser:"\"(\" @Bond?"`
	Chain *chainExpr `parser:"@@ \")\""`
}

type linkExpr struct {
	Dot  bool      `parser:"( @Dot"`
	Bond string    `parser:"  | @Bond )?"`
	Atom *atomExpr `parser:"@@"`
}

type atomExpr struct {
	Bracket string      `parser:"( @Bracket"`
	Organic string      `parser:"| @Organic )"`
	Rings   []*ringExpr `parser:"@@*"`
}

type ringExpr struct {
	Bond string `parser:"@Bond?"`
	Num  string `parser:"@Ring"`
}

var parseSmilesExpr = participle.MustBuild[smilesExpr](
	participle.Lexer(smilesLexer),
	participle.UseLookahead(2),
)
