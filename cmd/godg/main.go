package main

import (
	"flag"
	"os"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/smiles"
)

var (
	macrocycle14 = flag.Bool("macrocycle14", false, "use macrocycle treatment for rings of 9+ bonds")
	no15         = flag.Bool("no15", false, "skip the 1-5 bounds pass")
	noScaleVdw   = flag.Bool("no-scale-vdw", false, "disable topological scaling of van der Waals lower bounds")
	bracketAmide = flag.Bool("bracket-amides", false, "bracket amide 1-4 contacts from cis to trans instead of pinning them")
)

func main() {

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	flag.Parse()

	args := flag.Args()
	if len(args) == 1 && strings.HasSuffix(args[0], ".py") {
		runScript(args[0])
		klog.Flush()
		return
	}

	opts := godg.DefaultTopolOpts
	opts.Macrocycle14 = *macrocycle14
	opts.Set15 = !*no15
	opts.ScaleVdw = !*noScaleVdw
	opts.ForceTransAmides = !*bracketAmide

	for _, smi := range args {
		mol, err := smiles.Parse(smi)
		if err != nil {
			klog.Errorf("%q: %v", smi, err)
			continue
		}
		mm := godg.NewBoundsMat(mol.NumAtoms())
		libdg.InitBoundsMat(mm, 0, godg.MaxUpper)
		if err := libdg.SetTopolBounds(mol, mm, opts); err != nil {
			klog.Errorf("%q: %v", smi, err)
			continue
		}
		klog.V(2).Infof("%q: %d atoms, %d bonds", smi, mol.NumAtoms(), mol.NumBonds())
		mol.WriteAsString(os.Stdout)
		mm.WriteAsCSV(os.Stdout)
	}

	klog.Flush()
}
