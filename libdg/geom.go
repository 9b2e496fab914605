package libdg

import "math"

// Planar path geometry used by the 1-3, 1-4, and 1-5 passes. All angles are
// in radians, all distances in Angstroms.

// compute13Dist returns the distance between the end atoms of a two-bond path
// with bond lengths d1, d2 meeting at angle ang (law of cosines).
func compute13Dist(d1, d2, ang float64) float64 {
	return math.Sqrt(d1*d1 + d2*d2 - 2*d1*d2*math.Cos(ang))
}

// compute14DistCis returns the 1-4 distance for a planar syn path
// (torsion 0) with bond lengths d1, d2, d3 and bond angles ang12, ang23.
func compute14DistCis(d1, d2, d3, ang12, ang23 float64) float64 {
	dx := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy := d3*math.Sin(ang23) - d1*math.Sin(ang12)
	return math.Sqrt(dx*dx + dy*dy)
}

// compute14DistTrans returns the 1-4 distance for a planar anti path
// (torsion pi).
func compute14DistTrans(d1, d2, d3, ang12, ang23 float64) float64 {
	dx := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy := d3*math.Sin(ang23) + d1*math.Sin(ang12)
	return math.Sqrt(dx*dx + dy*dy)
}

// compute14Dist3D returns the 1-4 distance for an arbitrary torsion angle.
func compute14Dist3D(d1, d2, d3, ang12, ang23, torsion float64) float64 {
	d2sq := d1*d1 + d2*d2 + d3*d3 -
		2*d1*d2*math.Cos(ang12) - 2*d2*d3*math.Cos(ang23) +
		2*d1*d3*(math.Cos(ang12)*math.Cos(ang23)-
			math.Sin(ang12)*math.Sin(ang23)*math.Cos(torsion))
	return math.Sqrt(d2sq)
}

// clampCos keeps an arccos argument inside [-1, 1] against roundoff.
func clampCos(cval float64) float64 {
	if cval > 1.0 {
		return 1.0
	}
	if cval < -1.0 {
		return -1.0
	}
	return cval
}

// The four 1-5 compositions join a planar 1-4 fragment (cis or trans) with a
// fourth bond whose own torsion is cis or trans. Each computes the planar 1-4
// vector, recovers the angle it makes with bond 3, and folds in bond 4 with
// the law of cosines.
//
//	compute15DistCisCis:       5           compute15DistCisTrans:  1     4-5
//	                            \                                   \   /
//	                       1     4                                   2-3
//	                        \   /
//	                         2-3

func compute15DistCisCis(d1, d2, d3, d4, ang12, ang23, ang34 float64) float64 {
	dx14 := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy14 := d3*math.Sin(ang23) - d1*math.Sin(ang12)
	d14 := math.Sqrt(dx14*dx14 + dy14*dy14)
	ang143 := math.Acos(clampCos((d3 - d2*math.Cos(ang23) + d1*math.Cos(ang12+ang23)) / d14))
	return compute13Dist(d14, d4, ang34-ang143)
}

func compute15DistCisTrans(d1, d2, d3, d4, ang12, ang23, ang34 float64) float64 {
	dx14 := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy14 := d3*math.Sin(ang23) - d1*math.Sin(ang12)
	d14 := math.Sqrt(dx14*dx14 + dy14*dy14)
	ang143 := math.Acos(clampCos((d3 - d2*math.Cos(ang23) + d1*math.Cos(ang12+ang23)) / d14))
	return compute13Dist(d14, d4, ang34+ang143)
}

//	compute15DistTransCis:   1         compute15DistTransTrans:  1
//	                          \                                   \
//	                           2-3                                 2-3
//	                              \                                   \
//	                               4                                   4-5
//	                              /
//	                             5

func compute15DistTransCis(d1, d2, d3, d4, ang12, ang23, ang34 float64) float64 {
	dx14 := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy14 := d3*math.Sin(ang23) + d1*math.Sin(ang12)
	d14 := math.Sqrt(dx14*dx14 + dy14*dy14)
	ang143 := math.Acos(clampCos((d3 - d2*math.Cos(ang23) + d1*math.Cos(ang12-ang23)) / d14))
	return compute13Dist(d14, d4, ang34-ang143)
}

func compute15DistTransTrans(d1, d2, d3, d4, ang12, ang23, ang34 float64) float64 {
	dx14 := d2 - d3*math.Cos(ang23) - d1*math.Cos(ang12)
	dy14 := d3*math.Sin(ang23) + d1*math.Sin(ang12)
	d14 := math.Sqrt(dx14*dx14 + dy14*dy14)
	ang143 := math.Acos(clampCos((d3 - d2*math.Cos(ang23) + d1*math.Cos(ang12-ang23)) / d14))
	return compute13Dist(d14, d4, ang34+ang143)
}
