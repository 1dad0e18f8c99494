package landmark

// Kind identifies the anatomical meaning of a single landmark
type Kind string

const (
	KindCenterline      Kind = "centerline-point"
	KindValve           Kind = "valve"
	KindCuspLeft        Kind = "cusp-left"
	KindCuspRight       Kind = "cusp-right"
	KindCuspNonCoronary Kind = "cusp-non-coronary"
	KindRootLVOT        Kind = "root-lvot"
	KindRootValve       Kind = "root-valve"
	KindRootAorta       Kind = "root-aorta"
)

// Group identifies a capacity-limited family of landmarks
type Group string

const (
	GroupCenterline Group = "centerline"
	GroupCusp       Group = "cusp"
	GroupRoot       Group = "root"
)

// GroupSpec describes the capacity and ordering rule of one group.
// For ordered groups the insertion index selects the kind: the first
// click places Ordering[0], the second Ordering[1], and so on.
type GroupSpec struct {
	Group Group
	Max   int
	// Exact means the group is only complete at exactly Max members
	// (the cusp nadirs). Non-exact groups are complete on reaching Max.
	Exact    bool
	Ordering []Kind
	// Repeat means insertions beyond the ordering reuse its last kind
	// (free centerline points are all the same kind).
	Repeat bool
}

// Kinds per group follow the anatomy: cusps are exactly the three nadirs,
// root points run LVOT → valve → aorta, centerline points are uniform.
var groupSpecs = map[Group]GroupSpec{
	GroupCusp: {
		Group:    GroupCusp,
		Max:      3,
		Exact:    true,
		Ordering: []Kind{KindCuspLeft, KindCuspRight, KindCuspNonCoronary},
	},
	GroupRoot: {
		Group:    GroupRoot,
		Max:      3,
		Ordering: []Kind{KindRootLVOT, KindRootValve, KindRootAorta},
	},
	GroupCenterline: {
		Group:    GroupCenterline,
		Max:      10,
		Ordering: []Kind{KindCenterline},
		Repeat:   true,
	},
}

// Spec returns the capacity/ordering rule for a group
func Spec(g Group) (GroupSpec, bool) {
	s, ok := groupSpecs[g]
	return s, ok
}

// defaultColors is the per-kind display color table (hex tokens)
var defaultColors = map[Kind]string{
	KindCenterline:      "#00d0ff",
	KindValve:           "#ffd400",
	KindCuspLeft:        "#ff4040",
	KindCuspRight:       "#40ff40",
	KindCuspNonCoronary: "#4080ff",
	KindRootLVOT:        "#ff8800",
	KindRootValve:       "#ffd400",
	KindRootAorta:       "#c040ff",
}

// ColorFor returns the display color token of a kind
func ColorFor(k Kind) string {
	if c, ok := defaultColors[k]; ok {
		return c
	}
	return "#ffffff"
}
