package portal

import (
	"path"
	"sort"
	"strings"

	"github.com/yigit/placementhub/internal/app/models"
)

// Shell is a role-gated route subtree with an index route and named children.
type Shell struct {
	Prefix   string
	Roles    []models.Role
	Children []string
}

func (s Shell) isRoot() bool {
	return s.Prefix == "/"
}

// claims reports whether p belongs to the shell. The root shell only claims paths whose
// first segment is one of its children, otherwise every path would be inside it.
func (s Shell) claims(p string) bool {
	if s.isRoot() {
		if p == "/" {
			return true
		}
		first := strings.SplitN(strings.TrimPrefix(p, "/"), "/", 2)[0]
		return s.hasChild(first)
	}
	return p == s.Prefix || strings.HasPrefix(p, s.Prefix+"/")
}

func (s Shell) hasChild(child string) bool {
	for _, c := range s.Children {
		if c == child {
			return true
		}
	}
	return false
}

// resolve maps a claimed path to the path that renders: the index, a known child, or the
// index again for anything unknown below the prefix.
func (s Shell) resolve(p string) Decision {
	if p == s.Prefix {
		return Decision{Outcome: Allow, Target: p}
	}
	rest := strings.TrimPrefix(strings.TrimPrefix(p, s.Prefix), "/")
	if s.hasChild(rest) {
		return Decision{Outcome: Allow, Target: p}
	}
	return Decision{Outcome: Redirect, Target: s.Prefix}
}

// Navigator resolves portal paths against the public routes and the role shells.
type Navigator struct {
	guard  *Guard
	public []string
	shells []Shell
}

// PublicRoutes are reachable without a session. A ":name" segment matches any value.
var PublicRoutes = []string{
	LoginPath,
	"/signup",
	"/signup/:role",
	"/verify-otp",
	"/reset-password/:token",
}

// DefaultShells is the portal's route table.
var DefaultShells = []Shell{
	{
		Prefix:   "/",
		Roles:    []models.Role{models.RoleStudent},
		Children: []string{"placementDrives", "examCenter", "resources", "feedback", "support", "profile"},
	},
	{
		Prefix:   "/faculty",
		Roles:    []models.Role{models.RoleFaculty},
		Children: []string{"addplacementDrives", "addexam", "addresources", "studentcorner", "placementstatistics", "profile"},
	},
	{
		Prefix:   "/company",
		Roles:    []models.Role{models.RoleCompany},
		Children: []string{"profile"},
	},
}

// NewNavigator builds a navigator. With no shells it uses DefaultShells.
func NewNavigator(guard *Guard, shells ...Shell) *Navigator {
	if len(shells) == 0 {
		shells = DefaultShells
	}
	sorted := make([]Shell, len(shells))
	copy(sorted, shells)
	// longest prefix first so /faculty wins over /
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Navigator{guard: guard, public: PublicRoutes, shells: sorted}
}

// Resolve decides what happens when the user opens p. Public routes always render;
// shell routes go through the guard first and then fall back to the shell index;
// everything else is NotFound. Segments match case-sensitively everywhere.
func (n *Navigator) Resolve(p string) Decision {
	p = cleanPath(p)

	for _, pattern := range n.public {
		if matchPattern(pattern, p) {
			return Decision{Outcome: Allow, Target: p}
		}
	}

	for _, shell := range n.shells {
		if !shell.claims(p) {
			continue
		}
		if d := n.guard.Check(shell.Roles...); d.Outcome != Allow {
			return d
		}
		return shell.resolve(p)
	}

	return Decision{Outcome: NotFound, Target: p}
}

func cleanPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	return path.Clean(p)
}

func matchPattern(pattern, p string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(p, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if strings.HasPrefix(want[i], ":") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
