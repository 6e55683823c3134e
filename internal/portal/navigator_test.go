package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/placementhub/internal/app/models"
)

// staticSessions is a SessionView with fixed answers.
type staticSessions struct {
	session *Session
	loading bool
}

func (s staticSessions) Current() (Session, bool) {
	if s.session == nil {
		return Session{}, false
	}
	return *s.session, true
}

func (s staticSessions) Loading() bool { return s.loading }

func signedIn(role models.Role) staticSessions {
	return staticSessions{session: &Session{Email: "u@college.test", Role: role, ProfileCompleted: true}}
}

func TestParseMismatchPolicy(t *testing.T) {
	p, err := ParseMismatchPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MismatchHome, p)

	p, err = ParseMismatchPolicy(" LOGIN ")
	require.NoError(t, err)
	assert.Equal(t, MismatchLogin, p)

	_, err = ParseMismatchPolicy("elsewhere")
	assert.Error(t, err)
}

func TestGuard_Check(t *testing.T) {
	faculty := []models.Role{models.RoleFaculty}

	assert.Equal(t, Decision{Outcome: Pending}, NewGuard(staticSessions{loading: true}, MismatchHome).Check(faculty...))
	assert.Equal(t, Decision{Outcome: Redirect, Target: LoginPath}, NewGuard(staticSessions{}, MismatchHome).Check(faculty...))
	assert.Equal(t, Decision{Outcome: Allow}, NewGuard(signedIn(models.RoleFaculty), MismatchHome).Check(faculty...))

	assert.Equal(t, Decision{Outcome: Redirect, Target: "/"}, NewGuard(signedIn(models.RoleStudent), MismatchHome).Check(faculty...))
	assert.Equal(t, Decision{Outcome: Redirect, Target: "/company"}, NewGuard(signedIn(models.RoleCompany), MismatchHome).Check(faculty...))
	assert.Equal(t, Decision{Outcome: Redirect, Target: LoginPath}, NewGuard(signedIn(models.RoleStudent), MismatchLogin).Check(faculty...))

	// multi-role subtree
	assert.Equal(t, Allow, NewGuard(signedIn(models.RoleCompany), MismatchHome).Check(models.RoleFaculty, models.RoleCompany).Outcome)
}

func TestNavigator_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		sessions staticSessions
		policy   MismatchPolicy
		path     string
		want     Decision
	}{
		{"public login", staticSessions{}, MismatchHome, "/login", Decision{Allow, "/login"}},
		{"public signup role", staticSessions{}, MismatchHome, "/signup/company", Decision{Allow, "/signup/company"}},
		{"public reset", staticSessions{}, MismatchHome, "/reset-password/abc?x=1", Decision{Allow, "/reset-password/abc"}},
		{"unauthenticated faculty", staticSessions{}, MismatchHome, "/faculty/addexam", Decision{Redirect, LoginPath}},
		{"unauthenticated student home", staticSessions{}, MismatchHome, "/", Decision{Redirect, LoginPath}},
		{"pending", staticSessions{loading: true}, MismatchHome, "/faculty", Decision{Outcome: Pending}},
		{"student on faculty, home policy", signedIn(models.RoleStudent), MismatchHome, "/faculty/addexam", Decision{Redirect, "/"}},
		{"student on faculty, login policy", signedIn(models.RoleStudent), MismatchLogin, "/faculty/addexam", Decision{Redirect, LoginPath}},
		{"faculty on student page", signedIn(models.RoleFaculty), MismatchHome, "/examCenter", Decision{Redirect, "/faculty"}},
		{"faculty child", signedIn(models.RoleFaculty), MismatchHome, "/faculty/addexam", Decision{Allow, "/faculty/addexam"}},
		{"faculty trailing slash", signedIn(models.RoleFaculty), MismatchHome, "/faculty/studentcorner/", Decision{Allow, "/faculty/studentcorner"}},
		{"faculty unknown child", signedIn(models.RoleFaculty), MismatchHome, "/faculty/nope", Decision{Redirect, "/faculty"}},
		{"faculty deep unknown", signedIn(models.RoleFaculty), MismatchHome, "/faculty/addexam/42", Decision{Redirect, "/faculty"}},
		{"student index", signedIn(models.RoleStudent), MismatchHome, "/", Decision{Allow, "/"}},
		{"student child", signedIn(models.RoleStudent), MismatchHome, "/placementDrives", Decision{Allow, "/placementDrives"}},
		{"student deep unknown", signedIn(models.RoleStudent), MismatchHome, "/resources/old", Decision{Redirect, "/"}},
		{"company index", signedIn(models.RoleCompany), MismatchHome, "/company", Decision{Allow, "/company"}},
		{"outside every shell", signedIn(models.RoleStudent), MismatchHome, "/nowhere", Decision{NotFound, "/nowhere"}},
		{"public route case", staticSessions{}, MismatchHome, "/Login", Decision{NotFound, "/Login"}},
		{"student child case", signedIn(models.RoleStudent), MismatchHome, "/PlacementDrives", Decision{NotFound, "/PlacementDrives"}},
		{"faculty prefix case", signedIn(models.RoleFaculty), MismatchHome, "/Faculty/addexam", Decision{NotFound, "/Faculty/addexam"}},
		{"faculty child case", signedIn(models.RoleFaculty), MismatchHome, "/faculty/AddExam", Decision{Redirect, "/faculty"}},
		{"outside every shell signed out", staticSessions{}, MismatchHome, "/faculty-lounge", Decision{NotFound, "/faculty-lounge"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nav := NewNavigator(NewGuard(tt.sessions, tt.policy))
			assert.Equal(t, tt.want, nav.Resolve(tt.path))
		})
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "not-found", NotFound.String())
}
