package portal

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/yigit/placementhub/internal/app/models"
)

type fakeSessionAPI struct {
	session   Session
	checkErr  error
	logoutErr error
	checks    int
	logouts   int
}

func (f *fakeSessionAPI) CheckAuth(context.Context) (Session, error) {
	f.checks++
	return f.session, f.checkErr
}

func (f *fakeSessionAPI) Logout(context.Context) error {
	f.logouts++
	return f.logoutErr
}

func TestSessionStore_CheckAuthStatus(t *testing.T) {
	api := &fakeSessionAPI{session: testSession}
	store := NewSessionStore(api, zerolog.Nop())

	assert.True(t, store.Loading())
	_, ok := store.Current()
	assert.False(t, ok)

	store.CheckAuthStatus(context.Background())
	assert.False(t, store.Loading())
	got, ok := store.Current()
	assert.True(t, ok)
	assert.Equal(t, testSession, got)
}

func TestSessionStore_CheckAuthFailureMeansSignedOut(t *testing.T) {
	api := &fakeSessionAPI{checkErr: errors.New("connection refused")}
	store := NewSessionStore(api, zerolog.Nop())
	store.Login(testSession)

	store.CheckAuthStatus(context.Background())

	assert.Equal(t, 1, api.checks)
	assert.False(t, store.Loading())
	_, ok := store.Current()
	assert.False(t, ok)
}

func TestSessionStore_LogoutClearsEvenOnError(t *testing.T) {
	api := &fakeSessionAPI{logoutErr: &APIError{Status: 500, Message: "boom"}}
	store := NewSessionStore(api, zerolog.Nop())
	store.Login(testSession)

	err := store.Logout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1, api.logouts)
	_, ok := store.Current()
	assert.False(t, ok)
}

func TestLoginRedirect(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		want    string
	}{
		{"student complete", Session{Role: models.RoleStudent, ProfileCompleted: true}, "/"},
		{"faculty complete", Session{Role: models.RoleFaculty, ProfileCompleted: true}, "/faculty"},
		{"company complete", Session{Role: models.RoleCompany, ProfileCompleted: true}, "/company"},
		{"student incomplete", Session{Role: models.RoleStudent}, "/signup/student"},
		{"faculty incomplete", Session{Role: models.RoleFaculty}, "/signup/faculty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LoginRedirect(tt.session))
		})
	}
}
