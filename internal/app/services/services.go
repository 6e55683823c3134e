package services

import (
	"github.com/yigit/placementhub/internal/app/models"
)

// Notifier pushes realtime announcements to connected users
type Notifier interface {
	Notify(n models.Notification)
}

// NopNotifier drops every notification
type NopNotifier struct{}

// Notify implements Notifier
func (NopNotifier) Notify(models.Notification) {}

// everyone is the audience of board announcements
var everyone = []models.Role{models.RoleStudent, models.RoleFaculty}
