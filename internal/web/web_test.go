package web

import (
	"bytes"
	"testing"
	"time"

	"tasktracker/internal/domain"
	"tasktracker/internal/session"

	"github.com/stretchr/testify/require"
)

func TestTemplatesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"index.html", "login.html", "register.html", "tasks.html", "admin_users.html"} {
		require.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestIndexRendersTasksAndFlashes(t *testing.T) {
	tmpl := MustTemplates()
	desc := "two liters"

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "index.html", map[string]any{
		"User":    &domain.User{ID: 1, Username: "alice"},
		"Flashes": []session.Flash{{Category: session.FlashSuccess, Message: "Task created."}},
		"Tasks": []domain.Task{{
			ID: 3, Title: "<milk>", Description: &desc, Status: domain.TaskStatusInProgress,
			Priority: domain.PriorityHigh, CreatedAt: time.Now(),
		}},
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "Task created.")
	require.Contains(t, out, "&lt;milk&gt;")
	require.Contains(t, out, "two liters")
	require.Contains(t, out, "in progress")
	require.Contains(t, out, `action="/api/tasks/3/toggle"`)
	require.NotContains(t, out, "/auth/admin/users")
}
