package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"radiorsser/internal/models"
)

func TestNotifyNoRecipients(t *testing.T) {
	n := NewSMTP("smtp.example.com", "587", "feeds@example.com", "", "")
	// Nothing to deliver counts as delivered, so archive cleanup can proceed.
	assert.True(t, n.Notify(nil, Change{StationName: "Говорит Москва"}))
}

func TestNotifyUnconfiguredSMTP(t *testing.T) {
	n := NewSMTP("", "", "", "", "")
	delivered := n.Notify([]string{"listener@example.com"}, Change{StationName: "Говорит Москва"})
	assert.False(t, delivered)
}

func TestBuildMessage(t *testing.T) {
	change := Change{
		StationName: "Говорит Москва",
		New:         []models.Program{{Title: "Новая программа", URL: "https://example.com/new/"}},
		Archived:    []models.Program{{Title: "Старая программа"}},
	}

	msg := string(buildMessage("feeds@example.com", []string{"a@example.com", "b@example.com"}, change))

	assert.Contains(t, msg, "To: a@example.com, b@example.com")
	assert.Contains(t, msg, "Subject: Говорит Москва: program list updated")
	assert.Contains(t, msg, "Новая программа")
	assert.Contains(t, msg, "https://example.com/new/")
	assert.Contains(t, msg, "Старая программа")
}
