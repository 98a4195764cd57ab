package printing

import (
	"strings"
	"testing"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateEngine_RenderMinutes(t *testing.T) {
	engine := NewTemplateEngine()

	t.Run("renders sections and empty markers", func(t *testing.T) {
		m := completedMeeting(t)

		html, err := engine.RenderMinutes(BuildMinutes(m, NewNameResolver(m, identity.DefaultParticipants())))

		require.NoError(t, err)
		assert.Contains(t, html, "<h1>Planejamento</h1>")
		for _, heading := range []string{"Destaques", "Pautas pendentes", "Tarefas", "Notas", "3 membros presentes nesta reunião"} {
			assert.Contains(t, html, "<h2>"+heading+"</h2>")
		}
		assert.Contains(t, html, `<li class="bullet done">Meta batida</li>`)
		assert.NotContains(t, html, "Resolvida")
		assert.Equal(t, 1, strings.Count(html, EmptySection), "only the notes section is empty")
	})

	t.Run("escapes user content", func(t *testing.T) {
		m := completedMeeting(t)
		m.Name = "<script>alert(1)</script>"

		html, err := engine.RenderMinutes(BuildMinutes(m, NewNameResolver(m, nil)))

		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
		assert.Contains(t, html, "&lt;script&gt;")
	})
}

func TestTemplateEngine_MeetingEmails(t *testing.T) {
	engine := NewTemplateEngine()
	m := completedMeeting(t)
	names := NewNameResolver(m, identity.DefaultParticipants())

	t.Run("completed email links the app", func(t *testing.T) {
		html, err := engine.RenderMeetingCompleted(BuildMeetingEmail(m, names, "https://atas.example.com"))

		require.NoError(t, err)
		assert.Contains(t, html, "foi finalizada!")
		assert.Contains(t, html, `href="https://atas.example.com"`)
		assert.Contains(t, html, "01:02:05")
	})

	t.Run("summary lists resolved members", func(t *testing.T) {
		html, err := engine.RenderMeetingSummary(BuildMeetingEmail(m, names, ""))

		require.NoError(t, err)
		assert.Contains(t, html, HeadlineCreated)
		assert.Contains(t, html, "Gabriel M., Ana Costa, Zé Convidado")
		assert.Contains(t, html, `href="#"`)
	})

	t.Run("reminder headline", func(t *testing.T) {
		data := BuildMeetingEmail(m, names, "")
		data.Headline = HeadlineReminder

		html, err := engine.RenderMeetingSummary(data)

		require.NoError(t, err)
		assert.Contains(t, html, HeadlineReminder)
	})
}
