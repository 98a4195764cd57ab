package meeting

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
)

// Patch is a partial meeting update. Nil fields are left untouched.
// Members, Responsible and PresentMembers keys must already be resolved.
type Patch struct {
	// meeting data
	Name          *string
	Description   *string
	Date          *string
	Time          *string
	Duration      *string
	Type          *string
	Unit          *string
	Department    *string
	Indic         *string
	Plan          *string
	Members       []string
	Responsible   *string
	Recurrence    *string
	Active        *bool
	UserDirectory map[string]string

	// work items, reconciled against the stored collections by id
	Highlights  []Highlight
	Pautas      []Pauta
	Tasks       []Task
	Notes       []Note
	Attachments []Attachment
}

// TouchesMeetingData reports whether any meeting-data field is present
func (p Patch) TouchesMeetingData() bool {
	return p.Name != nil || p.Description != nil || p.Date != nil || p.Time != nil ||
		p.Duration != nil || p.Type != nil || p.Unit != nil || p.Department != nil ||
		p.Indic != nil || p.Plan != nil || p.Members != nil || p.Responsible != nil ||
		p.Recurrence != nil || p.Active != nil || p.UserDirectory != nil
}

// TouchesWorkItems reports whether any work-item collection is present
func (p Patch) TouchesWorkItems() bool {
	return p.Highlights != nil || p.Pautas != nil || p.Tasks != nil || p.Notes != nil || p.Attachments != nil
}

// Apply validates and applies patch as a whole; on error nothing changes
func (m *Meeting) Apply(caller identity.ParticipantKey, p Patch, at time.Time) error {
	if !m.CanAccess(caller) {
		return shared.NewForbiddenError(ReasonNotMember, "Sem permissão para alterar esta reunião")
	}
	if p.TouchesMeetingData() && !m.IsResponsible(caller) {
		return shared.NewForbiddenError(ReasonNotResponsible, "Somente o responsável pode editar os dados da reunião")
	}
	if p.TouchesWorkItems() && !m.IsResponsible(caller) {
		return shared.NewForbiddenError(ReasonNotResponsible, "Somente o responsável pode gerenciar itens sensíveis da reunião")
	}

	if err := p.validate(); err != nil {
		return err
	}

	// items are checked against the meeting as it was before this patch
	items, err := m.reconcileItems(caller, p, at)
	if err != nil {
		return err
	}

	setString(&m.Name, p.Name, strings.TrimSpace)
	setString(&m.Description, p.Description, nil)
	setString(&m.Date, p.Date, nil)
	setString(&m.Time, p.Time, nil)
	setString(&m.Duration, p.Duration, nil)
	setString(&m.Type, p.Type, nil)
	setString(&m.Unit, p.Unit, nil)
	setString(&m.Department, p.Department, nil)
	setString(&m.Indic, p.Indic, nil)
	setString(&m.Plan, p.Plan, nil)
	setString(&m.Recurrence, p.Recurrence, nil)
	if p.Active != nil {
		m.Active = *p.Active
	}
	if p.Members != nil {
		m.Members = normalizeKeys(p.Members)
		if p.Responsible == nil {
			m.Responsible = m.Members[0]
		}
	}
	if p.Responsible != nil {
		m.Responsible = identity.NormalizeKey(*p.Responsible)
	}
	if p.UserDirectory != nil {
		m.UserDirectory = mergeDirectory(m.UserDirectory, p.UserDirectory)
	}

	if p.Highlights != nil {
		m.Highlights = items.highlights
	}
	if p.Pautas != nil {
		m.Pautas = items.pautas
	}
	if p.Tasks != nil {
		m.Tasks = items.tasks
	}
	if p.Notes != nil {
		m.Notes = items.notes
	}
	if p.Attachments != nil {
		m.Attachments = items.attachments
	}

	m.Touch()
	return nil
}

func (p Patch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return shared.NewBadRequestError("O nome da reunião é obrigatório")
	}
	if p.Members != nil && len(normalizeKeys(p.Members)) == 0 {
		return shared.NewBadRequestError("A reunião precisa de ao menos um membro")
	}
	if p.Responsible != nil && identity.NormalizeKey(*p.Responsible) == "" {
		return shared.NewBadRequestError("Informe o responsável da reunião")
	}
	return nil
}

func setString(dst *string, v *string, fn func(string) string) {
	if v == nil {
		return
	}
	if fn != nil {
		*dst = fn(*v)
		return
	}
	*dst = *v
}

// reconciledItems holds the collections a patch replaces
type reconciledItems struct {
	highlights  []Highlight
	pautas      []Pauta
	tasks       []Task
	notes       []Note
	attachments []Attachment
}

func (m *Meeting) reconcileItems(caller identity.ParticipantKey, p Patch, at time.Time) (reconciledItems, error) {
	var out reconciledItems
	var err error
	if p.Highlights != nil {
		if out.highlights, err = reconcile(m, caller, highlightRules, m.Highlights, p.Highlights, at); err != nil {
			return out, err
		}
	}
	if p.Pautas != nil {
		if out.pautas, err = reconcile(m, caller, pautaRules, m.Pautas, p.Pautas, at); err != nil {
			return out, err
		}
	}
	if p.Tasks != nil {
		if out.tasks, err = reconcile(m, caller, taskRules, m.Tasks, p.Tasks, at); err != nil {
			return out, err
		}
	}
	if p.Notes != nil {
		if out.notes, err = reconcile(m, caller, noteRules, m.Notes, p.Notes, at); err != nil {
			return out, err
		}
	}
	if p.Attachments != nil {
		if out.attachments, err = reconcile(m, caller, attachmentRules, m.Attachments, p.Attachments, at); err != nil {
			return out, err
		}
	}
	return out, nil
}

// itemRules describes one work-item collection for reconcile
type itemRules[T any] struct {
	kind    ItemKind
	id      func(T) string
	owner   func(T) string
	checked func(T) bool
	// create builds a new item from client input; author and timestamp are never taken from it
	create func(in T, id, actor string, at time.Time) (T, error)
	// merge copies the mutable fields of in onto stored and returns the actions that implies
	merge func(stored, in T) (T, []Action, error)
}

// reconcile replaces stored with incoming, matching items by id.
// Stored items keep their author, timestamp and immutable fields. Every
// creation, change and removal goes through the policy table, so the bulk
// path grants nothing the per-item endpoints would refuse.
func reconcile[T any](m *Meeting, caller identity.ParticipantKey, r itemRules[T], stored, incoming []T, at time.Time) ([]T, error) {
	actor := m.ActorKey(caller)
	byID := make(map[string]T, len(stored))
	for _, item := range stored {
		byID[r.id(item)] = item
	}

	kept := make(map[string]bool, len(incoming))
	out := make([]T, 0, len(incoming))
	for _, in := range incoming {
		id := strings.TrimSpace(r.id(in))
		if id != "" && kept[id] {
			return nil, shared.NewBadRequestError(fmt.Sprintf("Item duplicado em %s: %s", kindNouns[r.kind], id))
		}

		prev, ok := byID[id]
		if !ok {
			if err := m.Authorize(caller, r.kind, ActionCreate, ""); err != nil {
				return nil, err
			}
			item, err := r.create(in, idOrNew(id), actor, at)
			if err != nil {
				return nil, err
			}
			// a new item arriving checked is a toggle as well
			if r.checked != nil && r.checked(item) {
				if err := m.Authorize(caller, r.kind, ActionToggle, actor); err != nil {
					return nil, err
				}
			}
			kept[r.id(item)] = true
			out = append(out, item)
			continue
		}

		item, actions, err := r.merge(prev, in)
		if err != nil {
			return nil, err
		}
		for _, action := range actions {
			if err := m.Authorize(caller, r.kind, action, r.owner(prev)); err != nil {
				return nil, err
			}
		}
		kept[id] = true
		out = append(out, item)
	}

	for _, item := range stored {
		if !kept[r.id(item)] {
			if err := m.Authorize(caller, r.kind, ActionDelete, r.owner(item)); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func editText(stored *string, in string, actions []Action) ([]Action, error) {
	if strings.TrimSpace(in) == strings.TrimSpace(*stored) {
		return actions, nil
	}
	text, err := requiredText(in, "Texto é obrigatório")
	if err != nil {
		return nil, err
	}
	*stored = text
	return append(actions, ActionEdit), nil
}

func toggle(stored *bool, in bool, actions []Action) []Action {
	if in == *stored {
		return actions
	}
	*stored = in
	return append(actions, ActionToggle)
}

var highlightRules = itemRules[Highlight]{
	kind:    KindHighlight,
	id:      func(h Highlight) string { return h.ID },
	owner:   func(h Highlight) string { return h.Assignee },
	checked: func(h Highlight) bool { return h.Checked },
	create: func(in Highlight, id, actor string, at time.Time) (Highlight, error) {
		text, err := requiredText(in.Text, "Texto é obrigatório")
		if err != nil {
			return Highlight{}, err
		}
		return Highlight{ID: id, Text: text, Checked: in.Checked, Assignee: actor, CreatedAt: at}, nil
	},
	merge: func(stored, in Highlight) (Highlight, []Action, error) {
		actions, err := editText(&stored.Text, in.Text, nil)
		if err != nil {
			return stored, nil, err
		}
		return stored, toggle(&stored.Checked, in.Checked, actions), nil
	},
}

var pautaRules = itemRules[Pauta]{
	kind:    KindPauta,
	id:      func(p Pauta) string { return p.ID },
	owner:   func(p Pauta) string { return p.Assignee },
	checked: func(p Pauta) bool { return p.Checked },
	create: func(in Pauta, id, actor string, at time.Time) (Pauta, error) {
		text, err := requiredText(in.Text, "Texto da pauta é obrigatório")
		if err != nil {
			return Pauta{}, err
		}
		return Pauta{
			ID:          id,
			Text:        text,
			Description: strings.TrimSpace(in.Description),
			Checked:     in.Checked,
			Assignee:    actor,
			CreatedAt:   at,
		}, nil
	},
	merge: func(stored, in Pauta) (Pauta, []Action, error) {
		actions, err := editText(&stored.Text, in.Text, nil)
		if err != nil {
			return stored, nil, err
		}
		if desc := strings.TrimSpace(in.Description); desc != strings.TrimSpace(stored.Description) {
			stored.Description = desc
			if !slices.Contains(actions, ActionEdit) {
				actions = append(actions, ActionEdit)
			}
		}
		return stored, toggle(&stored.Checked, in.Checked, actions), nil
	},
}

var taskRules = itemRules[Task]{
	kind:    KindTask,
	id:      func(t Task) string { return t.ID },
	owner:   func(t Task) string { return t.CreatedBy },
	checked: func(t Task) bool { return t.Checked },
	create: func(in Task, id, actor string, at time.Time) (Task, error) {
		text, err := requiredText(in.Text, "Texto é obrigatório")
		if err != nil {
			return Task{}, err
		}
		return Task{ID: id, Text: text, Checked: in.Checked, CreatedBy: actor, CreatedAt: at}, nil
	},
	merge: func(stored, in Task) (Task, []Action, error) {
		actions, err := editText(&stored.Text, in.Text, nil)
		if err != nil {
			return stored, nil, err
		}
		return stored, toggle(&stored.Checked, in.Checked, actions), nil
	},
}

var noteRules = itemRules[Note]{
	kind:  KindNote,
	id:    func(n Note) string { return n.ID },
	owner: func(n Note) string { return n.CreatedBy },
	create: func(in Note, id, actor string, at time.Time) (Note, error) {
		text, err := requiredText(in.Text, "Texto é obrigatório")
		if err != nil {
			return Note{}, err
		}
		return Note{ID: id, Text: text, CreatedBy: actor, CreatedAt: at}, nil
	},
	merge: func(stored, in Note) (Note, []Action, error) {
		actions, err := editText(&stored.Text, in.Text, nil)
		return stored, actions, err
	},
}

// Attachments are immutable: a known id keeps the stored record as is, and a
// new one must carry its content inline. Object storage keys are only ever
// assigned by the upload path.
var attachmentRules = itemRules[Attachment]{
	kind:  KindAttachment,
	id:    func(a Attachment) string { return a.ID },
	owner: func(a Attachment) string { return a.UploadedBy },
	create: func(in Attachment, id, actor string, at time.Time) (Attachment, error) {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return Attachment{}, shared.NewBadRequestError("Nome do arquivo é obrigatório")
		}
		if in.StorageKey != "" {
			return Attachment{}, shared.NewBadRequestError("Anexo inválido: envie o conteúdo do arquivo")
		}
		if in.DataURL == "" {
			return Attachment{}, shared.NewBadRequestError("Conteúdo do arquivo é obrigatório")
		}
		mimeType, data, err := ParseDataURL(in.DataURL)
		if err != nil {
			return Attachment{}, err
		}
		return Attachment{
			ID:         id,
			Name:       name,
			Size:       int64(len(data)),
			Type:       attachmentType(in.Type, mimeType),
			DataURL:    in.DataURL,
			UploadedBy: actor,
			UploadedAt: at,
		}, nil
	},
	merge: func(stored, _ Attachment) (Attachment, []Action, error) {
		return stored, nil, nil
	},
}

func idOrNew(id string) string {
	if strings.TrimSpace(id) == "" {
		return uuid.NewString()
	}
	return id
}
