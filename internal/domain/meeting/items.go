package meeting

import (
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
)

// MaxAttachmentBytes caps the decoded size of one attachment (30 MiB)
const MaxAttachmentBytes = 30 * 1024 * 1024

// Highlight is a meeting-wide checkable item
type Highlight struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Checked   bool      `json:"checked"`
	Assignee  string    `json:"assignee"`
	CreatedAt time.Time `json:"createdAt"`
}

// Pauta is a personal agenda item owned by its author
type Pauta struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	Description string    `json:"description"`
	Checked     bool      `json:"checked"`
	Assignee    string    `json:"assignee"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task is a checkable action item managed by the responsible
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Checked   bool      `json:"checked"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Note is a free-text record managed by the responsible
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is a file attached to the meeting. Content lives either inline
// as a data URL or in object storage under StorageKey.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	DataURL    string    `json:"dataUrl,omitempty"`
	StorageKey string    `json:"storageKey,omitempty"`
	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// ItemPatch holds the mutable fields of an item; nil means unchanged.
// Checked is a toggle, Text and Description are edits.
type ItemPatch struct {
	Text        *string
	Description *string
	Checked     *bool
}

// IsToggle reports whether the patch changes the checked state
func (p ItemPatch) IsToggle() bool {
	return p.Checked != nil
}

// IsEdit reports whether the patch changes any content field
func (p ItemPatch) IsEdit() bool {
	return p.Text != nil || p.Description != nil
}

// Authorize checks a sub-resource action against DefaultPolicy
func (m *Meeting) Authorize(caller identity.ParticipantKey, kind ItemKind, action Action, owner string) error {
	return DefaultPolicy.Authorize(m, caller, kind, action, owner)
}

func (m *Meeting) authorizePatch(caller identity.ParticipantKey, kind ItemKind, owner string, patch ItemPatch) error {
	if err := m.Authorize(caller, kind, ActionView, owner); err != nil {
		return err
	}
	if patch.IsToggle() {
		if err := m.Authorize(caller, kind, ActionToggle, owner); err != nil {
			return err
		}
	}
	if patch.IsEdit() {
		if err := m.Authorize(caller, kind, ActionEdit, owner); err != nil {
			return err
		}
	}
	return nil
}

func requiredText(raw, message string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", shared.NewBadRequestError(message)
	}
	return text, nil
}

// AddHighlight appends a highlight authored by caller
func (m *Meeting) AddHighlight(caller identity.ParticipantKey, text string, at time.Time) (Highlight, error) {
	if err := m.Authorize(caller, KindHighlight, ActionCreate, ""); err != nil {
		return Highlight{}, err
	}
	text, err := requiredText(text, "Texto é obrigatório")
	if err != nil {
		return Highlight{}, err
	}

	h := Highlight{ID: uuid.NewString(), Text: text, Assignee: m.ActorKey(caller), CreatedAt: at}
	m.Highlights = append(m.Highlights, h)
	m.Touch()
	return h, nil
}

// UpdateHighlight applies patch to highlight id
func (m *Meeting) UpdateHighlight(caller identity.ParticipantKey, id string, patch ItemPatch) (Highlight, error) {
	if err := m.Authorize(caller, KindHighlight, ActionView, ""); err != nil {
		return Highlight{}, err
	}
	idx := indexByID(m.Highlights, id, func(h Highlight) string { return h.ID })
	if idx < 0 {
		return Highlight{}, shared.NewNotFoundError("Destaque não encontrado")
	}
	h := &m.Highlights[idx]
	if err := m.authorizePatch(caller, KindHighlight, h.Assignee, patch); err != nil {
		return Highlight{}, err
	}
	if patch.Text != nil {
		text, err := requiredText(*patch.Text, "Texto é obrigatório")
		if err != nil {
			return Highlight{}, err
		}
		h.Text = text
	}
	if patch.Checked != nil {
		h.Checked = *patch.Checked
	}
	m.Touch()
	return *h, nil
}

// RemoveHighlight deletes highlight id
func (m *Meeting) RemoveHighlight(caller identity.ParticipantKey, id string) error {
	if err := m.Authorize(caller, KindHighlight, ActionView, ""); err != nil {
		return err
	}
	idx := indexByID(m.Highlights, id, func(h Highlight) string { return h.ID })
	if idx < 0 {
		return shared.NewNotFoundError("Destaque não encontrado")
	}
	if err := m.Authorize(caller, KindHighlight, ActionDelete, m.Highlights[idx].Assignee); err != nil {
		return err
	}
	m.Highlights = removeAt(m.Highlights, idx)
	m.Touch()
	return nil
}

// AddPauta appends an agenda item owned by caller
func (m *Meeting) AddPauta(caller identity.ParticipantKey, text, description string, at time.Time) (Pauta, error) {
	if err := m.Authorize(caller, KindPauta, ActionCreate, ""); err != nil {
		return Pauta{}, err
	}
	text, err := requiredText(text, "Texto da pauta é obrigatório")
	if err != nil {
		return Pauta{}, err
	}

	p := Pauta{
		ID:          uuid.NewString(),
		Text:        text,
		Description: strings.TrimSpace(description),
		Assignee:    m.ActorKey(caller),
		CreatedAt:   at,
	}
	m.Pautas = append(m.Pautas, p)
	m.Touch()
	return p, nil
}

// UpdatePauta applies patch to agenda item id; only its author may change it
func (m *Meeting) UpdatePauta(caller identity.ParticipantKey, id string, patch ItemPatch) (Pauta, error) {
	if err := m.Authorize(caller, KindPauta, ActionView, ""); err != nil {
		return Pauta{}, err
	}
	idx := indexByID(m.Pautas, id, func(p Pauta) string { return p.ID })
	if idx < 0 {
		return Pauta{}, shared.NewNotFoundError("Pauta não encontrada")
	}
	p := &m.Pautas[idx]
	if err := m.authorizePatch(caller, KindPauta, p.Assignee, patch); err != nil {
		return Pauta{}, err
	}
	if patch.Text != nil {
		text, err := requiredText(*patch.Text, "Texto da pauta é obrigatório")
		if err != nil {
			return Pauta{}, err
		}
		p.Text = text
	}
	if patch.Description != nil {
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Checked != nil {
		p.Checked = *patch.Checked
	}
	m.Touch()
	return *p, nil
}

// RemovePauta deletes agenda item id; only its author may remove it
func (m *Meeting) RemovePauta(caller identity.ParticipantKey, id string) error {
	if err := m.Authorize(caller, KindPauta, ActionView, ""); err != nil {
		return err
	}
	idx := indexByID(m.Pautas, id, func(p Pauta) string { return p.ID })
	if idx < 0 {
		return shared.NewNotFoundError("Pauta não encontrada")
	}
	if err := m.Authorize(caller, KindPauta, ActionDelete, m.Pautas[idx].Assignee); err != nil {
		return err
	}
	m.Pautas = removeAt(m.Pautas, idx)
	m.Touch()
	return nil
}

// AddTask appends a task
func (m *Meeting) AddTask(caller identity.ParticipantKey, text string, at time.Time) (Task, error) {
	if err := m.Authorize(caller, KindTask, ActionCreate, ""); err != nil {
		return Task{}, err
	}
	text, err := requiredText(text, "Texto é obrigatório")
	if err != nil {
		return Task{}, err
	}

	t := Task{ID: uuid.NewString(), Text: text, CreatedBy: m.ActorKey(caller), CreatedAt: at}
	m.Tasks = append(m.Tasks, t)
	m.Touch()
	return t, nil
}

// UpdateTask applies patch to task id
func (m *Meeting) UpdateTask(caller identity.ParticipantKey, id string, patch ItemPatch) (Task, error) {
	if err := m.Authorize(caller, KindTask, ActionView, ""); err != nil {
		return Task{}, err
	}
	idx := indexByID(m.Tasks, id, func(t Task) string { return t.ID })
	if idx < 0 {
		return Task{}, shared.NewNotFoundError("Tarefa não encontrada")
	}
	t := &m.Tasks[idx]
	if err := m.authorizePatch(caller, KindTask, t.CreatedBy, patch); err != nil {
		return Task{}, err
	}
	if patch.Text != nil {
		text, err := requiredText(*patch.Text, "Texto é obrigatório")
		if err != nil {
			return Task{}, err
		}
		t.Text = text
	}
	if patch.Checked != nil {
		t.Checked = *patch.Checked
	}
	m.Touch()
	return *t, nil
}

// RemoveTask deletes task id
func (m *Meeting) RemoveTask(caller identity.ParticipantKey, id string) error {
	if err := m.Authorize(caller, KindTask, ActionView, ""); err != nil {
		return err
	}
	idx := indexByID(m.Tasks, id, func(t Task) string { return t.ID })
	if idx < 0 {
		return shared.NewNotFoundError("Tarefa não encontrada")
	}
	if err := m.Authorize(caller, KindTask, ActionDelete, m.Tasks[idx].CreatedBy); err != nil {
		return err
	}
	m.Tasks = removeAt(m.Tasks, idx)
	m.Touch()
	return nil
}

// AddNote appends a note
func (m *Meeting) AddNote(caller identity.ParticipantKey, text string, at time.Time) (Note, error) {
	if err := m.Authorize(caller, KindNote, ActionCreate, ""); err != nil {
		return Note{}, err
	}
	text, err := requiredText(text, "Texto é obrigatório")
	if err != nil {
		return Note{}, err
	}

	n := Note{ID: uuid.NewString(), Text: text, CreatedBy: m.ActorKey(caller), CreatedAt: at}
	m.Notes = append(m.Notes, n)
	m.Touch()
	return n, nil
}

// UpdateNote applies patch to note id. Notes have no checked state.
func (m *Meeting) UpdateNote(caller identity.ParticipantKey, id string, patch ItemPatch) (Note, error) {
	if err := m.Authorize(caller, KindNote, ActionView, ""); err != nil {
		return Note{}, err
	}
	idx := indexByID(m.Notes, id, func(n Note) string { return n.ID })
	if idx < 0 {
		return Note{}, shared.NewNotFoundError("Nota não encontrada")
	}
	n := &m.Notes[idx]
	if err := m.authorizePatch(caller, KindNote, n.CreatedBy, patch); err != nil {
		return Note{}, err
	}
	if patch.Text != nil {
		text, err := requiredText(*patch.Text, "Texto é obrigatório")
		if err != nil {
			return Note{}, err
		}
		n.Text = text
	}
	m.Touch()
	return *n, nil
}

// RemoveNote deletes note id
func (m *Meeting) RemoveNote(caller identity.ParticipantKey, id string) error {
	if err := m.Authorize(caller, KindNote, ActionView, ""); err != nil {
		return err
	}
	idx := indexByID(m.Notes, id, func(n Note) string { return n.ID })
	if idx < 0 {
		return shared.NewNotFoundError("Nota não encontrada")
	}
	if err := m.Authorize(caller, KindNote, ActionDelete, m.Notes[idx].CreatedBy); err != nil {
		return err
	}
	m.Notes = removeAt(m.Notes, idx)
	m.Touch()
	return nil
}

// AttachmentInput is the payload of a new attachment.
// Either DataURL or StorageKey carries the content. An empty ID is generated.
// Size is only used for offloaded content; inline content is measured.
type AttachmentInput struct {
	ID         string
	Name       string
	Type       string
	Size       int64
	DataURL    string
	StorageKey string
}

// AttachmentKeyPrefix is the object-storage prefix of the attachments of meeting id
func AttachmentKeyPrefix(id uuid.UUID) string {
	return "anexos/" + id.String() + "/"
}

// AddAttachment appends an attachment uploaded by caller
func (m *Meeting) AddAttachment(caller identity.ParticipantKey, in AttachmentInput, at time.Time) (Attachment, error) {
	if err := m.Authorize(caller, KindAttachment, ActionCreate, ""); err != nil {
		return Attachment{}, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Attachment{}, shared.NewBadRequestError("Nome do arquivo é obrigatório")
	}

	size := in.Size
	var detected string
	switch {
	case in.DataURL != "":
		mimeType, data, err := ParseDataURL(in.DataURL)
		if err != nil {
			return Attachment{}, err
		}
		size, detected = int64(len(data)), mimeType
	case in.StorageKey != "":
		if !strings.HasPrefix(in.StorageKey, AttachmentKeyPrefix(m.ID)) {
			return Attachment{}, shared.NewBadRequestError("Anexo inválido: chave de armazenamento fora desta reunião")
		}
	default:
		return Attachment{}, shared.NewBadRequestError("Conteúdo do arquivo é obrigatório")
	}
	if size > MaxAttachmentBytes {
		return Attachment{}, errAttachmentTooLarge(name)
	}

	a := Attachment{
		ID:         idOrNew(in.ID),
		Name:       name,
		Size:       size,
		Type:       attachmentType(in.Type, detected),
		DataURL:    in.DataURL,
		StorageKey: in.StorageKey,
		UploadedBy: m.ActorKey(caller),
		UploadedAt: at,
	}
	m.Attachments = append(m.Attachments, a)
	m.Touch()
	return a, nil
}

func attachmentType(declared, detected string) string {
	if t := strings.TrimSpace(declared); t != "" {
		return t
	}
	if detected != "" {
		return detected
	}
	return "application/octet-stream"
}

// FindAttachment returns attachment id after checking the caller may view it
func (m *Meeting) FindAttachment(caller identity.ParticipantKey, id string) (Attachment, error) {
	if err := m.Authorize(caller, KindAttachment, ActionView, ""); err != nil {
		return Attachment{}, err
	}
	idx := indexByID(m.Attachments, id, func(a Attachment) string { return a.ID })
	if idx < 0 {
		return Attachment{}, shared.NewNotFoundError("Anexo não encontrado")
	}
	return m.Attachments[idx], nil
}

// RemoveAttachment deletes attachment id and returns the removed record
func (m *Meeting) RemoveAttachment(caller identity.ParticipantKey, id string) (Attachment, error) {
	a, err := m.FindAttachment(caller, id)
	if err != nil {
		return Attachment{}, err
	}
	if err := m.Authorize(caller, KindAttachment, ActionDelete, a.UploadedBy); err != nil {
		return Attachment{}, err
	}
	idx := indexByID(m.Attachments, id, func(a Attachment) string { return a.ID })
	m.Attachments = removeAt(m.Attachments, idx)
	m.Touch()
	return a, nil
}

// DroppedAttachments returns the attachments of before that after no longer holds
func DroppedAttachments(before, after []Attachment) []Attachment {
	kept := make(map[string]bool, len(after))
	for _, a := range after {
		kept[a.ID] = true
	}
	var out []Attachment
	for _, a := range before {
		if !kept[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// ParseDataURL decodes a base64 data URL and enforces MaxAttachmentBytes
func ParseDataURL(dataURL string) (mimeType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", nil, shared.NewBadRequestError("Anexo inválido: esperado data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, shared.NewBadRequestError("Anexo inválido: esperado conteúdo base64")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxAttachmentBytes+2 {
		return "", nil, errAttachmentTooLarge("")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, shared.NewBadRequestError("Anexo inválido: base64 malformado")
	}
	if len(data) > MaxAttachmentBytes {
		return "", nil, errAttachmentTooLarge("")
	}
	return strings.TrimSuffix(meta, ";base64"), data, nil
}

func errAttachmentTooLarge(name string) error {
	if name == "" {
		return shared.NewBadRequestError("Arquivo excede o máximo de 30MB")
	}
	return shared.NewBadRequestError(`Arquivo "` + name + `" excede o máximo de 30MB`)
}

func indexByID[T any](items []T, id string, idOf func(T) string) int {
	for i, item := range items {
		if idOf(item) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, idx int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:idx]...)
	return append(out, items[idx+1:]...)
}
