package meeting

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/meeting"
	"github.com/orbita/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ObjectStorage is the object store attachments are offloaded to
type ObjectStorage interface {
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error
	GenerateDownloadURL(ctx context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error)
	DeleteObject(ctx context.Context, storageKey string) error
}

// ItemService manages the sub-resources of a meeting
type ItemService struct {
	core
	downloadTTL time.Duration
}

// NewItemService creates a new ItemService.
// Without Deps.Storage, attachments stay inline as data URLs.
func NewItemService(d Deps, downloadTTL time.Duration) *ItemService {
	if downloadTTL <= 0 {
		downloadTTL = 15 * time.Minute
	}
	return &ItemService{core: newCore(d), downloadTTL: downloadTTL}
}

// List returns one item collection of the meeting
func (s *ItemService) List(ctx context.Context, id uuid.UUID, callerRaw string, kind meeting.ItemKind) (any, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Authorize(s.Caller(callerRaw), kind, meeting.ActionView, ""); err != nil {
		return nil, err
	}
	switch kind {
	case meeting.KindHighlight:
		return m.Highlights, nil
	case meeting.KindPauta:
		return m.Pautas, nil
	case meeting.KindTask:
		return m.Tasks, nil
	case meeting.KindNote:
		return m.Notes, nil
	case meeting.KindAttachment:
		return m.Attachments, nil
	}
	return nil, errUnknownKind(kind)
}

// Create adds a highlight, pauta, task or note
func (s *ItemService) Create(ctx context.Context, id uuid.UUID, callerRaw string, kind meeting.ItemKind, req CreateItemRequest) (any, error) {
	caller := s.Caller(callerRaw)
	var created any
	_, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		var err error
		at := s.now()
		switch kind {
		case meeting.KindHighlight:
			created, err = m.AddHighlight(caller, req.Text, at)
		case meeting.KindPauta:
			created, err = m.AddPauta(caller, req.Text, req.Description, at)
		case meeting.KindTask:
			created, err = m.AddTask(caller, req.Text, at)
		case meeting.KindNote:
			created, err = m.AddNote(caller, req.Text, at)
		default:
			err = errUnknownKind(kind)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update patches a highlight, pauta, task or note
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, callerRaw string, kind meeting.ItemKind, itemID string, req UpdateItemRequest) (any, error) {
	caller := s.Caller(callerRaw)
	patch := req.patch()
	var updated any
	_, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		var err error
		switch kind {
		case meeting.KindHighlight:
			updated, err = m.UpdateHighlight(caller, itemID, patch)
		case meeting.KindPauta:
			updated, err = m.UpdatePauta(caller, itemID, patch)
		case meeting.KindTask:
			updated, err = m.UpdateTask(caller, itemID, patch)
		case meeting.KindNote:
			updated, err = m.UpdateNote(caller, itemID, patch)
		default:
			err = errUnknownKind(kind)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove deletes an item. Offloaded attachment content is deleted after the commit.
func (s *ItemService) Remove(ctx context.Context, id uuid.UUID, callerRaw string, kind meeting.ItemKind, itemID string) error {
	caller := s.Caller(callerRaw)
	var removed meeting.Attachment
	_, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		switch kind {
		case meeting.KindHighlight:
			return m.RemoveHighlight(caller, itemID)
		case meeting.KindPauta:
			return m.RemovePauta(caller, itemID)
		case meeting.KindTask:
			return m.RemoveTask(caller, itemID)
		case meeting.KindNote:
			return m.RemoveNote(caller, itemID)
		case meeting.KindAttachment:
			var err error
			removed, err = m.RemoveAttachment(caller, itemID)
			return err
		}
		return errUnknownKind(kind)
	})
	if err != nil {
		return err
	}
	s.deleteObjects(ctx, id, []meeting.Attachment{removed})
	return nil
}

// AddAttachment stores a data URL upload.
// With object storage the content is uploaded and only its key is kept.
func (s *ItemService) AddAttachment(ctx context.Context, id uuid.UUID, callerRaw string, req CreateAttachmentRequest) (meeting.Attachment, error) {
	caller := s.Caller(callerRaw)

	mimeType, data, err := meeting.ParseDataURL(req.Data)
	if err != nil {
		return meeting.Attachment{}, err
	}
	in := meeting.AttachmentInput{
		ID:   uuid.NewString(),
		Name: req.Name,
		Type: strings.TrimSpace(req.Type),
		Size: int64(len(data)),
	}
	if in.Type == "" {
		in.Type = mimeType
	}

	if s.storage == nil {
		in.DataURL = req.Data
		return s.addAttachment(ctx, id, caller, in)
	}

	// fail fast before uploading anything
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return meeting.Attachment{}, err
	}
	if err := current.Authorize(caller, meeting.KindAttachment, meeting.ActionCreate, ""); err != nil {
		return meeting.Attachment{}, err
	}

	in.StorageKey = AttachmentKey(id, in.ID, req.Name)
	if err := s.storage.Upload(ctx, in.StorageKey, data, in.Type); err != nil {
		return meeting.Attachment{}, fmt.Errorf("failed to upload attachment: %w", err)
	}

	a, err := s.addAttachment(ctx, id, caller, in)
	if err != nil {
		if delErr := s.storage.DeleteObject(context.WithoutCancel(ctx), in.StorageKey); delErr != nil {
			s.logger.Warn("Failed to clean up orphan attachment object",
				zap.String("storage_key", in.StorageKey),
				zap.Error(delErr))
		}
		return meeting.Attachment{}, err
	}
	return a, nil
}

func (s *ItemService) addAttachment(ctx context.Context, id uuid.UUID, caller identity.ParticipantKey, in meeting.AttachmentInput) (meeting.Attachment, error) {
	var created meeting.Attachment
	_, err := s.mutate(ctx, id, func(m *meeting.Meeting) error {
		var err error
		created, err = m.AddAttachment(caller, in, s.now())
		return err
	})
	return created, err
}

// Download resolves where the attachment content can be fetched
func (s *ItemService) Download(ctx context.Context, id uuid.UUID, callerRaw string, itemID string) (*AttachmentDownload, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a, err := m.FindAttachment(s.Caller(callerRaw), itemID)
	if err != nil {
		return nil, err
	}

	out := &AttachmentDownload{ID: a.ID, Name: a.Name, Type: a.Type, DataURL: a.DataURL}
	if a.StorageKey == "" {
		return out, nil
	}
	if s.storage == nil {
		return nil, shared.NewDomainError(shared.CodeInternal, "Armazenamento de anexos indisponível")
	}
	url, expiresAt, err := s.storage.GenerateDownloadURL(ctx, a.StorageKey, s.downloadTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate download url: %w", err)
	}
	out.URL = url
	out.ExpiresAt = &expiresAt
	return out, nil
}

// AttachmentKey is the object key of an offloaded attachment
func AttachmentKey(meetingID uuid.UUID, attachmentID, name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "arquivo"
	}
	return meeting.AttachmentKeyPrefix(meetingID) + path.Join(attachmentID, name)
}

func errUnknownKind(kind meeting.ItemKind) error {
	return shared.NewBadRequestError(fmt.Sprintf("Tipo de item desconhecido: %s", kind))
}
