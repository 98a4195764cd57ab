package meeting

import (
	"fmt"

	"github.com/orbita/backend/internal/domain/identity"
	"github.com/orbita/backend/internal/domain/shared"
)

// ItemKind identifies a sub-resource collection of a meeting
type ItemKind string

const (
	KindHighlight  ItemKind = "highlight"
	KindPauta      ItemKind = "pauta"
	KindTask       ItemKind = "task"
	KindNote       ItemKind = "note"
	KindAttachment ItemKind = "attachment"
)

// ItemKinds lists every sub-resource kind
var ItemKinds = []ItemKind{KindHighlight, KindPauta, KindTask, KindNote, KindAttachment}

// IsValid checks if the kind is known
func (k ItemKind) IsValid() bool {
	switch k {
	case KindHighlight, KindPauta, KindTask, KindNote, KindAttachment:
		return true
	}
	return false
}

// Action is an operation on a sub-resource
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionToggle Action = "toggle"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Requirement is a single guard that must hold for an action
type Requirement uint8

const (
	RequireMember Requirement = iota + 1
	RequireResponsible
	RequireOwner
	RequireInProgress
)

// String returns the requirement name
func (r Requirement) String() string {
	switch r {
	case RequireMember:
		return "member"
	case RequireResponsible:
		return "responsible"
	case RequireOwner:
		return "owner"
	case RequireInProgress:
		return "in_progress"
	}
	return "unknown"
}

// Forbidden reasons
const (
	ReasonNotMember      = "not_member"
	ReasonNotResponsible = "not_responsible"
	ReasonNotOwner       = "not_owner"
	ReasonNotInProgress  = "not_in_progress"
	ReasonMeetingClosed  = "meeting_closed"
)

// Rule keys the policy table
type Rule struct {
	Kind   ItemKind
	Action Action
}

// Policy maps each (kind, action) to the requirements evaluated in order.
// A pair missing from the table is an unsupported operation.
type Policy map[Rule][]Requirement

// DefaultPolicy is the sub-resource authorization table.
// canAccessMeeting is checked before any entry.
var DefaultPolicy = Policy{
	{KindHighlight, ActionView}:   {},
	{KindHighlight, ActionCreate}: {RequireMember},
	{KindHighlight, ActionToggle}: {RequireInProgress, RequireMember},
	{KindHighlight, ActionEdit}:   {RequireResponsible},
	{KindHighlight, ActionDelete}: {RequireResponsible},

	{KindPauta, ActionView}:   {},
	{KindPauta, ActionCreate}: {RequireMember},
	{KindPauta, ActionToggle}: {RequireInProgress, RequireOwner},
	{KindPauta, ActionEdit}:   {RequireOwner},
	{KindPauta, ActionDelete}: {RequireOwner},

	{KindTask, ActionView}:   {},
	{KindTask, ActionCreate}: {RequireResponsible},
	{KindTask, ActionToggle}: {RequireInProgress, RequireResponsible},
	{KindTask, ActionEdit}:   {RequireResponsible},
	{KindTask, ActionDelete}: {RequireResponsible},

	{KindNote, ActionView}:   {},
	{KindNote, ActionCreate}: {RequireResponsible},
	{KindNote, ActionEdit}:   {RequireResponsible},
	{KindNote, ActionDelete}: {RequireResponsible},

	{KindAttachment, ActionView}:   {},
	{KindAttachment, ActionCreate}: {RequireResponsible},
	{KindAttachment, ActionDelete}: {RequireResponsible},
}

// Requirements returns the requirements of a rule and whether the rule exists
func (p Policy) Requirements(kind ItemKind, action Action) ([]Requirement, bool) {
	reqs, ok := p[Rule{Kind: kind, Action: action}]
	return reqs, ok
}

// Authorize evaluates the rule for caller against m.
// owner is the item's author and only matters for RequireOwner.
func (p Policy) Authorize(m *Meeting, caller identity.ParticipantKey, kind ItemKind, action Action, owner string) error {
	if !m.CanAccess(caller) {
		return shared.NewForbiddenError(ReasonNotMember, accessMessage(kind, action))
	}

	reqs, ok := p.Requirements(kind, action)
	if !ok {
		return shared.NewBadRequestError(fmt.Sprintf("Operação %q não suportada para %s", action, kind))
	}

	for _, req := range reqs {
		if err := checkRequirement(m, caller, kind, action, owner, req); err != nil {
			return err
		}
	}
	return nil
}

func checkRequirement(m *Meeting, caller identity.ParticipantKey, kind ItemKind, action Action, owner string, req Requirement) error {
	switch req {
	case RequireMember:
		if !caller.IsAnonymous() && !m.HasMember(caller.String()) {
			return shared.NewForbiddenError(ReasonNotMember, accessMessage(kind, action))
		}
	case RequireResponsible:
		if !m.IsResponsible(caller) {
			return shared.NewForbiddenError(ReasonNotResponsible, "Somente o responsável pode gerenciar itens sensíveis da reunião")
		}
	case RequireOwner:
		if !m.IsOwner(owner, caller) {
			if action == ActionDelete {
				return shared.NewForbiddenError(ReasonNotOwner, "Somente o autor pode remover esta pauta")
			}
			return shared.NewForbiddenError(ReasonNotOwner, "Somente o autor pode editar ou concluir esta pauta")
		}
	case RequireInProgress:
		if m.IsCompleted() {
			return shared.NewForbiddenError(ReasonNotInProgress, "Reunião já finalizada: itens não podem mais ser concluídos")
		}
		if m.Status != StatusInProgress {
			return shared.NewForbiddenError(ReasonNotInProgress, "Inicie a reunião para concluir itens")
		}
	}
	return nil
}

var actionVerbs = map[Action]string{
	ActionView:   "visualizar",
	ActionCreate: "criar",
	ActionToggle: "concluir",
	ActionEdit:   "editar",
	ActionDelete: "remover",
}

var kindNouns = map[ItemKind]string{
	KindHighlight:  "destaque",
	KindPauta:      "pauta",
	KindTask:       "tarefa",
	KindNote:       "nota",
	KindAttachment: "anexo",
}

func accessMessage(kind ItemKind, action Action) string {
	if action == ActionView {
		return fmt.Sprintf("Sem permissão para visualizar %ss desta reunião", kindNouns[kind])
	}
	return fmt.Sprintf("Sem permissão para %s %s nesta reunião", actionVerbs[action], kindNouns[kind])
}
