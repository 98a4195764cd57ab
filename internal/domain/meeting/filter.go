package meeting

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/orbita/backend/internal/domain/identity"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StatusAll disables the status filter
const StatusAll = "all"

// Filter selects meetings for listing.
// An empty Status selects only not_started meetings; StatusAll selects every status.
// Member, Responsible and Caller are resolved participant keys.
type Filter struct {
	Status      string
	Type        string
	Member      string
	Responsible string
	Search      string
	Caller      identity.ParticipantKey
}

// Matches reports whether m passes every filter criterion
func (f Filter) Matches(m *Meeting) bool {
	if !m.CanAccess(f.Caller) {
		return false
	}

	switch f.Status {
	case "":
		if m.Status != StatusNotStarted {
			return false
		}
	case StatusAll:
	default:
		if string(m.Status) != f.Status {
			return false
		}
	}

	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.Member != "" && !m.HasMember(f.Member) {
		return false
	}
	if f.Responsible != "" && identity.NormalizeKey(m.Responsible) != identity.NormalizeKey(f.Responsible) {
		return false
	}
	if term := Fold(f.Search); term != "" {
		if !strings.Contains(Fold(m.Name), term) && !strings.Contains(Fold(m.Description), term) {
			return false
		}
	}
	return true
}

// Apply filters and sorts meetings by schedule
func (f Filter) Apply(meetings []*Meeting) []*Meeting {
	out := make([]*Meeting, 0, len(meetings))
	for _, m := range meetings {
		if f.Matches(m) {
			out = append(out, m)
		}
	}
	SortBySchedule(out)
	return out
}

// SortBySchedule orders meetings ascending by (date, time)
func SortBySchedule(meetings []*Meeting) {
	slices.SortStableFunc(meetings, func(a, b *Meeting) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})
}

// Fold lowercases s and strips diacritics for accent-insensitive search
func Fold(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}
