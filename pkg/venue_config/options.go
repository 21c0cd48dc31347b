package venue_config

import (
	"slices"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Option is implemented by the venue-owned option types so the list editing helpers work on all of them.
type Option[T any] interface {
	OptionId() string
	Active() bool
	WithActive(active bool) T
}

func (l LocationOption) OptionId() string { return l.Id }
func (l LocationOption) Active() bool     { return l.IsActive }
func (l LocationOption) WithActive(active bool) LocationOption {
	l.IsActive = active
	return l
}

func (c CategoryOption) OptionId() string { return c.Id }
func (c CategoryOption) Active() bool     { return c.IsActive }
func (c CategoryOption) WithActive(active bool) CategoryOption {
	c.IsActive = active
	return c
}

func (p PriorityOption) OptionId() string { return p.Id }
func (p PriorityOption) Active() bool     { return p.IsActive }
func (p PriorityOption) WithActive(active bool) PriorityOption {
	p.IsActive = active
	return p
}

// ToggleActive returns a copy of list with IsActive flipped on the entry with the given id.
// An unknown id leaves the copy unchanged.
func ToggleActive[T Option[T]](list []T, id string) []T {
	toggled := slices.Clone(list)
	for i, option := range toggled {
		if option.OptionId() == id {
			toggled[i] = option.WithActive(!option.Active())
			break
		}
	}
	return toggled
}

// Remove returns a copy of list without the entry with the given id and whether such an entry existed.
func Remove[T Option[T]](list []T, id string) ([]T, bool) {
	idx := slices.IndexFunc(list, func(option T) bool { return option.OptionId() == id })
	if idx < 0 {
		return slices.Clone(list), false
	}
	remaining := make([]T, 0, len(list)-1)
	remaining = append(remaining, list[:idx]...)
	return append(remaining, list[idx+1:]...), true
}

func containsId[T Option[T]](list []T, id string) bool {
	return slices.ContainsFunc(list, func(option T) bool { return option.OptionId() == id })
}

// Slugify derives an option id from its display name, e.g. "Main Hall" becomes "main-hall".
// Names without any letter or digit get a random id.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteRune('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return uuid.NewString()[:8]
	}
	return slug
}
