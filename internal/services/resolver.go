package services

import (
	"strings"

	"menucraft/internal/repositories"

	"github.com/google/uuid"
)

// NormalizeName folds a display name to its natural-key form: trimmed,
// lowercased, internal whitespace collapsed to single spaces. "Drinks" and
// "  drinks " resolve identically.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NameIndex resolves natural keys against an in-memory snapshot taken at the
// start of an import run. Rows created mid-run are folded in with Add so later
// rows of the same batch see them.
type NameIndex struct {
	ids map[string]uuid.UUID
}

func NewNameIndex(refs []repositories.NameRef) *NameIndex {
	idx := &NameIndex{ids: make(map[string]uuid.UUID, len(refs))}
	for _, ref := range refs {
		idx.ids[NormalizeName(ref.Name)] = ref.ID
	}
	return idx
}

// Resolve returns the id for a name, and whether the name is known at all.
// There is no in-between state: an unknown name stays unknown until Add.
func (i *NameIndex) Resolve(name string) (uuid.UUID, bool) {
	id, ok := i.ids[NormalizeName(name)]
	return id, ok
}

func (i *NameIndex) Add(name string, id uuid.UUID) {
	i.ids[NormalizeName(name)] = id
}

type childKey struct {
	parentID uuid.UUID
	name     string
}

// ChildIndex resolves group-scoped children, keyed by (parent id, name).
type ChildIndex struct {
	ids map[childKey]uuid.UUID
}

func NewChildIndex(refs []repositories.ChildNameRef) *ChildIndex {
	idx := &ChildIndex{ids: make(map[childKey]uuid.UUID, len(refs))}
	for _, ref := range refs {
		idx.ids[childKey{ref.ParentID, NormalizeName(ref.Name)}] = ref.ID
	}
	return idx
}

func (i *ChildIndex) Resolve(parentID uuid.UUID, name string) (uuid.UUID, bool) {
	id, ok := i.ids[childKey{parentID, NormalizeName(name)}]
	return id, ok
}

func (i *ChildIndex) Add(parentID uuid.UUID, name string, id uuid.UUID) {
	i.ids[childKey{parentID, NormalizeName(name)}] = id
}
