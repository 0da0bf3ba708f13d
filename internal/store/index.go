package store

import "github.com/h0rv/taskdeck/internal/domain"

// UnknownUser is shown for assignees missing from the user index.
const UnknownUser = "Unknown user"

// UserIndex maps user IDs to display names. It is a read-only snapshot:
// build a new one with NewUserIndex to pick up changes.
type UserIndex struct {
	names map[string]string
}

// NewUserIndex builds an index from a user list. Users without a name fall
// back to their email.
func NewUserIndex(users []domain.User) UserIndex {
	names := make(map[string]string, len(users))
	for _, u := range users {
		name := u.Name
		if name == "" {
			name = u.Email
		}
		names[u.ID] = name
	}
	return UserIndex{names: names}
}

// Name returns the display name for id, or UnknownUser.
func (ix UserIndex) Name(id string) string {
	if name, ok := ix.names[id]; ok && name != "" {
		return name
	}
	return UnknownUser
}

// Lookup returns the display name for id and whether it is known.
func (ix UserIndex) Lookup(id string) (string, bool) {
	name, ok := ix.names[id]
	return name, ok
}

// Len returns the number of indexed users.
func (ix UserIndex) Len() int { return len(ix.names) }

// stickerEntry is one indexed sticker definition.
type stickerEntry struct {
	title  string
	states map[string]string // state ID -> label
}

// StickerIndex maps sticker IDs to their title and state labels. It is a
// read-only snapshot: build a new one with NewStickerIndex to pick up changes.
type StickerIndex struct {
	stickers map[string]stickerEntry
}

// NewStickerIndex builds an index from sticker definitions.
func NewStickerIndex(stickers []domain.Sticker) StickerIndex {
	ix := make(map[string]stickerEntry, len(stickers))
	for _, s := range stickers {
		states := make(map[string]string, len(s.States))
		for _, st := range s.States {
			states[st.ID] = st.Label
		}
		ix[s.ID] = stickerEntry{title: s.Title, states: states}
	}
	return StickerIndex{stickers: ix}
}

// Title returns the sticker title, falling back to the sticker ID.
func (ix StickerIndex) Title(id string) string {
	if e, ok := ix.stickers[id]; ok && e.title != "" {
		return e.title
	}
	return id
}

// Resolve turns a raw task sticker value into a typed one: a text value
// naming one of the sticker's states becomes a state reference.
func (ix StickerIndex) Resolve(id string, v domain.StickerValue) domain.StickerValue {
	if v.Kind != domain.StickerText {
		return v
	}
	if e, ok := ix.stickers[id]; ok {
		if _, isState := e.states[v.Text]; isState {
			return domain.StateValue(v.Text)
		}
	}
	return v
}

// Label renders a task sticker value for display. State references are shown
// by their label; unknown states and other values are shown raw.
func (ix StickerIndex) Label(id string, v domain.StickerValue) string {
	v = ix.Resolve(id, v)
	if v.Kind == domain.StickerStateRef {
		if label := ix.stickers[id].states[v.Text]; label != "" {
			return label
		}
	}
	return v.String()
}

// Len returns the number of indexed stickers.
func (ix StickerIndex) Len() int { return len(ix.stickers) }
