// Package checklist implements the editing session for a trip's packing list.
//
// A Session owns the confirmed list and two input buffers: the draft text of
// the next item and, while an item is being edited, its edit buffer. Every
// mutation builds a new list and hands the whole list to SaveFunc; the
// session adopts it (and calls OnUpdate) only after the save succeeded.
// Input buffers are not rolled back when a save fails.
package checklist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/domain"
)

// SaveFunc persists the complete list, replacing whatever was stored before.
type SaveFunc func(ctx context.Context, items []domain.ChecklistItem) error

// Config wires a Session to its collaborators. Only Save is required.
type Config struct {
	Save SaveFunc
	// OnUpdate receives the new list after every successful save.
	OnUpdate func(items []domain.ChecklistItem)
	Logger   *slog.Logger
	// Now and NewID default to time.Now and UUIDv7.
	Now   func() time.Time
	NewID func() string
}

// Session is not safe for concurrent use; it belongs to one caller.
type Session struct {
	cfg   Config
	items []domain.ChecklistItem

	draft     string
	editingID string
	editText  string
}

// NewSession starts a session in the viewing state over initial.
func NewSession(initial []domain.ChecklistItem, cfg Config) *Session {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewID == nil {
		cfg.NewID = newItemID
	}
	return &Session{cfg: cfg, items: clone(initial)}
}

// Items returns a copy of the confirmed list.
func (s *Session) Items() []domain.ChecklistItem { return clone(s.items) }

// Draft returns the pending new-item text.
func (s *Session) Draft() string { return s.draft }

// Editing returns the id of the item being edited, if any.
func (s *Session) Editing() (string, bool) { return s.editingID, s.editingID != "" }

// EditText returns the edit buffer.
func (s *Session) EditText() string { return s.editText }

// SetDraft replaces the pending new-item text.
func (s *Session) SetDraft(text string) { s.draft = text }

// SetEditText replaces the edit buffer.
func (s *Session) SetEditText(text string) { s.editText = text }

// Add appends a new incomplete item with the trimmed text and clears the
// draft. Blank text is ignored.
func (s *Session) Add(ctx context.Context, text string) error {
	s.draft = text
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}

	item := domain.ChecklistItem{
		ID:        s.cfg.NewID(),
		Text:      trimmed,
		Completed: false,
		CreatedAt: s.cfg.Now().UTC(),
	}
	next := append(clone(s.items), item)

	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.draft = ""
	return nil
}

// Toggle flips the completed flag of the item with the given id.
func (s *Session) Toggle(ctx context.Context, itemID string) error {
	next := clone(s.items)
	for i := range next {
		if next[i].ID == itemID {
			next[i].Completed = !next[i].Completed
		}
	}
	return s.save(ctx, next)
}

// Delete removes the item with the given id, keeping the order of the rest.
func (s *Session) Delete(ctx context.Context, itemID string) error {
	next := make([]domain.ChecklistItem, 0, len(s.items))
	for _, it := range s.items {
		if it.ID != itemID {
			next = append(next, it)
		}
	}
	return s.save(ctx, next)
}

// StartEdit enters the editing state for item and seeds the edit buffer.
func (s *Session) StartEdit(item domain.ChecklistItem) {
	s.editingID = item.ID
	s.editText = item.Text
}

// SaveEdit writes the trimmed edit buffer into the edited item and returns to
// viewing. It does nothing, and stays in the editing state, when no item is
// being edited or the buffer is blank.
func (s *Session) SaveEdit(ctx context.Context) error {
	trimmed := strings.TrimSpace(s.editText)
	if s.editingID == "" || trimmed == "" {
		return nil
	}

	next := clone(s.items)
	for i := range next {
		if next[i].ID == s.editingID {
			next[i].Text = trimmed
		}
	}

	if err := s.save(ctx, next); err != nil {
		return err
	}
	s.editingID = ""
	s.editText = ""
	return nil
}

// CancelEdit discards the edit buffer and returns to viewing without saving.
func (s *Session) CancelEdit() {
	s.editingID = ""
	s.editText = ""
}

func (s *Session) save(ctx context.Context, next []domain.ChecklistItem) error {
	if err := s.cfg.Save(ctx, next); err != nil {
		s.cfg.Logger.ErrorContext(ctx, "save checklist", "error", err)
		return fmt.Errorf("checklist.Session: save: %w", err)
	}
	s.items = next
	if s.cfg.OnUpdate != nil {
		s.cfg.OnUpdate(clone(next))
	}
	return nil
}

func clone(items []domain.ChecklistItem) []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, len(items))
	copy(out, items)
	return out
}

// newItemID returns a time-ordered unique id.
func newItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
