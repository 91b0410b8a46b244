package geckopush

import (
	"context"
	"fmt"
)

const maxLeaderboardItems = 22

// LeaderboardItem is one entry of a [Leaderboard]. Value and PreviousRank
// are omitted from the payload when nil.
type LeaderboardItem struct {
	Label        string   `json:"label"`
	Value        *float64 `json:"value,omitempty"`
	PreviousRank *int     `json:"previous_rank,omitempty"`
}

func (it LeaderboardItem) clone() LeaderboardItem {
	it.Value = copyFloatPtr(it.Value)
	if it.PreviousRank != nil {
		it.PreviousRank = Int(*it.PreviousRank)
	}
	return it
}

// Leaderboard is a ranked list widget with up to 22 entries.
type Leaderboard struct {
	base
	items  []LeaderboardItem
	format string
	unit   string
}

// LeaderboardData is the assembled data of a [Leaderboard].
type LeaderboardData struct {
	Items  []LeaderboardItem `json:"items"`
	Format string            `json:"format,omitempty"`
	Unit   string            `json:"unit,omitempty"`
}

// LeaderboardOption configures a [Leaderboard] during construction.
type LeaderboardOption func(*Leaderboard) error

// WithLeaderboardItem adds an entry, as [Leaderboard.AddData] does.
func WithLeaderboardItem(item LeaderboardItem) LeaderboardOption {
	return func(l *Leaderboard) error {
		return l.AddData(item)
	}
}

// WithLeaderboardFormat sets the value format, e.g. "decimal", "percent" or
// "currency".
func WithLeaderboardFormat(format string) LeaderboardOption {
	return func(l *Leaderboard) error {
		l.format = format
		return nil
	}
}

// WithLeaderboardUnit sets the currency unit, e.g. "USD".
func WithLeaderboardUnit(unit string) LeaderboardOption {
	return func(l *Leaderboard) error {
		l.unit = unit
		return nil
	}
}

// NewLeaderboard creates a [Leaderboard] and registers it with d.
func NewLeaderboard(d *Dashboard, widgetKey string, opts ...LeaderboardOption) (*Leaderboard, error) {
	b, err := newBase(d, widgetKey, KindLeaderboard)
	if err != nil {
		return nil, err
	}

	l := &Leaderboard{base: b}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	d.register(l)
	return l, nil
}

// AddData appends an entry. The label is required. The 22 entry limit is
// enforced when the data is assembled.
func (l *Leaderboard) AddData(item LeaderboardItem) error {
	if item.Label == "" {
		return fmt.Errorf("%w: leaderboard entry needs a label", ErrMissingData)
	}
	if err := checkFinitePtrs("leaderboard value", item.Value); err != nil {
		return err
	}
	l.items = append(l.items, item.clone())
	return nil
}

// AssembleData implements [Widget].
func (l *Leaderboard) AssembleData() (any, error) {
	if len(l.items) > maxLeaderboardItems {
		return nil, fmt.Errorf("%w: leaderboard widget accepts a max of %d labels, got %d",
			ErrTooManyItems, maxLeaderboardItems, len(l.items))
	}
	if len(l.items) == 0 {
		return nil, fmt.Errorf("%w: must add at least one entry", ErrMissingData)
	}

	items := make([]LeaderboardItem, len(l.items))
	for i, it := range l.items {
		items[i] = it.clone()
	}
	return LeaderboardData{
		Items:  items,
		Format: l.format,
		Unit:   l.unit,
	}, nil
}

// Payload implements [Widget].
func (l *Leaderboard) Payload() (Payload, error) {
	return l.payload(l.AssembleData)
}

// Push implements [Widget].
func (l *Leaderboard) Push(ctx context.Context) (PushResult, error) {
	return l.push(ctx, l.AssembleData)
}
