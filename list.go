package geckopush

import (
	"context"
	"fmt"
)

// ListEntry describes one row of a [List]. Only Text is required.
type ListEntry struct {
	Text        string
	Name        string
	Color       string
	Description string
}

// ListItem is the wire form of a list row.
type ListItem struct {
	Title       ListTitle  `json:"title"`
	Label       *ListLabel `json:"label,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ListTitle holds the row's title text.
type ListTitle struct {
	Text string `json:"text"`
}

// ListLabel is the optional coloured tag on a row.
type ListLabel struct {
	Name  string `json:"name,omitempty"`
	Color string `json:"color,omitempty"`
}

// List is a text list widget. Unlike the other widgets its data is a JSON
// array, and an empty list is valid.
type List struct {
	base
	items []ListItem
}

// ListOption configures a [List] during construction.
type ListOption func(*List) error

// WithListEntry adds a row, as [List.AddData] does.
func WithListEntry(e ListEntry) ListOption {
	return func(l *List) error {
		return l.AddData(e)
	}
}

// NewList creates a [List] and registers it with d.
func NewList(d *Dashboard, widgetKey string, opts ...ListOption) (*List, error) {
	b, err := newBase(d, widgetKey, KindList)
	if err != nil {
		return nil, err
	}

	l := &List{base: b}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	d.register(l)
	return l, nil
}

// AddData appends a row. The label is emitted when a name or colour is set.
func (l *List) AddData(e ListEntry) error {
	if e.Text == "" {
		return fmt.Errorf("%w: list entry needs title text", ErrMissingData)
	}

	item := ListItem{
		Title:       ListTitle{Text: e.Text},
		Description: e.Description,
	}
	if e.Name != "" || e.Color != "" {
		item.Label = &ListLabel{Name: e.Name, Color: e.Color}
	}
	l.items = append(l.items, item)
	return nil
}

// AssembleData implements [Widget]. The result is a []ListItem.
func (l *List) AssembleData() (any, error) {
	items := make([]ListItem, len(l.items))
	for i, it := range l.items {
		if it.Label != nil {
			label := *it.Label
			it.Label = &label
		}
		items[i] = it
	}
	return items, nil
}

// Payload implements [Widget].
func (l *List) Payload() (Payload, error) {
	return l.payload(l.AssembleData)
}

// Push implements [Widget].
func (l *List) Push(ctx context.Context) (PushResult, error) {
	return l.push(ctx, l.AssembleData)
}
