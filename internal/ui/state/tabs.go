package state

// Tabs is the ordered stack of open views. The first tab is the root view
// and is never removed.
type Tabs struct {
	views    []*View
	selected int
}

// NewTabs creates a stack holding only root.
func NewTabs(root *View) *Tabs {
	return &Tabs{views: []*View{root}}
}

// Open pushes view and selects it.
func (t *Tabs) Open(view *View) {
	t.views = append(t.views, view)
	t.selected = len(t.views) - 1
}

// Close removes the selected tab and selects the one before it.
func (t *Tabs) Close() error {
	if t.selected == 0 {
		return ErrCannotCloseRoot
	}
	t.views = append(t.views[:t.selected], t.views[t.selected+1:]...)
	t.selected = min(t.selected-1, len(t.views)-1)
	return nil
}

// Next selects the following tab, wrapping around.
func (t *Tabs) Next() {
	t.selected = (t.selected + 1) % len(t.views)
}

// Previous selects the preceding tab, wrapping around.
func (t *Tabs) Previous() {
	t.selected = (t.selected - 1 + len(t.views)) % len(t.views)
}

// Current returns the selected view.
func (t *Tabs) Current() *View {
	return t.views[t.selected]
}

// Len reports the number of open tabs.
func (t *Tabs) Len() int {
	return len(t.views)
}

// Index returns the selected position.
func (t *Tabs) Index() int {
	return t.selected
}

// Titles lists the tab titles in order.
func (t *Tabs) Titles() []string {
	out := make([]string, len(t.views))
	for i, v := range t.views {
		out[i] = v.Title
	}
	return out
}
