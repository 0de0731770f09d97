package ui

// Document is one rendered page: a body that holds all visible content,
// a status line, and elements and controls addressable by id.
//
// Pages declare only what they have. Flows look optional parts up with
// Element/Control and skip behaviour whose part is missing.
type Document struct {
	Page   Page
	Body   *Element
	Status *Status

	elements map[string]*Element
	controls map[string]*Control
}

// NewDocument returns an empty page with a visible body. A nil status gets
// one that renders nowhere.
func NewDocument(page Page, status *Status) *Document {
	if status == nil {
		status = NewStatus(nil)
	}
	return &Document{
		Page:     page,
		Body:     &Element{ID: "body"},
		Status:   status,
		elements: make(map[string]*Element),
		controls: make(map[string]*Control),
	}
}

// AddElement declares an element. Declaring an existing id returns it.
func (d *Document) AddElement(id string) *Element {
	if e, ok := d.elements[id]; ok {
		return e
	}
	e := &Element{ID: id}
	d.elements[id] = e
	return e
}

// AddControl declares a control. Declaring an existing id returns it.
func (d *Document) AddControl(id string) *Control {
	if c, ok := d.controls[id]; ok {
		return c
	}
	c := &Control{ID: id}
	d.controls[id] = c
	return c
}

// Element returns the element with the given id, or nil.
func (d *Document) Element(id string) *Element {
	return d.elements[id]
}

// Control returns the control with the given id, or nil.
func (d *Document) Control(id string) *Control {
	return d.controls[id]
}
