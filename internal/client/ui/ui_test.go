package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	type change struct {
		msg   string
		class StatusClass
	}
	var seen []change
	s := NewStatus(func(m string, c StatusClass) { seen = append(seen, change{m, c}) })

	msg, class := s.Snapshot()
	assert.Empty(t, msg)
	assert.Equal(t, StatusNormal, class)

	s.Info("Authenticating…")
	s.Error("Invalid credentials.")
	msg, class = s.Snapshot()
	assert.Equal(t, "Invalid credentials.", msg)
	assert.Equal(t, StatusError, class)

	s.Reset()
	msg, class = s.Snapshot()
	assert.Empty(t, msg)
	assert.Equal(t, StatusNormal, class)

	assert.Equal(t, []change{
		{"Authenticating…", StatusNormal},
		{"Invalid credentials.", StatusError},
		{"", StatusNormal},
	}, seen)
}

func TestControl_DisableIsExclusive(t *testing.T) {
	c := &Control{ID: "submit"}
	assert.False(t, c.Disabled())

	assert.True(t, c.Disable())
	assert.False(t, c.Disable(), "second disable must report busy")
	assert.True(t, c.Disabled())

	c.Enable()
	assert.False(t, c.Disabled())
	assert.True(t, c.Disable())
}

func TestElement(t *testing.T) {
	e := &Element{ID: "analystInfo"}
	assert.True(t, e.Visible())

	e.SetText("Analyst: jdoe")
	e.Hide()
	assert.False(t, e.Visible())
	assert.Equal(t, "Analyst: jdoe", e.Text())

	e.Show()
	assert.True(t, e.Visible())
}

func TestDocument_OptionalParts(t *testing.T) {
	d := NewDocument(PageDashboard, nil)
	require.NotNil(t, d.Status)
	require.NotNil(t, d.Body)

	assert.Nil(t, d.Element("analystInfo"))
	assert.Nil(t, d.Control("logoutBtn"))

	info := d.AddElement("analystInfo")
	assert.Same(t, info, d.Element("analystInfo"))
	assert.Same(t, info, d.AddElement("analystInfo"))

	btn := d.AddControl("logoutBtn")
	assert.Same(t, btn, d.Control("logoutBtn"))
	assert.Same(t, btn, d.AddControl("logoutBtn"))
}

func TestRouter_NavigateAndBack(t *testing.T) {
	var changes []Page
	r := NewRouter(PageLogin, func(p Page) { changes = append(changes, p) })

	r.Navigate(PageSignup)
	r.Navigate(PageDashboard)
	assert.Equal(t, PageDashboard, r.Current())

	p, ok := r.Back()
	assert.True(t, ok)
	assert.Equal(t, PageSignup, p)

	p, ok = r.Back()
	assert.True(t, ok)
	assert.Equal(t, PageLogin, p)

	_, ok = r.Back()
	assert.False(t, ok)

	assert.Equal(t, []Page{PageSignup, PageDashboard, PageSignup, PageLogin}, changes)
}

func TestRouter_ReplaceDropsEntry(t *testing.T) {
	r := NewRouter(PageLogin, nil)
	r.Navigate(PageDashboard)
	r.Replace(PageLogin)

	assert.Equal(t, []Page{PageLogin, PageLogin}, r.History())
	for {
		p, ok := r.Back()
		assert.NotEqual(t, PageDashboard, p)
		if !ok {
			break
		}
	}
}
