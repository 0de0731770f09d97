// Package ui models the small part of a browser page the console flows rely
// on: a status line, controls that can be disabled, optional elements looked
// up by id, page content that can be hidden, and a navigation history that
// tells push navigation apart from replace navigation.
//
// Nothing here knows about terminals; package cli renders these values.
package ui
