// Package flows implements the console's three page behaviours on top of
// package ui: the login and signup forms (CredentialsFlow) and the
// dashboard guard with its logout and incident commands (Dashboard).
//
// Flows never touch a terminal and never see cookie values; they talk to an
// api.Client and move between pages through a Navigator.
package flows
