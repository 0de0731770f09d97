package cli

import (
	"context"
	"errors"

	"github.com/securelogx/console/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

var errNoForm = errors.New("no form on this page")

// Submit fills in the open login or signup form and submits it. The
// password buffer is wiped before returning.
func (a *App) Submit(ctx context.Context) error {
	if a.form == nil {
		return errNoForm
	}

	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.form.Submit(ctx, username, string(password))
}
