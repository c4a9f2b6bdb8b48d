package prelude

import (
	_ "embed"

	"github.com/pkg/errors"

	"github.com/deosjr/scurry/scurry"
)

//go:embed prelude.scurry
var prelude string

// Load makes len, nth, map, reverse and range available to every program
// the interpreter runs.
func Load(i *scurry.Interpreter) error {
	return errors.Wrap(i.Load(prelude), "loading prelude")
}

func Source() string {
	return prelude
}
