package order

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tidwall/jsonc"

	"github.com/banaszakw/dir-maker/internal/model"
)

// LoadFile reads an order from a JSONC file on fs. Comments and trailing
// commas are allowed:
//
//	{
//	  // where the folders go
//	  "basePath": "/data/orders",
//	  "brand": "Audi",
//	  "input": "A1 first\nB2 second",
//	  "makeSecondary": true,
//	}
//
// Every failure (missing, unreadable or malformed file) is returned as a
// CLIError with ExitOrderFileError.
func LoadFile(fs billy.Filesystem, path string) (model.Order, error) {
	// The CLI passes an absolute path on an osfs rooted at "/".
	data, err := util.ReadFile(fs, path)
	if err != nil {
		// Distinguish "not found" from other read errors so the user gets
		// a clear message for the common typo case.
		if os.IsNotExist(err) {
			return model.Order{}, model.WrapCLIError(
				model.ExitOrderFileError,
				fmt.Sprintf("order file not found: %s", path),
				err,
			)
		}
		return model.Order{}, model.WrapCLIError(
			model.ExitOrderFileError,
			fmt.Sprintf("failed to read order file %s", path),
			err,
		)
	}

	// jsonc.ToJSON strips comments and trailing commas; what remains is
	// plain JSON for encoding/json. Unknown fields are ignored.
	var ord model.Order
	if err := json.Unmarshal(jsonc.ToJSON(data), &ord); err != nil {
		return model.Order{}, model.WrapCLIError(
			model.ExitOrderFileError,
			fmt.Sprintf("failed to parse order file at %s", path),
			err,
		)
	}
	return ord, nil
}
