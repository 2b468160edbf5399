package keypage

import (
	"strconv"

	"github.com/mitchellh/hashstructure/v2"
)

// argsFingerprint computes a stable hash of the paginator arguments. Cursors
// minted for one argument set must not be replayed against another, so the
// fingerprint travels inside the token and is compared on every request.
//
// Arguments that do not affect the result set can be excluded from the
// fingerprint with a `hash:"ignore"` struct tag.
func argsFingerprint(args any) (string, error) {
	sum, err := hashstructure.Hash(args, hashstructure.FormatV2, nil)
	if err != nil {
		return "", newConfigurationError("cannot fingerprint paginator arguments: %v", err)
	}

	return strconv.FormatUint(sum, 16), nil
}
