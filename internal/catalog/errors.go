package catalog

import (
	"strings"

	apperrors "case-triage-workers/internal/common/errors"
)

func newInvalid(problems []string) error {
	return apperrors.NewCatalogInvalidError(strings.Join(problems, "; "))
}

func newLoadFailed(source string, err error) error {
	return apperrors.NewCatalogLoadFailedError(source, err)
}
