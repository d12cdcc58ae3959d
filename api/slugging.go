package api

import (
	"fmt"

	"github.com/rohityadav-alpha/rohit-portfolio/errs"
	"github.com/rohityadav-alpha/rohit-portfolio/services"
)

// maxSlugAttempts bounds collision resolution; running past it means the
// store keeps rejecting candidates and something is genuinely wrong.
const maxSlugAttempts = 100

// allocateUniqueSlug derives the base slug from title and calls add with
// candidate slugs (base, base-1, base-2, ...) until the insert stops being
// rejected as already existing. The unique index on the slug column is the
// arbiter, so two concurrent creates with the same title cannot both win the
// same slug; the loser simply moves on to the next suffix.
func allocateUniqueSlug(title string, add func(slug string) error) error {
	base := services.Slugify(title)
	if base == "" {
		return errs.NewInvalidFieldError("title", "contains no characters usable in a slug")
	}

	var err error
	for attempt := 0; attempt <= maxSlugAttempts; attempt++ {
		err = add(services.SlugWithSuffix(base, attempt))
		if err == nil {
			return nil
		}
		if !errs.IsAlreadyExists(err) {
			return err
		}
	}

	return errs.NewInternalErrorWithCause(
		fmt.Sprintf("could not allocate a unique slug for %q", base), err)
}
