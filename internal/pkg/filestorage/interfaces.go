package filestorage

import "io"

// Storage is the blob collaborator the document layer talks to. Locators are
// opaque: callers persist them verbatim and hand them back unchanged.
type Storage interface {
	// Store writes the content of r and returns the locator of the stored blob.
	// suggestedName only contributes its extension to the stored name.
	Store(r io.Reader, suggestedName string) (string, error)

	// Retrieve returns the bytes behind a locator. A locator whose blob is
	// gone yields apperrors.ErrBlobMissing.
	Retrieve(locator string) ([]byte, error)

	// Remove deletes the blob behind a locator. Removing an already-absent
	// blob is a success (idempotent).
	Remove(locator string) error
}
