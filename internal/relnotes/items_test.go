package relnotes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thomas-vilte/relnotes/internal/models"
)

func TestLinkItems(t *testing.T) {
	records := []models.IssueRecord{record(12, "a"), record(34, "b")}

	assert.Equal(t,
		"[12]: https://github.com/rust-lang/rust/issues/12/\n[34]: https://github.com/rust-lang/rust/issues/34/",
		LinkItems("", records))
	assert.Equal(t,
		"[cargo/12]: https://github.com/rust-lang/rust/issues/12/\n[cargo/34]: https://github.com/rust-lang/rust/issues/34/",
		LinkItems("cargo/", records))
	assert.Empty(t, LinkItems("", nil))
}

func TestReferenceItems(t *testing.T) {
	records := []models.IssueRecord{record(12, "Add `cargo info`"), record(34, "Fix lockfile")}

	assert.Equal(t, "- [Add `cargo info`][cargo/12]\n- [Fix lockfile][cargo/34]", ReferenceItems("cargo/", records))
	assert.Empty(t, ReferenceItems("cargo/", nil))
}
