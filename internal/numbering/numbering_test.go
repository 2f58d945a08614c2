package numbering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	july := time.Date(2025, time.July, 14, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "INV-202507-0001", Format(july, 1))
	assert.Equal(t, "INV-202507-0042", Format(july, 42))

	jan := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-202601-0007", Format(jan, 7))
}

func TestFormat_SequenceWiderThanPadding(t *testing.T) {
	at := time.Date(2025, time.December, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "INV-202512-10001", Format(at, 10001))
}

func TestFormat_DoesNotResetAcrossMonths(t *testing.T) {
	// The sequence is global: a new month keeps counting from the stored total.
	july := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	august := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "INV-202507-0005", Format(july, 5))
	assert.Equal(t, "INV-202508-0006", Format(august, 6))
}
