package transact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionDispatchesToCallback(t *testing.T) {
	var got []Message
	tx := New("my-preset", func(m Message) { got = append(got, m) })

	tx.Info("szs", "decoded 4096 bytes")
	tx.Warn("mesh", "mismatched gen-info stage count")
	tx.Err("material", "missing referenced texture")

	assert.Equal(t, "my-preset", tx.PresetName)
	assert.Len(t, got, 3)
	assert.Equal(t, Information, got[0].Class)
	assert.Equal(t, Warning, got[1].Class)
	assert.Equal(t, Error, got[2].Class)
	assert.True(t, tx.Errored)
}

func TestTransactionWithoutErrorStaysUnerrored(t *testing.T) {
	tx := New("", nil)
	tx.Info("szs", "ok")
	tx.Warn("szs", "fine")
	assert.False(t, tx.Errored)
}

func TestNilTransactionReportIsANoop(t *testing.T) {
	var tx *Transaction
	assert.NotPanics(t, func() { tx.Err("x", "y") })
}
