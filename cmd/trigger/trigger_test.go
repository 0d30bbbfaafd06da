package trigger

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsEvent_ReadsDocument(t *testing.T) {
	file := filepath.Join(t.TempDir(), "review.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"sellerId":"S2","rating":4}`), 0644))

	opts := &options{id: "R1", parent: "P1", file: file}
	event, err := opts.event("review")
	require.NoError(t, err)

	assert.Equal(t, "review", event.Kind)
	assert.Equal(t, "R1", event.DocumentID)
	assert.Equal(t, "P1", event.ParentID)
	assert.Equal(t, "S2", event.Document.Lookup("sellerId").StringValue())
}

func TestOptionsEvent_NoFile(t *testing.T) {
	event, err := (&options{id: "O1"}).event("order")
	require.NoError(t, err)
	assert.Empty(t, event.Document)
}

func TestOptionsEvent_MissingFile(t *testing.T) {
	_, err := (&options{id: "O1", file: filepath.Join(t.TempDir(), "nope.json")}).event("order")
	assert.Error(t, err)
}

func TestTriggerCommand_RequiresID(t *testing.T) {
	cmd := NewTriggerCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"order"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"id"`)
}

func TestTriggerCommand_RejectsUnknownKind(t *testing.T) {
	cmd := NewTriggerCommand()
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"refund", "--id", "X1"})

	assert.Error(t, cmd.Execute())
}
