package diagnosis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocfg/internal/model"
	"gocfg/internal/store"
)

func TestCollectGroupsByKindInDeclarationOrder(t *testing.T) {
	db := store.New()
	model.NewOption(db, "pthread").Set("value", "true")
	model.NewTarget(db, store.RootScope).Append("defines", "ROOT")
	model.NewTarget(db, "hello").SetKind(model.KindBinary)

	dump := Collect(db)

	require.Len(t, dump.Options, 1)
	assert.Equal(t, "pthread", dump.Options[0].Name)
	assert.Equal(t, "true", dump.Options[0].Attrs["value"])

	require.Len(t, dump.Targets, 2)
	assert.Equal(t, "(root)", dump.Targets[0].Name)
	assert.Equal(t, "hello", dump.Targets[1].Name)
	assert.Equal(t, "binary", dump.Targets[1].Attrs["kind"])
}

// TestCollectIsStableAcrossRepeatedCalls guards Collect against drifting on
// a re-dump of an unchanged store (e.g. --diagnosis called twice against
// the same scripts), comparing the full nested Dump structurally rather
// than field by field.
func TestCollectIsStableAcrossRepeatedCalls(t *testing.T) {
	db := store.New()
	model.NewOption(db, "pthread").Set("value", "true")
	model.NewTarget(db, "hello").SetKind(model.KindBinary)

	first := Collect(db)
	second := Collect(db)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Collect is not stable across repeated calls (-first +second):\n%s", diff)
	}
}

func TestRenderProducesParsableYAML(t *testing.T) {
	db := store.New()
	model.NewToolchain(db, "gcc").SetToolset("cc", "gcc")

	text, err := Render(db)
	require.NoError(t, err)
	assert.Contains(t, text, "toolchains:")
	assert.Contains(t, text, "name: gcc")
}
