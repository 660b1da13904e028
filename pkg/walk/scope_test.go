package walk

import (
	"testing"

	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeStack_RunLength(t *testing.T) {
	tr := script.New(nil)
	s := scopeStack{out: tr}

	require.NoError(t, s.begin("outer", domain.NoSize, explicitScope))
	require.NoError(t, s.begin("a", 1, implicitScope))
	require.NoError(t, s.begin("b", 1, implicitScope))
	assert.Len(t, s.runs, 2)
	assert.Equal(t, scopeRun{kind: implicitScope, count: 2}, s.runs[1])
	assert.Equal(t, 3, s.depth())

	require.NoError(t, s.endImplicit())
	assert.Equal(t, 1, s.depth())
	assert.Equal(t, 1, tr.Level())

	require.NoError(t, s.endExplicit())
	assert.Zero(t, s.depth())
	assert.Zero(t, tr.Level())
}

func TestScopeStack_EndExplicitCascades(t *testing.T) {
	tr := script.New(nil)
	s := scopeStack{out: tr}

	require.NoError(t, s.begin("field", 1, implicitScope))
	require.NoError(t, s.begin("option", domain.NoSize, implicitScope))
	require.NoError(t, s.begin("Inner", 2, explicitScope))
	require.NoError(t, s.endExplicit())

	assert.Zero(t, s.depth())
	assert.Zero(t, tr.Level())
}

func TestScopeStack_Mismatch(t *testing.T) {
	tr := script.New(nil)
	s := scopeStack{out: tr}

	assert.ErrorIs(t, s.endExplicit(), domain.ErrScopeMismatch)

	require.NoError(t, s.begin("newtype", 1, implicitScope))
	assert.ErrorIs(t, s.endExplicit(), domain.ErrScopeMismatch)
	assert.Equal(t, 1, tr.Level(), "a rejected close must not reach the transport")
}

func TestScopeStack_Cleanup(t *testing.T) {
	tr := script.New(nil)
	s := scopeStack{out: tr}

	require.NoError(t, s.begin("a", domain.NoSize, explicitScope))
	require.NoError(t, s.begin("b", 1, implicitScope))
	require.NoError(t, s.begin("c", domain.NoSize, explicitScope))
	require.NoError(t, s.cleanup())
	require.NoError(t, s.cleanup())

	assert.Zero(t, tr.Level())
	assert.Zero(t, s.depth())
}
