package astjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrite/internal/ast"
)

const sampleDocument = `{
  "path": "pkg/mod.py",
  "statements": [
    {
      "kind": "Class",
      "loc": {"file": "pkg/mod.py", "start_line": 1, "start_column": 0, "end_line": 4, "end_column": 0},
      "name": {"kind": "Access", "segments": [{"kind": "Ident", "name": "C"}]},
      "body": [
        {
          "kind": "Define",
          "loc": {"file": "pkg/mod.py", "start_line": 2, "start_column": 2, "end_line": 4, "end_column": 0},
          "name": {"kind": "Access", "segments": [{"kind": "Ident", "name": "__init__"}]},
          "parent": {"kind": "Access", "segments": [{"kind": "Ident", "name": "C"}]},
          "parameters": [
            {"name": "self"},
            {"name": "x", "annotation": {"kind": "Access", "segments": [{"kind": "Ident", "name": "int"}]}}
          ],
          "returns": {"kind": "None"},
          "body": [
            {
              "kind": "Assign",
              "loc": {"file": "pkg/mod.py", "start_line": 3, "start_column": 4, "end_line": 3, "end_column": 14},
              "target": {"kind": "Access", "segments": [{"kind": "Ident", "name": "self"}, {"kind": "Ident", "name": "x"}]},
              "value": {"kind": "Access", "segments": [{"kind": "Ident", "name": "x"}]}
            }
          ]
        }
      ]
    }
  ]
}`

func TestDecodeDocument(t *testing.T) {
	document, err := DecodeDocument([]byte(sampleDocument))
	require.NoError(t, err)
	assert.Equal(t, "pkg/mod.py", document.Path)
	require.Len(t, document.Statements, 1)

	class, ok := document.Statements[0].(*ast.Class)
	require.True(t, ok)
	assert.Equal(t, "C", class.SimpleName())
	assert.Equal(t, 1, class.GetLoc().StartLine)

	require.Len(t, class.Body, 1)
	define, ok := class.Body[0].(*ast.Define)
	require.True(t, ok)
	assert.True(t, define.IsConstructor(false))
	require.Len(t, define.Parameters, 2)
	assert.Equal(t, "x", define.Parameters[1].Name)

	attributes := define.ImplicitAttributes(class)
	x, ok := attributes.Get("x")
	require.True(t, ok)
	assert.Equal(t, "int", x.Annotation.String())
}

func TestRoundTrip(t *testing.T) {
	document, err := DecodeDocument([]byte(sampleDocument))
	require.NoError(t, err)

	encoded, err := EncodeDocument(document)
	require.NoError(t, err)

	again, err := DecodeDocument(encoded)
	require.NoError(t, err)
	require.Len(t, again.Statements, 1)

	first := document.Statements[0].(*ast.Class)
	second := again.Statements[0].(*ast.Class)
	assert.True(t, ast.ExpressionEqual(first.Name, second.Name))
	assert.Equal(t, first.GetLoc(), second.GetLoc())
	assert.Len(t, second.Body, len(first.Body))
}

func TestDecodeRejectsUnknownKinds(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"statements": [{"kind": "Match"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown statement kind")

	_, err = DecodeDocument([]byte(`{"statements": [{"kind": "Expression", "expression": {"kind": "Lambda"}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown expression kind")
}

func TestDecodeRejectsBadStub(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"statements": [{"kind": "Stub", "stubbed": {"kind": "Pass"}}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stub wraps")
}
