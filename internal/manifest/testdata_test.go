package manifest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const shapesManifest = `
name: shapes
platform: x64
modules:
  - name: mscorlib
    core_library: true
  - name: app
    types:
      - namespace: Shapes
        name: IsConst
      - namespace: Shapes
        name: Point
        kind: valuetype
        fields:
          - {name: X, type: int32}
          - {name: Y, type: int32}
          - {name: Origin, type: valuetype Shapes.Point, static: true, init_only: true}
      - namespace: Shapes
        name: Color
        kind: enum
        underlying: uint8
        fields:
          - {name: Red, type: valuetype Shapes.Color, static: true, literal: true}
      - namespace: Shapes
        name: Shape
        visibility: assembly
        interfaces:
          - "class [mscorlib]System.IComparable` + "`" + `1<class Shapes.Shape>"
        methods:
          - name: get_Area
            return: float64
            virtual: true
            abstract: true
          - name: Move
            parameters:
              - {name: by, type: valuetype Shapes.Point}
              - {name: result, type: "valuetype Shapes.Point&", out: true}
          - name: Create
            static: true
            return: "!!0"
            generic_parameters:
              - name: TShape
                constraints: [class Shapes.Shape]
                new: true
        properties:
          - {name: Area, type: float64, getter: get_Area}
        nested:
          - name: Visitor
            kind: interface
      - namespace: Shapes
        name: Pair` + "`" + `2
        generic_parameters:
          - T
          - {name: U, variance: "+"}
        fields:
          - {name: Value, type: "!0"}
  - name: plugins
    types:
      - namespace: Plugins
        name: Circle
        base: class [app]Shapes.Shape
        fields:
          - {name: Center, type: "valuetype [app]Shapes.Point"}
          - {name: Radius, type: float64}
`

func buildShapes(t *testing.T) *Result {
	t.Helper()

	mf, err := Parse([]byte(shapesManifest))
	require.NoError(t, err)

	r, err := Build(mf)
	require.NoError(t, err)

	return r
}
