package main

import (
	"fmt"

	"github.com/pthm-cable/rigid/scene"
)

// Scenarios the evaluator runs for every parameter vector. Each one ends
// with its dynamic bodies at rest on a static floor whose top is y = 0.
var scenarioYAML = map[string]string{
	"rest": `
name: rest
bodies:
  - {kind: box, width: 20, height: 1, static: true, x: 0, y: -0.5}
  - {kind: box, width: 1, height: 1, mass: 1, x: 0, y: 0.5, restitution: 0}
`,
	"stack": `
name: stack
bodies:
  - {kind: box, width: 20, height: 1, static: true, x: 0, y: -0.5}
  - {kind: box, width: 1, height: 1, mass: 1, x: 0, y: 0.5, restitution: 0, repeat: 3, offset: {x: 0, y: 1}}
`,
	"drop": `
name: drop
bodies:
  - {kind: box, width: 20, height: 1, static: true, x: 0, y: -0.5}
  - {kind: polygon, sides: 6, radius: 0.5, mass: 1, x: 0, y: 4, restitution: 0.3}
  - {kind: polygon, sides: 5, radius: 0.5, mass: 2, x: 2, y: 6, rotation: 0.3, restitution: 0.3}
`,
}

// scenarioNames fixes the evaluation order.
var scenarioNames = []string{"rest", "stack", "drop"}

// loadScenarios parses every scenario.
func loadScenarios() (map[string]*scene.Scene, error) {
	out := make(map[string]*scene.Scene, len(scenarioYAML))
	for _, name := range scenarioNames {
		sc, err := scene.Parse([]byte(scenarioYAML[name]))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", name, err)
		}
		out[name] = sc
	}
	return out, nil
}
