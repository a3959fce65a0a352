// Package pipeline implements the lazy text-operation composition engine.
//
// A Chain is an immutable sequence of bound operation steps. Building a
// chain never touches data: each call to Op appends a step to a new chain
// value and validates the bound arguments against the operation's declared
// parameters. Supplying an input to Apply materializes it into one of the
// canonical shapes (Text, Lines, Mapping, Any) and folds the steps over
// it, coercing between shapes at step boundaries.
//
// The package is structured in five layers:
//
//   - Shapes and values: the tagged Value union and the ordered Map type.
//   - Operations and the Registry: named, parameterized transform units.
//   - Chain: the immutable builder, including Then composition.
//   - Coercion: the partial conversion table between shapes.
//   - Engine: Apply, input materialization, error policies, tracing.
//
// Usage:
//
//	c := pipeline.New().Op("grep", "ERROR").Op("head", 5)
//	res, err := c.Apply("boot ok\nERROR disk\nERROR net\n")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Lines())
//
// Chains hold no execution state: the same chain may be applied to many
// inputs, concurrently, with identical results for identical inputs.
// The operation catalog lives in the ops package; importing it registers
// the standard operations into DefaultRegistry.
package pipeline
