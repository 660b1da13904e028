package quill_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/adapters/stdio"
	"github.com/aretw0/quill/pkg/schema"
)

// ExampleDisplay states a struct value on the console. Fields are single-child
// scopes, so they fold into the label of their value.
func ExampleDisplay() {
	pair := schema.Struct("Pair",
		schema.Field{Name: "a", Type: schema.Uint32()},
		schema.Field{Name: "b", Type: schema.String()},
	)
	value := map[string]any{"a": uint32(1), "b": "two"}

	if err := quill.Display(stdio.NewResponder(os.Stdout), pair, value); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Pair {
	//   a -> uint32: 1
	//   b -> string: two
	// }
}

// ExampleDisplayValue derives the shape from a Go type.
func ExampleDisplayValue() {
	type Order struct {
		ID   uint32   `quill:"id"`
		Tags []string `quill:"tags"`
		Note *string  `quill:"note"`
	}

	if err := quill.DisplayValue(stdio.NewResponder(os.Stdout), Order{ID: 3, Tags: []string{"x"}}); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Order {
	//   id -> uint32: 3
	//   tags -> seq {
	//     [0] {
	//       Add element?: yes
	//       string: x
	//     }
	//     [1] {
	//       Add element?: no
	//     }
	//   }
	//   note -> option {
	//     Some value?: no
	//   }
	// }
}

// ExampleBuildBare builds a value from a type expression and a fixed list of answers.
func ExampleBuildBare() {
	t, err := schema.ParseType("(bool, ?string)")
	if err != nil {
		log.Fatal(err)
	}
	answers := script.New([]string{"true", "yes", "hi"})

	v, err := quill.BuildBare(context.Background(), answers, t)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(v)
	// Output: [true {hi}]
}
