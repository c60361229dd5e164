package catalog_test

import (
	"fmt"

	"github.com/matzehuels/graphmapper/pkg/catalog"
)

func ExampleCatalog_Resolve() {
	c := catalog.New(nil)

	first, _ := c.Resolve("Jon Smith", "person")
	second, _ := c.Resolve("Smith, Jon", "person")
	food, _ := c.Resolve("Jon Smith", "food-1")

	fmt.Println("same person:", first.Entity.ID == second.Entity.ID)
	fmt.Println("same across types:", first.Entity.ID == food.Entity.ID)
	fmt.Println("entities:", c.Len())
	// Output:
	// same person: true
	// same across types: false
	// entities: 2
}
