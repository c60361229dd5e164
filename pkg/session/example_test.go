package session_test

import (
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/graphmapper/pkg/session"
)

func ExampleController_Handle() {
	dir, _ := os.MkdirTemp("", "graphmapper")
	defer os.RemoveAll(dir)

	ctrl, _ := session.New(session.Options{OutDir: dir, Key: "m-demo"})
	ctx := context.Background()

	ctrl.Handle(ctx, session.CreateEdge{
		SourceName: "pizza", SourceType: "food-2",
		TargetName: "cheeseburger", TargetType: "food-2",
		EdgeType: "similar-to",
	})
	out := ctrl.Handle(ctx, session.CreateOrResolveEntity{Name: "Pizza", TypeID: "food-2"})

	fmt.Println(out.Entity.Entity.Name, out.Entity.Minted)
	fmt.Printf("%+v\n", ctrl.Summary())
	// Output:
	// pizza false
	// {Types:1 Entities:2 Edges:1}
}
