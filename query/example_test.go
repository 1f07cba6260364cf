package query_test

import (
	"fmt"
	"log"

	"github.com/creachadair/jstream"
	"github.com/creachadair/jstream/jval"
	"github.com/creachadair/jstream/query"
)

func mustParseOne(s string) jval.Value {
	v, err := jstream.ParseString(s)
	if err != nil {
		log.Fatalf("Parse: %v", err)
	}
	return v
}

func Example_small() {
	root := mustParseOne(`[{"a": 1, "b": 2}, {"c": {"d": true}, "e": false}]`)
	v, err := query.Eval(root, query.Path(1, "c", "d"))
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	fmt.Println(v.JSON())
	// Output:
	// true
}

func Example_medium() {
	root := mustParseOne(`
{
  "plaintiff": "Inigo Montoya",
  "complaint": {
     "defendant": "you",
     "action": "killed",
     "target": "Individual 1"
  },
  "requestedRelief": ["die", "pay punitive damages", "pay attorney fees"],
  "relatedPersons": {
    "Individual 1": {"id": "father", "rel": "plaintiff"}
  }
}`)

	v, err := query.Eval(root, query.Object{
		"name": query.Path("plaintiff"),
		"act": query.Array{
			query.Path("complaint", "defendant"),
			query.Path("complaint", "action"),
			query.String("my"),
			query.Path("relatedPersons", "Individual 1", "id"),
		},
		"req": query.Path("requestedRelief", 0),
	})
	if err != nil {
		log.Fatalf("Eval: %v", err)
	}
	obj := v.(jval.Object)
	name, _ := obj.GetString("name")
	act, _ := obj.Lookup("act")
	req, _ := obj.GetString("req")
	fmt.Printf("Hello, my name is: %s\n", name)
	fmt.Println(act.JSON())
	fmt.Printf("Prepare to %s\n", req)
	// Output:
	// Hello, my name is: Inigo Montoya
	// ["you","killed","my","father"]
	// Prepare to die
}
