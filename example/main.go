// Command example is a minimal smoke demo of the bplustree package: build a
// tree, look a key up, and scan a range. It exists to show the API in use;
// it is not part of the engine's contract.
package main

import (
	"fmt"

	"bplustree"
)

func main() {
	t, err := bplustree.New[int, string](4)
	if err != nil {
		panic(err)
	}

	for i := 1; i <= 20; i++ {
		t.Put(i, fmt.Sprintf("v%d", i))
	}

	if v, err := t.Get(7); err == nil {
		fmt.Println("get(7) =", v)
	}

	start, end := 5, 10
	it := t.Entries(&start, &end)
	for it.Next() {
		fmt.Println(it.Key(), it.Value())
	}
	if err := it.Err(); err != nil {
		fmt.Println("iteration error:", err)
	}
}
