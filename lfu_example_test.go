package lfu_test

import (
	"fmt"

	lfu "github.com/djdv/go-lfu"
)

func ExampleCache() {
	const (
		capacity = 2
		key      = "name"
		value    = 1
	)
	cache, err := lfu.New[string, int](capacity)
	if err != nil {
		panic(err) // TODO(Anyone): Handle error.
	}
	cache.Set(key, value)
	if got, ok := cache.Find(key); ok {
		fmt.Printf("%s: %d\n", key, got)
	}
	cache.Set("other", 2)
	if evicted, ok := cache.Add("new", 3); ok {
		fmt.Println("evicted:", evicted)
	}
	// Output:
	// name: 1
	// evicted: 2
}

func ExampleMap() {
	const capacity = 2
	cache, err := lfu.NewMap(capacity,
		lfu.WithEvictionHandler(func(key string, value int) {
			fmt.Printf("forgot %s=%d\n", key, value)
		}),
	)
	if err != nil {
		panic(err) // TODO(Anyone): Handle error.
	}
	cache.Set("a", 1)
	cache.Set("b", 2)
	cache.Find("b")
	cache.Set("c", 3)
	fmt.Println("rank of b:", cache.Frequency("b"))
	fmt.Println("evictions:", cache.Stats().Evictions)
	// Output:
	// forgot a=1
	// rank of b: 2
	// evictions: 1
}
