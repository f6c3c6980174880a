package untagged_test

import (
	"fmt"

	"github.com/rawbytedev/untagged"
)

func Example() {
	opt := untagged.None[string]()

	// opt held nothing, so this assignment leaks nothing.
	opt = untagged.Some("&str stored")

	// opt is known to hold a value here.
	fmt.Println(*opt.AssumeInitRef())
	content := opt.Take()
	fmt.Println(content, untagged.Size[string]() == untagged.Size[struct{ p, n uintptr }]())
	// Output:
	// &str stored
	// &str stored true
}
