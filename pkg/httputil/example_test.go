package httputil_test

import (
	"fmt"

	"github.com/matzehuels/folio/pkg/httputil"
)

func ExampleParsePayload() {
	obj := httputil.ParsePayload([]byte(`{"message": "Not Found"}`))
	fmt.Println("object:", obj.IsObject())

	text := httputil.ParsePayload([]byte("Bad Gateway"))
	fmt.Println("json:", text.IsJSON())
	fmt.Println("excerpt:", text.Excerpt(120))
	// Output:
	// object: true
	// json: false
	// excerpt: Bad Gateway
}

func ExamplePayload_Excerpt() {
	p := httputil.ParsePayload([]byte(`{"message":   "API rate limit exceeded",  "documentation_url": "x"}`))
	fmt.Println(p.Excerpt(40))
	// Output:
	// {"message":"API rate limit exceeded","do
}
