package htf_test

import (
	"fmt"

	"github.com/bakwc/htf"
	"github.com/bakwc/htf/application/http/client"
)

// The examples below talk to a real host, so they carry no Output comment
// and are compiled but never run by go test.

func ExampleFetch() {
	headers := htf.Headers{}
	headers.Set("User-Agent", "htf")

	res := htf.Fetch("http://example.com/", &headers, htf.DefaultTimeout)
	if res.Kind != client.Success {
		fmt.Println("fetch failed:", res.Kind)
		return
	}

	fmt.Println(res.Code, len(res.Content))
}

func ExampleGetURL() {
	content, err := htf.GetURL("http://example.com/", nil, htf.DefaultTimeout)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(string(content))
}
