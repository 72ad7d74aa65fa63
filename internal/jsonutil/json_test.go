package jsonutil

import (
	"bytes"
	"testing"
)

func TestEncodePretty(t *testing.T) {
	var buf bytes.Buffer
	v := struct {
		ID string `json:"id"`
		N  []int  `json:"n"`
	}{"a<b>&c", []int{1}}
	if err := EncodePretty(&buf, v); err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"id\": \"a<b>&c\",\n  \"n\": [\n    1\n  ]\n}\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
