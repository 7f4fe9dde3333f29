package directededge

import (
	"testing"

	"github.com/go-playground/assert/v2"
)


func TestResourceQuery(t *testing.T) {
	r := NewResource("http://h/p")
	assert.Equal(t, "http://h/p?a=1&b=2", r.AddKeyValuePair("a", "1").AddKeyValuePair("b", "2").Url())

	// immutable
	r1 := r.AddKeyValuePair("a", "1")
	assert.Equal(t, "http://h/p", r.Url())
	assert.Equal(t, "http://h/p?a=1&c=3", r1.AddKeyValuePair("c", "3").Url())
	assert.Equal(t, "http://h/p?a=1&d=4", r1.AddKeyValuePair("d", "4").Url())
}

func TestResourcePath(t *testing.T) {
	r := NewResource("http://h/p").AddResource("item").AddResource("related")
	assert.Equal(t, "http://h/p/item/related", r.Url())
	assert.Equal(t, "http://h/p/item/related?k=v", r.AddKeyValuePair("k", "v").Url())
}

func TestResourceStringRedactsCredential(t *testing.T) {
	r := NewResource("http://acct:secret@h/api/v1/acct")
	assert.Equal(t, "http://acct:xxxxx@h/api/v1/acct", r.String())
}
