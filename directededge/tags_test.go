package directededge

import (
	"testing"

	"github.com/go-playground/assert/v2"
)


func TestTagSet(t *testing.T) {
	tags := NewTagSet("x", "y", "x")
	assert.Equal(t, []string{"x", "y"}, tags.Values())

	assert.Equal(t, false, tags.Add("x"))
	assert.Equal(t, true, tags.Add("X"))
	assert.Equal(t, 3, tags.Len())

	assert.Equal(t, true, tags.Remove("x"))
	assert.Equal(t, false, tags.Remove("x"))
	assert.Equal(t, []string{"y", "X"}, tags.Values())

	// values is a copy
	values := tags.Values()
	values[0] = "z"
	assert.Equal(t, true, tags.Contains("y"))
	assert.Equal(t, false, tags.Contains("z"))

	tags.Clear()
	assert.Equal(t, 0, tags.Len())
}

func TestValidTag(t *testing.T) {
	assert.Equal(t, true, ValidTag("book"))
	assert.Equal(t, true, ValidTag("two words"))
	assert.Equal(t, true, ValidTag("ünïcode"))
	assert.Equal(t, false, ValidTag(""))
	assert.Equal(t, false, ValidTag("a<b"))
	assert.Equal(t, false, ValidTag("a&b"))
	assert.Equal(t, false, ValidTag("tab\there"))
	assert.Equal(t, false, ValidTag(string([]byte{0xff})))
}

func TestPropertyMap(t *testing.T) {
	var properties PropertyMap

	_, ok := properties.Get("missing")
	assert.Equal(t, false, ok)
	// no-op
	properties.Remove("missing")

	properties.Set("b", "1")
	properties.Set("a", "2")
	properties.Set("b", "3")
	assert.Equal(t, []string{"b", "a"}, properties.Keys())
	value, ok := properties.Get("b")
	assert.Equal(t, true, ok)
	assert.Equal(t, "3", value)
	assert.Equal(t, map[string]string{"a": "2", "b": "3"}, properties.Map())

	clone := properties.Clone()
	properties.Remove("b")
	assert.Equal(t, []string{"a"}, properties.Keys())
	assert.Equal(t, false, properties.Contains("b"))
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, true, clone.Contains("b"))

	properties.Clear()
	assert.Equal(t, 0, properties.Len())
	assert.Equal(t, map[string]string{}, properties.Map())
}
