package directededge

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)


// PropertyMap is a string map that iterates in key insertion order.
// The zero value is empty and ready to use.
type PropertyMap struct {
	keys   []string
	values map[string]string
}

func NewPropertyMap() *PropertyMap {
	return &PropertyMap{}
}

// overwrites an existing value in place, keeping the key position
func (self *PropertyMap) Set(key string, value string) {
	if self.values == nil {
		self.values = map[string]string{}
	}
	if _, ok := self.values[key]; !ok {
		self.keys = append(self.keys, key)
	}
	self.values[key] = value
}

func (self *PropertyMap) Get(key string) (string, bool) {
	value, ok := self.values[key]
	return value, ok
}

func (self *PropertyMap) Contains(key string) bool {
	_, ok := self.values[key]
	return ok
}

func (self *PropertyMap) Remove(key string) {
	if _, ok := self.values[key]; !ok {
		return
	}
	delete(self.values, key)
	if i := slices.Index(self.keys, key); 0 <= i {
		self.keys = slices.Delete(self.keys, i, i+1)
	}
}

func (self *PropertyMap) Keys() []string {
	return slices.Clone(self.keys)
}

func (self *PropertyMap) Len() int {
	return len(self.keys)
}

func (self *PropertyMap) Map() map[string]string {
	if self.values == nil {
		return map[string]string{}
	}
	return maps.Clone(self.values)
}

func (self *PropertyMap) Clear() {
	self.keys = nil
	self.values = nil
}

func (self *PropertyMap) Clone() *PropertyMap {
	return &PropertyMap{
		keys:   slices.Clone(self.keys),
		values: maps.Clone(self.values),
	}
}
