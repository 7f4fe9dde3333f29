package directededge

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"
)


// TagSet is an insertion ordered set of tags.
// The zero value is empty and ready to use.
type TagSet struct {
	tags []string
}

func NewTagSet(tags ...string) *TagSet {
	tagSet := &TagSet{}
	for _, tag := range tags {
		tagSet.Add(tag)
	}
	return tagSet
}

// returns false if the tag is already present
func (self *TagSet) Add(tag string) bool {
	if slices.Contains(self.tags, tag) {
		return false
	}
	self.tags = append(self.tags, tag)
	return true
}

func (self *TagSet) Remove(tag string) bool {
	i := slices.Index(self.tags, tag)
	if i < 0 {
		return false
	}
	self.tags = slices.Delete(self.tags, i, i+1)
	return true
}

func (self *TagSet) Contains(tag string) bool {
	return slices.Contains(self.tags, tag)
}

func (self *TagSet) Len() int {
	return len(self.tags)
}

func (self *TagSet) Values() []string {
	return slices.Clone(self.tags)
}

func (self *TagSet) Clear() {
	self.tags = nil
}


// A tag must be valid utf-8 character data with no markup or control characters.
func ValidTag(tag string) bool {
	if tag == "" || !utf8.ValidString(tag) {
		return false
	}
	for _, r := range tag {
		switch {
		case r == '<' || r == '>' || r == '&':
			return false
		case r < 0x20:
			return false
		case r == 0xFFFE || r == 0xFFFF:
			return false
		}
	}
	return true
}
